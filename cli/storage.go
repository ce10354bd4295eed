// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ledgervm/auth"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/utils"
)

const (
	defaultPrefix = 0x0
	keyPrefix     = 0x1
	chainPrefix   = 0x2

	defaultKeyKey   = "key"
	defaultChainKey = "chain"
)

func (h *Handler) StoreDefault(key string, value []byte) error {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	return h.db.Put(k, value)
}

func (h *Handler) GetDefault(key string) ([]byte, error) {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func keyKey(addr codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], addr[:])
	return k
}

func (h *Handler) StoreKey(pk *auth.PrivateKey) error {
	k := keyKey(pk.Address)
	has, err := h.db.Has(k)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicate
	}
	return h.db.Put(k, pk.Bytes)
}

func parseKey(v []byte) (*auth.PrivateKey, error) {
	priv, err := ed25519.FromBytes(v)
	if err != nil {
		return nil, err
	}
	return auth.NewED25519PrivateKey(priv), nil
}

// GetKey returns the key controlling [addr], or nil if it is not stored.
func (h *Handler) GetKey(addr codec.Address) (*auth.PrivateKey, error) {
	v, err := h.db.Get(keyKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseKey(v)
}

func (h *Handler) GetKeys() ([]*auth.PrivateKey, error) {
	iter := h.db.NewIteratorWithPrefix([]byte{keyPrefix})
	defer iter.Release()

	privateKeys := []*auth.PrivateKey{}
	for iter.Next() {
		pk, err := parseKey(iter.Value())
		if err != nil {
			return nil, err
		}
		privateKeys = append(privateKeys, pk)
	}
	return privateKeys, iter.Error()
}

func (h *Handler) StoreDefaultKey(addr codec.Address) error {
	return h.StoreDefault(defaultKeyKey, addr[:])
}

func (h *Handler) GetDefaultKey(log bool) (*auth.PrivateKey, error) {
	v, err := h.GetDefault(defaultKeyKey)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNoKeys
	}
	addr := codec.Address(v)
	pk, err := h.GetKey(addr)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoKeys, addr)
	}
	if log {
		utils.Outf("{{yellow}}address:{{/}} %s\n", codec.MustAddressBech32(consts.HRP, addr))
	}
	return pk, nil
}

func (h *Handler) StoreDefaultChain(chainID ids.ID) error {
	return h.StoreDefault(defaultChainKey, chainID[:])
}

func (h *Handler) GetDefaultChain(log bool) (ids.ID, []string, error) {
	v, err := h.GetDefault(defaultChainKey)
	if err != nil {
		return ids.Empty, nil, err
	}
	if len(v) == 0 {
		return ids.Empty, nil, ErrNoChains
	}
	chainID := ids.ID(v)
	uris, err := h.GetChain(chainID)
	if err != nil {
		return ids.Empty, nil, err
	}
	if len(uris) == 0 {
		return ids.Empty, nil, fmt.Errorf("%w: %s", ErrNoChains, chainID)
	}
	if log {
		utils.Outf("{{yellow}}chainID:{{/}} %s\n", chainID)
	}
	return chainID, uris, nil
}

func chainKey(chainID ids.ID, uri string) []byte {
	k := make([]byte, 1+consts.IDLen*2)
	k[0] = chainPrefix
	copy(k[1:], chainID[:])
	uriID := utils.ToID([]byte(uri))
	copy(k[1+consts.IDLen:], uriID[:])
	return k
}

func (h *Handler) StoreChain(chainID ids.ID, uri string) error {
	k := chainKey(chainID, uri)
	has, err := h.db.Has(k)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicate
	}
	return h.db.Put(k, []byte(uri))
}

func (h *Handler) GetChain(chainID ids.ID) ([]string, error) {
	k := make([]byte, 1+consts.IDLen)
	k[0] = chainPrefix
	copy(k[1:], chainID[:])

	uris := []string{}
	iter := h.db.NewIteratorWithPrefix(k)
	defer iter.Release()
	for iter.Next() {
		uris = append(uris, string(iter.Value()))
	}
	return uris, iter.Error()
}

func (h *Handler) GetChains() (map[ids.ID][]string, error) {
	iter := h.db.NewIteratorWithPrefix([]byte{chainPrefix})
	defer iter.Release()

	chains := map[ids.ID][]string{}
	for iter.Next() {
		k := iter.Key()
		chainID := ids.ID(k[1 : 1+consts.IDLen])
		chains[chainID] = append(chains[chainID], string(iter.Value()))
	}
	return chains, iter.Error()
}

func (h *Handler) DeleteChains() ([]ids.ID, error) {
	chains, err := h.GetChains()
	if err != nil {
		return nil, err
	}
	chainIDs := make([]ids.ID, 0, len(chains))
	for chainID, uris := range chains {
		for _, uri := range uris {
			if err := h.db.Delete(chainKey(chainID, uri)); err != nil {
				return nil, err
			}
		}
		chainIDs = append(chainIDs, chainID)
	}
	return chainIDs, nil
}

func (h *Handler) CloseDatabase() error {
	if h.db == nil {
		return nil
	}
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("unable to close database: %w", err)
	}
	// Allow DB to be closed multiple times
	h.db = nil
	return nil
}
