// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/ava-labs/ledgervm/codec"

// Registry holds the decoders for every action and auth type the VM accepts.
type Registry struct {
	actions *codec.TypeParser[Action]
	auths   *codec.TypeParser[Auth]
}

func NewRegistry() *Registry {
	return &Registry{
		actions: codec.NewTypeParser[Action](),
		auths:   codec.NewTypeParser[Auth](),
	}
}

func (r *Registry) RegisterAction(typeID uint8, f func(*codec.Packer) (Action, error)) error {
	return r.actions.Register(typeID, f)
}

func (r *Registry) RegisterAuth(typeID uint8, f func(*codec.Packer) (Auth, error)) error {
	return r.auths.Register(typeID, f)
}

func (r *Registry) LookupAction(typeID uint8) (func(*codec.Packer) (Action, error), bool) {
	return r.actions.LookupIndex(typeID)
}

func (r *Registry) LookupAuth(typeID uint8) (func(*codec.Packer) (Auth, error), bool) {
	return r.auths.LookupIndex(typeID)
}
