// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
)

// Result is the outcome of processing a transaction. A failed transaction has
// no outputs and changed no state.
type Result struct {
	Success bool
	Error   []byte

	Outputs [][]byte

	Units uint64
}

func (r *Result) Size() int {
	outputSize := consts.ByteLen
	for _, output := range r.Outputs {
		outputSize += codec.BytesLen(output)
	}
	return consts.BoolLen + codec.BytesLen(r.Error) + outputSize + consts.Uint64Len
}

func (r *Result) Marshal(p *codec.Packer) error {
	p.PackBool(r.Success)
	p.PackBytes(r.Error)
	p.PackByte(uint8(len(r.Outputs)))
	for _, output := range r.Outputs {
		p.PackBytes(output)
	}
	p.PackUint64(r.Units)
	return p.Err()
}

func (r *Result) Bytes() ([]byte, error) {
	p := codec.NewWriter(r.Size(), consts.NetworkSizeLimit)
	if err := r.Marshal(p); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

func UnmarshalResult(p *codec.Packer) (*Result, error) {
	result := &Result{
		Success: p.UnpackBool(),
	}
	p.UnpackBytes(consts.NetworkSizeLimit, false, &result.Error)
	numOutputs := p.UnpackByte()
	if numOutputs > consts.MaxActions {
		return nil, ErrTooManyActions
	}
	for i := uint8(0); i < numOutputs; i++ {
		var output []byte
		p.UnpackBytes(consts.NetworkSizeLimit, false, &output)
		result.Outputs = append(result.Outputs, output)
	}
	result.Units = p.UnpackUint64(false)
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return result, p.Err()
}

func ParseResult(raw []byte) (*Result, error) {
	return UnmarshalResult(codec.NewReader(raw, consts.NetworkSizeLimit))
}
