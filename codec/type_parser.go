// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// TypeParser maps the type byte that prefixes a serialized item to the
// function that decodes it.
type TypeParser[T any] struct {
	indexToDecoder map[uint8]func(*Packer) (T, error)
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]func(*Packer) (T, error){},
	}
}

func (p *TypeParser[T]) Register(index uint8, f func(*Packer) (T, error)) error {
	if _, ok := p.indexToDecoder[index]; ok {
		return fmt.Errorf("%w: type=%d", ErrDuplicateItem, index)
	}
	p.indexToDecoder[index] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}
