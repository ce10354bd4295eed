// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "strings"

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys holds the name of each key and its permission (Read/Allocate/Write). To
// prevent duplicate insertions from overriding the original permissions, use the
// Add function below.
type Keys map[string]Permissions

// Permissions is a bitmask of the operations a transaction may perform on a key.
type Permissions byte

// Add merges [permission] into whatever [name] already holds. A transaction's
// permissions are the union of the state keys declared by each of its actions.
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

func (p Permissions) String() string {
	if p == None {
		return "none"
	}
	var parts []string
	if p.Has(Read) {
		parts = append(parts, "read")
	}
	if p.Has(Allocate) {
		parts = append(parts, "allocate")
	}
	if p.Has(Write) {
		parts = append(parts, "write")
	}
	return strings.Join(parts, "|")
}
