// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/ledgervm/consts"

func BytesLen(msg []byte) int {
	return consts.IntLen + len(msg)
}
