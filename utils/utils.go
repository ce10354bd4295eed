// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"

	"github.com/ava-labs/ledgervm/consts"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

var ErrInvalidBalance = errors.New("invalid balance")

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// FormatBalance renders [bal] with [decimals] digits after the point.
func FormatBalance(bal uint64, decimals uint8) string {
	s := strconv.FormatUint(bal, 10)
	if decimals == 0 {
		return s
	}
	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	return s[:len(s)-d] + "." + s[len(s)-d:]
}

// ParseBalance is the inverse of [FormatBalance]. Fractional digits beyond
// [decimals] are rejected rather than rounded.
func ParseBalance(bal string, decimals uint8) (uint64, error) {
	whole, frac, hasFrac := strings.Cut(bal, ".")
	if whole == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBalance, bal)
	}
	if hasFrac && len(frac) > int(decimals) {
		return 0, fmt.Errorf("%w: too many decimals in %q", ErrInvalidBalance, bal)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))
	v, err := strconv.ParseUint(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidBalance, err)
	}
	return v, nil
}

// UnixRMilli returns the current unix time in milliseconds, rounded
// down to the nearsest second.
//
// [now] is used as the current unix time in milliseconds if >= 0.
//
// [add] (in ms) is added to the unix time before it is rounded (typically
// used when generating an expiry time with a validity window).
func UnixRMilli(now, add int64) int64 {
	if now < 0 {
		now = time.Now().UnixMilli()
	}
	t := now + add
	return t - t%consts.MillisecondsPerSecond
}
