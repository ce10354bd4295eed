// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net"
	"net/http"
	"strings"

	"github.com/ava-labs/avalanchego/utils/set"
)

const wildcard = "*"

// filterInvalidHosts rejects requests whose Host header is not in
// [allowedHosts]. Requests addressed to an IP are always allowed.
func filterInvalidHosts(handler http.Handler, allowedHosts []string) http.Handler {
	s := set.Set[string]{}
	for _, host := range allowedHosts {
		if host == wildcard {
			return handler
		}
		s.Add(strings.ToLower(host))
	}
	if s.Len() == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			host = r.Host
		}
		if net.ParseIP(host) != nil || s.Contains(strings.ToLower(host)) {
			handler.ServeHTTP(w, r)
			return
		}
		http.Error(w, "invalid host specified", http.StatusForbidden)
	})
}
