// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
)

// A Decider decides if a response warrants resending the request.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
type Decider interface {
	Decide(resp *http.Response) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as deciders. It implements the Decider interface, and also
// provides the logical composition methods And, Or and Not.
type DeciderFunc func(resp *http.Response) bool

// DefaultDecider resends on 502 (Bad Gateway), 503 (Service
// Unavailable) and 504 (Gateway Timeout).
var DefaultDecider = StatusCode(502, 503, 504)

// Decide returns true if the request should be resent.
func (f DeciderFunc) Decide(resp *http.Response) bool {
	return f(resp)
}

// And composes two deciders into a new decider which returns true if
// both sub-deciders return true. g is not evaluated if f returns false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(resp *http.Response) bool {
		return f(resp) && g(resp)
	}
}

// Or composes two deciders into a new decider which returns true if
// either sub-decider returns true. g is not evaluated if f returns true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(resp *http.Response) bool {
		return f(resp) || g(resp)
	}
}

// Not returns a decider which inverts f.
func (f DeciderFunc) Not() DeciderFunc {
	return func(resp *http.Response) bool {
		return !f(resp)
	}
}

// StatusCode constructs a decider which returns true if the response
// status code is in the list ss.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(resp *http.Response) bool {
		for _, s := range ss2 {
			if resp.StatusCode == s {
				return true
			}
		}
		return false
	}
}

// Header constructs a decider which returns true if the response
// carries the named header.
func Header(name string) DeciderFunc {
	name = http.CanonicalHeaderKey(name)
	return func(resp *http.Response) bool {
		_, ok := resp.Header[name]
		return ok
	}
}
