// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "net/http"

// A Sender performs one network exchange for a finalized request.
//
// Send blocks until the exchange is over. It returns the complete
// response body, the response (whose Body has been consumed and may be
// closed), and any transport error. A response with a non-2xx status is
// not an error at this level. Send may return a partial body together
// with an error.
//
// Implementations must be safe for concurrent use.
type Sender interface {
	Send(d *Descriptor) ([]byte, *http.Response, error)
}

// The SenderFunc type is an adapter to allow the use of ordinary
// functions as senders. If f is a function with the appropriate
// signature, SenderFunc(f) is a Sender that calls f.
type SenderFunc func(d *Descriptor) ([]byte, *http.Response, error)

// Send calls f(d).
func (f SenderFunc) Send(d *Descriptor) ([]byte, *http.Response, error) {
	return f(d)
}
