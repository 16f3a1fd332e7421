// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"net/http"

	"github.com/gogama/qwikhttp/request"
)

// A RequestInterceptor may take control of a request before it is sent.
//
// The Dispatcher offers a Builder to the interceptor at most once
// between Resets. If ShouldInterceptRequest returns true, the
// Dispatcher hands the Builder to InterceptRequest and does nothing
// further: the sender is not invoked, and the interceptor becomes
// responsible for eventually calling done exactly once. The usual
// pattern is to modify the Builder and resend it:
//
//	func (i *myInterceptor) InterceptRequest(d *qwikhttp.Dispatcher, b *request.Builder, done qwikhttp.Completion) {
//		b.AddHeader("Authorization", "Bearer "+i.token())
//		d.Resend(b, done)
//	}
//
// A resent Builder is not offered to the request interceptor again, but
// may still be offered to the response interceptor.
//
// Interceptors are shared by all requests and must be safe for
// concurrent use.
type RequestInterceptor interface {
	ShouldInterceptRequest(b *request.Builder) bool
	InterceptRequest(d *Dispatcher, b *request.Builder, done Completion)
}

// A ResponseInterceptor may take control of a request after its
// response is received and before it is delivered.
//
// The contract mirrors RequestInterceptor. ShouldInterceptResponse is
// only consulted when the exchange produced a response without a
// transport error. When it returns true, InterceptResponse receives the
// Builder with its result fields populated, including any Status error,
// and is responsible for calling done exactly once, either directly or
// by resending the Builder.
type ResponseInterceptor interface {
	ShouldInterceptResponse(resp *http.Response) bool
	InterceptResponse(d *Dispatcher, b *request.Builder, done Completion)
}

// A ResponseObserver is notified of every populated result, including
// transport failures. A ResponseInterceptor that also implements
// ResponseObserver has DidSend called before the interception decision
// is made. DidSend cannot change the outcome.
type ResponseObserver interface {
	DidSend(b *request.Builder)
}
