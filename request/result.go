// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"

	"github.com/gogama/qwikhttp/transient"
)

// IsSent reports whether the Builder holds the result of an attempt,
// that is whether ResponseData or ResponseError is non-nil.
//
// Dispatching a sent Builder replays the stored result instead of
// sending it again. Never populate the result fields by hand: a Builder
// made to look sent skips interception and the network entirely.
func (b *Builder) IsSent() bool {
	return b.ResponseData != nil || b.ResponseError != nil
}

// Reset discards the result of the most recent attempt and both
// interception guards, leaving the request configuration untouched. A
// Builder that has been Reset sends exactly like a fresh Builder with
// the same configuration.
//
// Reset cannot stop an exchange that is already in flight.
func (b *Builder) Reset() {
	b.ClearResult()
	b.requestIntercepted = false
	b.responseIntercepted = false
	b.data = nil
}

// ClearResult discards the result of the most recent attempt but keeps
// the interception guards. Dispatchers call it when resending a Builder,
// so that an interceptor which already took control of the Builder is
// not offered it again.
func (b *Builder) ClearResult() {
	b.Response = nil
	b.ResponseData = nil
	b.ResponseError = nil
	b.ResponseString = nil
	b.ResponseStatusCode = 0
}

// StatusCode returns the status code of Response, or zero if there is
// no response.
func (b *Builder) StatusCode() int {
	if b.Response == nil {
		return 0
	}
	return b.Response.StatusCode
}

// ResponseHeader returns the headers of Response. If there is no
// response, the nil header is returned, which is safe for read-only
// use.
func (b *Builder) ResponseHeader() http.Header {
	if b.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}
	return b.Response.Header
}

// TimedOut indicates whether ResponseError is a timeout.
func (b *Builder) TimedOut() bool {
	return transient.Categorize(b.ResponseError) == transient.Timeout
}

// RequestIntercepted reports whether the request interceptor has taken
// control of the Builder since it was constructed or last Reset.
func (b *Builder) RequestIntercepted() bool { return b.requestIntercepted }

// ResponseIntercepted reports whether the response interceptor has
// taken control of the Builder since it was constructed or last Reset.
func (b *Builder) ResponseIntercepted() bool { return b.responseIntercepted }

// WasIntercepted reports whether either interceptor has taken control
// of the Builder since it was constructed or last Reset.
func (b *Builder) WasIntercepted() bool {
	return b.requestIntercepted || b.responseIntercepted
}

// MarkRequestIntercepted records that the request interceptor took
// control of the Builder. It is called by dispatchers.
func (b *Builder) MarkRequestIntercepted() { b.requestIntercepted = true }

// MarkResponseIntercepted records that the response interceptor took
// control of the Builder. It is called by dispatchers.
func (b *Builder) MarkResponseIntercepted() { b.responseIntercepted = true }

// SetValue allows event handlers and interceptors to store arbitrary
// data on the Builder.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different handlers putting data into the same
// Builder.
func (b *Builder) SetValue(key, value interface{}) {
	ctx := b.data
	if ctx == nil {
		ctx = context.Background()
	}

	b.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this Builder for key, or
// nil if there is no value associated with key.
func (b *Builder) Value(key interface{}) interface{} {
	ctx := b.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
