// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"net/http"
	"net/url"

	"github.com/gogama/qwikhttp/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do sends a Builder, waits for the result, and returns the response
// body, the response, and the terminal error, if any. Dispatcher
// implements the Doer interface, and any other Doer implementation must
// behave substantially the same as Dispatcher.Do.
type Doer interface {
	Do(b *request.Builder) ([]byte, *http.Response, error)
}

// Get uses the specified Doer to issue a GET to the specified URL. The
// Builder is initialized from DefaultConfig.
//
// To set headers or other options, use NewRequest and d.Do.
func Get(d Doer, url string) ([]byte, *http.Response, error) {
	return d.Do(NewRequest(request.MethodGet, url))
}

// Head uses the specified Doer to issue a HEAD to the specified URL.
func Head(d Doer, url string) ([]byte, *http.Response, error) {
	return d.Do(NewRequest(request.MethodHead, url))
}

// Post uses the specified Doer to issue a POST to the specified URL.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes, namely: string; []byte;
// io.Reader; and io.ReadCloser.
func Post(d Doer, url, contentType string, body interface{}) ([]byte, *http.Response, error) {
	b := NewRequest(request.MethodPost, url).
		SetBody(body).
		AddHeader("Content-Type", contentType)
	return d.Do(b)
}

// PostForm uses the specified Doer to issue a POST to the specified URL,
// with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
func PostForm(d Doer, url string, data url.Values) ([]byte, *http.Response, error) {
	return Post(d, url, "application/x-www-form-urlencoded", data.Encode())
}

// Get issues a GET to the specified URL using the Dispatcher's Config.
func (d *Dispatcher) Get(url string) ([]byte, *http.Response, error) {
	return d.Do(d.config().NewRequest(request.MethodGet, url))
}

// Head issues a HEAD to the specified URL using the Dispatcher's Config.
func (d *Dispatcher) Head(url string) ([]byte, *http.Response, error) {
	return d.Do(d.config().NewRequest(request.MethodHead, url))
}

// Post issues a POST to the specified URL using the Dispatcher's
// Config. See the package-level Post function for the body types.
func (d *Dispatcher) Post(url, contentType string, body interface{}) ([]byte, *http.Response, error) {
	b := d.config().NewRequest(request.MethodPost, url).
		SetBody(body).
		AddHeader("Content-Type", contentType)
	return d.Do(b)
}

// PostForm issues a form POST to the specified URL using the
// Dispatcher's Config.
func (d *Dispatcher) PostForm(url string, data url.Values) ([]byte, *http.Response, error) {
	return d.Post(url, "application/x-www-form-urlencoded", data.Encode())
}
