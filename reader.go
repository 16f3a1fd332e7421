// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/gogama/qwikhttp/request"
)

var errNoResponse = errors.New("sender returned no response")

// populate writes the outcome of an exchange into b's result fields.
//
// A response always leaves ResponseData non-nil, even when the body is
// empty, so that b reports as sent. A transport error becomes a
// Transport error. Without a transport error, a status outside the 2xx
// band becomes a Status error. A sender that returns neither a response
// nor an error is treated as having failed in transport.
func populate(c *Config, b *request.Builder, data []byte, resp *http.Response, err error) {
	if resp != nil && data == nil {
		data = []byte{}
	}
	if resp == nil && err == nil {
		err = errNoResponse
	}

	b.Response = resp
	b.ResponseData = data
	b.ResponseString = nil
	if data != nil && utf8.Valid(data) {
		s := string(data)
		b.ResponseString = &s
	}
	b.ResponseStatusCode = 0
	b.ResponseError = nil

	if err != nil {
		b.ResponseError = &request.Error{
			Kind: request.Transport,
			Op:   "send",
			URL:  b.URL(),
			Err:  err,
		}
	}

	if resp != nil {
		b.ResponseStatusCode = resp.StatusCode
		if err == nil && !success(resp.StatusCode) {
			b.ResponseError = statusError(b, resp.StatusCode, data)
		}
	}

	if obs, ok := c.ResponseInterceptor.(ResponseObserver); ok {
		obs.DidSend(b)
	}
}

func success(statusCode int) bool {
	return statusCode/100 == 2
}

// statusError builds the Status error for a non-2xx response. A body
// holding a JSON object becomes the error detail. Any other body is kept
// as text under the "Error" key; an empty body is replaced by the
// status text.
func statusError(b *request.Builder, statusCode int, data []byte) *request.Error {
	var detail map[string]interface{}
	if gjson.ValidBytes(data) {
		if r := gjson.ParseBytes(data); r.IsObject() {
			detail, _ = r.Value().(map[string]interface{})
		}
	}
	if detail == nil {
		text := string(data)
		if text == "" {
			text = http.StatusText(statusCode)
		}
		detail = map[string]interface{}{"Error": text}
	}
	return &request.Error{
		Kind:       request.Status,
		Op:         "send",
		URL:        b.URL(),
		StatusCode: statusCode,
		Detail:     detail,
	}
}
