// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"io"
)

// ErrBodyType is wrapped by the error SetBody defers when given a value
// that is not a supported raw body type.
var ErrBodyType = errors.New("qwikhttp/request: unsupported body type " +
	"(use nil, string, []byte, io.Reader or io.ReadCloser)")

// SetBody sets the raw request body. The body parameter may be nil, or
// it may be a string, []byte, io.Reader, or io.ReadCloser, as accepted
// by BodyBytes. A raw body always takes precedence over body parameters.
//
// SetBody never fails on the spot. If body cannot be converted, the
// Builder keeps its previous body and the next Finalize returns an
// Encoding error wrapping the cause. A later successful SetBody clears
// the pending error.
func (b *Builder) SetBody(body interface{}) *Builder {
	p, err := BodyBytes(body)
	if err != nil {
		b.defErr = &Error{Kind: Encoding, Op: "set body", URL: b.url, Err: err}
		return b
	}
	b.defErr = nil
	b.rawBody = p
	b.resolved = false
	b.bodyType = ""
	b.objects = nil
	return b
}

// BodyBytes converts a raw body value to the bytes sent on the wire.
//
// A nil body yields nil. A string or []byte is used as is. A reader is
// drained, and closed if it is an io.Closer, even when reading fails.
// Any other type yields an error wrapping ErrBodyType; use SetObject or
// SetObjects to send encoded values.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.Reader:
		return drain(x)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrBodyType, body)
	}
}

func drain(r io.Reader) ([]byte, error) {
	p, err := io.ReadAll(r)
	if c, ok := r.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
