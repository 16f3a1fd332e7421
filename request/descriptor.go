// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"time"

	"github.com/gogama/qwikhttp/codec"
	"github.com/google/uuid"
)

const (
	contentTypeHeader = "Content-Type"
	formContentType   = "application/x-www-form-urlencoded"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

// A Descriptor is a finalized, transport-ready request. Senders receive
// a Descriptor and must treat it as read-only.
type Descriptor struct {
	// RequestID is the ID of the Builder the Descriptor came from.
	RequestID uuid.UUID

	// Method is the HTTP method. It is never empty.
	Method string

	// URL is the parsed absolute request URL.
	URL *urlpkg.URL

	// Header holds the request headers, including merged standard
	// headers, Content-Type and any Cache-Control directive.
	Header http.Header

	// Body is the request body. A nil or empty body means no body is
	// sent.
	Body []byte

	// Timeout bounds the whole exchange, including reading the response
	// body.
	Timeout time.Duration

	// CachePolicy is the policy the Cache-Control directive in Header
	// was derived from.
	CachePolicy CachePolicy
}

// ToRequest creates an HTTP request corresponding to the descriptor. The
// context of the new request is set to ctx, which may not be nil.
func (d *Descriptor) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = d.Method
	r.URL = d.URL
	r.Header = d.Header
	if len(d.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(d.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(d.Body)), nil
		}
		r.ContentLength = int64(len(d.Body))
	}
	r.Host = d.URL.Host
	return r
}

// FinalizeOptions carries the dispatcher-wide settings that take part in
// finalization.
type FinalizeOptions struct {
	// StandardHeaders are merged into the request unless the Builder
	// avoids them. They never overwrite a header set on the Builder.
	StandardHeaders map[string]string

	// Codec encodes JSON bodies. If nil, codec.JSON is used.
	Codec codec.Codec
}

// Finalize validates the Builder and produces the Descriptor a sender
// transmits.
//
// Finalize resolves the body in this order: a raw body set with SetBody
// or SetObjects is used verbatim; otherwise non-empty body parameters
// are encoded according to the parameter encoding. Form encoding only
// applies when every parameter value is a string. If any value is not a
// string, Finalize switches the Builder's parameter encoding to JSON and
// encodes the parameters as JSON instead. That switch persists on the
// Builder.
//
// When Finalize produces a body from parameters or objects it records
// the body on the Builder, so that Body reports exactly what is sent, and
// sets the matching Content-Type on the Descriptor. The Builder's own
// headers are left untouched, so a later SetBody or parameter change
// does not inherit a stale Content-Type.
//
// Errors are always of type *Error, with Kind InvalidURL or Encoding.
func (b *Builder) Finalize(o FinalizeOptions) (*Descriptor, error) {
	if b.defErr != nil {
		return nil, b.defErr
	}

	method := string(b.method)
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, b.finalizeErr(InvalidURL, fmt.Errorf("invalid method %q", method))
	}
	u, err := urlpkg.Parse(b.url)
	if err != nil {
		return nil, b.finalizeErr(InvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, b.finalizeErr(InvalidURL, errors.New("URL must be absolute"))
	}
	u.Host = removeEmptyPort(u.Host)

	c := o.Codec
	if c == nil {
		c = codec.JSON
	}
	if err = b.resolveBody(c); err != nil {
		return nil, b.finalizeErr(Encoding, err)
	}

	h := b.header.Clone()
	if b.bodyType != "" {
		h.Set(contentTypeHeader, b.bodyType)
	}
	if !b.avoidStandardHeaders {
		for k, v := range o.StandardHeaders {
			if _, ok := h[http.CanonicalHeaderKey(k)]; !ok {
				h.Set(k, v)
			}
		}
	}
	if dir := b.cachePolicy.Directive(); dir != "" && h.Get("Cache-Control") == "" {
		h.Set("Cache-Control", dir)
	}

	return &Descriptor{
		RequestID:   b.ID,
		Method:      method,
		URL:         u,
		Header:      h,
		Body:        b.rawBody,
		Timeout:     b.timeout,
		CachePolicy: b.cachePolicy,
	}, nil
}

func (b *Builder) resolveBody(c codec.Codec) error {
	if b.objects != nil {
		p, err := c.Marshal(b.objects)
		if err != nil {
			return err
		}
		b.rawBody = p
		b.resolved = false
		b.bodyType = c.ContentType()
		b.objects = nil
	}
	if b.object != nil {
		m, err := codec.ToMap(c, b.object)
		if err != nil {
			return err
		}
		b.params = m
		b.object = nil
		b.encoding = JSON
	}

	if b.rawBody != nil || len(b.params) == 0 {
		return nil
	}

	if b.encoding == FormURLEncoded {
		if form, ok := formEncode(b.params); ok {
			b.record([]byte(form), formContentType)
			return nil
		}
		b.encoding = JSON
	}

	p, err := c.Marshal(b.params)
	if err != nil {
		return err
	}
	b.record(p, c.ContentType())
	return nil
}

func (b *Builder) record(body []byte, contentType string) {
	b.rawBody = body
	b.resolved = true
	b.bodyType = contentType
}

func (b *Builder) finalizeErr(kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: "finalize", URL: b.url, Err: err}
}

// formEncode encodes params as form data, sorted by key. It reports
// false if any value is not a string.
func formEncode(params map[string]interface{}) (string, bool) {
	v := make(urlpkg.Values, len(params))
	for k, x := range params {
		s, ok := x.(string)
		if !ok {
			return "", false
		}
		v.Set(k, s)
	}
	return v.Encode(), true
}

func validMethod(method string) bool {
	/*
	     Method         = "OPTIONS"                ; Section 9.2
	                    | "GET"                    ; Section 9.3
	                    | "HEAD"                   ; Section 9.4
	                    | "POST"                   ; Section 9.5
	                    | "PUT"                    ; Section 9.6
	                    | "DELETE"                 ; Section 9.7
	                    | "TRACE"                  ; Section 9.8
	                    | "CONNECT"                ; Section 9.9
	                    | extension-method
	   extension-method = token
	     token          = 1*<any CHAR except CTLs or separators>
	*/
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !isTokenRune(r)
}

// isTokenRune classifies a rune as being valid for a token as defined in
// https://tools.ietf.org/html/rfc7230#section-3.2.6
func isTokenRune(r rune) bool {
	if r >= 127 || r <= ' ' {
		return false
	}
	return !strings.ContainsRune(`"(),/:;<=>?@[\]{}`, r)
}

// hasPort reports whether s, a string of the form "host", "host:port",
// or "[ipv6::address]:port", includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort strips the empty port in ":port" to "" as mandated by
// RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
