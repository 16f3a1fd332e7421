// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogama/qwikhttp/transient"
)

// A Kind classifies an Error.
type Kind int

const (
	// InvalidURL means the request URL or method could not be turned
	// into a request line.
	InvalidURL Kind = iota + 1
	// Encoding means the request body could not be produced.
	Encoding
	// Transport means the sender failed to complete the exchange.
	Transport
	// Status means the server answered with a status code outside the
	// 2xx band.
	Status
	// Decode means a successful response body could not be decoded into
	// the requested type.
	Decode
)

var kindNames = map[Kind]string{
	InvalidURL: "invalid URL",
	Encoding:   "encoding",
	Transport:  "transport",
	Status:     "status",
	Decode:     "decode",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel errors, one per Kind. Every *Error matches the sentinel for
// its Kind under errors.Is:
//
//	if errors.Is(err, request.ErrStatus) { ... }
var (
	ErrInvalidURL = &Error{Kind: InvalidURL}
	ErrEncoding   = &Error{Kind: Encoding}
	ErrTransport  = &Error{Kind: Transport}
	ErrStatus     = &Error{Kind: Status}
	ErrDecode     = &Error{Kind: Decode}
)

// An Error is a terminal failure of one request attempt.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op names the stage that failed, for example "finalize" or "send".
	Op string

	// URL is the request URL as configured on the builder.
	URL string

	// StatusCode is the HTTP status code. It is set for Status errors,
	// and for Decode errors of responses that carried a status.
	StatusCode int

	// Detail holds structured detail for Status errors. If the response
	// body was a JSON object, Detail is that object. Otherwise it has a
	// single "Error" key holding the raw response text.
	Detail map[string]interface{}

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("qwikhttp")
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.URL != "" {
		b.WriteString(" ")
		b.WriteString(e.URL)
	}
	b.WriteString(": ")
	if e.Kind == Status {
		fmt.Fprintf(&b, "status %d", e.StatusCode)
		if len(e.Detail) > 0 {
			b.WriteString(" ")
			b.WriteString(detailString(e.Detail))
		}
	} else {
		b.WriteString(e.Kind.String())
		b.WriteString(" error")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e's Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.URL == "" && t.StatusCode == 0 && t.Detail == nil && t.Err == nil
}

// Timeout indicates whether the underlying cause is a timeout.
func (e *Error) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

func detailString(detail map[string]interface{}) string {
	if msg, ok := detail["Error"].(string); ok && len(detail) == 1 {
		return fmt.Sprintf("(%s)", msg)
	}
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, detail[k])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
