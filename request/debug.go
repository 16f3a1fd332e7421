// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogama/qwikhttp/codec"
	"github.com/gogama/qwikhttp/redact"
)

// DebugInfo returns a human-readable description of the request and,
// unless excludeResponse is true, of the result of its most recent
// attempt.
//
// Header values and body values whose keys match a word in f are
// replaced with redact.Marker. A nil f redacts nothing.
func (b *Builder) DebugInfo(excludeResponse bool, f *redact.Filter) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "----- Request %s -----\n", b.ID)
	method := b.method
	if method == "" {
		method = MethodGet
	}
	fmt.Fprintf(&sb, "%s %s\n", method, b.url)

	if len(b.header) > 0 || b.bodyType != "" {
		sb.WriteString("Headers:\n")
		writeHeader(&sb, f, b)
	}
	if body := b.debugBody(); body != "" {
		sb.WriteString("Body:\n  ")
		sb.WriteString(f.Text(body))
		sb.WriteByte('\n')
	}

	if excludeResponse {
		return sb.String()
	}

	sb.WriteString("----- Response -----\n")
	if b.ResponseStatusCode != 0 {
		fmt.Fprintf(&sb, "Status: %d\n", b.ResponseStatusCode)
	}
	if b.ResponseString != nil && *b.ResponseString != "" {
		sb.WriteString("Body:\n  ")
		sb.WriteString(f.Text(*b.ResponseString))
		sb.WriteByte('\n')
	} else if len(b.ResponseData) > 0 {
		fmt.Fprintf(&sb, "Body: %d bytes (not UTF-8)\n", len(b.ResponseData))
	}
	if b.ResponseError != nil {
		fmt.Fprintf(&sb, "Error: %s\n", f.Text(b.ResponseError.Error()))
	}
	return sb.String()
}

func writeHeader(sb *strings.Builder, f *redact.Filter, b *Builder) {
	h := b.header
	if b.bodyType != "" {
		h = h.Clone()
		h.Set(contentTypeHeader, b.bodyType)
	}
	h = f.Header(h)
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, "  %s: %s\n", k, strings.Join(h[k], ", "))
	}
}

// debugBody returns the body as it will be sent, or a JSON rendering of
// the parameters if the Builder has not been finalized yet.
func (b *Builder) debugBody() string {
	if b.rawBody != nil {
		return string(b.rawBody)
	}
	if len(b.params) == 0 {
		return ""
	}
	p, err := codec.JSON.Marshal(b.params)
	if err != nil {
		return fmt.Sprintf("%v", b.params)
	}
	return string(p)
}
