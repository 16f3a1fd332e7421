// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package redact removes sensitive values from request and response
// diagnostics before they reach a log.
//
// A Filter holds a list of sensitive key names, such as "password" or
// "authorization". Keys are matched case-insensitively against header
// names, against object keys anywhere inside a JSON document, and
// against key/value pairs in other text ("key": value, key=value).
// Every matched value is replaced with the literal Marker.
package redact

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Marker replaces every redacted value.
const Marker = "[FILTERED]"

// A Filter redacts values whose key matches one of its words. The nil
// Filter, and a Filter with no words, redact nothing.
//
// A Filter is immutable once constructed and is safe for concurrent use.
type Filter struct {
	words   []string
	pattern *regexp.Regexp
}

// New returns a Filter for the given sensitive key names. Empty words
// are ignored.
func New(words ...string) *Filter {
	f := &Filter{}
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		f.words = append(f.words, strings.ToLower(w))
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) > 0 {
		f.pattern = regexp.MustCompile(`(?i)("?\b(?:` + strings.Join(quoted, "|") +
			`)\b"?\s*[:=]\s*)("(?:[^"\\]|\\.)*"|[^\s,&;}\]]*)`)
	}
	return f
}

// Enabled reports whether f redacts anything.
func (f *Filter) Enabled() bool {
	return f != nil && len(f.words) > 0
}

// Words returns a copy of the lower-cased sensitive key names.
func (f *Filter) Words() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.words...)
}

// Match reports whether key is one of the sensitive key names, ignoring
// case.
func (f *Filter) Match(key string) bool {
	if f == nil {
		return false
	}
	for _, w := range f.words {
		if strings.EqualFold(w, key) {
			return true
		}
	}
	return false
}

// Header returns a copy of h in which the values of every sensitive
// header are replaced with Marker. The original header is not modified.
func (f *Filter) Header(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	h2 := h.Clone()
	if !f.Enabled() {
		return h2
	}
	for k, vs := range h2 {
		if f.Match(k) {
			for i := range vs {
				vs[i] = Marker
			}
		}
	}
	return h2
}

// Text returns s with every sensitive value replaced with Marker.
//
// If s is a JSON object or array, keys are matched at every nesting
// level and the result is still valid JSON. Otherwise s is scanned for
// "key": value and key=value pairs, which covers form bodies and
// JSON-like fragments.
func (f *Filter) Text(s string) string {
	if !f.Enabled() || s == "" {
		return s
	}
	if doc := gjson.Parse(s); gjson.Valid(s) && (doc.IsObject() || doc.IsArray()) {
		return f.json(s, doc)
	}
	return f.pattern.ReplaceAllString(s, "${1}"+Marker)
}

// Bytes is Text for byte slices.
func (f *Filter) Bytes(b []byte) string {
	return f.Text(string(b))
}

func (f *Filter) json(s string, doc gjson.Result) string {
	var paths []string
	f.collect(doc, "", &paths)
	for _, p := range paths {
		out, err := sjson.Set(s, p, Marker)
		if err != nil {
			// A path we built ourselves should always be settable. If it
			// isn't, fall back to the text scanner rather than leak.
			return f.pattern.ReplaceAllString(s, "${1}"+Marker)
		}
		s = out
	}
	return s
}

func (f *Filter) collect(v gjson.Result, prefix string, paths *[]string) {
	isArray := v.IsArray()
	i := 0
	v.ForEach(func(key, value gjson.Result) bool {
		var p string
		if isArray {
			p = join(prefix, strconv.Itoa(i))
			i++
		} else {
			k := key.String()
			p = join(prefix, escape(k))
			if f.Match(k) {
				*paths = append(*paths, p)
				return true
			}
		}
		if value.IsObject() || value.IsArray() {
			f.collect(value, p, paths)
		}
		return true
	})
}

func join(prefix, elem string) string {
	if prefix == "" {
		return elem
	}
	return prefix + "." + elem
}

// escape makes an object key safe for use as a gjson/sjson path element.
func escape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
