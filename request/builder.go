// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	urlpkg "net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// A Method is an HTTP request method.
type Method string

// Methods supported by name. Any other method consisting only of HTTP
// token characters is accepted as an extension method.
const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
	MethodPatch  Method = http.MethodPatch
	MethodHead   Method = http.MethodHead
)

// A Builder is the mutable specification of one logical HTTP call,
// together with the result of its most recent attempt.
//
// Every setter mutates the Builder in place and returns it, so calls
// chain:
//
//	b := request.NewBuilder(request.MethodPost, "https://example.com/items").
//		AddHeader("Accept", "application/json").
//		AddParam("name", "widget")
//
// A Builder is owned by a single caller and is not safe for concurrent
// use. In particular, it must not be passed to two concurrent sends.
//
// Once sent, a Builder holds the result of the exchange in its exported
// result fields. A Builder whose ResponseData or ResponseError is
// non-nil is considered already sent, and dispatching it again replays
// the stored result without touching the network. Call Reset to discard
// the result and make the Builder sendable again.
type Builder struct {
	// ID uniquely identifies the Builder in log output and events. It is
	// assigned on construction and never changes.
	ID uuid.UUID

	// Response is the HTTP response of the most recent attempt, or nil
	// if there was none. Its Body has already been consumed; the
	// complete body is in ResponseData.
	Response *http.Response

	// ResponseData is the response body of the most recent attempt. It
	// is nil before the first attempt and after a transport failure that
	// produced no response.
	ResponseData []byte

	// ResponseError is the terminal error of the most recent attempt, if
	// any. When non-nil it is always an *Error.
	ResponseError error

	// ResponseString is ResponseData as text, or nil if ResponseData is
	// nil or not valid UTF-8.
	ResponseString *string

	// ResponseStatusCode is the HTTP status code of Response, or zero.
	ResponseStatusCode int

	url          string
	method       Method
	header       http.Header
	params       map[string]interface{}
	rawBody      []byte
	resolved     bool
	bodyType     string
	object       interface{}
	objects      interface{}
	encoding     ParameterEncoding
	timeout      time.Duration
	defTimeout   time.Duration
	cachePolicy  CachePolicy
	loadingTitle string
	thread       ResponseThread
	logLevel     LoggingLevel
	sender       Sender

	avoidStandardHeaders     bool
	avoidRequestInterceptor  bool
	avoidResponseInterceptor bool

	requestIntercepted  bool
	responseIntercepted bool

	defErr error
	data   context.Context
}

// NewBuilder returns a Builder for the given method and URL, starting
// from the zero Defaults.
func NewBuilder(method Method, url string) *Builder {
	return NewBuilderWithDefaults(Defaults{}, method, url)
}

// NewBuilderWithDefaults returns a Builder for the given method and URL,
// with its timeout, cache policy, parameter encoding, loading title,
// response thread and logging level taken from d.
func NewBuilderWithDefaults(d Defaults, method Method, url string) *Builder {
	return &Builder{
		ID:           uuid.New(),
		url:          url,
		method:       method,
		header:       make(http.Header),
		params:       make(map[string]interface{}),
		encoding:     d.ParameterEncoding,
		timeout:      d.timeout(),
		defTimeout:   d.timeout(),
		cachePolicy:  d.CachePolicy,
		loadingTitle: d.LoadingTitle,
		thread:       d.ResponseThread,
		logLevel:     d.LoggingLevel,
	}
}

// AddHeader sets the header key to value, replacing any value previously
// set for the same key. Keys are case-insensitive.
func (b *Builder) AddHeader(key, value string) *Builder {
	b.header.Set(key, value)
	return b
}

// AddHeaders calls AddHeader for each entry of headers.
func (b *Builder) AddHeaders(headers map[string]string) *Builder {
	for k, v := range headers {
		b.header.Set(k, v)
	}
	return b
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line,
// separated by semicolons.
func (b *Builder) AddCookie(c *http.Cookie) *Builder {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := b.header.Get("Cookie"); h != "" {
		b.header.Set("Cookie", h+"; "+s)
	} else {
		b.header.Set("Cookie", s)
	}
	return b
}

// SetBasicAuth sets the Authorization header to use HTTP Basic
// Authentication with the provided username and password.
func (b *Builder) SetBasicAuth(username, password string) *Builder {
	r := http.Request{Header: make(http.Header)}
	r.SetBasicAuth(username, password)
	b.header.Set("Authorization", r.Header.Get("Authorization"))
	return b
}

// AddParam sets the body parameter key to value. A nil value removes the
// parameter.
func (b *Builder) AddParam(key string, value interface{}) *Builder {
	b.unresolve()
	if value == nil {
		delete(b.params, key)
	} else {
		b.params[key] = value
	}
	return b
}

// AddParams calls AddParam for each entry of params.
func (b *Builder) AddParams(params map[string]interface{}) *Builder {
	for k, v := range params {
		b.AddParam(k, v)
	}
	return b
}

// SetObject replaces the body parameters with the fields of v, which
// must encode to a JSON object, and switches the parameter encoding to
// JSON. The conversion happens when the request is finalized, using the
// finalizing codec; if it fails, finalization fails with an Encoding
// error. A nil v clears the pending object.
func (b *Builder) SetObject(v interface{}) *Builder {
	b.unresolve()
	b.object = v
	if v != nil {
		b.encoding = JSON
	}
	return b
}

// SetObjects sets the raw body to the encoding of the slice objects,
// with a JSON Content-Type. Like SetObject, encoding happens at
// finalization. A nil objects clears the pending slice.
func (b *Builder) SetObjects(objects interface{}) *Builder {
	b.rawBody = nil
	b.resolved = false
	b.bodyType = ""
	b.objects = objects
	return b
}

// SetParameterEncoding sets how body parameters are encoded.
func (b *Builder) SetParameterEncoding(pe ParameterEncoding) *Builder {
	b.unresolve()
	b.encoding = pe
	return b
}

// SetCachePolicy sets the cache policy.
func (b *Builder) SetCachePolicy(cp CachePolicy) *Builder {
	b.cachePolicy = cp
	return b
}

// SetTimeout sets the per-request timeout. A non-positive timeout resets
// the Builder to the default it was constructed with.
func (b *Builder) SetTimeout(d time.Duration) *Builder {
	if d <= 0 {
		d = b.defTimeout
	}
	b.timeout = d
	return b
}

// SetLoadingTitle sets the title shown on the loading indicator while
// the request is in flight. The empty string disables the indicator.
func (b *Builder) SetLoadingTitle(title string) *Builder {
	b.loadingTitle = title
	return b
}

// SetResponseThread selects where response helpers deliver callbacks.
func (b *Builder) SetResponseThread(rt ResponseThread) *Builder {
	b.thread = rt
	return b
}

// SetLoggingLevel sets the logging level for this request.
func (b *Builder) SetLoggingLevel(l LoggingLevel) *Builder {
	b.logLevel = l
	return b
}

// SetSender overrides the dispatcher's sender for this request. A nil
// sender restores the default.
func (b *Builder) SetSender(s Sender) *Builder {
	b.sender = s
	return b
}

// SetAvoidStandardHeaders controls whether the dispatcher's standard
// headers are merged into this request.
func (b *Builder) SetAvoidStandardHeaders(avoid bool) *Builder {
	b.avoidStandardHeaders = avoid
	return b
}

// SetAvoidRequestInterceptor controls whether the registered request
// interceptor is consulted for this request.
func (b *Builder) SetAvoidRequestInterceptor(avoid bool) *Builder {
	b.avoidRequestInterceptor = avoid
	return b
}

// SetAvoidResponseInterceptor controls whether the registered response
// interceptor is consulted for this request.
func (b *Builder) SetAvoidResponseInterceptor(avoid bool) *Builder {
	b.avoidResponseInterceptor = avoid
	return b
}

// AddURLParam appends key=value to the URL query, encoding both. The
// first parameter is introduced with '?', later ones with '&'.
func (b *Builder) AddURLParam(key, value string) *Builder {
	sep := "&"
	switch i := strings.IndexByte(b.url, '?'); {
	case i < 0:
		sep = "?"
	case i == len(b.url)-1 || strings.HasSuffix(b.url, "&"):
		sep = ""
	}
	b.url += sep + urlpkg.QueryEscape(key) + "=" + urlpkg.QueryEscape(value)
	return b
}

// AddURLParams calls AddURLParam for each entry of params, in key order.
func (b *Builder) AddURLParams(params map[string]string) *Builder {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.AddURLParam(k, params[k])
	}
	return b
}

// RemoveURLParam removes every query parameter named key from the URL.
// If the URL cannot be parsed it is left unchanged.
func (b *Builder) RemoveURLParam(key string) *Builder {
	u, err := urlpkg.Parse(b.url)
	if err != nil {
		return b
	}
	q := u.Query()
	if _, ok := q[key]; !ok {
		return b
	}
	q.Del(key)
	u.RawQuery = q.Encode()
	b.url = u.String()
	return b
}

// URL returns the request URL, including any added query parameters.
func (b *Builder) URL() string { return b.url }

// Method returns the request method.
func (b *Builder) Method() Method { return b.method }

// Header returns the request headers set on the Builder. Standard
// headers merged in at finalization are not included. The returned
// header is live; changes to it affect the Builder.
func (b *Builder) Header() http.Header { return b.header }

// Params returns a copy of the body parameters.
func (b *Builder) Params() map[string]interface{} {
	m := make(map[string]interface{}, len(b.params))
	for k, v := range b.params {
		m[k] = v
	}
	return m
}

// Body returns the raw body. After finalization this is exactly the body
// the sender transmits, even when it was produced from parameters.
func (b *Builder) Body() []byte { return b.rawBody }

// ParameterEncoding returns the body parameter encoding.
func (b *Builder) ParameterEncoding() ParameterEncoding { return b.encoding }

// Timeout returns the per-request timeout.
func (b *Builder) Timeout() time.Duration { return b.timeout }

// CachePolicy returns the cache policy.
func (b *Builder) CachePolicy() CachePolicy { return b.cachePolicy }

// LoadingTitle returns the loading indicator title.
func (b *Builder) LoadingTitle() string { return b.loadingTitle }

// ResponseThread returns where response helpers deliver callbacks.
func (b *Builder) ResponseThread() ResponseThread { return b.thread }

// LoggingLevel returns the logging level.
func (b *Builder) LoggingLevel() LoggingLevel { return b.logLevel }

// Sender returns the per-request sender override, or nil.
func (b *Builder) Sender() Sender { return b.sender }

// AvoidStandardHeaders reports whether standard headers are skipped.
func (b *Builder) AvoidStandardHeaders() bool { return b.avoidStandardHeaders }

// AvoidRequestInterceptor reports whether the request interceptor is
// skipped.
func (b *Builder) AvoidRequestInterceptor() bool { return b.avoidRequestInterceptor }

// AvoidResponseInterceptor reports whether the response interceptor is
// skipped.
func (b *Builder) AvoidResponseInterceptor() bool { return b.avoidResponseInterceptor }

// unresolve discards a raw body that finalization produced from
// parameters, so that parameter changes made afterwards take effect.
func (b *Builder) unresolve() {
	if b.resolved {
		b.rawBody = nil
		b.resolved = false
		b.bodyType = ""
	}
}
