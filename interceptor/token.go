// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package interceptor provides ready-made request and response
// interceptors for use with qwikhttp.Config.
package interceptor

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gogama/qwikhttp"
	"github.com/gogama/qwikhttp/request"
)

// A FetchFunc obtains a new access token.
type FetchFunc func(ctx context.Context) (string, error)

// DefaultFetchTimeout bounds a token fetch when the intercepted request
// has no timeout of its own.
const DefaultFetchTimeout = 10 * time.Second

var errEmptyToken = errors.New("token source returned an empty token")

// TokenSource authorizes requests with a bearer token. It is both a
// qwikhttp.RequestInterceptor and a qwikhttp.ResponseInterceptor:
//
// • Before sending, a request without an Authorization header is
// intercepted, given the current token (fetching one if there is none
// yet), and resent.
//
// • After sending, a 401 Unauthorized response is intercepted. The token
// is refreshed and the request resent with the new token. If the
// refresh fails, the original 401 result is delivered.
//
// Concurrent refreshes are coalesced, so a burst of 401 responses
// triggers a single fetch.
//
//	ts := interceptor.NewTokenSource(fetchToken)
//	cfg := qwikhttp.NewConfig()
//	cfg.RequestInterceptor = ts
//	cfg.ResponseInterceptor = ts
type TokenSource struct {
	fetch FetchFunc

	// Header is the request header carrying the token. If empty,
	// "Authorization" is used.
	Header string

	// Scheme prefixes the token in the header value. If empty, "Bearer"
	// is used.
	Scheme string

	mu    sync.RWMutex
	token string
	group singleflight.Group
}

// NewTokenSource returns a TokenSource which calls fetch whenever it
// needs a new token.
func NewTokenSource(fetch FetchFunc) *TokenSource {
	if fetch == nil {
		panic("qwikhttp/interceptor: nil fetch")
	}
	return &TokenSource{fetch: fetch}
}

// Token returns the current token, or the empty string if none has been
// fetched yet.
func (s *TokenSource) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the current token.
func (s *TokenSource) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Refresh fetches a new token and makes it current. Calls made while a
// fetch is in progress wait for that fetch and share its result.
func (s *TokenSource) Refresh(ctx context.Context) (string, error) {
	v, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		token, err := s.fetch(ctx)
		if err != nil {
			return "", err
		}
		if token == "" {
			return "", errEmptyToken
		}
		s.SetToken(token)
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ShouldInterceptRequest reports whether b lacks the token header.
func (s *TokenSource) ShouldInterceptRequest(b *request.Builder) bool {
	return b.Header().Get(s.header()) == ""
}

// InterceptRequest adds the token to b and resends it. If no token is
// available and fetching one fails, done receives a Transport error
// wrapping the fetch error, and b is not sent.
func (s *TokenSource) InterceptRequest(d *qwikhttp.Dispatcher, b *request.Builder, done qwikhttp.Completion) {
	token := s.Token()
	if token == "" {
		var err error
		token, err = s.refresh(b)
		if err != nil {
			b.ResponseError = &request.Error{
				Kind: request.Transport,
				Op:   "authorize",
				URL:  b.URL(),
				Err:  err,
			}
			done(nil, nil, b.ResponseError)
			return
		}
	}
	s.authorize(b, token)
	d.Resend(b, done)
}

// ShouldInterceptResponse reports whether resp is 401 Unauthorized.
func (s *TokenSource) ShouldInterceptResponse(resp *http.Response) bool {
	return resp.StatusCode == http.StatusUnauthorized
}

// InterceptResponse refreshes the token and resends b with it.
func (s *TokenSource) InterceptResponse(d *qwikhttp.Dispatcher, b *request.Builder, done qwikhttp.Completion) {
	token, err := s.refresh(b)
	if err != nil {
		done(b.ResponseData, b.Response, b.ResponseError)
		return
	}
	s.authorize(b, token)
	d.Resend(b, done)
}

func (s *TokenSource) refresh(b *request.Builder) (string, error) {
	timeout := b.Timeout()
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Refresh(ctx)
}

func (s *TokenSource) authorize(b *request.Builder, token string) {
	b.AddHeader(s.header(), s.scheme()+" "+token)
}

func (s *TokenSource) header() string {
	if s.Header == "" {
		return "Authorization"
	}
	return s.Header
}

func (s *TokenSource) scheme() string {
	if s.Scheme == "" {
		return "Bearer"
	}
	return s.Scheme
}
