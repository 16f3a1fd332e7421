// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sender

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/gogama/qwikhttp/request"
	"golang.org/x/net/publicsuffix"
)

// HTTPDoer is the interface that wraps the basic Do method.
//
// Do sends an HTTP request and returns an HTTP response, following the
// contract of Go's standard http.Client.Do.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// HTTP is a request.Sender backed by an HTTPDoer.
type HTTP struct {
	// Doer performs the HTTP exchange. If nil, a shared client returned
	// by NewHTTPClient is used.
	Doer HTTPDoer
}

var (
	defaultClient     *http.Client
	defaultClientOnce sync.Once
)

// NewHTTPClient returns an http.Client with a cookie jar that uses the
// public suffix list to scope cookies to their registrable domain.
func NewHTTPClient() *http.Client {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		// cookiejar.New never fails in practice.
		panic(err)
	}
	return &http.Client{Jar: jar}
}

func sharedClient() *http.Client {
	defaultClientOnce.Do(func() {
		defaultClient = NewHTTPClient()
	})
	return defaultClient
}

// Send implements request.Sender.
func (s *HTTP) Send(d *request.Descriptor) ([]byte, *http.Response, error) {
	ctx, cancel := timeoutContext(d)
	defer cancel()

	doer := s.Doer
	if doer == nil {
		doer = sharedClient()
	}

	r := d.ToRequest(ctx)
	resp, err := doer.Do(r)
	if err != nil {
		return nil, nil, urlErrorWrap(d, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return body, resp, urlErrorWrap(d, err)
	}
	return body, resp, nil
}

func timeoutContext(d *request.Descriptor) (context.Context, context.CancelFunc) {
	if d.Timeout > 0 {
		return context.WithTimeout(context.Background(), d.Timeout)
	}
	return context.WithCancel(context.Background())
}

func urlErrorWrap(d *request.Descriptor, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(d.Method),
		URL: d.URL.String(),
		Err: err,
	}
}

// urlErrorOp matches the Op field net/http uses in the *url.Error
// values it returns.
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
