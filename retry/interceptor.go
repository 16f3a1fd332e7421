// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"

	"github.com/gogama/qwikhttp"
	"github.com/gogama/qwikhttp/request"
)

// Interceptor is a qwikhttp.ResponseInterceptor which resends a request
// whose response satisfies Decider. If Decider is nil, DefaultDecider is
// used.
type Interceptor struct {
	Decider Decider
}

// ShouldInterceptResponse implements qwikhttp.ResponseInterceptor.
func (i *Interceptor) ShouldInterceptResponse(resp *http.Response) bool {
	if i.Decider == nil {
		return DefaultDecider(resp)
	}
	return i.Decider.Decide(resp)
}

// InterceptResponse implements qwikhttp.ResponseInterceptor.
func (i *Interceptor) InterceptResponse(d *qwikhttp.Dispatcher, b *request.Builder, done qwikhttp.Completion) {
	d.Resend(b, done)
}
