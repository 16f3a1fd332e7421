// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides a response interceptor which resends a request
// once when its response matches a Decider.
//
// The dispatcher offers a request to the response interceptor at most
// once between Resets, so an Interceptor resends each request at most
// once, immediately, and without backoff:
//
//	cfg := qwikhttp.NewConfig()
//	cfg.ResponseInterceptor = &retry.Interceptor{
//		Decider: retry.StatusCode(502, 503).And(retry.Header("Retry-After").Not()),
//	}
//
// If the built-in deciders are insufficient, implement Decider or use
// DeciderFunc.
package retry
