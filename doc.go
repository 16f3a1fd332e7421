// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package qwikhttp sends HTTP requests assembled with a fluent builder and
delivers typed results through callbacks.

Build a request, then hand it to a Dispatcher:

	b := qwikhttp.NewRequest(request.MethodPost, "https://example.com/items").
		AddParam("name", "widget")
	qwikhttp.GetResponse(qwikhttp.DefaultDispatcher, b,
		func(item Item, err error, b *request.Builder) {
			...
		})

Callbacks for requests whose response thread is request.ResponseMain run
one at a time on a MainQueue; use request.ResponseBackground to receive
them on the goroutine that finished the request. Every helper also has
a blocking form:

	item, err := qwikhttp.AwaitResponse[Item](qwikhttp.DefaultDispatcher, b)

Process-wide behaviour lives in a Config: default request settings,
standard headers, the sender performing the network exchange, the codec,
log redaction words and the two interceptors. A zero Dispatcher uses
DefaultConfig; give a Dispatcher its own Config to isolate it:

	cfg := qwikhttp.NewConfig()
	cfg.StandardHeaders = map[string]string{"Accept": "application/json"}
	cfg.ResponseInterceptor = refresher
	d := &qwikhttp.Dispatcher{Config: cfg}

Interceptors can take control of a request before it is sent or after
its response arrives, do some asynchronous work such as refreshing a
credential, and then restart the same request with Dispatcher.Resend.
Each interceptor takes a given Builder at most once until the Builder is
Reset, which rules out interception loops.

A Builder that already holds a result is never sent twice: sending it
again replays the stored result. Call Reset on the Builder to send it
afresh.

Lifecycle events can be observed by installing Handlers in a
HandlerGroup; package metrics provides a Prometheus collector built this
way.
*/
package qwikhttp
