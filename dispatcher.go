// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/gogama/qwikhttp/request"
)

// A Completion receives the result of sending a Builder: the response
// body, the response, and the terminal error, if any. When the error is
// non-nil it is a *request.Error.
type Completion func(data []byte, resp *http.Response, err error)

// A Dispatcher sends Builders through the request lifecycle: finalize,
// request interception, send, result population, response interception
// and delivery. Its zero value is valid and uses DefaultConfig.
//
// A Dispatcher holds no mutable state of its own and is safe for
// concurrent use by multiple goroutines, provided each Builder is only
// sent by one goroutine at a time.
type Dispatcher struct {
	// Config supplies interceptors, sender, codec and the other
	// process-wide settings. If nil, DefaultConfig is used.
	Config *Config

	// Handlers allows custom handler chains to be invoked when
	// designated events occur while a Builder is sent.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// DefaultDispatcher is a Dispatcher using DefaultConfig.
var DefaultDispatcher = &Dispatcher{}

// Send dispatches b asynchronously and calls done exactly once with the
// result, on a goroutine other than the caller's. The lifecycle is:
//
// 1. If b already holds a result (see request.Builder.IsSent), the
// stored result is delivered without touching the network.
//
// 2. b is finalized. A finalize error is stored in b.ResponseError and
// delivered.
//
// 3. If a request interceptor is configured, b does not avoid it, b has
// not been request-intercepted since its last Reset, and the
// interceptor wants b, control passes to the interceptor. Send does
// nothing further.
//
// 4. The sender is invoked, bracketed by the loading indicator if b has
// a loading title.
//
// 5. b's result fields are populated. A transport error is delivered
// at once. A status outside 2xx becomes a Status error.
//
// 6. If a response interceptor is configured, b does not avoid it, b
// has not been response-intercepted since its last Reset, and the
// interceptor wants the response, control passes to the interceptor.
//
// 7. The result is delivered.
//
// A nil done is allowed.
func (d *Dispatcher) Send(b *request.Builder, done Completion) {
	done = once(done)
	go d.send(b, done)
}

// Resend discards b's result and sends it again, keeping its
// interception guards. It is how an interceptor restarts a request
// after changing it; see RequestInterceptor.
func (d *Dispatcher) Resend(b *request.Builder, done Completion) {
	b.ClearResult()
	d.Send(b, done)
}

// Do sends b and waits for the result.
//
// If an interceptor takes control of b and never calls its completion,
// Do never returns.
func (d *Dispatcher) Do(b *request.Builder) ([]byte, *http.Response, error) {
	type result struct {
		data []byte
		resp *http.Response
		err  error
	}
	ch := make(chan result, 1)
	d.Send(b, func(data []byte, resp *http.Response, err error) {
		ch <- result{data, resp, err}
	})
	r := <-ch
	return r.data, r.resp, r.err
}

// DebugInfo returns b.DebugInfo with the configured filter words
// redacted.
func (d *Dispatcher) DebugInfo(b *request.Builder, excludeResponse bool) string {
	return b.DebugInfo(excludeResponse, d.config().Filter())
}

// PrintDebugInfo writes b's debug information to the configured logger
// at info level, regardless of b's logging level.
func (d *Dispatcher) PrintDebugInfo(b *request.Builder, excludeResponse bool) {
	d.config().logger().Info("request debug info", zap.String("debug", d.DebugInfo(b, excludeResponse)))
}

func (d *Dispatcher) config() *Config {
	if d.Config == nil {
		return DefaultConfig
	}
	return d.Config
}

func (d *Dispatcher) send(b *request.Builder, done Completion) {
	c := d.config()
	log := newRequestLog(c, b)

	if b.IsSent() {
		log.trace("replaying stored result")
		d.Handlers.run(ShortCircuited, b)
		d.deliver(log, b, done)
		return
	}

	desc, err := b.Finalize(request.FinalizeOptions{
		StandardHeaders: c.StandardHeaders,
		Codec:           c.codec(),
	})
	if err != nil {
		b.ResponseError = err
		log.failure("request could not be finalized", err)
		d.Handlers.run(FinalizeFailed, b)
		d.deliver(log, b, done)
		return
	}

	if ic := c.RequestInterceptor; ic != nil && !b.AvoidRequestInterceptor() && !b.RequestIntercepted() && ic.ShouldInterceptRequest(b) {
		b.MarkRequestIntercepted()
		log.event("request intercepted")
		d.Handlers.run(RequestIntercepted, b)
		ic.InterceptRequest(d, b, done)
		return
	}

	title := b.LoadingTitle()
	indicator := c.LoadingIndicator
	showing := title != "" && indicator != nil
	if showing {
		indicator.Show(title)
	}
	log.event("sending request")
	d.Handlers.run(Sending, b)
	data, resp, err := c.sender(b).Send(desc)
	if showing {
		indicator.Hide()
	}

	populate(c, b, data, resp, err)

	if err != nil || resp == nil {
		log.failure("request failed", b.ResponseError)
		d.Handlers.run(SendFailed, b)
		d.deliver(log, b, done)
		return
	}
	log.trace("response received")
	d.Handlers.run(Received, b)

	if ic := c.ResponseInterceptor; ic != nil && resp != nil && !b.AvoidResponseInterceptor() && !b.ResponseIntercepted() && ic.ShouldInterceptResponse(resp) {
		b.MarkResponseIntercepted()
		log.event("response intercepted")
		d.Handlers.run(ResponseIntercepted, b)
		ic.InterceptResponse(d, b, done)
		return
	}

	if b.ResponseError != nil {
		log.failure("request failed", b.ResponseError)
	} else {
		log.event("request succeeded")
	}
	d.deliver(log, b, done)
}

func (d *Dispatcher) deliver(log requestLog, b *request.Builder, done Completion) {
	log.trace("delivering result")
	d.Handlers.run(Delivered, b)
	done(b.ResponseData, b.Response, b.ResponseError)
}

// once returns a Completion that calls done at most once. A nil done
// becomes a no-op.
func once(done Completion) Completion {
	if done == nil {
		return func([]byte, *http.Response, error) {}
	}
	var o sync.Once
	return func(data []byte, resp *http.Response, err error) {
		o.Do(func() {
			done(data, resp, err)
		})
	}
}
