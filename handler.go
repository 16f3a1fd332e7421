// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"github.com/gogama/qwikhttp/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Dispatcher.
//
// Install all handlers before the Dispatcher is used. A HandlerGroup is
// not safe for concurrent modification while requests are in flight.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("qwikhttp: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

// PushBackAll adds h to the back of every event's handler chain.
func (g *HandlerGroup) PushBackAll(h Handler) {
	for _, evt := range Events() {
		g.PushBack(evt, h)
	}
}

func (g *HandlerGroup) run(evt Event, b *request.Builder) {
	if g == nil {
		return
	}
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, b)
	}
}

func run(chain []Handler, evt Event, b *request.Builder) {
	for _, h := range chain {
		h.Handle(evt, b)
	}
}

// A Handler handles the occurrence of an event while a Dispatcher sends
// a Builder.
type Handler interface {
	Handle(Event, *request.Builder)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Builder)

// Handle calls f(evt, b).
func (f HandlerFunc) Handle(evt Event, b *request.Builder) {
	f(evt, b)
}
