// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Dispatcher to observe the
// lifecycle of every request it sends.
//
// Handlers run synchronously on the goroutine running the lifecycle.
// They observe; they cannot change the outcome of the request.
type Event int

const (
	// ShortCircuited identifies the event that occurs when a Builder
	// that already holds a result is sent. The stored result is replayed
	// and no other events fire before Delivered.
	ShortCircuited Event = iota
	// FinalizeFailed identifies the event that occurs when a Builder
	// could not be finalized into a request descriptor. The Builder's
	// ResponseError holds the InvalidURL or Encoding error.
	FinalizeFailed
	// RequestIntercepted identifies the event that occurs just before
	// the request interceptor takes control of a Builder. Delivered
	// does not fire for the intercepted send; the interceptor completes
	// the call, typically by resending the Builder.
	RequestIntercepted
	// Sending identifies the event that occurs just before the sender is
	// invoked.
	Sending
	// SendFailed identifies the event that occurs after the sender
	// reported a transport error. The Builder's ResponseError holds the
	// Transport error.
	SendFailed
	// Received identifies the event that occurs after the sender
	// returned a response and the Builder's result fields have been
	// populated, including any Status error.
	Received
	// ResponseIntercepted identifies the event that occurs just before
	// the response interceptor takes control of a Builder. As with
	// RequestIntercepted, Delivered does not fire for the intercepted
	// send.
	ResponseIntercepted
	// Delivered identifies the event that occurs just before the
	// completion is invoked with the final result.
	Delivered
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"ShortCircuited",
	"FinalizeFailed",
	"RequestIntercepted",
	"Sending",
	"SendFailed",
	"Received",
	"ResponseIntercepted",
	"Delivered",
}

// Events returns a slice containing all events which can occur while a
// Dispatcher sends a Builder, in the order in which they would occur.
func Events() []Event {
	return []Event{
		ShortCircuited,
		FinalizeFailed,
		RequestIntercepted,
		Sending,
		SendFailed,
		Received,
		ResponseIntercepted,
		Delivered,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
