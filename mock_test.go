// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/gogama/qwikhttp/request"
)

type mockSender struct {
	mock.Mock
}

func newMockSender(t *testing.T) *mockSender {
	m := &mockSender{}
	m.Test(t)
	return m
}

func (m *mockSender) Send(d *request.Descriptor) ([]byte, *http.Response, error) {
	args := m.Called(d)
	data, _ := args.Get(0).([]byte)
	resp, _ := args.Get(1).(*http.Response)
	return data, resp, args.Error(2)
}

type mockRequestInterceptor struct {
	mock.Mock
}

func newMockRequestInterceptor(t *testing.T) *mockRequestInterceptor {
	m := &mockRequestInterceptor{}
	m.Test(t)
	return m
}

func (m *mockRequestInterceptor) ShouldInterceptRequest(b *request.Builder) bool {
	args := m.Called(b)
	return args.Bool(0)
}

func (m *mockRequestInterceptor) InterceptRequest(d *Dispatcher, b *request.Builder, done Completion) {
	m.Called(d, b, done)
}

type mockResponseInterceptor struct {
	mock.Mock
}

func newMockResponseInterceptor(t *testing.T) *mockResponseInterceptor {
	m := &mockResponseInterceptor{}
	m.Test(t)
	return m
}

func (m *mockResponseInterceptor) ShouldInterceptResponse(resp *http.Response) bool {
	args := m.Called(resp)
	return args.Bool(0)
}

func (m *mockResponseInterceptor) InterceptResponse(d *Dispatcher, b *request.Builder, done Completion) {
	m.Called(d, b, done)
}

type mockObservingInterceptor struct {
	mockResponseInterceptor
}

func (m *mockObservingInterceptor) DidSend(b *request.Builder) {
	m.Called(b)
}

type mockLoadingIndicator struct {
	mock.Mock
}

func (m *mockLoadingIndicator) Show(title string) {
	m.Called(title)
}

func (m *mockLoadingIndicator) Hide() {
	m.Called()
}

// eventRecorder is a Handler that records every event it sees.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) Handle(evt Event, _ *request.Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *eventRecorder) get() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// resendWithHeader returns a mock Run function which adds a header to the
// intercepted Builder and resends it.
func resendWithHeader(key, value string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		d := args.Get(0).(*Dispatcher)
		b := args.Get(1).(*request.Builder)
		done := args.Get(2).(Completion)
		b.AddHeader(key, value)
		d.Resend(b, done)
	}
}

func response(statusCode int) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Header:     http.Header{},
	}
}

func hasHeader(key, value string) func(*request.Descriptor) bool {
	return func(d *request.Descriptor) bool {
		return d.Header.Get(key) == value
	}
}
