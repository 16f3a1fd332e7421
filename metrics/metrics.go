// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics for requests sent through
// a qwikhttp.Dispatcher.
//
// A Collector is a qwikhttp.Handler. Install it on the Dispatcher's
// handler group:
//
//	m := metrics.NewCollector(prometheus.DefaultRegisterer)
//	d := &qwikhttp.Dispatcher{Handlers: &qwikhttp.HandlerGroup{}}
//	m.Register(d.Handlers)
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogama/qwikhttp"
	"github.com/gogama/qwikhttp/request"
)

// Collector records request counts, latencies, in-flight requests,
// interceptions, short circuits and errors. It is safe for concurrent
// use.
//
// Request and error totals are counted on the Delivered event. An
// interceptor that completes a request by calling its done function
// directly, rather than through Dispatcher.Resend, bypasses Delivered,
// so that request is counted only as an interception. TokenSource does
// this when a token fetch or refresh fails.
type Collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	interceptions    *prometheus.CounterVec
	shortCircuits    prometheus.Counter
	errorsTotal      *prometheus.CounterVec
}

// NewCollector creates a Collector whose metrics are registered with
// registerer. A nil registerer leaves the metrics unregistered.
func NewCollector(registerer prometheus.Registerer) *Collector {
	f := promauto.With(registerer)
	return &Collector{
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qwikhttp_requests_total",
				Help: "Total number of requests delivered, by method and status code",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qwikhttp_request_duration_seconds",
				Help:    "Duration of network exchanges in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		requestsInFlight: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "qwikhttp_requests_in_flight",
				Help: "Number of network exchanges currently in flight",
			},
			[]string{"method"},
		),
		interceptions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qwikhttp_interceptions_total",
				Help: "Total number of requests taken over by an interceptor",
			},
			[]string{"stage"},
		),
		shortCircuits: f.NewCounter(
			prometheus.CounterOpts{
				Name: "qwikhttp_short_circuits_total",
				Help: "Total number of sends answered from a stored result",
			},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qwikhttp_errors_total",
				Help: "Total number of requests delivered with an error, by kind",
			},
			[]string{"kind"},
		),
	}
}

// Register installs c on every event it handles.
func (c *Collector) Register(g *qwikhttp.HandlerGroup) {
	for _, evt := range []qwikhttp.Event{
		qwikhttp.ShortCircuited,
		qwikhttp.RequestIntercepted,
		qwikhttp.Sending,
		qwikhttp.SendFailed,
		qwikhttp.Received,
		qwikhttp.ResponseIntercepted,
		qwikhttp.Delivered,
	} {
		g.PushBack(evt, c)
	}
}

type startKey struct{}

// Handle implements qwikhttp.Handler.
func (c *Collector) Handle(evt qwikhttp.Event, b *request.Builder) {
	method := methodLabel(b)
	switch evt {
	case qwikhttp.ShortCircuited:
		c.shortCircuits.Inc()
	case qwikhttp.RequestIntercepted:
		c.interceptions.WithLabelValues("request").Inc()
	case qwikhttp.ResponseIntercepted:
		c.interceptions.WithLabelValues("response").Inc()
	case qwikhttp.Sending:
		b.SetValue(startKey{}, time.Now())
		c.requestsInFlight.WithLabelValues(method).Inc()
	case qwikhttp.SendFailed, qwikhttp.Received:
		c.requestsInFlight.WithLabelValues(method).Dec()
		if start, ok := b.Value(startKey{}).(time.Time); ok {
			c.requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		}
	case qwikhttp.Delivered:
		c.requestsTotal.WithLabelValues(method, statusLabel(b)).Inc()
		if b.ResponseError != nil {
			c.errorsTotal.WithLabelValues(kindLabel(b.ResponseError)).Inc()
		}
	}
}

func methodLabel(b *request.Builder) string {
	if m := b.Method(); m != "" {
		return string(m)
	}
	return string(request.MethodGet)
}

func statusLabel(b *request.Builder) string {
	if b.ResponseStatusCode == 0 {
		return "none"
	}
	return strconv.Itoa(b.ResponseStatusCode)
}

func kindLabel(err error) string {
	var rerr *request.Error
	if errors.As(err, &rerr) {
		return rerr.Kind.String()
	}
	return "other"
}
