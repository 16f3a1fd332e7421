// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/gogama/qwikhttp/codec"
	"github.com/gogama/qwikhttp/internal/logging"
	"github.com/gogama/qwikhttp/redact"
	"github.com/gogama/qwikhttp/request"
	"github.com/gogama/qwikhttp/sender"
)

// A LoadingIndicator is shown while requests with a loading title are
// in flight. Show and Hide are best-effort and may be called from any
// goroutine.
type LoadingIndicator interface {
	Show(title string)
	Hide()
}

// A Scheduler runs functions on a designated execution context, in the
// order they were scheduled.
type Scheduler interface {
	Schedule(fn func())
}

// Config holds the process-wide settings every Dispatcher invocation
// reads.
//
// Finish configuring a Config before sending requests with it. A Config
// is not synchronized, and changing it while requests are in flight is
// a data race.
type Config struct {
	// Defaults are the initial settings of Builders created with
	// NewRequest.
	request.Defaults

	// RequestInterceptor, if not nil, is offered every request before it
	// is sent.
	RequestInterceptor RequestInterceptor

	// ResponseInterceptor, if not nil, is offered every response before
	// it is delivered. If it also implements ResponseObserver, it is
	// notified of every response.
	ResponseInterceptor ResponseInterceptor

	// StandardHeaders are added to every request that does not avoid
	// them. They never replace a header set on the Builder.
	StandardHeaders map[string]string

	// FilterWords are the header and body keys whose values are redacted
	// from debug output.
	FilterWords []string

	// Sender performs the network exchange for Builders without their
	// own sender. If nil, a shared sender.HTTP is used.
	Sender request.Sender

	// Codec encodes JSON request bodies and decodes typed responses. If
	// nil, codec.JSON is used.
	Codec codec.Codec

	// LoadingIndicator, if not nil, is shown while requests with a
	// loading title are in flight.
	LoadingIndicator LoadingIndicator

	// MainQueue receives the callbacks response helpers deliver for
	// Builders whose response thread is request.ResponseMain. If nil, a
	// shared MainQueue is used.
	MainQueue Scheduler

	// Logger receives diagnostic output, gated by each Builder's
	// logging level. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultConfig is the Config used by Dispatchers without their own.
var DefaultConfig = NewConfig()

var (
	defaultSender    = &sender.HTTP{}
	defaultMainQueue = NewMainQueue()
	nopLogger        = zap.NewNop()
)

// NewConfig returns a Config with the default timeout and no
// interceptors, standard headers or filter words.
func NewConfig() *Config {
	return &Config{
		Defaults: request.Defaults{Timeout: request.DefaultTimeout},
	}
}

// SetDefaultTimeout sets the timeout of Builders created from c. A
// non-positive timeout resets it to request.DefaultTimeout.
func (c *Config) SetDefaultTimeout(d time.Duration) {
	if d <= 0 {
		d = request.DefaultTimeout
	}
	c.Timeout = d
}

// NewRequest returns a Builder initialized from c's Defaults.
func (c *Config) NewRequest(method request.Method, url string) *request.Builder {
	return request.NewBuilderWithDefaults(c.Defaults, method, url)
}

// NewRequest returns a Builder initialized from DefaultConfig.
func NewRequest(method request.Method, url string) *request.Builder {
	return DefaultConfig.NewRequest(method, url)
}

// Filter returns the redaction filter for c's FilterWords.
func (c *Config) Filter() *redact.Filter {
	return redact.New(c.FilterWords...)
}

func (c *Config) sender(b *request.Builder) request.Sender {
	if s := b.Sender(); s != nil {
		return s
	}
	if c.Sender != nil {
		return c.Sender
	}
	return defaultSender
}

func (c *Config) codec() codec.Codec {
	if c.Codec == nil {
		return codec.JSON
	}
	return c.Codec
}

func (c *Config) mainQueue() Scheduler {
	if c.MainQueue == nil {
		return defaultMainQueue
	}
	return c.MainQueue
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return nopLogger
	}
	return c.Logger
}

// envSpec is the environment variable layout read by LoadConfig.
type envSpec struct {
	Timeout           time.Duration `envconfig:"TIMEOUT" default:"40s"`
	ParameterEncoding string        `envconfig:"PARAMETER_ENCODING" default:"json"`
	ResponseThread    string        `envconfig:"RESPONSE_THREAD" default:"main"`
	CachePolicy       string        `envconfig:"CACHE_POLICY" default:"protocol"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"none"`
	LogDev            bool          `envconfig:"LOG_DEV" default:"false"`
	LoadingTitle      string        `envconfig:"LOADING_TITLE"`
	FilterWords       []string      `envconfig:"FILTER_WORDS"`
	Sender            string        `envconfig:"SENDER" default:"http"`
}

// LoadConfig returns a new Config whose defaults are read from
// environment variables prefixed with QWIKHTTP_:
//
//	QWIKHTTP_TIMEOUT             default request timeout (40s)
//	QWIKHTTP_PARAMETER_ENCODING  json | form
//	QWIKHTTP_RESPONSE_THREAD     main | background
//	QWIKHTTP_CACHE_POLICY        protocol | reload | cache-else-load | cache-only
//	QWIKHTTP_LOG_LEVEL           none | errors | requests | debug
//	QWIKHTTP_LOG_DEV             console instead of JSON log output
//	QWIKHTTP_LOADING_TITLE       default loading indicator title
//	QWIKHTTP_FILTER_WORDS        comma-separated keys to redact
//	QWIKHTTP_SENDER              http | resty
//
// Unless the log level is none, the Config gets a zap logger writing to
// stderr.
func LoadConfig() (*Config, error) {
	var env envSpec
	if err := envconfig.Process("qwikhttp", &env); err != nil {
		return nil, fmt.Errorf("qwikhttp: failed to load config: %w", err)
	}

	c := NewConfig()
	c.SetDefaultTimeout(env.Timeout)
	c.LoadingTitle = env.LoadingTitle
	c.FilterWords = env.FilterWords

	var err error
	if c.ParameterEncoding, err = request.ParseParameterEncoding(env.ParameterEncoding); err != nil {
		return nil, fmt.Errorf("qwikhttp: failed to load config: %w", err)
	}
	if c.ResponseThread, err = request.ParseResponseThread(env.ResponseThread); err != nil {
		return nil, fmt.Errorf("qwikhttp: failed to load config: %w", err)
	}
	if c.CachePolicy, err = request.ParseCachePolicy(env.CachePolicy); err != nil {
		return nil, fmt.Errorf("qwikhttp: failed to load config: %w", err)
	}
	if c.LoggingLevel, err = request.ParseLoggingLevel(env.LogLevel); err != nil {
		return nil, fmt.Errorf("qwikhttp: failed to load config: %w", err)
	}

	switch strings.ToLower(env.Sender) {
	case "", "http":
	case "resty":
		c.Sender = sender.NewResty()
	default:
		return nil, fmt.Errorf("qwikhttp: failed to load config: unknown sender %q", env.Sender)
	}

	if c.LoggingLevel != request.LogNone {
		cfg := logging.DefaultConfig()
		cfg.Development = env.LogDev
		if c.Logger, err = logging.New(cfg); err != nil {
			return nil, fmt.Errorf("qwikhttp: failed to build logger: %w", err)
		}
	}

	return c, nil
}
