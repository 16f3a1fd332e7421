// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout is the timeout used when no other timeout is
// configured, and the value a non-positive timeout resets to.
const DefaultTimeout = 40 * time.Second

// A ParameterEncoding selects how body parameters are serialized.
type ParameterEncoding int

const (
	// JSON encodes body parameters as a JSON object.
	JSON ParameterEncoding = iota
	// FormURLEncoded encodes body parameters as
	// application/x-www-form-urlencoded text. It only applies when every
	// parameter value is a string.
	FormURLEncoded
)

var encodingNames = []string{"json", "form"}

func (pe ParameterEncoding) String() string {
	if pe < 0 || int(pe) >= len(encodingNames) {
		return fmt.Sprintf("ParameterEncoding(%d)", int(pe))
	}
	return encodingNames[pe]
}

// ParseParameterEncoding parses "json" or "form" (case-insensitive).
func ParseParameterEncoding(s string) (ParameterEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return JSON, nil
	case "form", "formurlencoded", "form-urlencoded":
		return FormURLEncoded, nil
	}
	return JSON, fmt.Errorf("qwikhttp/request: unknown parameter encoding %q", s)
}

// A ResponseThread selects where response helpers deliver their
// callbacks.
type ResponseThread int

const (
	// ResponseMain delivers callbacks on the dispatcher's main queue.
	ResponseMain ResponseThread = iota
	// ResponseBackground delivers callbacks on whichever goroutine
	// completed the exchange.
	ResponseBackground
)

var threadNames = []string{"main", "background"}

func (rt ResponseThread) String() string {
	if rt < 0 || int(rt) >= len(threadNames) {
		return fmt.Sprintf("ResponseThread(%d)", int(rt))
	}
	return threadNames[rt]
}

// ParseResponseThread parses "main" or "background" (case-insensitive).
func ParseResponseThread(s string) (ResponseThread, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main", "":
		return ResponseMain, nil
	case "background":
		return ResponseBackground, nil
	}
	return ResponseMain, fmt.Errorf("qwikhttp/request: unknown response thread %q", s)
}

// A LoggingLevel gates the diagnostic output produced while a request is
// dispatched. Each level includes everything logged by the levels
// before it.
type LoggingLevel int

const (
	// LogNone suppresses all output.
	LogNone LoggingLevel = iota
	// LogErrors logs terminal failures only.
	LogErrors
	// LogRequests additionally logs dispatch and interception events.
	LogRequests
	// LogDebug additionally traces every lifecycle stage.
	LogDebug
)

var levelNames = []string{"none", "errors", "requests", "debug"}

func (l LoggingLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("LoggingLevel(%d)", int(l))
	}
	return levelNames[l]
}

// Enabled reports whether output at level x should be produced when the
// configured level is l.
func (l LoggingLevel) Enabled(x LoggingLevel) bool {
	return x != LogNone && l >= x
}

// ParseLoggingLevel parses one of "none", "errors", "requests" or
// "debug" (case-insensitive).
func ParseLoggingLevel(s string) (LoggingLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LogNone, nil
	}
	for i, name := range levelNames {
		if s == name {
			return LoggingLevel(i), nil
		}
	}
	return LogNone, fmt.Errorf("qwikhttp/request: unknown logging level %q", s)
}

// A CachePolicy describes how a request may use cached responses. The
// policy is advisory: senders translate it into a Cache-Control request
// directive and leave caching itself to the transport.
type CachePolicy int

const (
	// UseProtocolCachePolicy leaves caching to the protocol defaults and
	// adds no directive.
	UseProtocolCachePolicy CachePolicy = iota
	// ReloadIgnoringCacheData requires a fresh response.
	ReloadIgnoringCacheData
	// ReturnCacheDataElseLoad accepts a stale cached response.
	ReturnCacheDataElseLoad
	// ReturnCacheDataDontLoad accepts only a cached response.
	ReturnCacheDataDontLoad
)

var policyNames = []string{"protocol", "reload", "cache-else-load", "cache-only"}

var policyDirectives = []string{"", "no-cache", "max-stale", "only-if-cached"}

func (cp CachePolicy) String() string {
	if cp < 0 || int(cp) >= len(policyNames) {
		return fmt.Sprintf("CachePolicy(%d)", int(cp))
	}
	return policyNames[cp]
}

// Directive returns the Cache-Control request directive for the policy,
// or the empty string if the policy adds none.
func (cp CachePolicy) Directive() string {
	if cp < 0 || int(cp) >= len(policyDirectives) {
		return ""
	}
	return policyDirectives[cp]
}

// ParseCachePolicy parses a policy name as returned by String.
func ParseCachePolicy(s string) (CachePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UseProtocolCachePolicy, nil
	}
	for i, name := range policyNames {
		if s == name {
			return CachePolicy(i), nil
		}
	}
	return UseProtocolCachePolicy, fmt.Errorf("qwikhttp/request: unknown cache policy %q", s)
}

// Defaults holds the per-request settings a new Builder starts from.
type Defaults struct {
	// Timeout is the per-request timeout. A non-positive value means
	// DefaultTimeout.
	Timeout time.Duration

	// CachePolicy is the initial cache policy.
	CachePolicy CachePolicy

	// ParameterEncoding is the initial body parameter encoding.
	ParameterEncoding ParameterEncoding

	// LoadingTitle, if not empty, is shown on the loading indicator
	// while the request is in flight.
	LoadingTitle string

	// ResponseThread selects where response helpers deliver callbacks.
	ResponseThread ResponseThread

	// LoggingLevel gates diagnostic output.
	LoggingLevel LoggingLevel
}

func (d Defaults) timeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}
