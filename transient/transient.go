// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// A Category is the transience category of a transport error, as
// reported by function Categorize.
//
// The category Not means the error is not transient from the
// perspective of completing an HTTP exchange, or in other words that
// resending the same request is very unlikely to succeed. All other
// categories indicate that an interceptor which chooses to resend the
// request has some prospect of success.
//
// The dispatcher never resends on its own. Categories exist so that
// interceptors and log output can tell a flaky network apart from a
// broken request.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout, including the per-request
	// timeout configured on the request builder.
	//
	// Function Categorize returns Timeout if the error or any of its
	// wrapped causes has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
	// NameNotResolved indicates the host name in the request URL could
	// not be resolved. It is reported for temporary DNS failures only;
	// a definitive "no such host" answer is Not.
	NameNotResolved
	// Canceled indicates the exchange was abandoned because its context
	// was canceled. It is only reported when the cancellation did not
	// also report a timeout.
	Canceled
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"NameNotResolved",
	"Canceled",
}

// String returns the name of the category.
func (cat Category) String() string {
	if cat < 0 || int(cat) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[cat]
}

// Categorize returns the transience category of the given error. All
// non-nil transient errors result in a category other than Not. A nil
// error, and an error that is not transient, both produce Not.
//
// Categorize looks at wrapped cause errors contained within err, not
// just err itself. It never checks Temporary(), as the semantics of
// Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return NameNotResolved
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	return Not
}

// Is reports whether err is transient, that is whether its category is
// anything other than Not.
func Is(err error) bool {
	return Categorize(err) != Not
}

type hasTimeout interface {
	Timeout() bool
}
