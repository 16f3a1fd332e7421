// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	sentinels := map[Kind]error{
		InvalidURL: ErrInvalidURL,
		Encoding:   ErrEncoding,
		Transport:  ErrTransport,
		Status:     ErrStatus,
		Decode:     ErrDecode,
	}
	for kind, sentinel := range sentinels {
		t.Run(kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &Error{Kind: kind, Op: "op", URL: "u", StatusCode: 1, Err: errors.New("cause")})
			assert.True(t, errors.Is(err, sentinel))
			for other, s := range sentinels {
				if other != kind {
					assert.False(t, errors.Is(err, s), "%s should not match %s", kind, other)
				}
			}
		})
	}
	t.Run("non-sentinel target", func(t *testing.T) {
		e := &Error{Kind: Status, StatusCode: 404}
		assert.False(t, errors.Is(e, &Error{Kind: Status, StatusCode: 404}))
	})
}

func TestError_Unwrap(t *testing.T) {
	cause := syscall.ECONNREFUSED
	err := &Error{Kind: Transport, Err: cause}
	assert.True(t, errors.Is(err, syscall.ECONNREFUSED))
	var errno syscall.Errno
	assert.True(t, errors.As(err, &errno))
	assert.Nil(t, (&Error{Kind: Status}).Unwrap())
}

func TestError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "status with raw detail",
			err:      &Error{Kind: Status, Op: "send", URL: "https://x/items/999", StatusCode: 404, Detail: map[string]interface{}{"Error": "not found"}},
			expected: "qwikhttp: send https://x/items/999: status 404 (not found)",
		},
		{
			name:     "status with structured detail",
			err:      &Error{Kind: Status, Op: "send", URL: "u", StatusCode: 400, Detail: map[string]interface{}{"code": 12, "message": "bad"}},
			expected: "qwikhttp: send u: status 400 (code=12, message=bad)",
		},
		{
			name:     "status no detail",
			err:      &Error{Kind: Status, StatusCode: 500},
			expected: "qwikhttp: status 500",
		},
		{
			name:     "transport",
			err:      &Error{Kind: Transport, Op: "send", URL: "u", Err: errors.New("connection refused")},
			expected: "qwikhttp: send u: transport error: connection refused",
		},
		{
			name:     "invalid URL",
			err:      &Error{Kind: InvalidURL, Op: "finalize", URL: "://", Err: errors.New("missing protocol scheme")},
			expected: "qwikhttp: finalize ://: invalid URL error: missing protocol scheme",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.EqualError(t, testCase.err, testCase.expected)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "decode", Decode.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
