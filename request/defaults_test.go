// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("ParameterEncoding", func(t *testing.T) {
		pe, err := ParseParameterEncoding("FORM")
		require.NoError(t, err)
		assert.Equal(t, FormURLEncoded, pe)
		pe, err = ParseParameterEncoding("")
		require.NoError(t, err)
		assert.Equal(t, JSON, pe)
		_, err = ParseParameterEncoding("xml")
		assert.Error(t, err)
	})
	t.Run("ResponseThread", func(t *testing.T) {
		rt, err := ParseResponseThread("Background")
		require.NoError(t, err)
		assert.Equal(t, ResponseBackground, rt)
		_, err = ParseResponseThread("ui")
		assert.Error(t, err)
	})
	t.Run("LoggingLevel", func(t *testing.T) {
		for i, name := range []string{"none", "errors", "requests", "debug"} {
			l, err := ParseLoggingLevel(name)
			require.NoError(t, err)
			assert.Equal(t, LoggingLevel(i), l)
			assert.Equal(t, name, l.String())
		}
		_, err := ParseLoggingLevel("trace")
		assert.Error(t, err)
	})
	t.Run("CachePolicy", func(t *testing.T) {
		cp, err := ParseCachePolicy("reload")
		require.NoError(t, err)
		assert.Equal(t, ReloadIgnoringCacheData, cp)
		assert.Equal(t, "no-cache", cp.Directive())
		assert.Equal(t, "", UseProtocolCachePolicy.Directive())
		_, err = ParseCachePolicy("forever")
		assert.Error(t, err)
	})
}

func TestLoggingLevel_Enabled(t *testing.T) {
	assert.False(t, LogNone.Enabled(LogErrors))
	assert.False(t, LogDebug.Enabled(LogNone))
	assert.True(t, LogErrors.Enabled(LogErrors))
	assert.False(t, LogErrors.Enabled(LogRequests))
	assert.True(t, LogRequests.Enabled(LogErrors))
	assert.True(t, LogDebug.Enabled(LogRequests))
	assert.True(t, LogDebug.Enabled(LogDebug))
}
