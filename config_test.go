// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/qwikhttp/codec"
	"github.com/gogama/qwikhttp/request"
	"github.com/gogama/qwikhttp/sender"
)

func TestNewConfig(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, request.DefaultTimeout, c.Timeout)
	assert.Nil(t, c.RequestInterceptor)
	assert.Nil(t, c.ResponseInterceptor)
	assert.Same(t, defaultSender, c.sender(request.NewBuilder(request.MethodGet, itemsURL)))
	assert.Equal(t, codec.JSON, c.codec())
	assert.Same(t, defaultMainQueue, c.mainQueue())
	assert.Same(t, nopLogger, c.logger())
	assert.False(t, c.Filter().Enabled())
}

func TestConfig_SetDefaultTimeout(t *testing.T) {
	c := NewConfig()
	c.SetDefaultTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.NewRequest(request.MethodGet, itemsURL).Timeout())
	c.SetDefaultTimeout(0)
	assert.Equal(t, request.DefaultTimeout, c.Timeout)
	c.SetDefaultTimeout(-time.Second)
	assert.Equal(t, request.DefaultTimeout, c.NewRequest(request.MethodGet, itemsURL).Timeout())
}

func TestConfig_NewRequest(t *testing.T) {
	c := NewConfig()
	c.ParameterEncoding = request.FormURLEncoded
	c.ResponseThread = request.ResponseBackground
	c.LoadingTitle = "Working"
	c.LoggingLevel = request.LogErrors
	c.CachePolicy = request.ReturnCacheDataElseLoad

	b := c.NewRequest(request.MethodPatch, itemsURL)

	assert.Equal(t, request.MethodPatch, b.Method())
	assert.Equal(t, itemsURL, b.URL())
	assert.Equal(t, request.FormURLEncoded, b.ParameterEncoding())
	assert.Equal(t, request.ResponseBackground, b.ResponseThread())
	assert.Equal(t, "Working", b.LoadingTitle())
	assert.Equal(t, request.LogErrors, b.LoggingLevel())
	assert.Equal(t, request.ReturnCacheDataElseLoad, b.CachePolicy())

	c.LoadingTitle = "Changed"
	assert.Equal(t, "Working", b.LoadingTitle())
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 40*time.Second, c.Timeout)
		assert.Equal(t, request.JSON, c.ParameterEncoding)
		assert.Equal(t, request.ResponseMain, c.ResponseThread)
		assert.Equal(t, request.UseProtocolCachePolicy, c.CachePolicy)
		assert.Equal(t, request.LogNone, c.LoggingLevel)
		assert.Nil(t, c.Logger)
		assert.Empty(t, c.FilterWords)
		assert.Nil(t, c.Sender)
	})
	t.Run("resty sender", func(t *testing.T) {
		t.Setenv("QWIKHTTP_SENDER", "resty")
		c, err := LoadConfig()
		require.NoError(t, err)
		assert.IsType(t, &sender.Resty{}, c.Sender)
	})
	t.Run("environment", func(t *testing.T) {
		t.Setenv("QWIKHTTP_TIMEOUT", "3s")
		t.Setenv("QWIKHTTP_PARAMETER_ENCODING", "form")
		t.Setenv("QWIKHTTP_RESPONSE_THREAD", "background")
		t.Setenv("QWIKHTTP_CACHE_POLICY", "reload")
		t.Setenv("QWIKHTTP_LOG_LEVEL", "requests")
		t.Setenv("QWIKHTTP_LOADING_TITLE", "Please wait")
		t.Setenv("QWIKHTTP_FILTER_WORDS", "password,token")

		c, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, c.Timeout)
		assert.Equal(t, request.FormURLEncoded, c.ParameterEncoding)
		assert.Equal(t, request.ResponseBackground, c.ResponseThread)
		assert.Equal(t, request.ReloadIgnoringCacheData, c.CachePolicy)
		assert.Equal(t, request.LogRequests, c.LoggingLevel)
		assert.Equal(t, "Please wait", c.LoadingTitle)
		assert.Equal(t, []string{"password", "token"}, c.FilterWords)
		assert.NotNil(t, c.Logger)
		assert.True(t, c.Filter().Match("Password"))
	})
	t.Run("non-positive timeout", func(t *testing.T) {
		t.Setenv("QWIKHTTP_TIMEOUT", "0s")
		c, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, request.DefaultTimeout, c.Timeout)
	})
	for _, name := range []string{
		"QWIKHTTP_TIMEOUT",
		"QWIKHTTP_PARAMETER_ENCODING",
		"QWIKHTTP_RESPONSE_THREAD",
		"QWIKHTTP_CACHE_POLICY",
		"QWIKHTTP_LOG_LEVEL",
		"QWIKHTTP_LOG_DEV",
		"QWIKHTTP_SENDER",
	} {
		t.Run("invalid "+name, func(t *testing.T) {
			t.Setenv(name, "bogus")
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
