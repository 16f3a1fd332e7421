// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/qwikhttp/request"
)

func newItemServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":7,"name":"widget"}`)
		case http.MethodHead:
			w.Header().Set("X-Count", "1")
		default:
			_, _ = io.WriteString(w, `[{"id":7,"name":"widget"}]`)
		}
	})
	mux.HandleFunc("/items/999", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"Error":"not found"}`)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGet(t *testing.T) {
	server := newItemServer(t)

	t.Run("package", func(t *testing.T) {
		data, resp, err := Get(DefaultDispatcher, server.URL+"/items")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, `[{"id":7,"name":"widget"}]`, string(data))
	})
	t.Run("dispatcher", func(t *testing.T) {
		d := &Dispatcher{Config: NewConfig()}
		data, resp, err := d.Get(server.URL + "/items/999")
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, `{"Error":"not found"}`, string(data))
		var rerr *request.Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, 404, rerr.StatusCode)
		assert.Equal(t, map[string]interface{}{"Error": "not found"}, rerr.Detail)
	})
}

func TestHead(t *testing.T) {
	server := newItemServer(t)

	_, resp, err := Head(DefaultDispatcher, server.URL+"/items")
	require.NoError(t, err)
	assert.Equal(t, "1", resp.Header.Get("X-Count"))

	d := &Dispatcher{Config: NewConfig()}
	data, resp, err := d.Head(server.URL + "/items")
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, "1", resp.Header.Get("X-Count"))
}

func TestPost(t *testing.T) {
	server := newItemServer(t)

	t.Run("package", func(t *testing.T) {
		data, resp, err := Post(DefaultDispatcher, server.URL+"/echo", "text/plain", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.Equal(t, "text/plain", resp.Header.Get("X-Content-Type"))
	})
	t.Run("dispatcher", func(t *testing.T) {
		d := &Dispatcher{Config: NewConfig()}
		data, resp, err := d.Post(server.URL+"/items", "application/json", []byte(`{"name":"widget"}`))
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
		assert.JSONEq(t, `{"id":7,"name":"widget"}`, string(data))
	})
}

func TestPostForm(t *testing.T) {
	server := newItemServer(t)
	form := url.Values{"b": {"2"}, "a": {"1"}}

	data, resp, err := PostForm(DefaultDispatcher, server.URL+"/echo", form)
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", string(data))
	assert.Equal(t, "application/x-www-form-urlencoded", resp.Header.Get("X-Content-Type"))

	d := &Dispatcher{Config: NewConfig()}
	data, _, err = d.PostForm(server.URL+"/echo", form)
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", string(data))
}

func TestEndToEnd(t *testing.T) {
	server := newItemServer(t)
	d := &Dispatcher{Config: NewConfig()}

	created, err := AwaitResponse[item](d, d.Config.NewRequest(request.MethodPost, server.URL+"/items").
		AddParam("name", "widget"))
	require.NoError(t, err)
	assert.Equal(t, item{ID: 7, Name: "widget"}, created)

	items, err := AwaitArrayResponse[item](d, d.Config.NewRequest(request.MethodGet, server.URL+"/items"))
	require.NoError(t, err)
	assert.Equal(t, []item{{7, "widget"}}, items)

	_, err = AwaitResponse[item](d, d.Config.NewRequest(request.MethodGet, server.URL+"/items/999"))
	assert.ErrorIs(t, err, request.ErrStatus)
}
