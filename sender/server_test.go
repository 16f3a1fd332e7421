// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sender

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gogama/qwikhttp/codec"
	"github.com/gogama/qwikhttp/request"
)

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var httpsServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var http2Server = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var servers = []*httptest.Server{httpServer, httpsServer, http2Server}

func TestMain(m *testing.M) {
	httpServer.Start()
	httpsServer.StartTLS()
	http2Server.EnableHTTP2 = true
	http2Server.StartTLS()
	code := m.Run()
	httpServer.Close()
	httpsServer.Close()
	http2Server.Close()
	os.Exit(code)
}

func serverName(server *httptest.Server) string {
	switch server {
	case httpServer:
		return "http"
	case httpsServer:
		return "https"
	case http2Server:
		return "http2"
	default:
		panic("unknown server")
	}
}

// serverInstruction tells serverHandler how to respond. It travels in
// the query string so that it works for every method.
type serverInstruction struct {
	StatusCode  int
	HeaderPause time.Duration
	BodyPause   time.Duration
	Body        string
	SetCookie   string
}

func (i serverInstruction) url(server *httptest.Server) string {
	b := request.NewBuilder(request.MethodGet, server.URL+"/test")
	if i.StatusCode != 0 {
		b.AddURLParam("status", strconv.Itoa(i.StatusCode))
	}
	if i.HeaderPause > 0 {
		b.AddURLParam("headerPause", i.HeaderPause.String())
	}
	if i.BodyPause > 0 {
		b.AddURLParam("bodyPause", i.BodyPause.String())
	}
	if i.Body != "" {
		b.AddURLParam("body", i.Body)
	}
	if i.SetCookie != "" {
		b.AddURLParam("setCookie", i.SetCookie)
	}
	return b.URL()
}

// echo is the body serverHandler returns when no body is instructed.
type echo struct {
	Method string      `json:"method"`
	Header http.Header `json:"header"`
	Body   string      `json:"body"`
}

func serverHandler(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	status := http.StatusOK
	if s := q.Get("status"); s != "" {
		var err error
		if status, err = strconv.Atoi(s); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "bad status: "+err.Error())
			return
		}
	}

	body := []byte(q.Get("body"))
	if len(body) == 0 {
		reqBody, _ := io.ReadAll(req.Body)
		var err error
		body, err = codec.JSON.Marshal(echo{
			Method: req.Method,
			Header: req.Header,
			Body:   string(reqBody),
		})
		if err != nil {
			panic(err)
		}
	}

	f, ok := w.(http.Flusher)
	if !ok {
		panic("w does not implement Flusher")
	}

	if c := q.Get("setCookie"); c != "" {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: c, Path: "/"})
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	pause(q.Get("headerPause"))
	w.WriteHeader(status)
	f.Flush()
	if len(body) > 1 {
		_, _ = w.Write(body[:1])
		f.Flush()
		pause(q.Get("bodyPause"))
		body = body[1:]
	}
	_, _ = w.Write(body)
}

func pause(s string) {
	if s == "" {
		return
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	time.Sleep(d)
}
