// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sender

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/gogama/qwikhttp/request"
)

// Resty is a request.Sender backed by a go-resty client.
//
// Headers configured on the client are sent along with the descriptor's
// headers; where both set the same header, the descriptor wins. The
// client's own retry settings are left alone, so a client configured to
// retry will retry within a single Send.
type Resty struct {
	// Client is the resty client. If nil, a new client is created on
	// first use.
	Client *resty.Client

	once sync.Once
}

// NewResty returns a Resty sender wrapping a new resty client.
func NewResty() *Resty {
	return &Resty{Client: resty.New()}
}

// Send implements request.Sender.
func (s *Resty) Send(d *request.Descriptor) ([]byte, *http.Response, error) {
	s.once.Do(func() {
		if s.Client == nil {
			s.Client = resty.New()
		}
	})

	ctx, cancel := timeoutContext(d)
	defer cancel()

	r := s.Client.R().
		SetContext(ctx).
		SetHeaderMultiValues(d.Header)
	if len(d.Body) > 0 {
		r.SetBody(d.Body)
	}

	resp, err := r.Execute(d.Method, d.URL.String())
	if err != nil {
		var body []byte
		var raw *http.Response
		if resp != nil {
			body = resp.Body()
			raw = resp.RawResponse
		}
		return body, raw, urlErrorWrap(d, err)
	}
	if resp.RawResponse == nil {
		return nil, nil, urlErrorWrap(d, errors.New("no response"))
	}
	return resp.Body(), resp.RawResponse, nil
}
