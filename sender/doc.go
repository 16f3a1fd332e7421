// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package sender provides the request.Sender implementations used to
perform the network exchange for a dispatched request.

HTTP sends through any HTTPDoer, typically an *http.Client. Its zero
value uses a shared client with a cookie jar, so cookies set by one
response are replayed on later requests to the same site:

	d := &qwikhttp.Dispatcher{Config: qwikhttp.NewConfig()}
	d.Config.Sender = &sender.HTTP{Doer: myClient}

Resty sends through a go-resty client, which brings its own middleware,
default headers and transport settings.

Both senders bound each exchange, including reading the response body,
by the descriptor's timeout, and both report transport failures as
*url.Error values.
*/
package sender
