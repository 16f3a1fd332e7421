// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains Builder, the mutable specification of one
logical HTTP call, and Descriptor, the finalized form of a Builder that
a Sender transmits.

Create a Builder with chained setters:

	b := request.NewBuilder(request.MethodPost, "https://example.com/items").
		AddHeader("Accept", "application/json").
		AddParam("name", "widget")

Body parameters are encoded as JSON by default. With the FormURLEncoded
parameter encoding they are sent as form data, provided every value is a
string; a parameter map holding any other value falls back to JSON and
switches the Builder's encoding accordingly. A raw body set with SetBody
always wins over parameters.

A Builder is dispatched by a qwikhttp.Dispatcher, which finalizes it
into a Descriptor, hands the Descriptor to a Sender, and stores the
result of the exchange in the Builder's exported result fields. A
Builder holding a result is considered sent; call Reset to send it
again.

Failures are reported as *Error values, classified by Kind. Each Kind
has a sentinel for use with errors.Is:

	if errors.Is(err, request.ErrStatus) {
		var e *request.Error
		errors.As(err, &e)
		log.Println(e.StatusCode, e.Detail)
	}
*/
package request
