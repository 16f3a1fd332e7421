// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"io"
)

func contextWith(key, value interface{}) context.Context {
	return context.WithValue(context.Background(), key, value)
}

func readAll(r io.Reader) (string, error) {
	p, err := io.ReadAll(r)
	return string(p), err
}
