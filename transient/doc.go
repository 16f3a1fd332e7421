// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport errors reported by a request
// Sender as transient or non-transient. Interceptors use it to decide
// whether resending a request is worthwhile, and the dispatcher uses it
// to label transport failures in its log output.
//
// Package transient depends only on the standard library, so it brings
// no extra dependencies when imported on its own.
package transient
