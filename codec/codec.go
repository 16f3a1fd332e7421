// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package codec defines the Codec capability used to turn domain
// objects into request bodies and response bodies back into typed
// values, together with the default JSON codec.
package codec

import (
	"github.com/bytedance/sonic"
)

// A Codec serializes domain objects to bytes and deserializes bytes
// into domain objects.
//
// Implementations must be safe for concurrent use by multiple
// goroutines, and must round-trip: decoding the output of Marshal(v)
// into a value of the same type as v yields a value equal to v.
type Codec interface {
	// Marshal returns the encoding of v.
	Marshal(v interface{}) ([]byte, error)
	// Unmarshal parses data and stores the result in the value pointed
	// to by v.
	Unmarshal(data []byte, v interface{}) error
	// ContentType returns the media type tag for bodies produced by
	// Marshal, for example "application/json".
	ContentType() string
}

// JSONContentType is the content type of bodies produced by JSON.
const JSONContentType = "application/json"

// JSON is the default codec. It is backed by sonic configured to behave
// like the standard library's encoding/json (sorted map keys, HTML
// escaping, and strict UTF-8 validation).
var JSON Codec = NewJSON(sonic.ConfigStd)

// NewJSON returns a JSON codec backed by the given sonic API. Use it to
// trade the standard-library compatible defaults of JSON for one of
// sonic's faster configurations.
func NewJSON(api sonic.API) Codec {
	if api == nil {
		panic("qwikhttp/codec: nil sonic API")
	}
	return jsonCodec{api: api}
}

type jsonCodec struct {
	api sonic.API
}

func (c jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return c.api.Marshal(v)
}

func (c jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return c.api.Unmarshal(data, v)
}

func (c jsonCodec) ContentType() string {
	return JSONContentType
}

// Decode unmarshals data into a new value of type T using c.
func Decode[T any](c Codec, data []byte) (T, error) {
	var t T
	err := c.Unmarshal(data, &t)
	return t, err
}

// DecodeArray unmarshals data, which must hold a sequence, into a new
// slice of T using c.
func DecodeArray[T any](c Codec, data []byte) ([]T, error) {
	var ts []T
	if err := c.Unmarshal(data, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// ToMap converts a domain object into a flat parameter map by encoding
// it with c and decoding the result as an object. It fails if v does
// not encode to an object.
func ToMap(c Codec, v interface{}) (map[string]interface{}, error) {
	b, err := c.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err = c.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
