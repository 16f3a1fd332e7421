// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/gogama/qwikhttp/codec"
	"github.com/gogama/qwikhttp/request"
)

var errNotUTF8 = errors.New("response body is not valid UTF-8")

// GetResponse sends b and decodes a successful response body into a T
// using the configured codec. The handler receives either the decoded
// value and a nil error, or the zero T and the error: the terminal
// error of the request, or a Decode error if the body could not be
// decoded.
//
// The handler runs on the main queue if b's response thread is
// request.ResponseMain, and on the goroutine that completed the request
// otherwise. A nil handler is allowed.
func GetResponse[T any](d *Dispatcher, b *request.Builder, h func(T, error, *request.Builder)) {
	get(d, b, decodeValue[T], h)
}

// GetArrayResponse is like GetResponse, but decodes a JSON array into a
// []T.
func GetArrayResponse[T any](d *Dispatcher, b *request.Builder, h func([]T, error, *request.Builder)) {
	get(d, b, decodeArray[T], h)
}

// GetStringResponse is like GetResponse, but delivers the response body
// as a string. A body that is not valid UTF-8 is a Decode error.
func GetStringResponse(d *Dispatcher, b *request.Builder, h func(string, error, *request.Builder)) {
	get(d, b, decodeString, h)
}

// GetDataResponse is like GetResponse, but delivers the raw response
// body.
func GetDataResponse(d *Dispatcher, b *request.Builder, h func([]byte, error, *request.Builder)) {
	get(d, b, decodeData, h)
}

// GetDictionaryResponse is like GetResponse, but decodes a JSON object
// into an untyped map.
func GetDictionaryResponse(d *Dispatcher, b *request.Builder, h func(map[string]interface{}, error, *request.Builder)) {
	get(d, b, decodeValue[map[string]interface{}], h)
}

// SendBool sends b and reports to h whether the request succeeded, that
// is whether it completed with a 2xx status and no error. Thread
// selection follows GetResponse.
func SendBool(d *Dispatcher, b *request.Builder, h func(bool, *request.Builder)) {
	d.Send(b, func(_ []byte, _ *http.Response, err error) {
		if h == nil {
			return
		}
		d.determineThread(b, func() {
			h(err == nil, b)
		})
	})
}

// AwaitResponse sends b and waits for the decoded result. It never
// involves the main queue, so it may be called from a function running
// on it.
func AwaitResponse[T any](d *Dispatcher, b *request.Builder) (T, error) {
	return await(d, b, decodeValue[T])
}

// AwaitArrayResponse is the waiting form of GetArrayResponse.
func AwaitArrayResponse[T any](d *Dispatcher, b *request.Builder) ([]T, error) {
	return await(d, b, decodeArray[T])
}

// AwaitStringResponse is the waiting form of GetStringResponse.
func AwaitStringResponse(d *Dispatcher, b *request.Builder) (string, error) {
	return await(d, b, decodeString)
}

// AwaitDataResponse is the waiting form of GetDataResponse.
func AwaitDataResponse(d *Dispatcher, b *request.Builder) ([]byte, error) {
	return await(d, b, decodeData)
}

// AwaitDictionaryResponse is the waiting form of GetDictionaryResponse.
func AwaitDictionaryResponse(d *Dispatcher, b *request.Builder) (map[string]interface{}, error) {
	return await(d, b, decodeValue[map[string]interface{}])
}

// AwaitBool is the waiting form of SendBool.
func AwaitBool(d *Dispatcher, b *request.Builder) bool {
	_, _, err := d.Do(b)
	return err == nil
}

func get[T any](d *Dispatcher, b *request.Builder, dec func(codec.Codec, *request.Builder, []byte) (T, error), h func(T, error, *request.Builder)) {
	d.Send(b, func(data []byte, _ *http.Response, err error) {
		if h == nil {
			return
		}
		v, err := decodeResult(d, b, data, err, dec)
		d.determineThread(b, func() {
			h(v, err, b)
		})
	})
}

func await[T any](d *Dispatcher, b *request.Builder, dec func(codec.Codec, *request.Builder, []byte) (T, error)) (T, error) {
	data, _, err := d.Do(b)
	return decodeResult(d, b, data, err, dec)
}

func decodeResult[T any](d *Dispatcher, b *request.Builder, data []byte, err error, dec func(codec.Codec, *request.Builder, []byte) (T, error)) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	c := d.config()
	v, err := dec(c.codec(), b, data)
	if err != nil {
		err = &request.Error{
			Kind:       request.Decode,
			Op:         "decode",
			URL:        b.URL(),
			StatusCode: b.ResponseStatusCode,
			Err:        err,
		}
		newRequestLog(c, b).failure("response could not be decoded", err,
			zap.String("debug", b.DebugInfo(false, c.Filter())))
		return zero, err
	}
	return v, nil
}

// determineThread runs fn on the main queue if b's response thread is
// request.ResponseMain, and synchronously otherwise.
func (d *Dispatcher) determineThread(b *request.Builder, fn func()) {
	if b.ResponseThread() == request.ResponseMain {
		d.config().mainQueue().Schedule(fn)
		return
	}
	fn()
}

func decodeValue[T any](c codec.Codec, _ *request.Builder, data []byte) (T, error) {
	return codec.Decode[T](c, data)
}

func decodeArray[T any](c codec.Codec, _ *request.Builder, data []byte) ([]T, error) {
	return codec.DecodeArray[T](c, data)
}

func decodeString(_ codec.Codec, b *request.Builder, data []byte) (string, error) {
	if b.ResponseString != nil {
		return *b.ResponseString, nil
	}
	if data == nil {
		return "", nil
	}
	return "", errNotUTF8
}

func decodeData(_ codec.Codec, _ *request.Builder, data []byte) ([]byte, error) {
	return data, nil
}
