// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flat struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type nested struct {
	Title string            `json:"title"`
	Owner flat              `json:"owner"`
	Tags  []string          `json:"tags"`
	Attrs map[string]string `json:"attrs"`
}

type empty struct{}

func TestJSON_RoundTrip(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		in := flat{ID: 7, Name: "widget"}
		b, err := JSON.Marshal(in)
		require.NoError(t, err)
		out, err := Decode[flat](JSON, b)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
	t.Run("nested", func(t *testing.T) {
		in := nested{
			Title: "crate",
			Owner: flat{ID: 1, Name: "ham"},
			Tags:  []string{"a", "b"},
			Attrs: map[string]string{"colour": "red"},
		}
		b, err := JSON.Marshal(in)
		require.NoError(t, err)
		out, err := Decode[nested](JSON, b)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
	t.Run("empty", func(t *testing.T) {
		in := empty{}
		b, err := JSON.Marshal(in)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(b))
		out, err := Decode[empty](JSON, b)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestDecodeArray(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		out, err := DecodeArray[flat](JSON, []byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`))
		require.NoError(t, err)
		assert.Equal(t, []flat{{1, "a"}, {2, "b"}}, out)
	})
	t.Run("not a sequence", func(t *testing.T) {
		out, err := DecodeArray[flat](JSON, []byte(`{"id":1}`))
		assert.Error(t, err)
		assert.Nil(t, out)
	})
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode[flat](JSON, []byte(`not json`))
	assert.Error(t, err)
}

func TestToMap(t *testing.T) {
	m, err := ToMap(JSON, flat{ID: 3, Name: "eggs"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": float64(3), "name": "eggs"}, m)

	_, err = ToMap(JSON, []int{1, 2})
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	assert.Panics(t, func() { NewJSON(nil) })
	c := NewJSON(sonic.ConfigFastest)
	assert.Equal(t, JSONContentType, c.ContentType())
	b, err := c.Marshal(flat{ID: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":""}`, string(b))
}
