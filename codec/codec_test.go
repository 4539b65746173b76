package codec_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
)

func TestDecodeJSON_Shapes(t *testing.T) {
	v, err := codec.DecodeJSON([]byte(`{"id": 1, "ratio": 2.5, "tags": ["a", null], "ok": true}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":    int64(1),
		"ratio": 2.5,
		"tags":  []any{"a", nil},
		"ok":    true,
	}, v)
}

func TestDecodeJSON_NumberModes(t *testing.T) {
	v, err := codec.DecodeJSON([]byte(`[1, 2.5]`), codec.WithNumberMode(itseasy.NumberJSONNumber))
	require.NoError(t, err)
	assert.Equal(t, []any{json.Number("1"), json.Number("2.5")}, v)

	v, err = codec.DecodeJSON([]byte(`[1]`), codec.WithNumberMode(itseasy.NumberFloat64))
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, v)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	for _, in := range []string{`{"a":`, ``, `[1] [2]`} {
		_, err := codec.DecodeJSON([]byte(in))
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, itseasy.ErrDecodeFailure), in)
	}
}

func TestDecodeJSON_MaxDepth(t *testing.T) {
	in := strings.Repeat("[", 5) + strings.Repeat("]", 5)
	_, err := codec.DecodeJSON([]byte(in), codec.WithMaxDepth(4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, itseasy.ErrDecodeFailure))

	_, err = codec.DecodeJSON([]byte(in), codec.WithMaxDepth(5))
	assert.NoError(t, err)
}

func TestDecodeJSON_DuplicateKeys(t *testing.T) {
	_, err := codec.DecodeJSON([]byte(`{"a":1,"a":2}`))
	iss, ok := itseasy.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "/a", iss[0].Path)

	v, err := codec.DecodeJSON([]byte(`{"a":1,"a":2}`), codec.WithDuplicateKeys(itseasy.Warn))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(2)}, v)
}

func TestEncodeJSON_SortedAndIndented(t *testing.T) {
	b, err := codec.EncodeJSON(map[string]any{"b": 1, "a": []any{"x"}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x"],"b":1}`, string(b))

	b, err = codec.EncodeJSON(map[string]any{"a": 1}, codec.WithIndent("  "))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}

func TestEncodeJSON_Failures(t *testing.T) {
	cyclic := map[string]any{}
	cyclic["self"] = cyclic
	_, err := codec.EncodeJSON(cyclic)
	assert.True(t, errors.Is(err, itseasy.ErrEncodeFailure))

	_, err = codec.EncodeJSON(map[string]any{"fn": func() {}})
	assert.True(t, errors.Is(err, itseasy.ErrEncodeFailure))

	_, err = codec.EncodeJSON([]any{[]any{[]any{}}}, codec.WithMaxDepth(2))
	assert.True(t, errors.Is(err, itseasy.ErrEncodeFailure))
}

func TestYAML_RoundTrip(t *testing.T) {
	in := map[string]any{"name": "Tom", "ids": []any{int64(1), int64(2)}, "nested": map[string]any{"ok": true}}
	b, err := codec.EncodeYAML(in)
	require.NoError(t, err)
	out, err := codec.DecodeYAML(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestYAML_Failures(t *testing.T) {
	_, err := codec.DecodeYAML([]byte("a: [1, 2"))
	assert.True(t, errors.Is(err, itseasy.ErrDecodeFailure))

	_, err = codec.EncodeYAML(map[string]any{"ch": make(chan int)})
	assert.True(t, errors.Is(err, itseasy.ErrEncodeFailure))
}

func TestParseFormat(t *testing.T) {
	f, err := codec.ParseFormat("y")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatYAML, f)
	assert.Equal(t, "json", codec.FormatJSON.String())
	_, err = codec.ParseFormat("toml")
	assert.Error(t, err)
}
