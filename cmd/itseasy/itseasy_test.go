package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	v, err := codec.DecodeJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestGetDoc(t *testing.T) {
	doc := decode(t, `{"user":{"tags":["a","b"],"name":"Tom"}}`)
	cfg := &GetConfig{MainConfig: &MainConfig{}, Sep: "."}

	var buf bytes.Buffer
	require.NoError(t, cfg.getDoc(&buf, doc, "user.tags[1]"))
	assert.Equal(t, "\"b\"\n", buf.String())

	buf.Reset()
	require.NoError(t, cfg.getDoc(&buf, doc, "user.missing"))
	assert.Equal(t, "null\n", buf.String())

	buf.Reset()
	cfg.Default = `{"x":1}`
	require.NoError(t, cfg.getDoc(&buf, doc, "user.missing"))
	assert.Equal(t, "{\"x\":1}\n", buf.String())

	buf.Reset()
	cfg.Default = "none"
	require.NoError(t, cfg.getDoc(&buf, doc, "user.missing"))
	assert.Equal(t, "\"none\"\n", buf.String())
}

func TestGetDoc_StrictAndSeparator(t *testing.T) {
	doc := decode(t, `{"a":{"b":2}}`)
	cfg := &GetConfig{MainConfig: &MainConfig{}, Strict: true, Sep: "/"}

	var buf bytes.Buffer
	require.NoError(t, cfg.getDoc(&buf, doc, "a/b"))
	assert.Equal(t, "2\n", buf.String())

	err := cfg.getDoc(&buf, doc, "a/c")
	assert.True(t, errors.Is(err, itseasy.ErrPathNotFound))
}

func TestWriteDoc_Formats(t *testing.T) {
	doc := map[string]any{"name": "Tom"}

	var buf bytes.Buffer
	f := outYAML
	cfg := &MainConfig{OutFormat: &f}
	require.NoError(t, cfg.writeDoc(&buf, doc))
	assert.Equal(t, "name: Tom\n", buf.String())

	buf.Reset()
	f = outDump
	require.NoError(t, cfg.writeDoc(&buf, doc))
	assert.Contains(t, buf.String(), "Tom")

	buf.Reset()
	cfg = &MainConfig{Indent: true}
	require.NoError(t, cfg.writeDoc(&buf, doc))
	assert.Equal(t, "{\n  \"name\": \"Tom\"\n}\n", buf.String())
}

func TestPatchDoc(t *testing.T) {
	doc := decode(t, `{"a":1,"b":[1,2]}`)

	var buf bytes.Buffer
	cfg := &PatchConfig{MainConfig: &MainConfig{}}
	require.NoError(t, cfg.patchDoc(&buf, doc, []byte(`[{"op":"replace","path":"/a","value":5},{"op":"remove","path":"/b/0"}]`)))
	assert.Equal(t, "{\"a\":5,\"b\":[2]}\n", buf.String())

	buf.Reset()
	cfg.Merge = true
	require.NoError(t, cfg.patchDoc(&buf, doc, []byte(`{"b":null,"c":true}`)))
	assert.Equal(t, "{\"a\":1,\"c\":true}\n", buf.String())

	cfg.Merge = false
	assert.Error(t, cfg.patchDoc(&buf, doc, []byte(`{"op":"add"}`)))
}

func TestParseOutFormat(t *testing.T) {
	for in, want := range map[string]outFormat{"json": outJSON, "y": outYAML, "dump": outDump, "D": outDump} {
		got, err := parseOutFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseOutFormat("xml")
	assert.Error(t, err)
}

func TestInputsDefaultsToStdin(t *testing.T) {
	assert.Equal(t, []string{"-"}, inputs(nil))
	assert.Equal(t, []string{"a.json"}, inputs([]string{"a.json"}))
}

func TestCloseOut_ReportsErrorOnce(t *testing.T) {
	calls := 0
	cfg := &MainConfig{Out: "out.json", CloseOut: func() error {
		calls++
		return errors.New("disk full")
	}}
	err := cfg.closeOut()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out.json")
	assert.Contains(t, err.Error(), "disk full")

	assert.NoError(t, cfg.closeOut())
	assert.Equal(t, 1, calls)

	assert.NoError(t, (&MainConfig{}).closeOut())
}
