package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/model"
)

func TestParameterCollectionModel(t *testing.T) {
	p := model.NewParameterSet()
	require.NoError(t, p.SetParameter("test", "testvalue"))
	require.NoError(t, p.Append([]any{"new key", "New Value"}))
	require.NoError(t, p.Append(map[string]any{"key": "MyKey", "value": "MyValue"}))

	assert.True(t, p.HasParameter("MyKey"))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []string{"test", "new key", "MyKey"}, p.Keys())
}

func TestParameterSet_ScalarsOnly(t *testing.T) {
	p := model.NewParameterSet()
	for i, v := range []any{nil, true, 42, "x", 3.14, int64(-1), uint8(2), json.Number("7")} {
		assert.NoError(t, p.SetParameter(string(rune('a'+i)), v), "%v", v)
	}

	for _, v := range []any{map[string]any{}, []any{1}, &Basic{}, struct{}{}} {
		err := p.SetParameter("bad", v)
		assert.True(t, errors.Is(err, itseasy.ErrValue), "%T", v)
	}
	assert.False(t, p.HasParameter("bad"))

	// nil is stored, and still counts as set
	v, ok := p.Parameter("a")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestParameterSet_AppendShapes(t *testing.T) {
	p := model.NewParameterSet()
	bad := []any{
		"scalar",
		nil,
		[]any{"only-one"},
		[]any{"a", "b", "c"},
		[]any{1, "key not a string"},
		map[string]any{"key": "k"},
		map[string]any{"name": "k", "value": "v"},
		map[string]any{"key": 1, "value": "v"},
		[]any{"k", map[string]any{}},
	}
	for _, item := range bad {
		err := p.Append(item)
		assert.True(t, errors.Is(err, itseasy.ErrValue), "%v", item)
	}
	assert.Equal(t, 0, p.Len())

	require.NoError(t, p.Append([2]any{"arr", 1}))
	require.NoError(t, p.Append(map[string]any{"key": "nil", "value": nil}))
	assert.Equal(t, []string{"arr", "nil"}, p.Keys())
}

func TestParameterSet_Populate(t *testing.T) {
	p := model.NewParameterSet()
	require.NoError(t, p.Populate(nil))
	require.NoError(t, p.Populate(map[string]any{"b": 2, "a": 1}))
	assert.Equal(t, []string{"a", "b"}, p.Keys())

	require.NoError(t, p.Populate(`[["c", 3], {"key": "d", "value": "x"}]`))
	require.NoError(t, p.Populate([]byte(`{"e": null}`)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, p.Keys())

	// existing keys keep their position
	require.NoError(t, p.SetParameter("a", "again"))
	assert.Equal(t, "a", p.Keys()[0])

	assert.True(t, errors.Is(p.Populate(`{"a":`), itseasy.ErrDecodeFailure))
	assert.True(t, errors.Is(p.Populate(`null`), itseasy.ErrValue))
	assert.True(t, errors.Is(p.Populate(3), itseasy.ErrValue))
	assert.True(t, errors.Is(p.Populate(map[string]any{"z": []any{}}), itseasy.ErrValue))
}

func TestParameterSet_Export(t *testing.T) {
	p := model.NewParameterSet()
	require.NoError(t, p.Populate(map[string]any{"limit": 10, "sort": "asc"}))
	assert.Equal(t, map[string]any{"limit": 10, "sort": "asc"}, p.ArrayCopy())

	b, err := p.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"limit":10,"sort":"asc"}`, string(b))

	cp := p.Clone()
	require.NoError(t, cp.SetParameter("limit", 1))
	v, _ := p.Parameter("limit")
	assert.Equal(t, 10, v)

	p.Clear()
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, map[string]any{}, p.ArrayCopy())
}
