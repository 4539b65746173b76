package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/model"
)

func TestCollectionModel(t *testing.T) {
	c := model.NewCollection(model.WithPrototype(&Basic{}))
	const count = 3
	for i := 0; i < count; i++ {
		b := &Basic{}
		require.NoError(t, model.Populate(b, map[string]any{"id": i, "name": "n"}))
		require.NoError(t, c.Append(b))
	}
	assert.Equal(t, count, c.Len())
	for _, it := range c.All() {
		_, ok := it.(*Basic)
		assert.True(t, ok)
	}
	assert.Len(t, c.Column("id"), count)
}

func TestCollection_PrototypeEnforcement(t *testing.T) {
	proto := &Basic{Name: "default"}
	c := model.NewCollection(model.WithPrototype(proto))

	require.NoError(t, c.Append(map[string]any{"id": 1}))
	require.Equal(t, 1, c.Len())
	el := c.At(0).(*Basic)
	assert.Equal(t, &Basic{ID: 1, Name: "default"}, el)
	assert.NotSame(t, proto, el)
	assert.Equal(t, "default", proto.Name)

	require.NoError(t, c.Append(&Person{Name: "x"}))
	require.NoError(t, c.Append("string"))
	require.NoError(t, c.Append(nil))
	assert.Equal(t, 1, c.Len())

	err := c.Append(map[string]any{"id": "bad"})
	assert.True(t, errors.Is(err, itseasy.ErrValue))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_NoPrototype(t *testing.T) {
	c := model.NewCollection()
	for _, v := range []any{1, "x", nil, map[string]any{"a": 1}, &Basic{}} {
		require.NoError(t, c.Append(v))
	}
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, map[string]any{"a": 1}, c.At(3))
	assert.Nil(t, c.Prototype())
}

func TestCollection_Prototype(t *testing.T) {
	c := model.NewCollection()
	err := c.SetPrototype(nil)
	assert.True(t, errors.Is(err, itseasy.ErrValue))
	err = c.SetPrototype((*Basic)(nil))
	assert.True(t, errors.Is(err, itseasy.ErrValue))

	require.NoError(t, c.SetPrototype(&Basic{Name: "p"}))
	assert.Equal(t, &Basic{Name: "p"}, c.Prototype())

	f := model.NewCollection(model.PrototypeOf[Person]())
	assert.Equal(t, &Person{}, f.Prototype())
	require.NoError(t, f.Append(map[string]any{"name": "Who"}))
	assert.Equal(t, "Who", f.At(0).(*Person).Name)
}

func TestCollection_Populate(t *testing.T) {
	c := model.NewCollection(model.PrototypeOf[Basic]())
	require.NoError(t, c.Populate(nil))
	assert.Equal(t, 0, c.Len())

	require.NoError(t, c.Populate(`[{"id":1},{"id":2}]`))
	require.NoError(t, c.Populate([]byte(`[{"id":3}]`)))
	require.NoError(t, c.Populate([]map[string]any{{"id": 4}}))
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4)}, c.Column("id"))

	err := c.Populate(`[{"id":`)
	assert.True(t, errors.Is(err, itseasy.ErrDecodeFailure))
	err = c.Populate(`{"id":1}`)
	assert.True(t, errors.Is(err, itseasy.ErrValue))
	err = c.Populate(42)
	assert.True(t, errors.Is(err, itseasy.ErrValue))

	other := model.NewCollection()
	require.NoError(t, other.Append(map[string]any{"id": 5}))
	require.NoError(t, c.Populate(other))
	assert.Equal(t, 5, c.Len())
}

func TestCollection_ExchangeArrayAndClear(t *testing.T) {
	c := model.NewCollection(model.PrototypeOf[Basic]())
	require.NoError(t, c.Populate([]any{map[string]any{"id": 1, "name": "a"}}))

	old, err := c.ExchangeArray([]any{map[string]any{"id": 2, "name": "b"}})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": int64(1), "name": "a"}}, old)
	assert.Equal(t, []any{"b"}, c.Column("name"))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Index(0)
	assert.False(t, ok)
	assert.Nil(t, c.At(-1))
}

func TestCollection_Columns(t *testing.T) {
	c := model.NewCollection()
	require.NoError(t, c.Populate([]any{
		map[string]any{"id": "a", "name": "Tom"},
		&Basic{ID: 7, Name: "Jerry"},
		map[string]any{"id": "c"},
		map[string]any{"name": "NoID"},
	}))
	assert.Equal(t, []any{"Tom", "Jerry", "NoID"}, c.Column("name"))
	assert.Equal(t, map[string]any{"a": "Tom", "7": "Jerry", "3": "NoID"}, c.ColumnBy("name", "id"))
}

func TestCollection_ArrayCopyAndJSON(t *testing.T) {
	c := model.NewCollection(model.PrototypeOf[Basic]())
	require.NoError(t, c.Populate([]any{map[string]any{"id": 1, "name": "a"}}))

	items, err := c.ArrayCopy()
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": int64(1), "name": "a"}}, items)

	b, err := c.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"name":"a"}]`, string(b))

	// collections held as plain values still encode through their export
	tr := &Triple{Data: c}
	out, err := model.ToJSON(tr)
	require.NoError(t, err)
	assert.Equal(t, `{"data":[{"id":1,"name":"a"}],"id":0,"name":""}`, string(out))
}

func TestCollection_Items(t *testing.T) {
	c := model.NewCollection()
	require.NoError(t, c.Append("a"))
	items := c.Items()
	items[0] = "changed"
	assert.Equal(t, "a", c.At(0))

	var nilColl *model.Collection
	assert.Equal(t, 0, nilColl.Len())
	assert.Nil(t, nilColl.Items())
}
