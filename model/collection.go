package model

import (
	"fmt"
	"iter"
	"reflect"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
	"github.com/wiryonolau/itseasy-util/schema"
)

// Collection is an ordered list of values sharing one prototype type.
//
// Without a prototype any value is accepted as is. With one, mappings
// become new elements built from the prototype, values of the prototype's
// type are stored directly and anything else is ignored.
type Collection struct {
	prototype Model
	factory   func() Model
	elemType  reflect.Type
	items     []any
}

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// WithPrototype uses a deep copy of m for every element built from a
// mapping.
func WithPrototype(m Model) CollectionOption {
	return func(c *Collection) {
		if err := c.SetPrototype(m); err != nil {
			itseasy.Logger().Debug("model: ignoring nil prototype")
		}
	}
}

// WithFactory builds elements with f instead of copying a prototype.
func WithFactory(f func() Model) CollectionOption {
	return func(c *Collection) {
		if f == nil {
			return
		}
		c.factory = f
		c.prototype = nil
		c.elemType = reflect.TypeOf(f())
	}
}

// PrototypeOf uses a new zero *T for every element.
func PrototypeOf[T any, PT interface {
	*T
	Model
}]() CollectionOption {
	return WithFactory(func() Model { return PT(new(T)) })
}

// NewCollection returns an empty collection.
func NewCollection(opts ...CollectionOption) *Collection {
	c := &Collection{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetPrototype replaces the element prototype.
func (c *Collection) SetPrototype(m Model) error {
	if m == nil || reflect.ValueOf(m).IsNil() {
		return itseasy.NewIssue(itseasy.CodeValueError, "", "prototype must not be nil")
	}
	c.prototype = m
	c.factory = nil
	c.elemType = reflect.TypeOf(m)
	return nil
}

// Prototype returns the element template, or nil when none is set.
func (c *Collection) Prototype() Model {
	if c.factory != nil {
		return c.factory()
	}
	return c.prototype
}

func (c *Collection) newElement() Model {
	if c.factory != nil {
		return c.factory()
	}
	return Clone(c.prototype)
}

// Append adds one item following the prototype rules.
func (c *Collection) Append(item any) error {
	if c.elemType == nil {
		c.items = append(c.items, item)
		return nil
	}
	if data, ok := asMapping(item); ok {
		el := c.newElement()
		if err := Populate(el, data); err != nil {
			return err
		}
		c.items = append(c.items, el)
		return nil
	}
	if item != nil && reflect.TypeOf(item) == c.elemType {
		c.items = append(c.items, item)
		return nil
	}
	itseasy.Logger().Debug("model: collection rejected item", "type", fmt.Sprintf("%T", item), "want", c.elemType.String())
	return nil
}

// Populate appends every element of a sequence. JSON text is decoded
// first. A nil data is a no-op.
func (c *Collection) Populate(data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case string:
		return c.populateText([]byte(d))
	case []byte:
		return c.populateText(d)
	case *Collection:
		for _, it := range d.Items() {
			if err := c.Append(it); err != nil {
				return err
			}
		}
		return nil
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return itseasy.NewIssue(itseasy.CodeValueError, "", fmt.Sprintf("collection cannot be populated from %T", data))
	}
	for i := 0; i < rv.Len(); i++ {
		if err := c.Append(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) populateText(b []byte) error {
	v, err := codec.DecodeJSON(b)
	if err != nil {
		return err
	}
	if _, ok := v.([]any); !ok {
		return itseasy.NewIssue(itseasy.CodeValueError, "", "collection text must hold an array")
	}
	return c.Populate(v)
}

// ExchangeArray replaces the content with data and returns the previous
// export.
func (c *Collection) ExchangeArray(data any) ([]any, error) {
	old, err := c.ArrayCopy()
	if err != nil {
		return nil, err
	}
	c.Clear()
	return old, c.Populate(data)
}

// Clear removes every element.
func (c *Collection) Clear() { c.items = nil }

// Len is the number of elements.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns the elements themselves, not exported.
func (c *Collection) Items() []any {
	if c == nil {
		return nil
	}
	return append([]any(nil), c.items...)
}

// At returns element i, or nil when out of range.
func (c *Collection) At(i int) any {
	v, _ := c.Index(i)
	return v
}

// Index returns element i.
func (c *Collection) Index(i int) (any, bool) {
	if c == nil || i < 0 || i >= len(c.items) {
		return nil, false
	}
	return c.items[i], true
}

// All iterates over the elements.
func (c *Collection) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, it := range c.Items() {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Column returns attribute name of every element that has it.
func (c *Collection) Column(name string) []any {
	var out []any
	for _, it := range c.Items() {
		if v, ok := column(it, name); ok {
			out = append(out, v)
		}
	}
	return out
}

// ColumnBy returns attribute name of every element keyed by the textual
// form of its attribute key. Elements lacking key are keyed by position.
func (c *Collection) ColumnBy(name, key string) map[string]any {
	out := map[string]any{}
	for i, it := range c.Items() {
		v, ok := column(it, name)
		if !ok {
			continue
		}
		k, ok := column(it, key)
		if !ok {
			out[fmt.Sprint(i)] = v
			continue
		}
		out[fmt.Sprint(k)] = v
	}
	return out
}

func column(item any, name string) (any, bool) {
	if m, ok := asMapping(item); ok {
		v, found := m[name]
		return v, found
	}
	v, found, err := schema.Read(item, name)
	return v, found && err == nil
}

// ArrayCopy exports every element.
func (c *Collection) ArrayCopy() ([]any, error) {
	return c.FilteredArrayCopy(nil, false)
}

// FilteredArrayCopy exports every element with filter applied to models.
func (c *Collection) FilteredArrayCopy(filter Filter, exclude bool, opts ...Option) ([]any, error) {
	e := &exporter{maxDepth: newConfig(opts).maxDepth, active: map[uintptr]bool{}}
	return e.collection(c, filter, exclude)
}

// ToJSON encodes the exported elements.
func (c *Collection) ToJSON(opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	data, err := c.FilteredArrayCopy(nil, false, opts...)
	if err != nil {
		return nil, err
	}
	return codec.EncodeJSON(data, cfg.codecOptions()...)
}

// MarshalJSON encodes the collection like ToJSON.
func (c *Collection) MarshalJSON() ([]byte, error) { return c.ToJSON() }

func (c *Collection) clone(seen map[uintptr]reflect.Value) *Collection {
	cp := &Collection{prototype: c.prototype, factory: c.factory, elemType: c.elemType}
	if c.items != nil {
		cp.items = make([]any, len(c.items))
		for i, it := range c.items {
			if it == nil {
				continue
			}
			cp.items[i] = cloneValue(reflect.ValueOf(it), seen).Interface()
		}
	}
	return cp
}
