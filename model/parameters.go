package model

import (
	"fmt"
	"reflect"
	"slices"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
)

const pairMessage = "parameter must be a [key, value] pair or a {key, value} mapping"

// ParameterSet is an ordered set of named scalar values. Values must be
// nil, booleans, numbers or strings.
type ParameterSet struct {
	keys   []string
	values map[string]any
}

// NewParameterSet returns an empty set.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: map[string]any{}}
}

func isScalar(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// SetParameter stores value under name, keeping the position of an
// existing name.
func (p *ParameterSet) SetParameter(name string, value any) error {
	if !isScalar(value) {
		return itseasy.NewIssue(itseasy.CodeValueError, name, fmt.Sprintf("value must be string, number, bool or null, got %T", value))
	}
	if p.values == nil {
		p.values = map[string]any{}
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
	return nil
}

// Parameter returns the value stored under name.
func (p *ParameterSet) Parameter(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// HasParameter reports whether name is set, even to nil.
func (p *ParameterSet) HasParameter(name string) bool {
	_, ok := p.Parameter(name)
	return ok
}

// Lookup resolves name segments in path queries.
func (p *ParameterSet) Lookup(name string) (any, bool) { return p.Parameter(name) }

// Keys returns the names in insertion order.
func (p *ParameterSet) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// Len is the number of parameters.
func (p *ParameterSet) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clear removes every parameter.
func (p *ParameterSet) Clear() {
	p.keys = nil
	p.values = map[string]any{}
}

// Append stores one pair given as {"key": k, "value": v} or [k, v].
func (p *ParameterSet) Append(item any) error {
	if m, ok := asMapping(item); ok {
		k, hasKey := m["key"]
		v, hasValue := m["value"]
		if len(m) != 2 || !hasKey || !hasValue {
			return itseasy.NewIssue(itseasy.CodeValueError, "", pairMessage)
		}
		name, ok := k.(string)
		if !ok {
			return itseasy.NewIssue(itseasy.CodeValueError, "", "parameter key must be a string")
		}
		return p.SetParameter(name, v)
	}
	rv := reflect.ValueOf(item)
	if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() != 2 {
		return itseasy.NewIssue(itseasy.CodeValueError, "", pairMessage)
	}
	name, ok := rv.Index(0).Interface().(string)
	if !ok {
		return itseasy.NewIssue(itseasy.CodeValueError, "", "parameter key must be a string")
	}
	return p.SetParameter(name, rv.Index(1).Interface())
}

// Populate stores a mapping (in sorted key order) or appends a sequence of
// pairs. JSON text is decoded first. A nil data is a no-op.
func (p *ParameterSet) Populate(data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case string:
		return p.populateText([]byte(d))
	case []byte:
		return p.populateText(d)
	case *ParameterSet:
		for _, k := range d.Keys() {
			v, _ := d.Parameter(k)
			if err := p.SetParameter(k, v); err != nil {
				return err
			}
		}
		return nil
	}
	if m, ok := asMapping(data); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := p.SetParameter(k, m[k]); err != nil {
				return err
			}
		}
		return nil
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return itseasy.NewIssue(itseasy.CodeValueError, "", fmt.Sprintf("parameter set cannot be populated from %T", data))
	}
	for i := 0; i < rv.Len(); i++ {
		if err := p.Append(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (p *ParameterSet) populateText(b []byte) error {
	v, err := codec.DecodeJSON(b)
	if err != nil {
		return err
	}
	if v == nil {
		return itseasy.NewIssue(itseasy.CodeValueError, "", "parameter text must hold an object or an array")
	}
	return p.Populate(v)
}

// ArrayCopy returns the parameters as a plain mapping.
func (p *ParameterSet) ArrayCopy() map[string]any {
	out := make(map[string]any, p.Len())
	if p == nil {
		return out
	}
	for _, k := range p.keys {
		out[k] = p.values[k]
	}
	return out
}

// Clone returns an independent copy.
func (p *ParameterSet) Clone() *ParameterSet {
	cp := NewParameterSet()
	if p == nil {
		return cp
	}
	cp.keys = slices.Clone(p.keys)
	for k, v := range p.values {
		cp.values[k] = v
	}
	return cp
}

// ToJSON encodes the parameters as a JSON object with sorted keys.
func (p *ParameterSet) ToJSON(opts ...Option) ([]byte, error) {
	return codec.EncodeJSON(p.ArrayCopy(), newConfig(opts).codecOptions()...)
}

// MarshalJSON encodes the set like ToJSON.
func (p *ParameterSet) MarshalJSON() ([]byte, error) { return p.ToJSON() }
