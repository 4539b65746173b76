// Package schema discovers the attributes of a struct type and binds their
// accessor methods.
//
// An attribute is an exported struct field. Its external name comes from the
// `model` tag, then the `json` tag, then the Go field name; "-" in either tag
// drops the field. Unexported fields are private and never attributes.
// Anonymous struct fields are flattened the way encoding/json promotes them.
//
// Accessors follow a naming convention: attribute tech_creation_date is read
// through GetTechCreationDate and written through SetTechCreationDate when
// those methods exist on the pointer type with an accessor signature. They
// are resolved once, when the schema of a type is first built, and cached
// per type for the life of the process.
package schema

import (
	"reflect"
	"sync"
)

// Visibility of an attribute to callers outside the model machinery.
type Visibility int

const (
	Public Visibility = iota
	Protected
)

func (v Visibility) String() string {
	if v == Protected {
		return "protected"
	}
	return "public"
}

// Attribute describes one model attribute.
type Attribute struct {
	Name       string
	FieldName  string
	Visibility Visibility
	Type       reflect.Type
	Index      []int
	Getter     *Accessor
	Setter     *Accessor
}

// Field returns the attribute's field inside struct value sv.
func (a *Attribute) Field(sv reflect.Value) reflect.Value {
	return sv.FieldByIndex(a.Index)
}

// Schema is the attribute registry of one struct type.
type Schema struct {
	typ   reflect.Type
	attrs []*Attribute
	index map[string]*Attribute
}

var cache sync.Map // map[reflect.Type]*Schema

// For returns the schema of t (pointers are dereferenced). Non-struct types
// have an empty schema.
func For(t reflect.Type) *Schema {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return &Schema{index: map[string]*Attribute{}}
	}
	if s, ok := cache.Load(t); ok {
		return s.(*Schema)
	}
	s, _ := cache.LoadOrStore(t, build(t))
	return s.(*Schema)
}

// ForValue returns the schema of v's dynamic type.
func ForValue(v any) *Schema { return For(reflect.TypeOf(v)) }

// Type is the struct type the schema describes; nil for the empty schema.
func (s *Schema) Type() reflect.Type { return s.typ }

// Attributes returns the attributes in registry order.
func (s *Schema) Attributes() []*Attribute { return s.attrs }

// Lookup finds an attribute by external name.
func (s *Schema) Lookup(name string) (*Attribute, bool) {
	a, ok := s.index[name]
	return a, ok
}

// Names returns the attribute names in registry order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.Name
	}
	return names
}

// Len is the number of attributes.
func (s *Schema) Len() int { return len(s.attrs) }
