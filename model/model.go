// Package model turns plain structs into self-describing models.
//
// A model is a struct that embeds Base; a pointer to it satisfies Model.
//
//	type User struct {
//		model.Base
//		ID      int64              `json:"id"`
//		Name    string             `json:"name"`
//		Created time.Time          `json:"created"`
//		Address *Address           `json:"address"`
//		Tags    *model.Collection  `json:"tags"`
//	}
//
// Populate fills a model from a plain mapping and ToMap exports it back.
// Attribute discovery and accessor binding come from package schema, so a
// SetCreated or GetCreated method on *User takes over reads or writes of
// that attribute. Nested models, collections and parameter sets populate and
// export themselves.
package model

import (
	"reflect"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/pathquery"
	"github.com/wiryonolau/itseasy-util/schema"
)

// Base marks a struct as a model. Embed it by value.
type Base struct{}

func (*Base) modelBase() {}

// Model is implemented by pointers to structs embedding Base.
type Model interface {
	modelBase()
}

// Exchanger values replace their whole content from plain data. They are
// exported through ArrayCopy.
type Exchanger interface {
	ExchangeArray(data any) (old any, err error)
	ArrayCopy() (any, error)
}

// StorageMapper models provide their own storage-oriented export.
type StorageMapper interface {
	StorageMap() (map[string]any, error)
}

// structOf returns the struct behind m.
func structOf(m any) (reflect.Value, reflect.Value, error) {
	mv := reflect.ValueOf(m)
	if !mv.IsValid() || mv.Kind() != reflect.Pointer || mv.IsNil() || mv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, reflect.Value{}, itseasy.NewIssue(itseasy.CodeValueError, "", "model must be a non-nil pointer to a struct")
	}
	return mv, mv.Elem(), nil
}

// Attributes lists the attributes of m in registry order.
func Attributes(m Model) []*schema.Attribute {
	return schema.ForValue(m).Attributes()
}

// Set writes a single attribute through the populate rules.
func Set(m Model, name string, value any) error {
	if _, ok := schema.ForValue(m).Lookup(name); !ok {
		return itseasy.NewIssue(itseasy.CodeInvalidAttribute, name, "unknown attribute")
	}
	return Populate(m, map[string]any{name: value})
}

// Get reads a single attribute through its getter, or the field when there
// is none.
func Get(m Model, name string) (any, error) {
	mv, sv, err := structOf(m)
	if err != nil {
		return nil, err
	}
	a, ok := schema.For(sv.Type()).Lookup(name)
	if !ok {
		return nil, itseasy.NewIssue(itseasy.CodeInvalidAttribute, name, "unknown attribute")
	}
	if a.Getter != nil {
		return a.Getter.Get(mv)
	}
	return a.Field(sv).Interface(), nil
}

// Has reports whether name is an attribute of m, whatever it holds.
func Has(m Model, name string) bool {
	_, ok := schema.ForValue(m).Lookup(name)
	return ok
}

// Query resolves path against m and returns def when it cannot. sep
// overrides the "." separator.
func Query(m Model, path string, def any, sep ...string) any {
	opts := []pathquery.Option{pathquery.WithStrict(true)}
	if len(sep) > 0 {
		opts = append(opts, pathquery.WithSeparator(sep[0]))
	}
	v, err := pathquery.Query(m, path, opts...)
	if err != nil {
		itseasy.Logger().Debug("model: query failed, using default", "path", path, "error", err)
		return def
	}
	return v
}
