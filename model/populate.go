package model

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/schema"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Populate copies data into m. Keys that are not attributes of m are
// skipped. For each known key the first matching rule applies:
//
//  1. a setter accessor receives the value;
//  2. a nested model merges a mapping into itself, a nested collection or
//     parameter set populates itself from the value;
//  3. a nested Exchanger replaces its content through ExchangeArray;
//  4. the value is converted to the field type and assigned.
//
// A nil data is a no-op. Errors returned by setters come back unchanged.
func Populate(m Model, data map[string]any) error {
	mv, _, err := structOf(m)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return populateStruct(mv, data, "")
}

// ExchangeArray replaces the content of m with data and returns the export
// taken before the change.
func ExchangeArray(m Model, data map[string]any) (map[string]any, error) {
	old, err := ToMap(m)
	if err != nil {
		return nil, err
	}
	return old, Populate(m, data)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// populateStruct fills the struct behind pointer pv, model or not.
func populateStruct(pv reflect.Value, data map[string]any, prefix string) error {
	sv := pv.Elem()
	s := schema.For(sv.Type())
	for key := range data {
		if _, ok := s.Lookup(key); !ok {
			itseasy.Logger().Debug("model: skipping unknown key", "type", sv.Type().String(), "key", join(prefix, key))
		}
	}
	for _, a := range s.Attributes() {
		v, ok := data[a.Name]
		if !ok {
			continue
		}
		if err := assign(pv, sv, a, v, join(prefix, a.Name)); err != nil {
			return err
		}
	}
	return nil
}

func assign(pv, sv reflect.Value, a *schema.Attribute, v any, path string) error {
	if a.Setter != nil {
		return a.Setter.Set(pv, v)
	}
	fv := a.Field(sv)
	if v != nil {
		if done, err := delegate(fv, v, path); done {
			return err
		}
	}
	if v != nil && fv.Kind() != reflect.Interface && reflect.TypeOf(v).AssignableTo(fv.Type()) {
		// nested values are copied so no two parents share them
		fv.Set(cloneValue(reflect.ValueOf(v), map[uintptr]reflect.Value{}))
		return nil
	}
	out, err := convert(v, fv.Type(), path)
	if err != nil {
		return err
	}
	fv.Set(out)
	return nil
}

// delegate hands v to the nested value held by fv when that value can take
// it: collections and parameter sets populate from it, exchangers replace
// their content with it and models merge mappings. done is false when fv
// holds nothing that accepts v.
func delegate(fv reflect.Value, v any, path string) (done bool, err error) {
	data, isMap := asMapping(v)
	_, k, _ := nested(fv, false)
	switch k {
	case KindCollection, KindParameterSet, KindExchanger:
	case KindModel:
		if !isMap {
			return false, nil
		}
	default:
		return false, nil
	}
	target, k, ok := nested(fv, true)
	if !ok {
		return false, nil
	}
	switch k {
	case KindModel:
		return true, populateStruct(target, data, path)
	case KindCollection:
		return true, target.Interface().(*Collection).Populate(v)
	case KindParameterSet:
		return true, target.Interface().(*ParameterSet).Populate(v)
	case KindExchanger:
		if src, ok := v.(Exchanger); ok {
			if v, err = src.ArrayCopy(); err != nil {
				return true, err
			}
		}
		_, err = target.Interface().(Exchanger).ExchangeArray(v)
		return true, err
	}
	return false, nil
}

// convert builds a value of type t from v. Mappings become structs through
// populateStruct; everything else goes through schema.Coerce.
func convert(v any, t reflect.Type, path string) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, nil
	}
	if data, ok := asMapping(v); ok {
		switch {
		case isPlainStruct(t):
			p := newOf(t)
			if err := populateStruct(p, data, path); err != nil {
				return reflect.Value{}, err
			}
			return p.Elem(), nil
		case t.Kind() == reflect.Pointer && isPlainStruct(t.Elem()):
			p := newOf(t.Elem())
			if err := populateStruct(p, data, path); err != nil {
				return reflect.Value{}, err
			}
			return p, nil
		}
	}
	if nestsStruct(t) {
		switch {
		case (t.Kind() == reflect.Slice) && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array):
			s := reflect.MakeSlice(t, rv.Len(), rv.Len())
			for i := 0; i < rv.Len(); i++ {
				ev, err := convert(rv.Index(i).Interface(), t.Elem(), join(path, strconv.Itoa(i)))
				if err != nil {
					return reflect.Value{}, err
				}
				s.Index(i).Set(ev)
			}
			return s, nil
		case t.Kind() == reflect.Map && rv.Kind() == reflect.Map:
			m := reflect.MakeMapWithSize(t, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				kv, err := schema.Coerce(iter.Key().Interface(), t.Key())
				if err != nil {
					return reflect.Value{}, itseasy.WrapIssue(itseasy.CodeValueError, path, err)
				}
				ev, err := convert(iter.Value().Interface(), t.Elem(), join(path, fmt.Sprint(iter.Key().Interface())))
				if err != nil {
					return reflect.Value{}, err
				}
				m.SetMapIndex(kv, ev)
			}
			return m, nil
		}
	}
	out, err := schema.Coerce(v, t)
	if err != nil {
		return reflect.Value{}, itseasy.WrapIssue(itseasy.CodeValueError, path, err)
	}
	return out, nil
}

// isPlainStruct reports struct types that are filled from mappings field by
// field. Types decoding themselves from text are left to schema.Coerce.
func isPlainStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && !reflect.PointerTo(t).Implements(textUnmarshalerType)
}

func nestsStruct(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return isPlainStruct(t)
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
		return nestsStruct(t.Elem())
	}
	return false
}

// asMapping accepts map[string]any and any other map keyed by strings.
func asMapping(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, true
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}
