package model

import (
	"reflect"

	"github.com/wiryonolau/itseasy-util/schema"
)

// Clone returns a deep copy of m. Nested models, collections, parameter
// sets, slices and maps are copied; other pointers are shared with m.
func Clone[M Model](m M) M {
	rv := reflect.ValueOf(m)
	if !rv.IsValid() || rv.IsNil() {
		return m
	}
	return cloneValue(rv, map[uintptr]reflect.Value{}).Interface().(M)
}

// cloneValue copies rv. seen maps already copied model pointers to their
// copies so shared or cyclic references keep their shape.
func cloneValue(rv reflect.Value, seen map[uintptr]reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return rv
		}
		if c, ok := seen[rv.Pointer()]; ok {
			return c
		}
		switch rv.Type() {
		case collectionPtrType:
			c := reflect.ValueOf(rv.Interface().(*Collection).clone(seen))
			seen[rv.Pointer()] = c
			return c
		case paramSetPtrType:
			c := reflect.ValueOf(rv.Interface().(*ParameterSet).Clone())
			seen[rv.Pointer()] = c
			return c
		}
		if pointerKind(rv.Type()) != KindModel {
			return rv
		}
		cp := reflect.New(rv.Type().Elem())
		seen[rv.Pointer()] = cp
		cp.Elem().Set(rv.Elem())
		cloneFields(cp.Elem(), seen)
		return cp
	case reflect.Struct:
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		cloneFields(cp, seen)
		return cp
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(cloneValue(rv.Elem(), seen))
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		if !nests(rv.Type().Elem()) {
			reflect.Copy(cp, rv)
			return cp
		}
		for i := 0; i < rv.Len(); i++ {
			cp.Index(i).Set(cloneValue(rv.Index(i), seen))
		}
		return cp
	case reflect.Array:
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		if nests(rv.Type().Elem()) {
			for i := 0; i < rv.Len(); i++ {
				cp.Index(i).Set(cloneValue(rv.Index(i), seen))
			}
		}
		return cp
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), cloneValue(iter.Value(), seen))
		}
		return cp
	}
	return rv
}

func cloneFields(sv reflect.Value, seen map[uintptr]reflect.Value) {
	for _, a := range schema.For(sv.Type()).Attributes() {
		fv := a.Field(sv)
		switch fv.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Struct, reflect.Slice, reflect.Array, reflect.Map:
			fv.Set(cloneValue(fv, seen))
		}
	}
}
