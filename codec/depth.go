package codec

import (
	"reflect"
	"strconv"

	itseasy "github.com/wiryonolau/itseasy-util"
)

// checkDepth rejects values nested deeper than max. A cyclic value always
// trips the limit, so it doubles as cycle detection before marshaling.
func checkDepth(v any, max int) error {
	if path, ok := exceeds(reflect.ValueOf(v), 0, max, ""); ok {
		return itseasy.NewIssue(itseasy.CodeEncodeFailure, path, "max depth exceeded")
	}
	return nil
}

func exceeds(v reflect.Value, depth, max int, path string) (string, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "", false
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
	default:
		return "", false
	}
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		return "", false
	}
	depth++
	if depth > max {
		return path, true
	}
	switch v.Kind() {
	case reflect.Map:
		it := v.MapRange()
		for it.Next() {
			if p, ok := exceeds(it.Value(), depth, max, path+"/"+keyString(it.Key())); ok {
				return p, true
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if p, ok := exceeds(v.Index(i), depth, max, path+"/"+strconv.Itoa(i)); ok {
				return p, true
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if p, ok := exceeds(v.Field(i), depth, max, path+"/"+t.Field(i).Name); ok {
				return p, true
			}
		}
	}
	return "", false
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return "?"
}
