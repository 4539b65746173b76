package schema

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

var (
	jsonNumberType      = reflect.TypeOf(json.Number(""))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Coerce converts v into a value of type t.
//
// nil becomes the zero value. Numbers convert between Go numeric kinds only
// when the value survives: integers must be exactly representable in the
// target, and floats reach integers only when integral. Float targets take
// the nearest float to a decimal json.Number, and float32 targets round.
// Strings reach types implementing encoding.TextUnmarshaler through
// UnmarshalText.
// Sequences and string-keyed maps are converted element by element, and
// pointer targets are allocated. Strings are never parsed into numbers and
// numbers never become strings.
func Coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	return coerce(reflect.ValueOf(v), t)
}

func coerce(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Zero(t), nil
		}
		rv = rv.Elem()
	}
	if rv.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, nil
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Zero(t), nil
		}
		if t.Kind() != reflect.Pointer {
			return coerce(rv.Elem(), t)
		}
	}
	if rv.Kind() == reflect.String && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(rv.String())); err != nil {
			return reflect.Value{}, fmt.Errorf("cannot use %q as %s: %w", rv.String(), t, err)
		}
		return p.Elem(), nil
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Pointer:
		ev, err := coerce(rv, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(ev)
		return p, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := toInt(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", i, t)
		}
		out.SetInt(i)
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := toUint(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowUint(u) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", u, t)
		}
		out.SetUint(u)
		return out, nil
	case reflect.Float32, reflect.Float64:
		f, err := toFloat(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%g overflows %s", f, t)
		}
		out.SetFloat(f)
		return out, nil
	case reflect.Bool:
		if rv.Kind() == reflect.Bool {
			out.SetBool(rv.Bool())
			return out, nil
		}
	case reflect.String:
		if rv.Kind() == reflect.String {
			out.SetString(rv.String())
			return out, nil
		}
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			out.SetString(string(rv.Bytes()))
			return out, nil
		}
	case reflect.Slice:
		if rv.Kind() == reflect.String && t.Elem().Kind() == reflect.Uint8 {
			out.SetBytes([]byte(rv.String()))
			return out, nil
		}
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			if rv.Kind() == reflect.Slice && rv.IsNil() {
				return out, nil
			}
			n := rv.Len()
			s := reflect.MakeSlice(t, n, n)
			for i := 0; i < n; i++ {
				ev, err := coerce(rv.Index(i), t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
				}
				s.Index(i).Set(ev)
			}
			return s, nil
		}
	case reflect.Array:
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == t.Len() {
			for i := 0; i < rv.Len(); i++ {
				ev, err := coerce(rv.Index(i), t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
				}
				out.Index(i).Set(ev)
			}
			return out, nil
		}
	case reflect.Map:
		if rv.Kind() == reflect.Map {
			if rv.IsNil() {
				return out, nil
			}
			m := reflect.MakeMapWithSize(t, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				kv, err := coerceKey(iter.Key(), t.Key())
				if err != nil {
					return reflect.Value{}, err
				}
				ev, err := coerce(iter.Value(), t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key().Interface(), err)
				}
				m.SetMapIndex(kv, ev)
			}
			return m, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), t)
}

// coerceKey also accepts decimal strings for integer keys, since decoded
// documents only carry string keys.
func coerceKey(k reflect.Value, t reflect.Type) (reflect.Value, error) {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i, err := strconv.ParseInt(k.String(), 10, 64)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %q: %w", k.String(), err)
			}
			return coerce(reflect.ValueOf(i), t)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u, err := strconv.ParseUint(k.String(), 10, 64)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %q: %w", k.String(), err)
			}
			return coerce(reflect.ValueOf(u), t)
		}
	}
	return coerce(k, t)
}

func toInt(rv reflect.Value) (int64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	case reflect.String:
		if rv.Type() == jsonNumberType {
			s := rv.String()
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return i, nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number %q", s)
			}
			return floatToInt(f)
		}
	}
	return 0, fmt.Errorf("cannot use %s as integer", rv.Type())
}

func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%g is not representable as an integer", f)
	}
	return int64(f), nil
}

func toUint(rv reflect.Value) (uint64, error) {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	}
	i, err := toInt(rv)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("%d is negative", i)
	}
	return uint64(i), nil
}

func toFloat(rv reflect.Value) (float64, error) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		f := float64(i)
		if f >= math.MaxInt64 || int64(f) != i {
			return 0, fmt.Errorf("%d cannot be represented exactly as float", i)
		}
		return f, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		f := float64(u)
		if f >= math.MaxUint64 || uint64(f) != u {
			return 0, fmt.Errorf("%d cannot be represented exactly as float", u)
		}
		return f, nil
	case reflect.String:
		if rv.Type() == jsonNumberType {
			f, err := strconv.ParseFloat(rv.String(), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number %q", rv.String())
			}
			return f, nil
		}
	}
	return 0, fmt.Errorf("cannot use %s as float", rv.Type())
}
