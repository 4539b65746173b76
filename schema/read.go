package schema

import "reflect"

// Indirect follows pointers and interfaces down to a concrete value. The
// result is invalid when a nil is met on the way.
func Indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// Receiver returns a pointer usable as method receiver for struct value sv.
// Non-addressable values are copied first.
func Receiver(sv reflect.Value) reflect.Value {
	if sv.CanAddr() {
		return sv.Addr()
	}
	p := reflect.New(sv.Type())
	p.Elem().Set(sv)
	return p
}

// Read returns attribute name of the struct behind v, through its getter
// when the type has one. found is false when v is not a struct or has no
// such attribute.
func Read(v any, name string) (value any, found bool, err error) {
	sv := Indirect(reflect.ValueOf(v))
	if !sv.IsValid() || sv.Kind() != reflect.Struct {
		return nil, false, nil
	}
	a, ok := For(sv.Type()).Lookup(name)
	if !ok {
		return nil, false, nil
	}
	if a.Getter != nil {
		value, err = a.Getter.Get(Receiver(sv))
		return value, true, err
	}
	return a.Field(sv).Interface(), true, nil
}
