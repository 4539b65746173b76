package schema

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	itseasy "github.com/wiryonolau/itseasy-util"
)

// Intent selects which accessor of an attribute is wanted.
type Intent string

const (
	IntentGet Intent = "get"
	IntentSet Intent = "set"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Accessor is a resolved getter or setter method.
//
// Getters have the shape GetX() V or GetX() (V, error).
// Setters have the shape SetX(v V) or SetX(v V) error.
// Both are looked up on the pointer type, so value and pointer receivers
// are accepted.
type Accessor struct {
	Method string
	Attr   string
	Intent Intent
	// Type is the getter's result type or the setter's parameter type.
	Type       reflect.Type
	index      int
	returnsErr bool
}

// PascalCase splits name on underscores and upper-cases the first rune of
// every segment, leaving the rest of each segment untouched.
func PascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, seg := range strings.Split(name, "_") {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return b.String()
}

// AccessorName is the method name looked up for name under intent.
func AccessorName(intent Intent, name string) string {
	prefix := "Get"
	if intent == IntentSet {
		prefix = "Set"
	}
	return prefix + PascalCase(name)
}

// ResolveAccessor reports the accessor method t declares for name, if any.
func ResolveAccessor(t reflect.Type, intent Intent, name string) (string, bool) {
	a := lookupAccessor(t, intent, name)
	if a == nil {
		return "", false
	}
	return a.Method, true
}

func lookupAccessor(t reflect.Type, intent Intent, name string) *Accessor {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return nil
	}
	method := AccessorName(intent, name)
	m, ok := reflect.PointerTo(t).MethodByName(method)
	if !ok {
		return nil
	}
	mt := m.Type // receiver is In(0)
	if mt.IsVariadic() {
		return nil
	}
	a := &Accessor{Method: method, Attr: name, Intent: intent, index: m.Index}
	switch intent {
	case IntentGet:
		if mt.NumIn() != 1 {
			return nil
		}
		switch {
		case mt.NumOut() == 1:
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
			a.returnsErr = true
		default:
			return nil
		}
		a.Type = mt.Out(0)
	case IntentSet:
		if mt.NumIn() != 2 {
			return nil
		}
		switch {
		case mt.NumOut() == 0:
		case mt.NumOut() == 1 && mt.Out(0) == errorType:
			a.returnsErr = true
		default:
			return nil
		}
		a.Type = mt.In(1)
	default:
		return nil
	}
	return a
}

// Get invokes the getter on recv, which must be a non-nil pointer.
// Errors returned by the method are passed through unchanged.
func (a *Accessor) Get(recv reflect.Value) (any, error) {
	out := recv.Method(a.index).Call(nil)
	if a.returnsErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// Set coerces v to the setter's parameter type and invokes the setter on
// recv, which must be a non-nil pointer. A value that cannot be coerced is
// reported as a value_error issue at the attribute; errors returned by the
// method are passed through unchanged.
func (a *Accessor) Set(recv reflect.Value, v any) error {
	arg, err := Coerce(v, a.Type)
	if err != nil {
		return itseasy.WrapIssue(itseasy.CodeValueError, a.Attr, err)
	}
	out := recv.Method(a.index).Call([]reflect.Value{arg})
	if a.returnsErr && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}
