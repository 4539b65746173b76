package model

import "reflect"

// Kind is the closed set of shapes the populate and export engines
// distinguish.
type Kind int

const (
	KindScalar Kind = iota
	KindModel
	KindCollection
	KindParameterSet
	KindExchanger
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindModel:
		return "model"
	case KindCollection:
		return "collection"
	case KindParameterSet:
		return "parameter_set"
	case KindExchanger:
		return "exchanger"
	}
	return "opaque"
}

var (
	modelType         = reflect.TypeOf((*Model)(nil)).Elem()
	exchangerType     = reflect.TypeOf((*Exchanger)(nil)).Elem()
	collectionPtrType = reflect.TypeOf((*Collection)(nil))
	paramSetPtrType   = reflect.TypeOf((*ParameterSet)(nil))
)

// KindOf classifies v by its dynamic type.
func KindOf(v any) Kind {
	if v == nil {
		return KindScalar
	}
	return kindOfType(reflect.TypeOf(v))
}

func kindOfType(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindScalar
	case reflect.Pointer:
		return pointerKind(t)
	case reflect.Struct:
		// struct values are classified by what their address can do
		return pointerKind(reflect.PointerTo(t))
	}
	return KindOpaque
}

func pointerKind(pt reflect.Type) Kind {
	switch {
	case pt == collectionPtrType:
		return KindCollection
	case pt == paramSetPtrType:
		return KindParameterSet
	case pt.Implements(modelType):
		return KindModel
	case pt.Implements(exchangerType):
		return KindExchanger
	}
	return KindOpaque
}

// nests reports whether values of type t may hold models, collections or
// parameter sets somewhere inside.
func nests(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Pointer, reflect.Struct:
		return kindOfType(t) != KindOpaque
	case reflect.Slice, reflect.Array, reflect.Map:
		return nests(t.Elem())
	}
	return false
}

// nested returns a pointer through which the nested value held by field fv
// can populate or export itself. Nil pointer fields are allocated when alloc
// is set; otherwise ok is false for them.
func nested(fv reflect.Value, alloc bool) (target reflect.Value, k Kind, ok bool) {
	switch fv.Kind() {
	case reflect.Interface:
		if fv.IsNil() {
			return reflect.Value{}, KindOpaque, false
		}
		dyn := fv.Elem()
		if dyn.Kind() != reflect.Pointer || dyn.IsNil() {
			return reflect.Value{}, KindOpaque, false
		}
		k = pointerKind(dyn.Type())
		return dyn, k, k != KindOpaque
	case reflect.Pointer:
		k = pointerKind(fv.Type())
		if k == KindOpaque {
			return reflect.Value{}, k, false
		}
		if fv.IsNil() {
			if !alloc || !fv.CanSet() {
				return reflect.Value{}, k, false
			}
			fv.Set(newOf(fv.Type().Elem()))
		}
		return fv, k, true
	case reflect.Struct:
		k = pointerKind(reflect.PointerTo(fv.Type()))
		if k == KindOpaque {
			return reflect.Value{}, k, false
		}
		if fv.CanAddr() {
			return fv.Addr(), k, true
		}
		p := reflect.New(fv.Type())
		p.Elem().Set(fv)
		return p, k, true
	}
	return reflect.Value{}, KindOpaque, false
}

// newOf allocates a fresh value of struct type t, initialized the way its
// kind expects.
func newOf(t reflect.Type) reflect.Value {
	switch reflect.PointerTo(t) {
	case collectionPtrType:
		return reflect.ValueOf(NewCollection())
	case paramSetPtrType:
		return reflect.ValueOf(NewParameterSet())
	}
	return reflect.New(t)
}
