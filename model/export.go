package model

import (
	"fmt"
	"reflect"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/schema"
)

// Filter selects attributes for FilteredMap. A name mapped to a non-empty
// Filter applies that filter to the nested export of the attribute.
type Filter map[string]Filter

// Fields builds a flat filter.
func Fields(names ...string) Filter {
	f := make(Filter, len(names))
	for _, n := range names {
		f[n] = nil
	}
	return f
}

// pick decides whether name is exported and with which nested filter.
// Nested filters only apply in include mode; in exclude mode a listed name
// is left out whatever it maps to.
func (f Filter) pick(name string, exclude bool) (Filter, bool) {
	if len(f) == 0 {
		return nil, true
	}
	sub, listed := f[name]
	if exclude {
		return nil, !listed
	}
	return sub, listed
}

// ToMap exports every attribute of m. Getters win over fields; nested
// models, collections and parameter sets export themselves.
func ToMap(m Model, opts ...Option) (map[string]any, error) {
	return FilteredMap(m, nil, false, opts...)
}

// FilteredMap exports the attributes of m selected by filter. With exclude
// unset only listed attributes are exported, each nested export narrowed by
// the filter its name maps to. With exclude set listed attributes are left
// out and the rest export in full. An empty filter exports everything.
func FilteredMap(m Model, filter Filter, exclude bool, opts ...Option) (map[string]any, error) {
	mv, _, err := structOf(m)
	if err != nil {
		return nil, err
	}
	e := &exporter{maxDepth: newConfig(opts).maxDepth, active: map[uintptr]bool{}}
	return e.model(mv, filter, exclude)
}

// StorageMap is the export used for persistence. It is ToMap unless m
// implements StorageMapper.
func StorageMap(m Model) (map[string]any, error) {
	if sm, ok := m.(StorageMapper); ok {
		return sm.StorageMap()
	}
	return ToMap(m)
}

type exporter struct {
	maxDepth int
	depth    int
	active   map[uintptr]bool // containers on the current path
}

func (e *exporter) enter(p uintptr, what string) error {
	if e.active[p] {
		return itseasy.NewIssue(itseasy.CodeEncodeFailure, "", fmt.Sprintf("cyclic reference to %s", what))
	}
	e.depth++
	if e.depth > e.maxDepth {
		return itseasy.NewIssue(itseasy.CodeEncodeFailure, "", fmt.Sprintf("nesting exceeds max depth %d", e.maxDepth))
	}
	e.active[p] = true
	return nil
}

func (e *exporter) leave(p uintptr) {
	e.depth--
	delete(e.active, p)
}

func (e *exporter) model(pv reflect.Value, filter Filter, exclude bool) (map[string]any, error) {
	if err := e.enter(pv.Pointer(), pv.Type().String()); err != nil {
		return nil, err
	}
	defer e.leave(pv.Pointer())

	sv := pv.Elem()
	s := schema.For(sv.Type())
	out := make(map[string]any, s.Len())
	for _, a := range s.Attributes() {
		sub, ok := filter.pick(a.Name, exclude)
		if !ok {
			continue
		}
		if a.Getter != nil {
			v, err := a.Getter.Get(pv)
			if err != nil {
				return nil, err
			}
			out[a.Name] = v
			continue
		}
		v, err := e.value(a.Field(sv), sub, exclude)
		if err != nil {
			return nil, err
		}
		out[a.Name] = v
	}
	return out, nil
}

func (e *exporter) value(rv reflect.Value, filter Filter, exclude bool) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return e.value(rv.Elem(), filter, exclude)
	case reflect.Pointer, reflect.Struct:
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			if kindOfType(rv.Type()) != KindOpaque {
				return nil, nil
			}
			return rv.Interface(), nil
		}
		target, k, ok := nested(rv, false)
		if !ok {
			return rv.Interface(), nil
		}
		switch k {
		case KindModel:
			return e.model(target, filter, exclude)
		case KindCollection:
			return e.collection(target.Interface().(*Collection), filter, exclude)
		case KindParameterSet:
			return target.Interface().(*ParameterSet).ArrayCopy(), nil
		case KindExchanger:
			return target.Interface().(Exchanger).ArrayCopy()
		}
	case reflect.Slice, reflect.Array:
		if !nests(rv.Type().Elem()) || (rv.Kind() == reflect.Slice && rv.IsNil()) {
			return rv.Interface(), nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			v, err := e.value(rv.Index(i), filter, exclude)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case reflect.Map:
		if !nests(rv.Type().Elem()) || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return rv.Interface(), nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := e.value(iter.Value(), filter, exclude)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = v
		}
		return out, nil
	}
	return rv.Interface(), nil
}

func (e *exporter) collection(c *Collection, filter Filter, exclude bool) ([]any, error) {
	if c == nil {
		return nil, nil
	}
	if err := e.enter(reflect.ValueOf(c).Pointer(), "collection"); err != nil {
		return nil, err
	}
	defer e.leave(reflect.ValueOf(c).Pointer())

	out := make([]any, len(c.items))
	for i, it := range c.items {
		v, err := e.value(reflect.ValueOf(it), filter, exclude)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
