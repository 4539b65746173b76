// Package pathquery resolves dot paths such as "companies.employee.[1].name"
// against maps, slices, structs and models.
//
// Segments are names or indexes: "[n]" is an index lookup and "name[n]" is
// a name lookup followed by an index lookup. Key existence decides whether a
// lookup resolves, so a key holding nil resolves to nil. Unresolved paths
// return the placeholder, or fail with a path_not_found issue in strict mode.
package pathquery

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/schema"
)

// Keyed values resolve name lookups themselves.
type Keyed interface {
	Lookup(name string) (any, bool)
}

// Indexer values resolve index lookups themselves.
type Indexer interface {
	Index(i int) (any, bool)
}

// Query splits path on the configured separator and resolves it from root.
func Query(root any, path string, opts ...Option) (any, error) {
	c := newConfig(opts)
	return c.run(root, Split(path, c.separator))
}

// QuerySegments resolves pre-split segments from root.
func QuerySegments(root any, segments []string, opts ...Option) (any, error) {
	return newConfig(opts).run(root, segments)
}

func (c *config) run(root any, segments []string) (any, error) {
	if len(segments) > c.maxDepth {
		msg := fmt.Sprintf("path has %d segments, limit is %d", len(segments), c.maxDepth)
		if c.strict {
			return nil, itseasy.NewIssue(itseasy.CodePathNotFound, strings.Join(segments, c.separator), msg)
		}
		itseasy.Logger().Debug("pathquery: path too long", "segments", len(segments), "limit", c.maxDepth)
		return c.placeholder, nil
	}
	cur := root
	for i, seg := range segments {
		for _, st := range ParseSegment(seg) {
			next, found, err := lookup(cur, st)
			if err == nil && found {
				cur = next
				continue
			}
			at := strings.Join(segments[:i+1], c.separator)
			if c.strict {
				if err != nil {
					return nil, err
				}
				return nil, itseasy.NewIssue(itseasy.CodePathNotFound, at, fmt.Sprintf("cannot resolve %q", st.String()))
			}
			itseasy.Logger().Debug("pathquery: unresolved path, using placeholder", "path", at, "step", st.String(), "error", err)
			return c.placeholder, nil
		}
	}
	return cur, nil
}

func lookup(cur any, st Step) (any, bool, error) {
	if st.IsIndex {
		v, ok := lookupIndex(cur, st.Index)
		return v, ok, nil
	}
	return lookupName(cur, st.Name)
}

func lookupName(cur any, name string) (any, bool, error) {
	switch t := cur.(type) {
	case nil:
		return nil, false, nil
	case map[string]any:
		v, ok := t[name]
		return v, ok, nil
	case []any:
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(t) {
			return t[i], true, nil
		}
		return nil, false, nil
	case Keyed:
		v, ok := t.Lookup(name)
		return v, ok, nil
	case Indexer:
		if i, err := strconv.Atoi(name); err == nil {
			v, ok := t.Index(i)
			return v, ok, nil
		}
		return nil, false, nil
	}

	rv := schema.Indirect(reflect.ValueOf(cur))
	if !rv.IsValid() {
		return nil, false, nil
	}
	switch rv.Kind() {
	case reflect.Map:
		k, ok := mapKey(rv.Type().Key(), name)
		if !ok {
			return nil, false, nil
		}
		if mv := rv.MapIndex(k); mv.IsValid() {
			return mv.Interface(), true, nil
		}
	case reflect.Slice, reflect.Array:
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < rv.Len() {
			return rv.Index(i).Interface(), true, nil
		}
	case reflect.Struct:
		return schema.Read(cur, name)
	}
	return nil, false, nil
}

func lookupIndex(cur any, i int) (any, bool) {
	switch t := cur.(type) {
	case nil:
		return nil, false
	case []any:
		if i < len(t) {
			return t[i], true
		}
		return nil, false
	case map[string]any:
		v, ok := t[strconv.Itoa(i)]
		return v, ok
	case Indexer:
		return t.Index(i)
	}

	rv := schema.Indirect(reflect.ValueOf(cur))
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i < rv.Len() {
			return rv.Index(i).Interface(), true
		}
	case reflect.Map:
		k, ok := mapKey(rv.Type().Key(), strconv.Itoa(i))
		if !ok {
			return nil, false
		}
		if mv := rv.MapIndex(k); mv.IsValid() {
			return mv.Interface(), true
		}
	}
	return nil, false
}

// mapKey builds a key of type kt from its textual form.
func mapKey(kt reflect.Type, s string) (reflect.Value, bool) {
	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(s).Convert(kt), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		k := reflect.New(kt).Elem()
		if k.OverflowInt(n) {
			return reflect.Value{}, false
		}
		k.SetInt(n)
		return k, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		k := reflect.New(kt).Elem()
		if k.OverflowUint(n) {
			return reflect.Value{}, false
		}
		k.SetUint(n)
		return k, true
	case reflect.Interface:
		if reflect.TypeOf(s).AssignableTo(kt) {
			return reflect.ValueOf(s), true
		}
	}
	return reflect.Value{}, false
}
