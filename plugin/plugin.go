// Package plugin holds named value transforms that model accessors call
// explicitly: date parsing and formatting, JSON text conversion and path
// queries. Nothing here runs on its own during populate or export.
package plugin

import (
	"fmt"
	"slices"

	itseasy "github.com/wiryonolau/itseasy-util"
)

// Names of the built-in plugins.
const (
	NameJSONToObject = "jsonToObject"
	NameObjectToJSON = "objectToJson"
	NameDateToObject = "dateToObject"
	NameFormatDate   = "formatDate"
	NamePathQuery    = "pathQuery"
)

// Plugin is a pure value transform identified by a stable name.
type Plugin interface {
	Name() string
	Invoke(value any, args ...any) (any, error)
}

// Func adapts a function to Plugin.
type Func struct {
	name string
	fn   func(value any, args ...any) (any, error)
}

// New returns a plugin named name running fn.
func New(name string, fn func(value any, args ...any) (any, error)) *Func {
	return &Func{name: name, fn: fn}
}

func (f *Func) Name() string { return f.name }

func (f *Func) Invoke(value any, args ...any) (any, error) { return f.fn(value, args...) }

// Registry is an ordered set of plugins.
type Registry struct {
	order  []string
	byName map[string]Plugin
}

// NewRegistry registers ps in order.
func NewRegistry(ps ...Plugin) *Registry {
	r := &Registry{byName: map[string]Plugin{}}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

// Default returns a fresh registry of the built-ins, in the order
// jsonToObject, objectToJson, dateToObject, formatDate, pathQuery.
func Default() *Registry {
	return NewRegistry(
		New(NameJSONToObject, invokeJSONToObject),
		New(NameObjectToJSON, invokeObjectToJSON),
		New(NameDateToObject, invokeDateToObject),
		New(NameFormatDate, invokeFormatDate),
		New(NamePathQuery, invokePathQuery),
	)
}

// Register adds p; a plugin with the same name is replaced in place.
func (r *Registry) Register(p Plugin) {
	if _, ok := r.byName[p.Name()]; !ok {
		r.order = append(r.order, p.Name())
	}
	r.byName[p.Name()] = p
}

// Lookup finds a plugin by name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byName[name]
	return p, ok
}

// Names lists plugin names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.order)
}

// Invoke runs the plugin registered under name.
func (r *Registry) Invoke(name string, value any, args ...any) (any, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, itseasy.NewIssue(itseasy.CodeValueError, name, "unknown plugin")
	}
	return p.Invoke(value, args...)
}

// stringArg returns args[i] as a string, or def when absent or nil.
func stringArg(args []any, i int, def string) (string, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	s, ok := args[i].(string)
	if !ok {
		return "", itseasy.NewIssue(itseasy.CodeValueError, "", fmt.Sprintf("argument %d must be a string, got %T", i, args[i]))
	}
	return s, nil
}
