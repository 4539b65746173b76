package model

import (
	"reflect"

	jsonpatch "github.com/evanphx/json-patch"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/codec"
	"github.com/wiryonolau/itseasy-util/schema"
)

// ToJSON encodes the full export of m as JSON with sorted keys.
func ToJSON(m Model, opts ...Option) ([]byte, error) {
	return encode(m, codec.FormatJSON, opts)
}

// ToYAML encodes the full export of m as YAML. Values take their JSON form
// first, so both encodings carry the same data.
func ToYAML(m Model, opts ...Option) ([]byte, error) {
	return encode(m, codec.FormatYAML, opts)
}

func encode(m Model, f codec.Format, opts []Option) ([]byte, error) {
	c := newConfig(opts)
	data, err := ToMap(m, opts...)
	if err != nil {
		return nil, err
	}
	if f == codec.FormatJSON {
		return codec.EncodeJSON(data, c.codecOptions()...)
	}
	b, err := codec.EncodeJSON(data, codec.WithMaxDepth(c.maxDepth))
	if err != nil {
		return nil, err
	}
	plain, err := codec.DecodeJSON(b, codec.WithMaxDepth(c.maxDepth))
	if err != nil {
		return nil, itseasy.WrapIssue(itseasy.CodeEncodeFailure, "", err)
	}
	return codec.EncodeYAML(plain, c.codecOptions()...)
}

// FromJSON decodes a JSON object and populates m with it.
func FromJSON(m Model, data []byte, opts ...Option) error {
	return decode(m, codec.FormatJSON, data, opts)
}

// FromYAML decodes a YAML mapping and populates m with it.
func FromYAML(m Model, data []byte, opts ...Option) error {
	return decode(m, codec.FormatYAML, data, opts)
}

func decode(m Model, f codec.Format, data []byte, opts []Option) error {
	v, err := codec.Decode(f, data, newConfig(opts).codecOptions()...)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return itseasy.NewIssue(itseasy.CodeDecodeFailure, "", "document is not an object")
	}
	return Populate(m, obj)
}

// ApplyPatch applies an RFC 6902 JSON patch to the export of m and
// populates m with the result. Attributes the patch removes are reset.
func ApplyPatch(m Model, patch []byte, opts ...Option) error {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return itseasy.WrapIssue(itseasy.CodeDecodeFailure, "", err)
	}
	return repopulate(m, opts, func(doc []byte) ([]byte, error) { return p.Apply(doc) })
}

// MergePatch applies an RFC 7396 merge patch to the export of m and
// populates m with the result. Attributes set to null are reset.
func MergePatch(m Model, patch []byte, opts ...Option) error {
	return repopulate(m, opts, func(doc []byte) ([]byte, error) { return jsonpatch.MergePatch(doc, patch) })
}

func repopulate(m Model, opts []Option, patch func([]byte) ([]byte, error)) error {
	doc, err := ToJSON(m, opts...)
	if err != nil {
		return err
	}
	out, err := patch(doc)
	if err != nil {
		return itseasy.WrapIssue(itseasy.CodeValueError, "", err)
	}
	v, err := codec.DecodeJSON(out, newConfig(opts).codecOptions()...)
	if err != nil {
		return err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return itseasy.NewIssue(itseasy.CodeValueError, "", "patched document is not an object")
	}
	for _, a := range Attributes(m) {
		if _, kept := obj[a.Name]; !kept {
			obj[a.Name] = nil
		}
	}
	mv, _, _ := structOf(m)
	clearContainers(mv, map[uintptr]bool{})
	return Populate(m, obj)
}

// clearContainers empties the collections and parameter sets reachable
// through model attributes, so repopulating replaces their content instead
// of appending to it.
func clearContainers(pv reflect.Value, seen map[uintptr]bool) {
	if seen[pv.Pointer()] {
		return
	}
	seen[pv.Pointer()] = true
	sv := pv.Elem()
	for _, a := range schema.For(sv.Type()).Attributes() {
		target, k, ok := nested(a.Field(sv), false)
		if !ok {
			continue
		}
		switch k {
		case KindModel:
			clearContainers(target, seen)
		case KindCollection:
			target.Interface().(*Collection).Clear()
		case KindParameterSet:
			target.Interface().(*ParameterSet).Clear()
		}
	}
}
