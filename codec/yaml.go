package codec

import (
	"bytes"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	itseasy "github.com/wiryonolau/itseasy-util"
)

// EncodeYAML marshals v as a single YAML document.
func EncodeYAML(v any, opts ...Option) (b []byte, err error) {
	c := newConfig(opts)
	if err := checkDepth(v, c.maxDepth); err != nil {
		return nil, err
	}
	// yaml.v3 panics on types it cannot represent (funcs, channels).
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, itseasy.NewIssue(itseasy.CodeEncodeFailure, "", fmt.Sprint(r))
		}
	}()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if c.indent != "" {
		enc.SetIndent(len(c.indent))
	}
	if err := enc.Encode(v); err != nil {
		return nil, itseasy.WrapIssue(itseasy.CodeEncodeFailure, "", err)
	}
	if err := enc.Close(); err != nil {
		return nil, itseasy.WrapIssue(itseasy.CodeEncodeFailure, "", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses one YAML document into maps with string keys, slices
// and scalars. Integers follow the configured NumberMode.
func DecodeYAML(data []byte, opts ...Option) (any, error) {
	c := newConfig(opts)
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, itseasy.WrapIssue(itseasy.CodeDecodeFailure, "", err)
	}
	if path, ok := exceeds(reflect.ValueOf(v), 0, c.maxDepth, ""); ok {
		return nil, itseasy.NewIssue(itseasy.CodeDecodeFailure, path, "max depth exceeded")
	}
	return normalizeYAML(v, c.numbers), nil
}

// normalizeYAML rewrites map[any]any into map[string]any and aligns integer
// types with the JSON decoder.
func normalizeYAML(v any, mode itseasy.NumberMode) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeYAML(e, mode)
		}
		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = normalizeYAML(e, mode)
		}
		return m
	case []any:
		for i, e := range x {
			x[i] = normalizeYAML(e, mode)
		}
		return x
	case int:
		switch mode {
		case itseasy.NumberFloat64:
			return float64(x)
		default:
			return int64(x)
		}
	case uint64:
		if mode == itseasy.NumberFloat64 {
			return float64(x)
		}
		return x
	}
	return v
}
