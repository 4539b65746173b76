package codec

import (
	"errors"

	json "github.com/goccy/go-json"

	itseasy "github.com/wiryonolau/itseasy-util"
	eng "github.com/wiryonolau/itseasy-util/internal/engine"
	"github.com/wiryonolau/itseasy-util/source/gojson"
)

// EncodeJSON marshals v with sorted map keys. Values nested deeper than the
// configured max depth, cyclic values and values JSON cannot represent fail
// with CodeEncodeFailure.
func EncodeJSON(v any, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	if err := checkDepth(v, c.maxDepth); err != nil {
		return nil, err
	}
	var (
		b   []byte
		err error
	)
	if c.indent != "" {
		b, err = json.MarshalIndent(v, "", c.indent)
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return nil, itseasy.WrapIssue(itseasy.CodeEncodeFailure, "", err)
	}
	return b, nil
}

// DecodeJSON parses exactly one JSON value into maps, slices and scalars.
func DecodeJSON(data []byte, opts ...Option) (any, error) {
	c := newConfig(opts)
	src := eng.WrapWithEnforcement(gojson.NewBytes(data), eng.EnforceOptions{
		OnDuplicate: toEngineDup(c.onDuplicate),
		MaxDepth:    c.maxDepth,
		IssueSink: func(si eng.SimpleIssue) {
			itseasy.Logger().Warn("json decode", "code", si.Code, "path", si.Path, "msg", si.Message)
		},
	})
	v, err := eng.DecodeAnyFromSource(src, numberConv(c.numbers))
	if err != nil {
		var ie eng.IssueError
		if errors.As(err, &ie) {
			return nil, itseasy.Issues{{Path: ie.Path, Code: itseasy.CodeDecodeFailure, Message: ie.Message, Cause: err}}
		}
		return nil, itseasy.WrapIssue(itseasy.CodeDecodeFailure, "", err)
	}
	return v, nil
}

func toEngineDup(s itseasy.Severity) eng.DuplicateStrictness {
	switch s {
	case itseasy.Ignore:
		return eng.DupIgnore
	case itseasy.Warn:
		return eng.DupWarn
	default:
		return eng.DupError
	}
}

func numberConv(m itseasy.NumberMode) eng.NumberConv {
	switch m {
	case itseasy.NumberFloat64:
		return eng.Float64Number
	case itseasy.NumberJSONNumber:
		return eng.JSONNumber
	default:
		return eng.NativeNumber
	}
}
