package plugin

import (
	"github.com/wiryonolau/itseasy-util/codec"
)

// JSONToObject decodes JSON text into plain values. Values that are not
// text are returned unchanged.
func JSONToObject(value any, opts ...codec.Option) (any, error) {
	switch v := value.(type) {
	case string:
		return codec.DecodeJSON([]byte(v), opts...)
	case []byte:
		return codec.DecodeJSON(v, opts...)
	}
	return value, nil
}

// ObjectToJSON encodes value as JSON text with sorted keys.
func ObjectToJSON(value any, opts ...codec.Option) (string, error) {
	b, err := codec.EncodeJSON(value, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func invokeJSONToObject(value any, _ ...any) (any, error) {
	return JSONToObject(value)
}

// invokeObjectToJSON takes an optional indent.
func invokeObjectToJSON(value any, args ...any) (any, error) {
	indent, err := stringArg(args, 0, "")
	if err != nil {
		return nil, err
	}
	return ObjectToJSON(value, codec.WithIndent(indent))
}
