package plugin

import (
	"github.com/wiryonolau/itseasy-util/pathquery"
)

// PathQuery resolves path against root in strict mode: a missing segment is
// an error rather than a placeholder.
func PathQuery(root any, path string, sep ...string) (any, error) {
	opts := []pathquery.Option{pathquery.WithStrict(true)}
	if len(sep) > 0 {
		opts = append(opts, pathquery.WithSeparator(sep[0]))
	}
	return pathquery.Query(root, path, opts...)
}

// invokePathQuery takes (path, separator).
func invokePathQuery(value any, args ...any) (any, error) {
	path, err := stringArg(args, 0, "")
	if err != nil {
		return nil, err
	}
	sep, err := stringArg(args, 1, ".")
	if err != nil {
		return nil, err
	}
	return PathQuery(value, path, sep)
}
