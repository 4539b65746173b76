package schema

import (
	"reflect"
	"strings"
)

type fieldKey struct {
	name      string
	named     bool // name came from a tag
	protected bool
	skip      bool
}

// resolveKey applies the key rule for a struct field.
// Priority: model:"name" > json tag name > field name; "-" disables the field.
// The model tag also carries options, e.g. model:"secret,protected".
func resolveKey(sf reflect.StructField) fieldKey {
	k := fieldKey{name: sf.Name}
	if mt, ok := sf.Tag.Lookup("model"); ok {
		parts := strings.Split(mt, ",")
		head := strings.TrimSpace(parts[0])
		if head == "-" && len(parts) == 1 {
			return fieldKey{skip: true}
		}
		for _, p := range parts[1:] {
			if strings.TrimSpace(p) == "protected" {
				k.protected = true
			}
		}
		if head != "" {
			k.name, k.named = head, true
			return k
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			k.skip = true
			return k
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			k.name, k.named = jt, true
		}
	}
	return k
}
