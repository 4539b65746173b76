package schema

import "reflect"

type candidate struct {
	attr  *Attribute
	depth int
}

func build(t reflect.Type) *Schema {
	s := &Schema{typ: t, index: map[string]*Attribute{}}
	if t.Kind() != reflect.Struct {
		return s
	}
	var cands []candidate
	collect(t, nil, 0, map[reflect.Type]bool{t: true}, &cands)

	// Shallowest declaration wins; ties go to the first one declared.
	best := map[string]int{}
	var order []string
	for i, c := range cands {
		j, seen := best[c.attr.Name]
		if !seen {
			best[c.attr.Name] = i
			order = append(order, c.attr.Name)
			continue
		}
		if c.depth < cands[j].depth {
			best[c.attr.Name] = i
		}
	}
	for _, name := range order {
		a := cands[best[name]].attr
		a.Getter = lookupAccessor(t, IntentGet, name)
		a.Setter = lookupAccessor(t, IntentSet, name)
		s.attrs = append(s.attrs, a)
		s.index[name] = a
	}
	return s
}

func collect(t reflect.Type, prefix []int, depth int, visiting map[reflect.Type]bool, out *[]candidate) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key := resolveKey(sf)
		if key.skip {
			continue
		}
		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i

		if sf.Anonymous && !key.named && sf.Type.Kind() == reflect.Struct {
			if visiting[sf.Type] {
				continue
			}
			visiting[sf.Type] = true
			collect(sf.Type, index, depth+1, visiting, out)
			delete(visiting, sf.Type)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		vis := Public
		if key.protected {
			vis = Protected
		}
		*out = append(*out, candidate{
			attr: &Attribute{
				Name:       key.name,
				FieldName:  sf.Name,
				Visibility: vis,
				Type:       sf.Type,
				Index:      index,
			},
			depth: depth,
		})
	}
}
