package convert

import (
	"reflect"
	"strings"
	"sync"
)

type field struct {
	name      string
	index     []int
	typ       reflect.Type
	omitEmpty bool
}

var fieldCache sync.Map // reflect.Type -> []field

// structFields lists the document members of struct type t in
// declaration order, following `json` tags. Fields of untagged embedded
// structs are promoted; of several fields with the same name the least
// deeply embedded one is used, and the first declared among equals.
func structFields(t reflect.Type) []field {
	if fs, ok := fieldCache.Load(t); ok {
		return fs.([]field)
	}
	type candidate struct {
		field
		depth int
	}
	var all []candidate
	var walk func(t reflect.Type, index []int, depth int, visiting map[reflect.Type]bool)
	walk = func(t reflect.Type, index []int, depth int, visiting map[reflect.Type]bool) {
		if visiting[t] {
			return
		}
		visiting[t] = true
		defer delete(visiting, t)
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := sf.Tag.Get("json")
			if tag == "-" {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")
			idx := append(append([]int(nil), index...), i)
			if sf.Anonymous && name == "" {
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					walk(ft, idx, depth+1, visiting)
					continue
				}
			}
			if !sf.IsExported() {
				continue
			}
			if name == "" {
				name = sf.Name
			}
			all = append(all, candidate{
				field: field{
					name:      name,
					index:     idx,
					typ:       sf.Type,
					omitEmpty: hasOpt(opts, "omitempty"),
				},
				depth: depth,
			})
		}
	}
	walk(t, nil, 0, map[reflect.Type]bool{})

	best := map[string]int{}
	for _, c := range all {
		if d, ok := best[c.name]; !ok || c.depth < d {
			best[c.name] = c.depth
		}
	}
	res := make([]field, 0, len(all))
	taken := map[string]bool{}
	for _, c := range all {
		if c.depth != best[c.name] || taken[c.name] {
			continue
		}
		taken[c.name] = true
		res = append(res, c.field)
	}
	fieldCache.Store(t, res)
	return res
}

func hasOpt(opts, name string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == name {
			return true
		}
	}
	return false
}

// lookupField finds the member called name, exactly or else ignoring
// case.
func lookupField(fs []field, name string) *field {
	for i := range fs {
		if fs[i].name == name {
			return &fs[i]
		}
	}
	for i := range fs {
		if strings.EqualFold(fs[i].name, name) {
			return &fs[i]
		}
	}
	return nil
}

// fieldByIndex returns the field at index within v. It returns false if
// an embedded pointer on the way is nil, unless alloc is set, in which
// case such pointers are allocated.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
