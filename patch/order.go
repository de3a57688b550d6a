package patch

import "github.com/signadot/jsondoc/ir"

// restoreOrder puts the members of objects in res back in the order they
// have in orig. Members new in res follow, in the order res has them.
func restoreOrder(orig, res *ir.Node) {
	if orig == nil || res == nil || orig.Type != res.Type {
		return
	}
	switch res.Type {
	case ir.ObjectType:
		fields := make([]string, 0, len(res.Fields))
		values := make([]*ir.Node, 0, len(res.Values))
		used := make([]bool, len(res.Fields))
		for _, f := range orig.Fields {
			j := res.Index(f)
			if j == -1 {
				continue
			}
			restoreOrder(orig.Get(f), res.Values[j])
			fields = append(fields, f)
			values = append(values, res.Values[j])
			used[j] = true
		}
		for j, f := range res.Fields {
			if !used[j] {
				fields = append(fields, f)
				values = append(values, res.Values[j])
			}
		}
		res.Fields, res.Values = fields, values
	case ir.ArrayType:
		for i, v := range res.Values {
			if len(orig.Values) == len(res.Values) {
				restoreOrder(orig.Values[i], v)
				continue
			}
			restoreOrder(closest(orig, v), v)
		}
	}
}

// closest finds the element of arr sharing the most member names with
// the object v.
func closest(arr, v *ir.Node) *ir.Node {
	if v.Type != ir.ObjectType {
		return nil
	}
	var best *ir.Node
	score := 0
	for _, e := range arr.Values {
		if e.Type != ir.ObjectType {
			continue
		}
		n := 0
		for _, f := range e.Fields {
			if v.Has(f) {
				n++
			}
		}
		if n > score {
			best, score = e, n
		}
	}
	return best
}
