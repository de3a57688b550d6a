package libdiff

import (
	"unicode/utf8"

	"github.com/signadot/jsondoc/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type DiffOption func(*differ)

// ArrayKey aligns arrays whose elements are all objects with a unique
// member named key by the value of that member, so that changes inside
// an element become changes at its position rather than a replacement.
func ArrayKey(key string) DiffOption {
	return func(d *differ) { d.arrayKey = key }
}

// Diff returns an RFC 6902 patch document turning from into to. Applying
// the result to from yields a document equal to to.
func Diff(from, to *ir.Node, opts ...DiffOption) *ir.Node {
	return ToNode(Ops(from, to, opts...))
}

// Ops is Diff before rendering. Values in the result are owned by the
// caller.
func Ops(from, to *ir.Node, opts ...DiffOption) []Op {
	d := &differ{}
	for _, o := range opts {
		o(d)
	}
	d.diff(ir.Pointer{}, from, to)
	return d.ops
}

type differ struct {
	arrayKey string
	ops      []Op
}

func (d *differ) emit(name string, path ir.Pointer, v *ir.Node) {
	op := Op{Name: name, Path: path}
	if v != nil {
		op.Value = v.Clone()
	}
	d.ops = append(d.ops, op)
}

func (d *differ) diff(path ir.Pointer, from, to *ir.Node) {
	if ir.Equal(from, to) {
		return
	}
	switch {
	case from.Type == ir.ObjectType && to.Type == ir.ObjectType:
		d.object(path, from, to)
	case from.Type == ir.ArrayType && to.Type == ir.ArrayType:
		d.array(path, from, to)
	default:
		d.emit(OpReplace, path, to)
	}
}

// object aligns member names as in a text diff: names only in from are
// removed, names only in to are added and the others are compared.
func (d *differ) object(path ir.Pointer, from, to *ir.Node) {
	syms := newSymbols(nil)
	fromRunes := make([]rune, len(from.Fields))
	for i, f := range from.Fields {
		fromRunes[i] = syms.of(ir.FromString(f))
	}
	toRunes := make([]rune, len(to.Fields))
	for i, f := range to.Fields {
		toRunes[i] = syms.of(ir.FromString(f))
	}
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		n := utf8.RuneCountInString(diffs[i].Text)
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				name := from.Fields[fi]
				if !to.Has(name) {
					d.emit(OpRemove, path.Field(name), nil)
				}
				fi++
			}
		case diffpatch.DiffEqual:
			for range n {
				d.diff(path.Field(from.Fields[fi]), from.Values[fi], to.Values[ti])
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				name := to.Fields[ti]
				if j := from.Index(name); j != -1 {
					// moved; member order is not part of the patch
					d.diff(path.Field(name), from.Values[j], to.Values[ti])
				} else {
					d.emit(OpAdd, path.Field(name), to.Values[ti])
				}
				ti++
			}
		}
	}
}

// array aligns elements by value, or by key when ArrayKey applies. A run
// of deletions followed by insertions is compared pairwise first.
func (d *differ) array(path ir.Pointer, from, to *ir.Node) {
	syms := newSymbols(nil)
	if key := d.arrayKey; key != "" && keyed(from, key) && keyed(to, key) {
		syms = newSymbols(func(n *ir.Node) *ir.Node { return n.Get(key) })
	}
	fromRunes := make([]rune, len(from.Values))
	for i, v := range from.Values {
		fromRunes[i] = syms.of(v)
	}
	toRunes := make([]rune, len(to.Values))
	for i, v := range to.Values {
		toRunes[i] = syms.of(v)
	}
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	// idx is the position in the array as patched so far
	idx, fi, ti := 0, 0, 0
	for i := 0; i < len(diffs); i++ {
		n := utf8.RuneCountInString(diffs[i].Text)
		switch diffs[i].Type {
		case diffpatch.DiffEqual:
			for range n {
				d.diff(path.Elem(idx), from.Values[fi], to.Values[ti])
				idx++
				fi++
				ti++
			}
		case diffpatch.DiffDelete:
			ins := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ins = utf8.RuneCountInString(diffs[i+1].Text)
				i++
			}
			paired := min(n, ins)
			for range paired {
				d.diff(path.Elem(idx), from.Values[fi], to.Values[ti])
				idx++
				fi++
				ti++
			}
			for range n - paired {
				d.emit(OpRemove, path.Elem(idx), nil)
				fi++
			}
			for range ins - paired {
				d.emit(OpAdd, path.Elem(idx), to.Values[ti])
				idx++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				d.emit(OpAdd, path.Elem(idx), to.Values[ti])
				idx++
				ti++
			}
		}
	}
}

// keyed reports whether every element of arr is an object holding a
// distinct value for key.
func keyed(arr *ir.Node, key string) bool {
	seen := newSymbols(nil)
	for _, v := range arr.Values {
		if v.Type != ir.ObjectType || !v.Has(key) {
			return false
		}
		before := len(seen.reps)
		seen.of(v.Get(key))
		if len(seen.reps) == before {
			return false
		}
	}
	return true
}

// symbols numbers distinct values so that sequences of them can be
// diffed as runes. Values are identified by hash and confirmed with
// ir.Equal.
type symbols struct {
	ident  func(*ir.Node) *ir.Node
	reps   []*ir.Node
	byHash map[uint64][]int
}

func newSymbols(ident func(*ir.Node) *ir.Node) *symbols {
	return &symbols{ident: ident, byHash: map[uint64][]int{}}
}

func (s *symbols) of(n *ir.Node) rune {
	if s.ident != nil {
		n = s.ident(n)
	}
	h := n.Hash()
	for _, i := range s.byHash[h] {
		if ir.Equal(s.reps[i], n) {
			return symbol(i)
		}
	}
	i := len(s.reps)
	s.reps = append(s.reps, n)
	s.byHash[h] = append(s.byHash[h], i)
	return symbol(i)
}

// symbol skips the surrogate range, which does not survive the diff's
// conversions to string.
func symbol(i int) rune {
	r := rune(i)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}
