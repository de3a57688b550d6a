package jsondoc

import (
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/libdiff"
)

// Diff produces an RFC 6902 patch turning from into to. If there are no
// differences, Diff returns nil.
//
// A resulting diff may be used as a patch in [Patch].
//
// Arrays whose elements are all objects with distinct values of a
// shared member may be aligned by that member with [libdiff.ArrayKey],
// which yields moves rather than positional replacements.
func Diff(from, to *ir.Node, opts ...libdiff.DiffOption) *ir.Node {
	d := libdiff.Diff(from, to, opts...)
	if len(d.Values) == 0 {
		return nil
	}
	return d
}
