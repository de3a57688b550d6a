package jsondoc

import (
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/patch"
)

// Patch applies p to doc and returns the result; doc is not modified.
//
// An array p is an RFC 6902 patch. Anything else is an RFC 7386 merge
// patch: members of an object p replace those of doc, recursively, and
// null members delete.
func Patch(doc, p *ir.Node) (*ir.Node, error) {
	if p != nil && p.Type == ir.ArrayType {
		return patch.Apply(doc, p)
	}
	return patch.Merge(doc, p)
}
