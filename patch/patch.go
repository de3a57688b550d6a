package patch

import (
	"errors"
	"fmt"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/libdiff"
	"github.com/signadot/jsondoc/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

// wrapper holds the document while a patch is applied so that
// operations on the whole document have a parent to work in.
const wrapper = "doc"

// Apply applies p, an RFC 6902 patch document, to doc and returns the
// patched document. doc is not modified. Numbers pass through the patch
// as text and keep their exact value.
func Apply(doc, p *ir.Node) (*ir.Node, error) {
	if doc == nil || p == nil {
		return nil, ir.ErrNilNode
	}
	ops, err := libdiff.ParseOps(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	for i := range ops {
		op := &ops[i]
		op.Path = append(ir.Pointer{wrapper}, op.Path...)
		if op.From != nil {
			op.From = append(ir.Pointer{wrapper}, op.From...)
		}
	}
	pd, err := marshal(libdiff.ToNode(ops))
	if err != nil {
		return nil, err
	}
	jp, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	d, err := marshal(ir.FromKeyVals([]ir.KeyVal{{Key: wrapper, Val: doc}}))
	if err != nil {
		return nil, err
	}
	out, err := jp.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := parse.Parse(out)
	if err != nil {
		return nil, err
	}
	inner := res.Get(wrapper)
	if inner == nil {
		return nil, fmt.Errorf("%w: document removed", ErrPatch)
	}
	restoreOrder(doc, inner)
	return inner, nil
}

// Merge applies p as an RFC 7386 merge patch to doc. A patch that is not
// an object replaces the document.
func Merge(doc, p *ir.Node) (*ir.Node, error) {
	if doc == nil || p == nil {
		return nil, ir.ErrNilNode
	}
	if p.Type != ir.ObjectType {
		return p.Clone(), nil
	}
	if doc.Type != ir.ObjectType {
		doc = ir.FromKeyVals(nil)
	}
	d, err := marshal(doc)
	if err != nil {
		return nil, err
	}
	pd, err := marshal(p)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, pd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return result(doc, out)
}

// CreateMerge returns the RFC 7386 merge patch turning from into to.
func CreateMerge(from, to *ir.Node) (*ir.Node, error) {
	fd, err := marshal(from)
	if err != nil {
		return nil, err
	}
	td, err := marshal(to)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.CreateMergePatch(fd, td)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return parse.Parse(out)
}

func marshal(n *ir.Node) ([]byte, error) {
	return encode.Marshal(n, encode.EscapeControl(true))
}

func result(doc *ir.Node, out []byte) (*ir.Node, error) {
	res, err := parse.Parse(out)
	if err != nil {
		return nil, err
	}
	restoreOrder(doc, res)
	return res, nil
}
