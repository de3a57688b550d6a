package jsondoc

import (
	"fmt"

	"github.com/signadot/jsondoc/convert"
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/eval"
	"github.com/signadot/jsondoc/ir"
)

// Tool expands documents, evaluating the expressions embedded in their
// strings.
type Tool struct {
	// Registry converts expression results; nil uses the built-in
	// rules only.
	Registry *convert.Registry
	// Vars are overlaid on each document before expansion.
	Vars map[string]*ir.Node
}

func DefaultTool() *Tool {
	return &Tool{
		Vars: map[string]*ir.Node{},
	}
}

// Run returns an expanded copy of doc.
func (t *Tool) Run(doc *ir.Node) (*ir.Node, error) {
	if doc == nil {
		return nil, ir.ErrNilNode
	}
	scope := doc
	if len(t.Vars) != 0 {
		if doc.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: vars need an object document, got %s", ir.ErrWrongType, doc.Type)
		}
		scope = doc.Clone()
		for k, v := range t.Vars {
			if debug.Eval() {
				debug.Logf("tool var %q", k)
			}
			if err := scope.Set(k, v, ir.CloneForce); err != nil {
				return nil, err
			}
		}
	}
	res, err := eval.Expand(scope, t.Registry)
	if err != nil {
		return nil, err
	}
	if scope == doc {
		return res, nil
	}
	// drop the overlaid vars not present in doc
	for k := range t.Vars {
		if !doc.Has(k) {
			res.Remove(k)
		}
	}
	return res, nil
}
