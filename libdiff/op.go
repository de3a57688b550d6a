package libdiff

import (
	"errors"
	"fmt"

	"github.com/signadot/jsondoc/ir"
)

// Operation names of RFC 6902.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpTest    = "test"
)

var ErrBadOp = errors.New("bad patch operation")

// Op is one RFC 6902 operation. From is used by move and copy, Value by
// add, replace and test.
type Op struct {
	Name  string
	Path  ir.Pointer
	From  ir.Pointer
	Value *ir.Node
}

// Node renders o as a patch operation object.
func (o *Op) Node() *ir.Node {
	kvs := []ir.KeyVal{
		{Key: "op", Val: ir.FromString(o.Name)},
		{Key: "path", Val: ir.FromString(o.Path.String())},
	}
	switch o.Name {
	case OpMove, OpCopy:
		kvs = append(kvs, ir.KeyVal{Key: "from", Val: ir.FromString(o.From.String())})
	case OpAdd, OpReplace, OpTest:
		v := o.Value
		if v == nil {
			v = ir.Null()
		}
		kvs = append(kvs, ir.KeyVal{Key: "value", Val: v.Clone()})
	}
	return ir.FromKeyVals(kvs)
}

// ToNode renders ops as a patch document.
func ToNode(ops []Op) *ir.Node {
	vs := make([]*ir.Node, len(ops))
	for i := range ops {
		vs[i] = ops[i].Node()
	}
	return ir.FromSlice(vs)
}

// ParseOps reads a patch document. Values in the result are shared with
// p.
func ParseOps(p *ir.Node) ([]Op, error) {
	if p == nil || p.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: patch must be an array", ErrBadOp)
	}
	res := make([]Op, len(p.Values))
	for i, v := range p.Values {
		op, err := parseOp(v)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		res[i] = op
	}
	return res, nil
}

func parseOp(v *ir.Node) (Op, error) {
	var op Op
	if v.Type != ir.ObjectType {
		return op, fmt.Errorf("%w: expected object, got %s", ErrBadOp, v.Type)
	}
	name, err := v.RequireString("op")
	if err != nil {
		return op, fmt.Errorf("%w: %w", ErrBadOp, err)
	}
	op.Name = name
	path, err := v.RequireString("path")
	if err != nil {
		return op, fmt.Errorf("%w: %w", ErrBadOp, err)
	}
	if op.Path, err = ir.ParsePointer(path); err != nil {
		return op, fmt.Errorf("%w: %w", ErrBadOp, err)
	}
	switch name {
	case OpRemove:
	case OpAdd, OpReplace, OpTest:
		if !v.Has("value") {
			return op, fmt.Errorf("%w: %s without value", ErrBadOp, name)
		}
		op.Value = v.Get("value")
	case OpMove, OpCopy:
		from, err := v.RequireString("from")
		if err != nil {
			return op, fmt.Errorf("%w: %w", ErrBadOp, err)
		}
		if op.From, err = ir.ParsePointer(from); err != nil {
			return op, fmt.Errorf("%w: %w", ErrBadOp, err)
		}
	default:
		return op, fmt.Errorf("%w: unknown op %q", ErrBadOp, name)
	}
	return op, nil
}
