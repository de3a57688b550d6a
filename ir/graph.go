package ir

import (
	"fmt"
	"slices"

	"github.com/signadot/jsondoc/debug"
)

// Attach places child in parent under key, which is a field name for
// objects or an element index for arrays. An index of -1 or Len() appends,
// any other index replaces the element there.
//
// Whether child is cloned is decided by mode. When it is not, the
// attachment is refused with a *CycleError if parent is child or is
// reachable from child; parent is left untouched in that case.
func Attach(parent *Node, key any, child *Node, mode CloneMode) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	switch k := key.(type) {
	case string:
		return parent.Set(k, child, mode)
	case int:
		if err := parent.expect(ArrayType); err != nil {
			return err
		}
		if k == -1 || k == len(parent.Values) {
			return parent.Append(child, mode)
		}
		return parent.SetAt(k, child, mode)
	default:
		return fmt.Errorf("attach: key must be a string or an int, got %T", key)
	}
}

// Detach removes every occurrence of child from parent, along with any
// sharing edges between them. It reports whether anything was removed.
func Detach(parent, child *Node) bool {
	if parent == nil || child == nil {
		return false
	}
	found := false
	for i := len(parent.Values) - 1; i >= 0; i-- {
		if parent.Values[i] != child {
			continue
		}
		found = true
		switch parent.Type {
		case ObjectType:
			parent.Remove(parent.Fields[i])
		case ArrayType:
			parent.RemoveAt(i)
		}
	}
	return found
}

// Parents returns the nodes that hold y through a non-cloning attachment.
// Constructors take ownership of their values and are not listed.
func (y *Node) Parents() []*Node {
	return slices.Clone(y.parents)
}

// Shared reports whether more than one container holds y through a
// non-cloning attachment.
func (y *Node) Shared() bool {
	return len(y.parents) > 1
}

// adopt returns the node that y should store for v under mode.
func (y *Node) adopt(v *Node, mode CloneMode) (*Node, error) {
	if v == nil {
		return nil, ErrNilNode
	}
	if mode.resolve() == CloneForce {
		return v.Clone(), nil
	}
	if err := checkCycle(y, v); err != nil {
		return nil, err
	}
	link(y, v)
	return v, nil
}

func checkCycle(parent, child *Node) error {
	if parent == child {
		return &CycleError{Parent: parent, Child: child, Self: true}
	}
	anc := ancestors(parent)
	if reaches(child, anc) {
		if debug.Graph() {
			debug.Logf("refusing to attach %s under %s: cycle", child.Type, parent.Type)
		}
		return &CycleError{Parent: parent, Child: child}
	}
	return nil
}

// ancestors returns y together with every node above it along recorded
// sharing edges.
func ancestors(y *Node) map[*Node]struct{} {
	res := map[*Node]struct{}{y: {}}
	q := []*Node{y}
	for len(q) != 0 {
		n := q[0]
		q = q[1:]
		for _, p := range n.parents {
			if _, ok := res[p]; ok {
				continue
			}
			res[p] = struct{}{}
			q = append(q, p)
		}
	}
	return res
}

// reaches reports whether y or any of its descendants is in set.
func reaches(y *Node, set map[*Node]struct{}) bool {
	seen := map[*Node]struct{}{}
	stack := []*Node{y}
	for len(stack) != 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := set[n]; ok {
			return true
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		stack = append(stack, n.Values...)
	}
	return false
}

func link(parent, child *Node) {
	parent.children = append(parent.children, child)
	child.parents = append(child.parents, parent)
}

// unlink drops one parent/child edge if present. Owned children never
// had one.
func unlink(parent, child *Node) {
	i := slices.Index(parent.children, child)
	if i == -1 {
		return
	}
	parent.children = slices.Delete(parent.children, i, i+1)
	if j := slices.Index(child.parents, parent); j != -1 {
		child.parents = slices.Delete(child.parents, j, j+1)
	}
}

func (y *Node) mutated() {
	if len(y.parents) > 1 {
		sharedMutation(y)
	}
}
