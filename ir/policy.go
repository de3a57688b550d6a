package ir

import (
	"sync/atomic"

	"github.com/signadot/jsondoc/debug"
)

// CloneMode selects whether a value is copied when it is attached to a
// container.
type CloneMode int32

const (
	// CloneInherit uses the process default, see SetDefaultCloneMode.
	CloneInherit CloneMode = iota
	// CloneForce always attaches a deep copy, so the container stays a
	// tree.
	CloneForce
	// CloneAvoid attaches the value itself and records a sharing edge.
	// The cycle guard refuses attachments that would form a cycle.
	CloneAvoid
)

func (m CloneMode) String() string {
	switch m {
	case CloneInherit:
		return "inherit"
	case CloneForce:
		return "force"
	case CloneAvoid:
		return "avoid"
	}
	return "<unknown clone mode>"
}

var (
	defaultCloneMode atomic.Int32
	sharedHook       atomic.Pointer[func(*Node)]
)

func init() {
	defaultCloneMode.Store(int32(CloneForce))
}

// SetDefaultCloneMode sets what CloneInherit means. Setting CloneInherit
// restores CloneForce.
func SetDefaultCloneMode(m CloneMode) {
	if m == CloneInherit {
		m = CloneForce
	}
	defaultCloneMode.Store(int32(m))
}

func DefaultCloneMode() CloneMode {
	return CloneMode(defaultCloneMode.Load())
}

func (m CloneMode) resolve() CloneMode {
	if m == CloneInherit {
		return DefaultCloneMode()
	}
	return m
}

// SetSharedMutationHook installs f to be called whenever a node held by
// more than one container is mutated. Only holds made by attaching with
// CloneAvoid count: a container built by a constructor such as FromSlice
// or FromKeyVals owns its values and records no edge, so a value it holds
// and that is attached once elsewhere is not reported. A nil f restores the default, which
// logs when JSONDOC_DEBUG_GRAPH is set. The hook cannot veto the mutation.
func SetSharedMutationHook(f func(*Node)) {
	if f == nil {
		sharedHook.Store(nil)
		return
	}
	sharedHook.Store(&f)
}

func sharedMutation(y *Node) {
	if f := sharedHook.Load(); f != nil {
		(*f)(y)
		return
	}
	if debug.Graph() {
		debug.Logf("mutating shared %s node with %d parents", y.Type, len(y.parents))
	}
}
