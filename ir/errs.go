package ir

import (
	"errors"
	"fmt"
)

var (
	ErrNumber    = errors.New("bad number")
	ErrNotFound  = errors.New("not found")
	ErrWrongType = errors.New("wrong type")
	ErrCycle     = errors.New("cycle")
	ErrIndex     = errors.New("index out of range")
	ErrNilNode   = errors.New("nil node")
	ErrEmptyName = errors.New("empty name")
	ErrPointer   = errors.New("bad pointer")
)

// TypeMismatchError is returned by the Require* accessors when a value
// exists but has a different type than requested.
type TypeMismatchError struct {
	Name     string
	Expected Type
	Actual   Type
	Detail   string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	if e.Detail != "" {
		msg = e.Detail
	}
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", ErrWrongType, msg)
	}
	return fmt.Sprintf("%s at %q: %s", ErrWrongType, e.Name, msg)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrWrongType
}

// CycleError is returned when attaching Child under Parent would make
// Parent reachable from itself.
type CycleError struct {
	Parent, Child *Node
	Self          bool
}

func (e *CycleError) Error() string {
	if e.Self {
		return fmt.Sprintf("%s: cannot attach %s node to itself", ErrCycle, e.Child.Type)
	}
	return fmt.Sprintf("%s: attached %s node already reaches its new %s parent",
		ErrCycle, e.Child.Type, e.Parent.Type)
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}
