package convert

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/signadot/jsondoc/ir"
)

var (
	// ErrNoConverter means neither a registered converter nor the built-in
	// rules apply to a type.
	ErrNoConverter = errors.New("no converter found")
	// ErrConversionFailed means a converter ran but produced no usable
	// result.
	ErrConversionFailed = errors.New("conversion failed")
	// ErrAlreadyRegistered is returned by Register for a type that already
	// has a converter. Use Replace to override it.
	ErrAlreadyRegistered = errors.New("converter already registered")
	ErrInvalidConverter  = errors.New("invalid converter")
	ErrTarget            = errors.New("conversion target must be a non-nil pointer")
)

// ConvertError locates a conversion failure within the value being
// converted.
type ConvertError struct {
	Path    ir.Pointer
	Type    reflect.Type
	Message string
	Err     error
}

func (e *ConvertError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	typ := "<nil>"
	if e.Type != nil {
		typ = e.Type.String()
	}
	if len(e.Path) != 0 {
		return fmt.Sprintf("convert %s at %s: %s", typ, e.Path, msg)
	}
	return fmt.Sprintf("convert %s: %s", typ, msg)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func convErr(path ir.Pointer, t reflect.Type, err error, format string, args ...any) *ConvertError {
	return &ConvertError{
		Path:    path,
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
