package parse

import (
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
)

// NullMode says what happens to an object property whose value is null.
type NullMode int

const (
	// KeepNulls retains the property with a Null value.
	KeepNulls NullMode = iota
	// DropNulls leaves the property out of the object.
	DropNulls
)

const DefaultMaxDepth = 10000

type parseOpts struct {
	unquotedKeys bool
	controlChars bool
	nulls        NullMode
	handler      ErrorHandler
	positions    map[*ir.Node]*token.Pos
	maxDepth     int
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{
		handler:  LogAndAbort(),
		maxDepth: DefaultMaxDepth,
	}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

func (o *parseOpts) TokenizeOpts() []token.TokenOpt {
	res := []token.TokenOpt{}
	if o.unquotedKeys {
		res = append(res, token.TokenUnquotedKeys())
	}
	if o.controlChars {
		res = append(res, token.TokenControlChars())
	}
	return res
}

type ParseOption func(*parseOpts)

// UnquotedKeys accepts bare identifiers as object keys.
func UnquotedKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.unquotedKeys = v }
}

// ControlChars accepts raw control characters inside strings.
func ControlChars(v bool) ParseOption {
	return func(o *parseOpts) { o.controlChars = v }
}

// NullProperties selects how null valued object properties are treated.
// The default is KeepNulls.
func NullProperties(m NullMode) ParseOption {
	return func(o *parseOpts) { o.nulls = m }
}

// Lenient turns on every relaxation: unquoted keys, raw control
// characters and dropping of null properties.
func Lenient() ParseOption {
	return func(o *parseOpts) {
		o.unquotedKeys = true
		o.controlChars = true
		o.nulls = DropNulls
	}
}

func WithErrorHandler(h ErrorHandler) ParseOption {
	return func(o *parseOpts) {
		if h == nil {
			h = LogAndAbort()
		}
		o.handler = h
	}
}

// Positions records the start position of every parsed node in m.
func Positions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// MaxDepth bounds array and object nesting.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}
