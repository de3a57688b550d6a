package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	line, col     int
	depth, indent int
	pretty        bool
	control       bool
	trailingNL    bool

	// containers on the path from the root, to refuse cyclic input built
	// by hand outside the attach API.
	path map[*ir.Node]struct{}

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
		path:   map[*ir.Node]struct{}{},
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	if es.trailingNL {
		return writeString(w, "\n")
	}
	return nil
}

// Marshal returns the encoding of node.
func Marshal(node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNL(w io.Writer, es *EncState) error {
	if !es.pretty {
		return nil
	}
	if es.col == 0 {
		return nil
	}
	indentString := strings.Repeat(" ", es.indent*es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.line++
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}

// write emits v, colored for (t, attr), and advances the column by the
// width of the uncolored text.
func write(w io.Writer, es *EncState, t ir.Type, attr ColorAttr, v string) error {
	es.col += len(v)
	return writeString(w, applyColor(es, t, attr, v))
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return fmt.Errorf("%w: %w", ErrEncoding, ir.ErrNilNode)
	}
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		return encodeString(node, w, es)
	case ir.NumberType:
		return encodeNumber(node, w, es)
	case ir.BoolType:
		return encodeBool(node, w, es)
	case ir.NullType:
		return write(w, es, ir.NullType, ValueColor, "null")
	case ir.KeywordType, ir.RawType:
		return write(w, es, node.Type, ValueColor, node.String)
	default:
		return fmt.Errorf("%w: unknown node type %d", ErrEncoding, node.Type)
	}
}

func enter(node *ir.Node, es *EncState) error {
	if _, ok := es.path[node]; ok {
		return fmt.Errorf("%w: %w: %s contains itself", ErrEncoding, ir.ErrCycle, node.Type)
	}
	es.path[node] = struct{}{}
	return nil
}

func leave(node *ir.Node, es *EncState) {
	delete(es.path, node)
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: object has %d fields and %d values", ErrEncoding, len(node.Fields), len(node.Values))
	}
	if err := enter(node, es); err != nil {
		return err
	}
	defer leave(node, es)
	n := len(node.Fields)
	if err := writeOpen(w, es, ir.ObjectType, "{", n); err != nil {
		return err
	}
	for i, field := range node.Fields {
		if i > 0 {
			if err := write(w, es, ir.ObjectType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, field, es); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	return writeClose(w, es, ir.ObjectType, "}", n)
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := enter(node, es); err != nil {
		return err
	}
	defer leave(node, es)
	n := len(node.Values)
	if err := writeOpen(w, es, ir.ArrayType, "[", n); err != nil {
		return err
	}
	for i, v := range node.Values {
		if i > 0 {
			if err := write(w, es, ir.ArrayType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	return writeClose(w, es, ir.ArrayType, "]", n)
}

func writeOpen(w io.Writer, es *EncState, t ir.Type, open string, n int) error {
	if err := write(w, es, t, SepColor, open); err != nil {
		return err
	}
	if n != 0 {
		es.depth++
	}
	return nil
}

func writeClose(w io.Writer, es *EncState, t ir.Type, close string, n int) error {
	if n != 0 {
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	return write(w, es, t, SepColor, close)
}

func writeField(w io.Writer, f string, es *EncState) error {
	if err := write(w, es, ir.ObjectType, FieldColor, quote(f, es)); err != nil {
		return err
	}
	sep := ":"
	if es.pretty {
		sep = ": "
	}
	return write(w, es, ir.ObjectType, SepColor, sep)
}

func quote(v string, es *EncState) string {
	if es.control {
		return token.QuoteControl(v)
	}
	return token.Quote(v)
}

func encodeString(node *ir.Node, w io.Writer, es *EncState) error {
	return write(w, es, ir.StringType, ValueColor, quote(node.String, es))
}

func encodeNumber(node *ir.Node, w io.Writer, es *EncState) error {
	if node.Number == nil {
		return fmt.Errorf("%w: number node without a value", ErrEncoding)
	}
	return write(w, es, ir.NumberType, ValueColor, node.Number.String())
}

func encodeBool(node *ir.Node, w io.Writer, es *EncState) error {
	v := "false"
	if node.Bool {
		v = "true"
	}
	return write(w, es, ir.BoolType, ValueColor, v)
}
