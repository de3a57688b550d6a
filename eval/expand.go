package eval

import (
	"fmt"
	"strings"

	"github.com/signadot/jsondoc/convert"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
)

// Expand returns a copy of doc with embedded expressions evaluated
// against doc. A string that is a single .[expr] is replaced by the
// value of expr. Elsewhere $[expr] and .[expr] are replaced by the text
// of their value. Inside the brackets a backslash escapes the next
// character; an unterminated expression is kept as is.
func Expand(doc *ir.Node, reg *convert.Registry) (*ir.Node, error) {
	if doc == nil {
		return nil, ir.ErrNilNode
	}
	x := &expander{doc: doc, env: EnvFor(doc, reg), reg: reg}
	return x.node(doc)
}

// ExpandString expands the expressions embedded in s, evaluated against
// doc.
func ExpandString(s string, doc *ir.Node, reg *convert.Registry) (string, error) {
	if doc == nil {
		return "", ir.ErrNilNode
	}
	x := &expander{doc: doc, env: EnvFor(doc, reg), reg: reg}
	return x.text(s)
}

type expander struct {
	doc *ir.Node
	env Env
	reg *convert.Registry
}

func (x *expander) node(n *ir.Node) (*ir.Node, error) {
	switch n.Type {
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, len(n.Fields))
		for i, f := range n.Fields {
			v, err := x.node(n.Values[i])
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: f, Val: v}
		}
		return ir.FromKeyVals(kvs), nil
	case ir.ArrayType:
		vs := make([]*ir.Node, len(n.Values))
		for i, e := range n.Values {
			v, err := x.node(e)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return ir.FromSlice(vs), nil
	case ir.StringType:
		if src, ok := rawRef(n.String); ok {
			v, err := run(x.doc, src, x.env, x.reg)
			if err != nil {
				return nil, err
			}
			res, err := x.reg.ToNode(v)
			if err != nil {
				return nil, fmt.Errorf("%w: result of %q: %w", ErrEval, src, err)
			}
			return res, nil
		}
		s, err := x.text(n.String)
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	}
	return n.Clone(), nil
}

func (x *expander) text(v string) (string, error) {
	if !strings.Contains(v, "[") {
		return v, nil
	}
	out := &strings.Builder{}
	for i := 0; i < len(v); {
		c := v[i]
		if (c == '$' || c == '.') && i+1 < len(v) && v[i+1] == '[' {
			src, end, ok := scanExpr(v, i+2)
			if !ok {
				out.WriteString(v[i:])
				break
			}
			val, err := run(x.doc, src, x.env, x.reg)
			if err != nil {
				return "", err
			}
			s, err := x.valueText(val)
			if err != nil {
				return "", fmt.Errorf("%w: result of %q: %w", ErrEval, src, err)
			}
			out.WriteString(s)
			i = end
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String(), nil
}

func (x *expander) valueText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	n, err := x.reg.ToNode(v)
	if err != nil {
		return "", err
	}
	d, err := encode.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// scanExpr reads an expression from start up to the first unescaped ']'
// and returns it with the position following the bracket.
func scanExpr(v string, start int) (string, int, bool) {
	var b []byte
	for i := start; i < len(v); i++ {
		switch v[i] {
		case '\\':
			if i+1 < len(v) {
				i++
			}
			b = append(b, v[i])
		case ']':
			return strings.TrimSpace(string(b)), i + 1, true
		default:
			b = append(b, v[i])
		}
	}
	return "", 0, false
}

// rawRef reports whether s is exactly one .[expr].
func rawRef(s string) (string, bool) {
	if !strings.HasPrefix(s, ".[") {
		return "", false
	}
	src, end, ok := scanExpr(s, 2)
	if !ok || end != len(s) {
		return "", false
	}
	return src, true
}
