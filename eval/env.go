package eval

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/convert"
	"github.com/signadot/jsondoc/ir"
)

// DocVar names the variable holding the whole document.
const DocVar = "doc"

type Env map[string]any

// EnvFor builds the environment of expressions evaluated against doc.
// A member named like DocVar takes precedence over the document.
func EnvFor(doc *ir.Node, reg *convert.Registry) Env {
	env := Env{DocVar: Value(doc, reg)}
	if doc != nil && doc.Type == ir.ObjectType {
		for i, f := range doc.Fields {
			env[f] = Value(doc.Values[i], reg)
		}
	}
	return env
}

// Value converts n to the Go value an expression sees. Integers that fit
// become int, other numbers float64, which may lose precision.
func Value(n *ir.Node, reg *convert.Registry) any {
	return exprValue(reg.ToAny(n))
}

func exprValue(v any) any {
	switch x := v.(type) {
	case int64:
		if int64(int(x)) == x {
			return int(x)
		}
		return x
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case decimal.Decimal:
		return ir.NewDecimal(x).Float64()
	case []any:
		for i := range x {
			x[i] = exprValue(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = exprValue(x[k])
		}
		return x
	}
	return v
}
