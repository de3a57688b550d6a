package eval

import (
	"os"

	"github.com/signadot/jsondoc/convert"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"

	"github.com/expr-lang/expr"
)

func exprOpts(doc *ir.Node, reg *convert.Registry) []expr.Option {
	return []expr.Option{
		expr.Function("lookup", func(params ...any) (any, error) {
			n, err := doc.GetPointer(params[0].(string))
			if err != nil {
				return nil, err
			}
			return Value(n, reg), nil
		},
			new(func(string) any)),
		expr.Function("exists", func(params ...any) (any, error) {
			_, err := doc.GetPointer(params[0].(string))
			return err == nil, nil
		},
			new(func(string) bool)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("tojson", func(params ...any) (any, error) {
			n, err := reg.ToNode(params[0])
			if err != nil {
				return nil, err
			}
			d, err := encode.Marshal(n)
			if err != nil {
				return nil, err
			}
			return string(d), nil
		},
			new(func(any) string)),
		expr.Function("fromjson", func(params ...any) (any, error) {
			n, err := parse.Parse([]byte(params[0].(string)))
			if err != nil {
				return nil, err
			}
			return Value(n, reg), nil
		},
			new(func(string) any)),
	}
}
