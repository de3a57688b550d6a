package eval

import (
	"context"
	"errors"
	"fmt"

	"github.com/signadot/jsondoc/convert"
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrEval = errors.New("evaluation error")

// Eval evaluates src against doc and converts the result back to a node
// with reg, which may be nil. Besides the variables of EnvFor, src can
// call lookup(pointer), exists(pointer), getenv(name), tojson(v) and
// fromjson(s).
func Eval(doc *ir.Node, src string, reg *convert.Registry) (*ir.Node, error) {
	if doc == nil {
		return nil, ir.ErrNilNode
	}
	v, err := run(doc, src, EnvFor(doc, reg), reg)
	if err != nil {
		return nil, err
	}
	res, err := reg.ToNode(v)
	if err != nil {
		return nil, fmt.Errorf("%w: result of %q: %w", ErrEval, src, err)
	}
	return res, nil
}

// EvalContext is Eval with the registry carried by ctx.
func EvalContext(ctx context.Context, doc *ir.Node, src string) (*ir.Node, error) {
	return Eval(doc, src, convert.FromContext(ctx))
}

func run(doc *ir.Node, src string, env Env, reg *convert.Registry) (any, error) {
	prg, err := expr.Compile(src, exprOpts(doc, reg)...)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %w", ErrEval, src, err)
	}
	v, err := vm.Run(prg, env)
	if err != nil {
		return nil, fmt.Errorf("%w: evaluating %q: %w", ErrEval, src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v", src, v)
	}
	return v, nil
}
