package main

import (
	"fmt"
	"io"

	"github.com/signadot/jsondoc/convert"
	"github.com/signadot/jsondoc/eval"
	"github.com/signadot/jsondoc/ir"

	"github.com/scott-cotton/cli"
)

func evalCmd(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	src := ""
	if !cfg.Expand {
		if len(args) == 0 {
			return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
		}
		src, args = args[0], args[1:]
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	reg, err := convert.New()
	if err != nil {
		return err
	}
	for _, file := range args {
		doc, err := getObjFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := evalDoc(cfg, cc.Out, doc, src, reg); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

func evalDoc(cfg *EvalConfig, w io.Writer, doc *ir.Node, src string, reg *convert.Registry) error {
	var (
		res *ir.Node
		err error
	)
	if cfg.Expand {
		res, err = eval.Expand(doc, reg)
	} else {
		res, err = eval.Eval(doc, src, reg)
	}
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, w, res)
}
