package main

import (
	"fmt"
	"io"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffInputs writes the patch from a to b, if there is one, and reports
// whether a and b differ.
func diffInputs(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	d := libdiff.Diff(a, b, cfg.diffOpts()...)
	if len(d.Values) == 0 {
		return false, nil
	}
	if err := encode.Encode(d, w, cfg.encOpts(w)...); err != nil {
		return false, err
	}
	return true, nil
}
