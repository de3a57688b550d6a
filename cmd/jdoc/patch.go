package main

import (
	"fmt"
	"io"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/patch"

	"github.com/scott-cotton/cli"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	p, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding patch %s: %w", args[0], err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		doc, err := getObjFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := patchDoc(cfg, cc.Out, doc, p); err != nil {
			return fmt.Errorf("error patching %s: %w", file, err)
		}
	}
	return nil
}

func patchDoc(cfg *PatchConfig, w io.Writer, doc, p *ir.Node) error {
	apply := patch.Apply
	if cfg.Merge {
		apply = patch.Merge
	}
	res, err := apply(doc, p)
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, w, res)
}
