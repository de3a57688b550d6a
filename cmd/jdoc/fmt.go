package main

import (
	"fmt"
	"io"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"

	"github.com/scott-cotton/cli"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		doc, err := getObjFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, doc); err != nil {
			return err
		}
	}
	return nil
}

func writeDoc(cfg *MainConfig, w io.Writer, doc *ir.Node) error {
	return encode.Encode(doc, w, cfg.encOpts(w)...)
}
