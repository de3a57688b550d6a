package main

import (
	"fmt"
	"io"

	"github.com/signadot/jsondoc/store"

	"github.com/scott-cotton/cli"
)

func pack(cfg *PackConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Pack.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: pack requires 2 args, got %v", cli.ErrUsage, args)
	}
	doc, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	codec := cfg.Codec
	if !cfg.codecSet {
		codec = store.CodecForPath(args[1])
	}
	return store.WriteFile(args[1], doc, codec)
}

func unpack(cfg *UnpackConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unpack.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: unpack requires 1 arg, got %v", cli.ErrUsage, args)
	}
	return unpackTo(cfg, cc.Out, args[0])
}

func unpackTo(cfg *UnpackConfig, w io.Writer, path string) error {
	doc, err := store.ReadFile(path, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, w, doc)
}
