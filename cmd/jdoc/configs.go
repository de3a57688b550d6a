package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/libdiff"
	"github.com/signadot/jsondoc/parse"
	"github.com/signadot/jsondoc/store"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	P       bool `cli:"name=p aliases=pretty desc='pretty print output'"`
	Indent  int  `cli:"name=indent desc='indentation width of pretty output'"`
	Color   bool `cli:"name=color desc='encode with color'"`
	Lenient bool `cli:"name=lenient desc='accept unquoted keys and raw control characters, drop null members'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if cfg.Lenient {
		return []parse.ParseOption{parse.Lenient()}
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.Pretty(cfg.P),
		encode.TrailingNewline(true),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return res
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type FmtConfig struct {
	*MainConfig

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Max int `cli:"name=max desc='stop after this many errors per file'"`

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Key string `cli:"name=key desc='align arrays of objects by this member'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) diffOpts() []libdiff.DiffOption {
	if cfg.Key == "" {
		return nil
	}
	return []libdiff.DiffOption{libdiff.ArrayKey(cfg.Key)}
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='patch is an RFC 7386 merge patch'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Expand bool `cli:"name=x aliases=expand desc='expand embedded expressions instead of evaluating one'"`

	Eval *cli.Command
}

type PackConfig struct {
	*MainConfig
	Codec    store.Codec
	codecSet bool

	Pack *cli.Command
}

func (cfg *PackConfig) codecOpt(_ *cli.Context, a string) (any, error) {
	c, err := store.ParseCodec(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Codec = c
	cfg.codecSet = true
	return c, nil
}

type UnpackConfig struct {
	*MainConfig

	Unpack *cli.Command
}
