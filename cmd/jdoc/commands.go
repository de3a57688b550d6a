package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "jdoc").
		WithSynopsis("jdoc [opts] command [opts]").
		WithDescription("jdoc is a tool for working with JSON documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jdocMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			CheckCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			EvalCommand(cfg),
			PackCommand(cfg),
			UnpackCommand(cfg))
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [files]").
		WithDescription("parse and re-encode documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtCmd(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-max n] [files]").
		WithDescription("report every syntax error in documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-key name] a b").
		WithDescription("print the JSON patch turning a into b; exit 1 if they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [-merge] <patchfile> [files]").
		WithDescription("apply a JSON patch to documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchCmd(cfg, cc, args)
		})
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Eval, "eval").
		WithAliases("e", "ev").
		WithSynopsis("eval <expr> [files] | eval -x [files]").
		WithDescription("evaluate an expression against documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return evalCmd(cfg, cc, args)
		})
}

func PackCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PackConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Pack, "pack").
		WithSynopsis("pack [-codec c] <in> <out>").
		WithDescription("store a document compressed; the codec defaults from the extension of out").
		WithOpts(&cli.Opt{
			Name:        "codec",
			Description: "none, gzip, zstd, snappy or lz4",
			Type:        cli.NamedFuncOpt(cfg.codecOpt, "(codec)"),
		}).
		WithRun(func(cc *cli.Context, args []string) error {
			return pack(cfg, cc, args)
		})
}

func UnpackCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UnpackConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Unpack, "unpack").
		WithSynopsis("unpack <file>").
		WithDescription("decode a compressed document; the codec comes from the extension").
		WithRun(func(cc *cli.Context, args []string) error {
			return unpack(cfg, cc, args)
		})
}
