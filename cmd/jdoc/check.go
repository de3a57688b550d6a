package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/jsondoc/parse"
	"github.com/signadot/jsondoc/store"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	bad := 0
	for _, file := range args {
		d, err := readRaw(cc.In, file)
		if err != nil {
			return err
		}
		bad += checkBytes(cfg, cc.Out, file, d)
	}
	if bad != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// readRaw returns the decompressed bytes of path, or of in when path
// is "-".
func readRaw(in io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(in)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := store.NewReader(f, store.CodecForPath(path))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, &store.CompressionError{Codec: store.CodecForPath(path), Op: "decompress", Err: err}
	}
	return d, nil
}

// checkBytes parses d, recovering from every error, and writes one line
// per error. It returns the number of errors found.
func checkBytes(cfg *CheckConfig, w io.Writer, name string, d []byte) int {
	c := &parse.Collector{Max: cfg.Max}
	opts := append(cfg.parseOpts(), parse.WithErrorHandler(c))
	_, err := parse.Parse(d, opts...)
	errs := c.Errors()
	if len(errs) == 0 && err != nil {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return 1
	}
	for _, e := range errs {
		if e.Pos == nil {
			fmt.Fprintf(w, "%s: %v\n", name, e)
			continue
		}
		line, col := e.Pos.LineCol()
		fmt.Fprintf(w, "%s:%d:%d: %v\n", name, line, col, e)
	}
	return len(errs)
}
