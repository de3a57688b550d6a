package main

import (
	"fmt"
	"io"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
	"github.com/signadot/jsondoc/store"

	"github.com/scott-cotton/cli"
)

// getObjFile reads the document at path, decompressing it according to
// its extension. The path "-" reads uncompressed input from cc.In.
func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	if path != "-" {
		return store.ReadFile(path, opts...)
	}
	return readObj(cc.In, opts...)
}

func readObj(r io.Reader, opts ...parse.ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return parse.Parse(d, opts...)
}
