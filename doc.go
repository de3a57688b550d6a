// Package jsondoc is the entry point to working with JSON documents as
// ordered trees.
//
// Documents are read with [github.com/signadot/jsondoc/parse.Parse] into
// [ir.Node] trees and written with
// [github.com/signadot/jsondoc/encode.Encode]. This package composes the
// lower level packages: [Diff] and [Patch] compare and transform
// documents, and [Tool] expands the expressions embedded in them.
package jsondoc
