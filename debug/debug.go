// Package debug holds environment controlled debug switches and the
// logger they write to.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Graph   bool
	Convert bool
	Store   bool
	Eval    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("JSONDOC_DEBUG_PARSE")
	d.Graph = boolEnv("JSONDOC_DEBUG_GRAPH")
	d.Convert = boolEnv("JSONDOC_DEBUG_CONVERT")
	d.Store = boolEnv("JSONDOC_DEBUG_STORE")
	d.Eval = boolEnv("JSONDOC_DEBUG_EVAL")
	if boolEnv("JSONDOC_DEBUG") {
		d.Parse, d.Graph, d.Convert, d.Store, d.Eval = true, true, true, true, true
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Graph() bool {
	return d.Graph
}
func Convert() bool {
	return d.Convert
}
func Store() bool {
	return d.Store
}
func Eval() bool {
	return d.Eval
}
