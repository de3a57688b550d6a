package encode

import (
	"bytes"

	"github.com/signadot/jsondoc/ir"
)

// MustString returns the compact encoding of node, panicking on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
