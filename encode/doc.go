// Package encode encodes IR nodes to JSON text.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "age", Val: ir.FromInt(30)},
//	})
//	err := encode.Encode(node, os.Stdout)                     // {"name":"alice","age":30}
//	err = encode.Encode(node, os.Stdout, encode.Pretty(true)) // one member per line
//
// Object members are written in insertion order. Numbers are written in
// their canonical form (see [ir.Number.String]), so a document parsed and
// encoded again keeps every digit.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/ir - IR representation
//   - github.com/signadot/jsondoc/parse - Parse text to IR
package encode
