// Package parse parses JSON text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`{"name": "alice", "age": 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// accept unquoted keys and raw control characters, drop null properties
//	node, err = parse.Parse(data, parse.Lenient())
//
//	// report every problem instead of stopping at the first
//	c := &parse.Collector{}
//	_, _ = parse.Parse(data, parse.WithErrorHandler(c))
//	for _, e := range c.Errors() {
//	    fmt.Println(e)
//	}
//
// Numbers are stored in the narrowest exact kind (see [ir.ParseNumber]).
// Objects keep their member order; a repeated name replaces the earlier
// value in place.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/ir - IR representation
//   - github.com/signadot/jsondoc/encode - Encode IR to text
//   - github.com/signadot/jsondoc/token - Tokenization
package parse
