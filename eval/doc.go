// Package eval evaluates expressions against documents.
//
// Expressions use the github.com/expr-lang/expr language. The members of
// an object document are variables of the expression, and the whole
// document is available as doc:
//
//	res, err := eval.Eval(node, `len(items) > 0 && doc.name != ""`, nil)
//
// Strings may embed expressions as $[expr] or .[expr]; Expand replaces
// them throughout a document.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/convert - conversions of values in
//     and out of expressions
package eval
