// Package token provides tokenization of JSON text.
//
// [Tokenize] turns a fully buffered document into a slice of [Token]s,
// each carrying its start and end [Pos]. Strict RFC 8259 lexing is the
// default; [TokenUnquotedKeys] and [TokenControlChars] relax it.
//
// [Quote] and [Unquote] convert between Go strings and JSON string
// literals.
package token
