// Package textbundle keeps translations of a text in a document.
//
// A bundle is an ordinary object such as
//
//	{"en":"Hello","fr":"Bonjour","pt-BR":"Olá"}
//
// so it can be parsed, encoded, diffed and patched like any other
// document. Lookup picks the best translation for a list of preferred
// languages using golang.org/x/text/language matching.
package textbundle
