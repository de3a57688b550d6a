// Package patch applies JSON patches to documents.
//
// Apply handles RFC 6902 patches such as those produced by package
// libdiff, and Merge handles RFC 7386 merge patches. Both work on a copy:
// the document passed in is never modified. Object members keep the
// order they had in the original document; new members come last.
package patch
