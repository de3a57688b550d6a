// Package libdiff computes structural differences between documents.
//
// Differences are expressed as RFC 6902 JSON patches, so they can be
// stored as documents themselves and applied with package patch or any
// other JSON patch implementation:
//
//	p := libdiff.Diff(oldNode, newNode)
//	patched, err := patch.Apply(oldNode, p)
//
// Object members and array elements are aligned with a sequence diff
// (github.com/sergi/go-diff) rather than by position, so an insertion
// near the front of an array is a single add and not a cascade of
// replacements.
package libdiff
