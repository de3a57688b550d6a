// Package ir provides the in-memory representation of JSON documents.
//
// # Overview
//
// A document is a tree of *Node values. The Type field tags which other
// fields are meaningful:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Number, an exact *Number
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: Fields and Values, where Fields[i] names Values[i]
//   - KeywordType, RawType: String, written verbatim by the encoder
//
// Object field names are unique and their order is kept. Setting an
// existing field replaces its value in place.
//
// # Numbers
//
// Numbers are never stored as binary floating point. ParseNumber picks the
// narrowest exact kind for a literal: Int32, then Int64, then BigInt for
// integers, and BigDecimal for anything with a fraction or exponent. Two
// numbers of different kinds are not Equal even if they have the same
// value; use the Int64, Float64, BigInt and Decimal views to coerce.
//
// # Sharing and cycles
//
// Attaching a value to a container either copies it or shares it,
// depending on a CloneMode:
//
//   - CloneForce copies, so the container stays a tree.
//   - CloneAvoid shares the value. The container records a sharing edge
//     and Attach refuses, with a *CycleError, any attachment that would
//     make a node reachable from itself.
//   - CloneInherit uses the process default set by SetDefaultCloneMode,
//     which starts as CloneForce.
//
// Mutating a node held by more than one container is allowed; it triggers
// the hook installed with SetSharedMutationHook.
//
// A tree may be read from several goroutines at once, but all mutations
// of one tree must come from a single goroutine at a time.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1)})},
//	})
//	err := obj.Set("age", ir.FromInt(30), ir.CloneInherit)
package ir
