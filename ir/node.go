package ir

import (
	"fmt"
	"maps"
	"slices"
)

type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String string
	Bool   bool
	Number *Number

	// parents and children record edges made by attaching without
	// cloning. They are bookkeeping for the cycle guard and carry no
	// document content.
	parents  []*Node
	children []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return FromNumber(NewInt(v))
}

func FromNumber(n *Number) *Node {
	return &Node{
		Type:   NumberType,
		Number: n,
	}
}

// Keyword returns a legacy raw token value. It is written unescaped and
// does not survive a round trip through the parser.
func Keyword(v string) *Node {
	return &Node{Type: KeywordType, String: v}
}

// Raw returns a legacy raw code value, written verbatim.
func Raw(v string) *Node {
	return &Node{Type: RawType, String: v}
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object in the order of kvs. A repeated key
// replaces the earlier value in place. The values are owned by the result.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]string, 0, len(kvs))
	res.Values = make([]*Node, 0, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if j := res.Index(kv.Key); j != -1 {
			res.Values[j] = kv.Val
			continue
		}
		res.Fields = append(res.Fields, kv.Key)
		res.Values = append(res.Values, kv.Val)
	}
	return res
}

// FromMap builds an object with sorted keys.
func FromMap(m map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = KeyVal{Key: k, Val: m[k]}
	}
	return FromKeyVals(kvs)
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	copy(res.Values, vs)
	return res
}

func (y *Node) Len() int {
	return len(y.Values)
}

// Index returns the position of field name in an object, or -1.
func (y *Node) Index(name string) int {
	if y.Type != ObjectType {
		return -1
	}
	return slices.Index(y.Fields, name)
}

func (y *Node) Has(name string) bool {
	return y.Index(name) != -1
}

// Get returns the value of field name, or nil when y is not an object or
// has no such field.
func (y *Node) Get(name string) *Node {
	i := y.Index(name)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// At returns the i'th array element, or nil.
func (y *Node) At(i int) *Node {
	if y.Type != ArrayType || i < 0 || i >= len(y.Values) {
		return nil
	}
	return y.Values[i]
}

// Set assigns v to field name. An existing field keeps its position.
func (y *Node) Set(name string, v *Node, mode CloneMode) error {
	if err := y.expect(ObjectType); err != nil {
		return err
	}
	if name == "" {
		return ErrEmptyName
	}
	v, err := y.adopt(v, mode)
	if err != nil {
		return err
	}
	y.mutated()
	if i := y.Index(name); i != -1 {
		unlink(y, y.Values[i])
		y.Values[i] = v
		return nil
	}
	y.Fields = append(y.Fields, name)
	y.Values = append(y.Values, v)
	return nil
}

// Remove deletes field name and returns its value, or nil if absent.
func (y *Node) Remove(name string) *Node {
	i := y.Index(name)
	if i == -1 {
		return nil
	}
	y.mutated()
	v := y.Values[i]
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	unlink(y, v)
	return v
}

func (y *Node) Append(v *Node, mode CloneMode) error {
	return y.Insert(len(y.Values), v, mode)
}

// Insert places v before the i'th element; i == Len() appends.
func (y *Node) Insert(i int, v *Node, mode CloneMode) error {
	if err := y.expect(ArrayType); err != nil {
		return err
	}
	if i < 0 || i > len(y.Values) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndex, i, len(y.Values))
	}
	v, err := y.adopt(v, mode)
	if err != nil {
		return err
	}
	y.mutated()
	y.Values = slices.Insert(y.Values, i, v)
	return nil
}

// SetAt replaces the i'th element.
func (y *Node) SetAt(i int, v *Node, mode CloneMode) error {
	if err := y.expect(ArrayType); err != nil {
		return err
	}
	if i < 0 || i >= len(y.Values) {
		return fmt.Errorf("%w: set at %d of %d", ErrIndex, i, len(y.Values))
	}
	v, err := y.adopt(v, mode)
	if err != nil {
		return err
	}
	y.mutated()
	unlink(y, y.Values[i])
	y.Values[i] = v
	return nil
}

// RemoveAt deletes and returns the i'th element, or nil if out of range.
func (y *Node) RemoveAt(i int) *Node {
	if y.Type != ArrayType || i < 0 || i >= len(y.Values) {
		return nil
	}
	y.mutated()
	v := y.Values[i]
	y.Values = slices.Delete(y.Values, i, i+1)
	unlink(y, v)
	return v
}

func (y *Node) expect(t Type) error {
	if y == nil {
		return ErrNilNode
	}
	if y.Type != t {
		return &TypeMismatchError{Expected: t, Actual: y.Type}
	}
	return nil
}

// Clone returns a fully independent copy of y. No sharing edges are
// copied, and a node reachable twice from y is copied twice.
func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
	}
	if y.Number != nil {
		res.Number = y.Number.Clone()
	}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
