package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Pointer is a parsed RFC 6901 JSON pointer. The empty pointer refers to
// the whole document.
type Pointer []string

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")
var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: %q must start with /", ErrPointer, s)
	}
	parts := strings.Split(s[1:], "/")
	for i, p := range parts {
		parts[i] = pointerUnescaper.Replace(p)
	}
	return Pointer(parts), nil
}

func (p Pointer) String() string {
	b := &strings.Builder{}
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(tok))
	}
	return b.String()
}

// Field returns a new pointer extending p by an object field.
func (p Pointer) Field(name string) Pointer {
	res := make(Pointer, len(p), len(p)+1)
	copy(res, p)
	return append(res, name)
}

// Elem returns a new pointer extending p by an array index.
func (p Pointer) Elem(i int) Pointer {
	return p.Field(strconv.Itoa(i))
}

// GetPointer navigates y using the JSON pointer s.
func (y *Node) GetPointer(s string) (*Node, error) {
	p, err := ParsePointer(s)
	if err != nil {
		return nil, err
	}
	return y.Resolve(p)
}

func (y *Node) Resolve(p Pointer) (*Node, error) {
	res := y
	for i, tok := range p {
		switch res.Type {
		case ObjectType:
			next := res.Get(tok)
			if next == nil {
				return nil, fmt.Errorf("%w: field %q at %s", ErrNotFound, tok, p[:i])
			}
			res = next
		case ArrayType:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(res.Values) {
				return nil, fmt.Errorf("%w: index %q at %s (len %d)", ErrIndex, tok, p[:i], len(res.Values))
			}
			res = res.Values[idx]
		default:
			return nil, &TypeMismatchError{Name: p[:i].String(), Expected: ObjectType, Actual: res.Type,
				Detail: fmt.Sprintf("cannot index %s with %q", res.Type, tok)}
		}
	}
	return res, nil
}
