package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType

	// KeywordType and RawType are legacy raw values. They are written
	// verbatim by the encoder and can never be produced by the parser.
	KeywordType
	RawType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType:  "Object",
		ArrayType:   "Array",
		StringType:  "String",
		NumberType:  "Number",
		BoolType:    "Bool",
		NullType:    "Null",
		KeywordType: "Keyword",
		RawType:     "Raw",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":    NullType,
		"Bool":    BoolType,
		"Number":  NumberType,
		"String":  StringType,
		"Array":   ArrayType,
		"Object":  ObjectType,
		"Keyword": KeywordType,
		"Raw":     RawType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ArrayType,
		ObjectType,
		KeywordType,
		RawType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}

// IsLegacy reports whether values of type t are excluded from the
// parse/encode round trip.
func (t Type) IsLegacy() bool {
	return t == KeywordType || t == RawType
}
