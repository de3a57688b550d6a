package ir

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func num(lit string) *Node {
	n, err := ParseNumber(lit)
	if err != nil {
		panic(err)
	}
	return FromNumber(n)
}

func TestEqualIgnoresFieldOrder(t *testing.T) {
	a := FromKeyVals([]KeyVal{{Key: "x", Val: FromInt(1)}, {Key: "y", Val: FromString("s")}})
	b := FromKeyVals([]KeyVal{{Key: "y", Val: FromString("s")}, {Key: "x", Val: FromInt(1)}})
	if !Equal(a, b) {
		t.Error("field order affects equality")
	}
	if Compare(a, b) != 0 {
		t.Error("field order affects comparison")
	}
	if a.Hash() != b.Hash() {
		t.Error("field order affects hash")
	}
	c := FromKeyVals([]KeyVal{{Key: "x", Val: FromInt(1)}, {Key: "z", Val: FromString("s")}})
	if Equal(a, c) {
		t.Error("different names are equal")
	}
}

func TestEqualArrayOrder(t *testing.T) {
	a := FromSlice([]*Node{FromInt(1), FromInt(2)})
	b := FromSlice([]*Node{FromInt(2), FromInt(1)})
	if Equal(a, b) {
		t.Error("array order ignored")
	}
}

func TestCompareOrder(t *testing.T) {
	sorted := []*Node{
		Null(),
		FromBool(false),
		FromBool(true),
		num("-1.5"),
		FromInt(1),
		num("1.0"),
		num("10000000000000000000000"),
		FromString(""),
		FromString("a"),
		FromSlice(nil),
		FromSlice([]*Node{Null()}),
		FromKeyVals(nil),
		FromKeyVals([]KeyVal{{Key: "a", Val: Null()}}),
		Keyword("k"),
		Raw("r"),
	}
	shuffled := slices.Clone(sorted)
	slices.Reverse(shuffled)
	slices.SortFunc(shuffled, Compare)
	for i := range sorted {
		if shuffled[i] != sorted[i] {
			t.Errorf("position %d: got %s", i, shuffled[i].Type)
		}
	}
	for i := range sorted {
		for j := range sorted {
			if (Compare(sorted[i], sorted[j]) == 0) != Equal(sorted[i], sorted[j]) {
				t.Errorf("Compare and Equal disagree on %d, %d", i, j)
			}
		}
	}
}

func TestHashDistinguishes(t *testing.T) {
	nodes := []*Node{
		Null(), FromBool(false), FromBool(true), FromInt(0), num("0.0"),
		FromString(""), FromString("0"), FromSlice(nil), FromKeyVals(nil),
		FromSlice([]*Node{FromInt(1), FromInt(2)}), FromSlice([]*Node{FromInt(2), FromInt(1)}),
	}
	seen := map[uint64]int{}
	for i, n := range nodes {
		h := n.Hash()
		if j, ok := seen[h]; ok {
			t.Errorf("nodes %d and %d collide", i, j)
		}
		seen[h] = i
	}
	if num("1.50").Hash() != num("1.5").Hash() {
		t.Error("equal decimals hash differently")
	}
}

func TestGetters(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "s", Val: FromString("str")},
		{Key: "b", Val: FromBool(true)},
		{Key: "i", Val: FromInt(42)},
		{Key: "f", Val: num("2.5")},
		{Key: "big", Val: num("99999999999999999999")},
		{Key: "o", Val: FromKeyVals(nil)},
		{Key: "a", Val: FromSlice(nil)},
	})
	if v, ok := obj.GetString("s"); !ok || v != "str" {
		t.Errorf("GetString %q %v", v, ok)
	}
	if _, ok := obj.GetString("b"); ok {
		t.Error("GetString on bool")
	}
	if v, ok := obj.GetBool("b"); !ok || !v {
		t.Error("GetBool")
	}
	if v, ok := obj.GetInt64("i"); !ok || v != 42 {
		t.Errorf("GetInt64 %d %v", v, ok)
	}
	if _, ok := obj.GetInt64("f"); ok {
		t.Error("GetInt64 on fraction")
	}
	if v, ok := obj.GetFloat64("f"); !ok || v != 2.5 {
		t.Errorf("GetFloat64 %v %v", v, ok)
	}
	if v, ok := obj.GetBigInt("big"); !ok || v.String() != "99999999999999999999" {
		t.Errorf("GetBigInt %v %v", v, ok)
	}
	if v, ok := obj.GetDecimal("f"); !ok || v.String() != "2.5" {
		t.Errorf("GetDecimal %v %v", v, ok)
	}
	if _, ok := obj.GetObject("o"); !ok {
		t.Error("GetObject")
	}
	if _, ok := obj.GetArray("o"); ok {
		t.Error("GetArray on object")
	}
	if _, ok := obj.GetString("missing"); ok {
		t.Error("GetString on missing")
	}
	if _, ok := FromInt(1).GetString("s"); ok {
		t.Error("GetString on non-object")
	}
}

func TestRequire(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "s", Val: FromString("str")},
		{Key: "big", Val: num("99999999999999999999")},
	})
	if v, err := obj.RequireString("s"); err != nil || v != "str" {
		t.Errorf("RequireString %q %v", v, err)
	}
	if _, err := obj.RequireString("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: %v", err)
	}
	_, err := obj.RequireBool("s")
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("wrong type: %v", err)
	}
	want := &TypeMismatchError{Name: "s", Expected: BoolType, Actual: StringType}
	if diff := cmp.Diff(want, tm); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := obj.RequireInt64("big"); !errors.Is(err, ErrWrongType) {
		t.Errorf("big as int64: %v", err)
	}
	if _, err := obj.RequireObject("s"); !errors.Is(err, ErrWrongType) {
		t.Errorf("RequireObject: %v", err)
	}
}

func TestPointer(t *testing.T) {
	doc := FromKeyVals([]KeyVal{
		{Key: "a/b", Val: FromSlice([]*Node{FromInt(0), FromKeyVals([]KeyVal{{Key: "~x", Val: FromString("hit")}})})},
	})
	p := Pointer{}.Field("a/b").Elem(1).Field("~x")
	if got, want := p.String(), "/a~1b/1/~0x"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	back, err := ParsePointer(p.String())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	n, err := doc.Resolve(p)
	if err != nil {
		t.Fatal(err)
	}
	if n.String != "hit" {
		t.Errorf("got %s", n.String)
	}
	root, err := doc.GetPointer("")
	if err != nil || root != doc {
		t.Errorf("empty pointer: %v", err)
	}
	for s, target := range map[string]error{
		"nope":      ErrPointer,
		"/missing":  ErrNotFound,
		"/a~1b/7":   ErrIndex,
		"/a~1b/x":   ErrIndex,
		"/a~1b/0/y": ErrWrongType,
	} {
		if _, err := doc.GetPointer(s); !errors.Is(err, target) {
			t.Errorf("%s: got %v want %v", s, err, target)
		}
	}
}
