package convert

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

type Base struct {
	ID int `json:"id"`
}

type sample struct {
	Name  string          `json:"name"`
	Count int             `json:"count,omitempty"`
	Tags  []string        `json:"tags"`
	Skip  string          `json:"-"`
	M     map[string]int  `json:"m"`
	Big   *big.Int        `json:"big"`
	Dec   decimal.Decimal `json:"dec"`
	F     float64         `json:"f"`
	Base
}

var bigCmp = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return n
}

func TestToNode(t *testing.T) {
	b, _ := new(big.Int).SetString("12345678901234567890123", 10)
	v := &sample{
		Name: "a",
		Tags: []string{"x"},
		Skip: "skipped",
		M:    map[string]int{"b": 2, "a": 1},
		Big:  b,
		Dec:  decimal.RequireFromString("1.50"),
		F:    0.1,
		Base: Base{ID: 7},
	}
	var r *Registry
	n, err := r.ToNode(v)
	if err != nil {
		t.Fatal(err)
	}
	got := encode.MustString(n)
	want := `{"name":"a","tags":["x"],"m":{"a":1,"b":2},"big":12345678901234567890123,"dec":1.5,"f":0.1,"id":7}`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestToNodeKinds(t *testing.T) {
	var r *Registry
	tests := []struct {
		in   any
		want string
	}{
		{nil, `null`},
		{true, `true`},
		{int8(-3), `-3`},
		{int64(1) << 40, `1099511627776`},
		{uint64(1) << 63, `9223372036854775808`},
		{float32(0.1), `0.1`},
		{2.0, `2.0`},
		{"s", `"s"`},
		{[]byte("hi"), `"aGk="`},
		{[2]int{1, 2}, `[1,2]`},
		{map[int]bool{2: true, 10: false}, `{"10":false,"2":true}`},
		{ir.FromString("n"), `"n"`},
		{*ir.NewInt(5), `5`},
		{(*sample)(nil), `null`},
		{[]any{nil, "x"}, `[null,"x"]`},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%T", tc.in), func(t *testing.T) {
			n, err := r.ToNode(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := encode.MustString(n); got != tc.want {
				t.Errorf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestToNodeErrors(t *testing.T) {
	var r *Registry
	if _, err := r.ToNode(make(chan int)); !errors.Is(err, ErrNoConverter) {
		t.Errorf("chan: got %v", err)
	}
	type loop struct {
		Next *loop `json:"next"`
	}
	l := &loop{}
	l.Next = l
	if _, err := r.ToNode(l); !errors.Is(err, ir.ErrCycle) {
		t.Errorf("cycle: got %v", err)
	}

	type pair struct {
		A *Base `json:"a"`
		B *Base `json:"b"`
	}
	shared := &Base{ID: 1}
	n, err := r.ToNode(pair{A: shared, B: shared})
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(n); got != `{"a":{"id":1},"b":{"id":1}}` {
		t.Errorf("shared: got %s", got)
	}
}

func TestFromNode(t *testing.T) {
	n := mustParse(t, `{"name":"a","COUNT":3,"tags":["x","y"],"m":{"a":1},`+
		`"big":123456789012345678901234,"dec":1.25,"f":0.5,"id":7,"extra":true}`)
	var r *Registry
	var got sample
	if err := r.FromNode(n, &got); err != nil {
		t.Fatal(err)
	}
	b, _ := new(big.Int).SetString("123456789012345678901234", 10)
	want := sample{
		Name:  "a",
		Count: 3,
		Tags:  []string{"x", "y"},
		M:     map[string]int{"a": 1},
		Big:   b,
		Dec:   decimal.RequireFromString("1.25"),
		F:     0.5,
		Base:  Base{ID: 7},
	}
	if diff := cmp.Diff(want, got, bigCmp); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFromNodeErrors(t *testing.T) {
	var r *Registry
	var s sample
	err := r.FromNode(mustParse(t, `{"name":1}`), &s)
	if !errors.Is(err, ir.ErrWrongType) {
		t.Fatalf("got %v", err)
	}
	var ce *ConvertError
	if !errors.As(err, &ce) || ce.Path.String() != "/name" {
		t.Errorf("path: got %v", err)
	}

	var small struct {
		V int8 `json:"v"`
	}
	if err := r.FromNode(mustParse(t, `{"v":300}`), &small); !errors.Is(err, ir.ErrNumber) {
		t.Errorf("overflow: got %v", err)
	}
	if err := r.FromNode(mustParse(t, `{"v":1.5}`), &small); !errors.Is(err, ir.ErrNumber) {
		t.Errorf("fraction: got %v", err)
	}
	var u uint
	if err := r.FromNode(mustParse(t, `-1`), &u); !errors.Is(err, ir.ErrNumber) {
		t.Errorf("negative uint: got %v", err)
	}
	if err := r.FromNode(mustParse(t, `1`), s); !errors.Is(err, ErrTarget) {
		t.Errorf("non pointer: got %v", err)
	}
	if err := r.FromNode(mustParse(t, `1`), (*sample)(nil)); !errors.Is(err, ErrTarget) {
		t.Errorf("nil pointer: got %v", err)
	}
}

func TestFromNodeNull(t *testing.T) {
	var r *Registry
	p := &Base{ID: 3}
	s := struct {
		P *Base `json:"p"`
		N int   `json:"n"`
	}{P: p, N: 4}
	if err := r.FromNode(mustParse(t, `{"p":null,"n":null}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.P != nil || s.N != 0 {
		t.Errorf("got %+v", s)
	}
}

type point struct{ X, Y int }

func (p point) MarshalNode() (*ir.Node, error) {
	return ir.FromSlice([]*ir.Node{ir.FromInt(int64(p.X)), ir.FromInt(int64(p.Y))}), nil
}

func (p *point) UnmarshalNode(n *ir.Node) error {
	if n.Type != ir.ArrayType || len(n.Values) != 2 {
		return fmt.Errorf("want a pair")
	}
	x, _ := n.Values[0].Number.Int64()
	y, _ := n.Values[1].Number.Int64()
	p.X, p.Y = int(x), int(y)
	return nil
}

func TestMarshalerHooks(t *testing.T) {
	var r *Registry
	n, err := r.ToNode(map[string]point{"p": {1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(n); got != `{"p":[1,2]}` {
		t.Errorf("got %s", got)
	}
	var back map[string]point
	if err := r.FromNode(n, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]point{"p": {1, 2}}, back); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	var p point
	if err := r.FromNode(ir.FromString("x"), &p); err == nil {
		t.Error("expected error from UnmarshalNode")
	}
}

type shape interface{ Area() float64 }

type square struct{ Side float64 }

func (s square) Area() float64 { return s.Side * s.Side }

type labeled struct {
	Base
	Label string
}

func TestRegistry(t *testing.T) {
	baseConv := Converter{
		Type: reflect.TypeFor[Base](),
		ToNode: func(v any) (*ir.Node, error) {
			return ir.FromInt(int64(v.(Base).ID)), nil
		},
		FromNode: func(n *ir.Node) (any, error) {
			i, _ := n.Number.Int64()
			return Base{ID: int(i)}, nil
		},
	}
	_, err := New(ProviderFunc(func() []Converter { return []Converter{baseConv, baseConv} }))
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("got %v", err)
	}
	r, err := New(ProviderFunc(func() []Converter { return []Converter{baseConv} }))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Register(Converter{Type: reflect.TypeFor[point]()}); !errors.Is(err, ErrInvalidConverter) {
		t.Errorf("incomplete converter: got %v", err)
	}

	repl := baseConv
	repl.ToNode = func(v any) (*ir.Node, error) { return ir.FromString("replaced"), nil }
	if err := r.Replace(repl); err != nil {
		t.Fatal(err)
	}
	n, err := r.ToNode(Base{ID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(n); got != `"replaced"` {
		t.Errorf("replace: got %s", got)
	}
	if got := len(r.Types()); got != 1 {
		t.Errorf("types: got %d", got)
	}
}

func TestResolve(t *testing.T) {
	conv := func(typ reflect.Type) Converter {
		return Converter{
			Type:     typ,
			ToNode:   func(any) (*ir.Node, error) { return ir.Null(), nil },
			FromNode: func(*ir.Node) (any, error) { return nil, nil },
		}
	}
	shapeType := reflect.TypeFor[shape]()
	baseType := reflect.TypeFor[Base]()
	r, err := New(ProviderFunc(func() []Converter {
		return []Converter{conv(shapeType), conv(baseType)}
	}))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		typ  reflect.Type
		ser  reflect.Type
		de   reflect.Type
	}{
		{"exact", baseType, baseType, baseType},
		{"pointer", reflect.TypeFor[*Base](), nil, baseType},
		{"interface", reflect.TypeFor[square](), nil, shapeType},
		{"pointer to implementation", reflect.TypeFor[*square](), nil, shapeType},
		{"embedded", reflect.TypeFor[labeled](), nil, baseType},
		{"none", reflect.TypeFor[point](), nil, nil},
	}
	typeOf := func(c *Converter) reflect.Type {
		if c == nil {
			return nil
		}
		return c.Type
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := typeOf(r.ResolveForSerialize(tc.typ)); got != tc.ser {
				t.Errorf("serialize: got %v want %v", got, tc.ser)
			}
			if got := typeOf(r.ResolveForDeserialize(tc.typ)); got != tc.de {
				t.Errorf("deserialize: got %v want %v", got, tc.de)
			}
		})
	}
	var nilReg *Registry
	if nilReg.ResolveForDeserialize(baseType) != nil {
		t.Error("nil registry resolved a converter")
	}
}

func TestFromNodeResolved(t *testing.T) {
	r, err := New(ProviderFunc(func() []Converter {
		return []Converter{{
			Type:   reflect.TypeFor[Base](),
			ToNode: func(v any) (*ir.Node, error) { return ir.FromInt(int64(v.(Base).ID)), nil },
			FromNode: func(n *ir.Node) (any, error) {
				i, ok := n.Number.Int64()
				if !ok {
					return nil, nil
				}
				return Base{ID: int(i)}, nil
			},
		}}
	}))
	if err != nil {
		t.Fatal(err)
	}
	var l labeled
	if err := r.FromNode(ir.FromInt(9), &l); err != nil {
		t.Fatal(err)
	}
	if l.ID != 9 {
		t.Errorf("embedded: got %+v", l)
	}
	var p *Base
	if err := r.FromNode(ir.FromInt(4), &p); err != nil {
		t.Fatal(err)
	}
	if p == nil || p.ID != 4 {
		t.Errorf("pointer: got %+v", p)
	}
	var b Base
	err = r.FromNode(ir.FromNumber(ir.NewDecimal(decimal.RequireFromString("1.5"))), &b)
	if !errors.Is(err, ErrConversionFailed) {
		t.Errorf("nil result: got %v", err)
	}
}

func TestToAny(t *testing.T) {
	var r *Registry
	n := mustParse(t, `{"a":[1,2.5,"s",null,true],"b":99999999999999999999}`)
	b, _ := new(big.Int).SetString("99999999999999999999", 10)
	want := map[string]any{
		"a": []any{int64(1), decimal.RequireFromString("2.5"), "s", nil, true},
		"b": b,
	}
	if diff := cmp.Diff(want, r.ToAny(n), bigCmp); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	var v any
	if err := r.FromNode(n, &v); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, v, bigCmp); diff != "" {
		t.Errorf("into any (-want +got):\n%s", diff)
	}
}

func TestContext(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithRegistry(context.Background(), r)
	if FromContext(ctx) != r {
		t.Error("registry not carried")
	}
	if FromContext(context.Background()) != nil {
		t.Error("empty context has a registry")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	intConv := func(typ reflect.Type) Converter {
		return Converter{
			Type: typ,
			ToNode: func(v any) (*ir.Node, error) {
				return ir.FromInt(int64(v.(Base).ID)), nil
			},
			FromNode: func(n *ir.Node) (any, error) {
				i, _ := n.Number.Int64()
				return Base{ID: int(i)}, nil
			},
		}
	}
	r, err := New(ProviderFunc(func() []Converter {
		return []Converter{intConv(reflect.TypeFor[Base]())}
	}))
	if err != nil {
		t.Fatal(err)
	}
	const (
		writers   = 4
		perWriter = 25
		readers   = 8
	)
	intType := reflect.TypeFor[int]()
	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter {
				typ := reflect.ArrayOf(w*perWriter+i+1, intType)
				c := Converter{
					Type:     typ,
					ToNode:   func(any) (*ir.Node, error) { return ir.Null(), nil },
					FromNode: func(*ir.Node) (any, error) { return reflect.New(typ).Elem().Interface(), nil },
				}
				if err := r.Register(c); err != nil {
					t.Error(err)
				}
				if err := r.Replace(intConv(reflect.TypeFor[Base]())); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter * writers {
				if c := r.ResolveForDeserialize(reflect.TypeFor[*Base]()); c == nil || c.Type != reflect.TypeFor[Base]() {
					t.Errorf("resolve *Base: got %v", c)
					return
				}
				n, err := r.ToNode(struct {
					B Base `json:"b"`
				}{B: Base{ID: i}})
				if err != nil {
					t.Error(err)
					return
				}
				if id, _ := n.Get("b").Number.Int64(); id != int64(i) {
					t.Errorf("got %d want %d", id, i)
					return
				}
				var b Base
				if err := r.FromNode(ir.FromInt(int64(i)), &b); err != nil || b.ID != i {
					t.Errorf("from node: %v %d", err, b.ID)
					return
				}
			}
		}()
	}
	wg.Wait()
	if got, want := len(r.Types()), 1+writers*perWriter; got != want {
		t.Errorf("types: got %d want %d", got, want)
	}
}
