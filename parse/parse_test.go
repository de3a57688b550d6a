package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
)

type parseTest struct {
	in   string
	want *ir.Node
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: `null`, want: ir.Null()},
		{in: `true`, want: ir.FromBool(true)},
		{in: ` false `, want: ir.FromBool(false)},
		{in: `"hello"`, want: ir.FromString("hello")},
		{in: `"a\"b\\cé😀"`, want: ir.FromString("a\"b\\cé😀")},
		{in: `22`, want: ir.FromInt(22)},
		{in: `[]`, want: ir.FromSlice(nil)},
		{in: `{}`, want: ir.FromKeyVals(nil)},
		{
			in: `[1, "two", [true], {"x": null}]`,
			want: ir.FromSlice([]*ir.Node{
				ir.FromInt(1),
				ir.FromString("two"),
				ir.FromSlice([]*ir.Node{ir.FromBool(true)}),
				ir.FromKeyVals([]ir.KeyVal{{Key: "x", Val: ir.Null()}}),
			}),
		},
		{
			in: "{\n  \"b\": 1,\n  \"a\": {\"c\": []}\n}\n",
			want: ir.FromKeyVals([]ir.KeyVal{
				{Key: "b", Val: ir.FromInt(1)},
				{Key: "a", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "c", Val: ir.FromSlice(nil)}})},
			}),
		},
	}
	for _, pt := range pts {
		node, err := Parse([]byte(pt.in))
		if err != nil {
			t.Errorf("%q: %v", pt.in, err)
			continue
		}
		if !ir.Equal(node, pt.want) {
			t.Errorf("%q: got %s want %s", pt.in, dump(node), dump(pt.want))
		}
	}
}

func TestParseNumberKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind ir.NumberKind
		text string
	}{
		{"0", ir.Int32, "0"},
		{"-2147483648", ir.Int32, "-2147483648"},
		{"2147483648", ir.Int64, "2147483648"},
		{"9223372036854775807", ir.Int64, "9223372036854775807"},
		{"9223372036854775808", ir.BigInt, "9223372036854775808"},
		{"-123456789012345678901234567890", ir.BigInt, "-123456789012345678901234567890"},
		{"1.5", ir.BigDecimal, "1.5"},
		{"1.0", ir.BigDecimal, "1.0"},
		{"1e2", ir.BigDecimal, "1E+2"},
		{"0.1", ir.BigDecimal, "0.1"},
		{"3.14159265358979323846264338327950288", ir.BigDecimal, "3.14159265358979323846264338327950288"},
	}
	for _, tc := range tests {
		node, err := Parse([]byte(tc.in))
		if err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if node.Type != ir.NumberType {
			t.Errorf("%s: got type %s", tc.in, node.Type)
			continue
		}
		if node.Number.Kind != tc.kind {
			t.Errorf("%s: got kind %s want %s", tc.in, node.Number.Kind, tc.kind)
		}
		if got := node.Number.String(); got != tc.text {
			t.Errorf("%s: got text %q want %q", tc.in, got, tc.text)
		}
	}
}

func TestParseDuplicateKey(t *testing.T) {
	node, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, node.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if v, _ := node.GetInt64("a"); v != 3 {
		t.Errorf("a: got %d want 3", v)
	}
}

func TestParseNullProperties(t *testing.T) {
	in := []byte(`{"a": null, "b": 1, "c": [null], "b": null}`)
	kept, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, kept.Fields); diff != "" {
		t.Errorf("kept fields (-want +got):\n%s", diff)
	}
	dropped, err := Parse(in, NullProperties(DropNulls))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c"}, dropped.Fields); diff != "" {
		t.Errorf("dropped fields (-want +got):\n%s", diff)
	}
	// array elements are never dropped
	if n := dropped.Get("c").Len(); n != 1 {
		t.Errorf("array length %d", n)
	}
}

func TestParseLenient(t *testing.T) {
	in := []byte("{name: \"a\tb\", _x$: 1, gone: null}")
	if _, err := Parse(in); err == nil {
		t.Fatal("strict parse accepted lenient input")
	}
	node, err := Parse(in, Lenient())
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("a\tb")},
		{Key: "_x$", Val: ir.FromInt(1)},
	})
	if !ir.Equal(node, want) {
		t.Errorf("got %s", dump(node))
	}
	// each relaxation is independent
	if _, err := Parse([]byte(`{k: 1}`), UnquotedKeys(true)); err != nil {
		t.Error(err)
	}
	if _, err := Parse([]byte("\"a\x01\""), ControlChars(true)); err != nil {
		t.Error(err)
	}
	if _, err := Parse([]byte("\"a\x01\""), UnquotedKeys(true)); err == nil {
		t.Error("control character accepted without ControlChars")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in     string
		target error
	}{
		{``, token.ErrEmptyDoc},
		{`   `, token.ErrEmptyDoc},
		{`{"a":1,}`, ErrParse},
		{`[1,]`, ErrParse},
		{`[1 2]`, ErrParse},
		{`{"a" 1}`, ErrParse},
		{`{1: 2}`, ErrParse},
		{`{"a": 1} x`, token.ErrUnexpected},
		{`{"a": 1} {}`, ErrParse},
		{`01`, token.ErrNumberLeadingZero},
		{`"abc`, token.ErrUnterminated},
		{`"\x"`, token.ErrBadEscape},
		{`[`, ErrParse},
		{`{"a":`, ErrParse},
		{`tru`, token.ErrUnexpected},
		{`{a: 1}`, token.ErrUnexpected},
	}
	for _, tc := range tests {
		_, err := Parse([]byte(tc.in))
		if err == nil {
			t.Errorf("%q: expected error", tc.in)
			continue
		}
		if !errors.Is(err, tc.target) {
			t.Errorf("%q: got %v, want %v", tc.in, err, tc.target)
		}
		if !IsParseError(err) {
			t.Errorf("%q: %v is not a parse error", tc.in, err)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse([]byte("{\n  \"a\": 1\n  \"b\": 2\n}"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v", err)
	}
	if pe.Pos.Line() != 3 || pe.Pos.Col() != 3 {
		t.Errorf("position line %d col %d", pe.Pos.Line(), pe.Pos.Col())
	}
	msg := pe.Error()
	if !strings.Contains(msg, "expected ',' or '}'") && !strings.Contains(msg, "expected") {
		t.Errorf("message %q", msg)
	}
}

func TestParseDepth(t *testing.T) {
	in := strings.Repeat("[", 20) + strings.Repeat("]", 20)
	if _, err := Parse([]byte(in), MaxDepth(20)); err != nil {
		t.Fatal(err)
	}
	_, err := Parse([]byte(in), MaxDepth(19))
	if !errors.Is(err, ErrDepth) {
		t.Fatalf("got %v", err)
	}
}

func TestCollector(t *testing.T) {
	c := &Collector{}
	node, err := Parse([]byte(`{"a": 1, "b": tru, "c": [1 2], "d": "\q"}`), WithErrorHandler(c))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Errors()) < 3 {
		t.Errorf("got %d errors: %v", len(c.Errors()), c.Err())
	}
	if v, ok := node.GetInt64("a"); !ok || v != 1 {
		t.Errorf("a: got %v %v", v, ok)
	}
	if !node.Has("c") {
		t.Errorf("c missing from %s", dump(node))
	}
	c.Reset()
	if c.Err() != nil {
		t.Error("reset did not clear")
	}

	lim := &Collector{Max: 1}
	if _, err := Parse([]byte(`[tru, fals]`), WithErrorHandler(lim)); err == nil {
		t.Error("Max did not abort")
	}
}

func TestCollectorNoLoop(t *testing.T) {
	ins := []string{`}`, `]]]`, `{"a" "b" "c"}`, `[}`, `{]`, `{,,,}`, `[,,,]`, `:::`, `{"a":}`, `[{"a": [1,}]`}
	for _, in := range ins {
		c := &Collector{}
		if _, err := Parse([]byte(in), WithErrorHandler(c)); err != nil {
			t.Errorf("%q: %v", in, err)
		}
		if len(c.Errors()) == 0 {
			t.Errorf("%q: no errors recorded", in)
		}
	}
}

func TestPositions(t *testing.T) {
	m := map[*ir.Node]*token.Pos{}
	node, err := Parse([]byte("{\n \"a\": [true]\n}"), Positions(m))
	if err != nil {
		t.Fatal(err)
	}
	pos := m[node.Get("a").At(0)]
	if pos == nil {
		t.Fatal("no position recorded")
	}
	if pos.Line() != 2 || pos.Col() != 8 {
		t.Errorf("got line %d col %d", pos.Line(), pos.Col())
	}
	if m[node].I != 0 {
		t.Errorf("root offset %d", m[node].I)
	}
}

func dump(n *ir.Node) string {
	b := &strings.Builder{}
	var rec func(*ir.Node)
	rec = func(n *ir.Node) {
		switch n.Type {
		case ir.ObjectType:
			b.WriteString("{")
			for i, f := range n.Fields {
				if i > 0 {
					b.WriteString(",")
				}
				b.WriteString(token.Quote(f) + ":")
				rec(n.Values[i])
			}
			b.WriteString("}")
		case ir.ArrayType:
			b.WriteString("[")
			for i, v := range n.Values {
				if i > 0 {
					b.WriteString(",")
				}
				rec(v)
			}
			b.WriteString("]")
		case ir.StringType:
			b.WriteString(token.Quote(n.String))
		case ir.NumberType:
			b.WriteString(n.Number.String())
		case ir.BoolType:
			if n.Bool {
				b.WriteString("true")
			} else {
				b.WriteString("false")
			}
		default:
			b.WriteString(n.Type.String())
		}
	}
	rec(n)
	return b.String()
}
