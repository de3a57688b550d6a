package libdiff

import (
	"errors"
	"testing"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

type diffTest struct {
	From string
	To   string
	Opts []DiffOption
	Res  string
}

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return n
}

func TestDiff(t *testing.T) {
	tests := []diffTest{
		{
			From: `{"a":1}`,
			To:   `{"a":1}`,
			Res:  `[]`,
		},
		{
			From: `{"a":1,"b":2}`,
			To:   `{"a":1,"b":3,"c":4}`,
			Res:  `[{"op":"replace","path":"/b","value":3},{"op":"add","path":"/c","value":4}]`,
		},
		{
			From: `{"a":1,"b":2}`,
			To:   `{"a":1}`,
			Res:  `[{"op":"remove","path":"/b"}]`,
		},
		{
			From: `[1,2,3]`,
			To:   `[1,2,4]`,
			Res:  `[{"op":"replace","path":"/2","value":4}]`,
		},
		{
			From: `[1,2]`,
			To:   `[0,1,2]`,
			Res:  `[{"op":"add","path":"/0","value":0}]`,
		},
		{
			From: `[1,2,3]`,
			To:   `[1,3]`,
			Res:  `[{"op":"remove","path":"/1"}]`,
		},
		{
			From: `{"a":{"b":[1]}}`,
			To:   `{"a":{"b":[1,{"c":null}]}}`,
			Res:  `[{"op":"add","path":"/a/b/1","value":{"c":null}}]`,
		},
		{
			From: `1`,
			To:   `"x"`,
			Res:  `[{"op":"replace","path":"","value":"x"}]`,
		},
		{
			From: `{"a/b":1,"c~d":2}`,
			To:   `{"a/b":2}`,
			Res:  `[{"op":"replace","path":"/a~1b","value":2},{"op":"remove","path":"/c~0d"}]`,
		},
		{
			From: `[{"id":1,"v":"a"},{"id":2,"v":"b"}]`,
			To:   `[{"id":2,"v":"c"}]`,
			Opts: []DiffOption{ArrayKey("id")},
			Res:  `[{"op":"remove","path":"/0"},{"op":"replace","path":"/0/v","value":"c"}]`,
		},
		{
			From: `{"n":1}`,
			To:   `{"n":1.0}`,
			Res:  `[{"op":"replace","path":"/n","value":1.0}]`,
		},
	}
	for i, tc := range tests {
		from, to := mustParse(t, tc.From), mustParse(t, tc.To)
		got := encode.MustString(Diff(from, to, tc.Opts...))
		if got != tc.Res {
			t.Errorf("%d: got\n%s\nwant\n%s", i, got, tc.Res)
		}
	}
}

func TestDiffDoesNotShare(t *testing.T) {
	from := mustParse(t, `{}`)
	to := mustParse(t, `{"a":{"b":1}}`)
	ops := Ops(from, to)
	if len(ops) != 1 {
		t.Fatalf("got %d ops", len(ops))
	}
	if ops[0].Value == to.Get("a") {
		t.Error("op value is shared with the target document")
	}
}

func TestParseOps(t *testing.T) {
	p := mustParse(t, `[{"op":"add","path":"/a","value":1},{"op":"move","path":"/b","from":"/a"},{"op":"remove","path":"/b"}]`)
	ops, err := ParseOps(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 3 || ops[1].Name != OpMove || ops[1].From.String() != "/a" {
		t.Fatalf("got %+v", ops)
	}
	if got := encode.MustString(ToNode(ops)); got != encode.MustString(p) {
		t.Errorf("got %s", got)
	}

	bad := []string{
		`{}`,
		`[1]`,
		`[{"op":"add","path":"/a"}]`,
		`[{"op":"jump","path":"/a"}]`,
		`[{"op":"remove","path":"a"}]`,
		`[{"op":"copy","path":"/a"}]`,
		`[{"path":"/a"}]`,
	}
	for _, b := range bad {
		if _, err := ParseOps(mustParse(t, b)); !errors.Is(err, ErrBadOp) {
			t.Errorf("%s: got %v", b, err)
		}
	}
}
