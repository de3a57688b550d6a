package jsondoc

import (
	"errors"
	"testing"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"

	"github.com/google/go-cmp/cmp"
)

type toolTest struct {
	in, out string
}

var toolTests = []toolTest{
	{in: `1`, out: `1`},
	{in: `false`, out: `false`},
	{in: `"string"`, out: `"string"`},
	{in: `[1,[0,1],2]`, out: `[1,[0,1],2]`},
	{in: `{"f1":"a","f2":".[f1 + 'b']"}`, out: `{"f1":"a","f2":"ab"}`},
	{in: `{"n":2,"m":".[n * 2]","s":"n is $[n]"}`, out: `{"n":2,"m":4,"s":"n is 2"}`},
	{in: `{"xs":[1,2],"l":".[len(xs)]"}`, out: `{"xs":[1,2],"l":2}`},
}

func TestTool(t *testing.T) {
	tool := DefaultTool()
	for _, tc := range toolTests {
		res, err := tool.Run(mustParse(t, tc.in))
		if err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if diff := cmp.Diff(tc.out, encode.MustString(res)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestToolVars(t *testing.T) {
	tool := DefaultTool()
	tool.Vars["env"] = ir.FromString("prod")
	res, err := tool.Run(mustParse(t, `{"host":"$[env].example.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"host":"prod.example.com"}`, encode.MustString(res)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if _, err := tool.Run(mustParse(t, `[1]`)); !errors.Is(err, ir.ErrWrongType) {
		t.Errorf("got %v, want ErrWrongType", err)
	}
}
