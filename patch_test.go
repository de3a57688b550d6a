package jsondoc

import (
	"errors"
	"testing"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/patch"

	"github.com/google/go-cmp/cmp"
)

type patchTest struct {
	Doc   string
	Patch string
	Res   string
	Error error
}

func TestPatch(t *testing.T) {
	tests := []patchTest{
		{
			Doc:   `{"a":1}`,
			Patch: `{"b":1}`,
			Res:   `{"a":1,"b":1}`,
		},
		{
			Doc:   `{"a":1}`,
			Patch: `{"a":null}`,
			Res:   `{}`,
		},
		{
			Doc:   `{"a":1,"b":2}`,
			Patch: `[{"op":"replace","path":"/b","value":[true]}]`,
			Res:   `{"a":1,"b":[true]}`,
		},
		{
			Doc:   `[1,2]`,
			Patch: `[{"op":"add","path":"/-","value":3}]`,
			Res:   `[1,2,3]`,
		},
		{
			Doc:   `{"a":1}`,
			Patch: `[{"op":"test","path":"/a","value":2}]`,
			Error: patch.ErrPatch,
		},
	}
	for _, tc := range tests {
		res, err := Patch(mustParse(t, tc.Doc), mustParse(t, tc.Patch))
		if tc.Error != nil {
			if !errors.Is(err, tc.Error) {
				t.Errorf("%s with %s: got error %v, want %v", tc.Doc, tc.Patch, err, tc.Error)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s with %s: %v", tc.Doc, tc.Patch, err)
			continue
		}
		if diff := cmp.Diff(tc.Res, encode.MustString(res)); diff != "" {
			t.Errorf("%s with %s (-want +got):\n%s", tc.Doc, tc.Patch, diff)
		}
	}
}

func TestPatchNil(t *testing.T) {
	if _, err := Patch(nil, mustParse(t, `{}`)); !errors.Is(err, ir.ErrNilNode) {
		t.Errorf("got %v, want ErrNilNode", err)
	}
}
