package textbundle

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/parse"
	"golang.org/x/text/language"
)

func TestBundle(t *testing.T) {
	b := New()
	for _, kv := range []struct {
		tag  language.Tag
		text string
	}{
		{language.English, "Hello"},
		{language.French, "Bonjour"},
		{language.BrazilianPortuguese, "Olá"},
		{language.English, "Hi"},
	} {
		if err := b.Set(kv.tag, kv.text); err != nil {
			t.Fatal(err)
		}
	}
	if got := encode.MustString(b.Node()); got != `{"en":"Hi","fr":"Bonjour","pt-BR":"Olá"}` {
		t.Errorf("got %s", got)
	}
	if s, ok := b.Get(language.French); !ok || s != "Bonjour" {
		t.Errorf("get: %q %t", s, ok)
	}
	if _, ok := b.Get(language.German); ok {
		t.Error("get: found German")
	}
	var tags []string
	for _, tag := range b.Tags() {
		tags = append(tags, tag.String())
	}
	if diff := cmp.Diff([]string{"en", "fr", "pt-BR"}, tags); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
	if !b.Remove(language.French) || b.Remove(language.French) {
		t.Error("remove")
	}
}

func TestLookup(t *testing.T) {
	n, err := parse.Parse([]byte(`{"en":"Hello","fr":"Bonjour","pt-BR":"Olá"}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromNode(n)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		prefs []language.Tag
		text  string
		ok    bool
	}{
		{[]language.Tag{language.French}, "Bonjour", true},
		{[]language.Tag{language.MustParse("fr-CA")}, "Bonjour", true},
		{[]language.Tag{language.MustParse("en-GB")}, "Hello", true},
		{[]language.Tag{language.Portuguese}, "Olá", true},
		{[]language.Tag{language.Japanese, language.French}, "Bonjour", true},
		{[]language.Tag{language.Japanese}, "", false},
		{nil, "", false},
	}
	for _, tc := range tests {
		text, _, ok := b.Lookup(tc.prefs...)
		if ok != tc.ok || text != tc.text {
			t.Errorf("%v: got %q %t", tc.prefs, text, ok)
		}
	}
	if text, tag, ok := b.LookupAccept("de;q=0.9, fr-CH;q=0.8"); !ok || text != "Bonjour" || tag != language.French {
		t.Errorf("accept: got %q %s %t", text, tag, ok)
	}
}

func TestFromNodeErrors(t *testing.T) {
	for _, s := range []string{`[]`, `{"en":1}`, `{"not a tag!":"x"}`} {
		n, err := parse.Parse([]byte(s))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := FromNode(n); !errors.Is(err, ErrBundle) {
			t.Errorf("%s: got %v", s, err)
		}
	}
}
