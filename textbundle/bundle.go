package textbundle

import (
	"errors"
	"fmt"

	"github.com/signadot/jsondoc/ir"
	"golang.org/x/text/language"
)

var ErrBundle = errors.New("invalid text bundle")

// Bundle is a set of translations of one text, held in an object whose
// member names are BCP 47 language tags and whose values are strings.
type Bundle struct {
	node *ir.Node
}

func New() *Bundle {
	return &Bundle{node: ir.FromKeyVals(nil)}
}

// FromNode wraps n, which must be an object of strings keyed by valid
// language tags. The bundle works on n itself.
func FromNode(n *ir.Node) (*Bundle, error) {
	if n == nil || n.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: not an object", ErrBundle)
	}
	for i, f := range n.Fields {
		if _, err := language.Parse(f); err != nil {
			return nil, fmt.Errorf("%w: member %q: %w", ErrBundle, f, err)
		}
		if n.Values[i].Type != ir.StringType {
			return nil, fmt.Errorf("%w: member %q is %s", ErrBundle, f, n.Values[i].Type)
		}
	}
	return &Bundle{node: n}, nil
}

// Node returns the underlying object.
func (b *Bundle) Node() *ir.Node {
	return b.node
}

// Set stores the text for tag, replacing an earlier one in place.
func (b *Bundle) Set(tag language.Tag, s string) error {
	return b.node.Set(tag.String(), ir.FromString(s), ir.CloneAvoid)
}

// Get returns the text stored for exactly tag.
func (b *Bundle) Get(tag language.Tag) (string, bool) {
	return b.node.GetString(tag.String())
}

func (b *Bundle) Remove(tag language.Tag) bool {
	return b.node.Remove(tag.String()) != nil
}

// Tags lists the tags of the bundle in member order.
func (b *Bundle) Tags() []language.Tag {
	res := make([]language.Tag, 0, len(b.node.Fields))
	for _, f := range b.node.Fields {
		if t, err := language.Parse(f); err == nil {
			res = append(res, t)
		}
	}
	return res
}

// Lookup returns the text best matching the preferred tags, in order of
// preference, along with the tag it is stored under. It reports false
// when no stored tag is a reasonable match.
func (b *Bundle) Lookup(prefs ...language.Tag) (string, language.Tag, bool) {
	tags := b.Tags()
	if len(tags) == 0 || len(prefs) == 0 {
		return "", language.Und, false
	}
	_, i, conf := language.NewMatcher(tags).Match(prefs...)
	if conf == language.No {
		return "", language.Und, false
	}
	s, ok := b.Get(tags[i])
	return s, tags[i], ok
}

// LookupAccept is Lookup with the preferences of an Accept-Language
// header value.
func (b *Bundle) LookupAccept(accept string) (string, language.Tag, bool) {
	prefs, _, err := language.ParseAcceptLanguage(accept)
	if err != nil {
		return "", language.Und, false
	}
	return b.Lookup(prefs...)
}
