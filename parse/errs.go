package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/jsondoc/token"
)

var (
	ErrParse = errors.New("parse error")
	ErrDepth = fmt.Errorf("%w: nesting too deep", ErrParse)
)

// ParseError describes one malformed spot in the input. Expected lists
// the token types that would have been accepted; Err, when set, is the
// underlying tokenizer or number error.
type ParseError struct {
	Pos      *token.Pos
	Expected []token.TokenType
	Found    *token.Token
	Err      error
}

func (e *ParseError) Error() string {
	b := &strings.Builder{}
	b.WriteString(ErrParse.Error())
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
		if _, ok := e.Err.(*token.TokenizeErr); ok {
			return b.String()
		}
	} else {
		b.WriteString("expected ")
		b.WriteString(describe(e.Expected))
		if e.Found != nil {
			b.WriteString(", found ")
			b.WriteString(e.Found.Type.Describe())
			if e.Found.Type != token.TEOF && len(e.Found.Bytes) > 0 && len(e.Found.Bytes) <= 32 {
				fmt.Fprintf(b, " %q", e.Found.Bytes)
			}
		}
	}
	if e.Pos != nil {
		b.WriteString(" at ")
		b.WriteString(e.Pos.String())
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

func describe(tts []token.TokenType) string {
	seen := map[string]bool{}
	parts := []string{}
	for _, tt := range tts {
		d := tt.Describe()
		if seen[d] {
			continue
		}
		seen[d] = true
		parts = append(parts, d)
	}
	switch len(parts) {
	case 0:
		return "nothing"
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
