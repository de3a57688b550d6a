package token

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Tokenize appends the tokens of src to dst. The result always ends with
// a TEOF token.
func Tokenize(dst []Token, src []byte, opts ...TokenOpt) ([]Token, error) {
	opt := &tokenOpts{}
	for _, f := range opts {
		f(opt)
	}
	tk := &tokenizer{d: src, posDoc: NewPosDoc(src), opt: opt}
	return tk.run(dst)
}

type tokenizer struct {
	d      []byte
	posDoc *PosDoc
	opt    *tokenOpts
}

func (tk *tokenizer) run(dst []Token) ([]Token, error) {
	d := tk.d
	n := len(d)
	i := 0
	for i < n {
		c := d[i]
		switch c {
		case ' ', '\t', '\r':
			i++
			continue
		case '\n':
			tk.posDoc.nl(i)
			i++
			continue
		}
		tok, sz, err := tk.one(i)
		if err != nil {
			var te *TokenizeErr
			if !errors.As(err, &te) {
				te = NewTokenizeErr(err, tk.posDoc.Pos(i))
			}
			if tk.opt.recover == nil || !tk.opt.recover(te) {
				return nil, te
			}
			i += tk.skip(i, sz)
			continue
		}
		dst = append(dst, tok)
		i += sz
	}
	dst = append(dst, Token{Type: TEOF, Pos: tk.posDoc.Pos(n), End: tk.posDoc.Pos(n)})
	return dst, nil
}

// one scans the token at offset i. On error it returns how many bytes
// were examined.
func (tk *tokenizer) one(i int) (Token, int, error) {
	d := tk.d
	c := d[i]
	pos := tk.posDoc.Pos(i)
	mk := func(tt TokenType, sz int) (Token, int, error) {
		return Token{
			Type:  tt,
			Pos:   pos,
			End:   tk.posDoc.Pos(i + sz),
			Bytes: d[i : i+sz],
		}, sz, nil
	}
	switch c {
	case '{':
		return mk(TLCurl, 1)
	case '}':
		return mk(TRCurl, 1)
	case '[':
		return mk(TLSquare, 1)
	case ']':
		return mk(TRSquare, 1)
	case ':':
		return mk(TColon, 1)
	case ',':
		return mk(TComma, 1)
	case '"':
		sz, err := scanString(d[i:], tk.opt.controlChars)
		tk.newlines(i, i+sz)
		if err != nil {
			return Token{}, sz, NewTokenizeErr(err, tk.posDoc.Pos(i+sz))
		}
		return mk(TString, sz)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		sz, isFloat, err := number(d[i:])
		if err != nil {
			return Token{}, sz, NewTokenizeErr(err, pos)
		}
		if isFloat {
			return mk(TFloat, sz)
		}
		return mk(TInteger, sz)
	}
	sz := identifier(d[i:])
	if sz == 0 {
		r, rsz := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && rsz == 1 {
			return Token{}, 1, NewTokenizeErr(ErrBadUTF8, pos)
		}
		return Token{}, rsz, UnexpectedErr(fmt.Sprintf("%q", r), pos)
	}
	switch string(d[i : i+sz]) {
	case "true":
		return mk(TTrue, sz)
	case "false":
		return mk(TFalse, sz)
	case "null":
		return mk(TNull, sz)
	}
	if tk.opt.unquotedKeys {
		return mk(TLiteral, sz)
	}
	return Token{}, sz, UnexpectedErr(fmt.Sprintf("%q", d[i:i+sz]), pos)
}

// skip returns how far to advance past a bad token of examined size sz.
// A bad string is skipped to the end of its line.
func (tk *tokenizer) skip(i, sz int) int {
	if tk.d[i] == '"' {
		j := i + 1
		for j < len(tk.d) && tk.d[j] != '\n' && tk.d[j] != '"' {
			j++
		}
		if j < len(tk.d) && tk.d[j] == '"' {
			j++
		}
		return j - i
	}
	return max(sz, 1)
}

func (tk *tokenizer) newlines(from, to int) {
	for j := from; j < to && j < len(tk.d); j++ {
		if tk.d[j] == '\n' {
			tk.posDoc.nl(j)
		}
	}
}

// identifier returns the length of a bare word: letters, digits, '_' and
// '$', not starting with a digit.
func identifier(d []byte) int {
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return i
		}
		i++
	}
	return i
}
