package token

import (
	"fmt"
)

type TokenType int

const (
	TEOF TokenType = iota
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TColon
	TComma
	TString
	TInteger
	TFloat
	TTrue
	TFalse
	TNull
	// TLiteral is a bare identifier, only produced with TokenUnquotedKeys.
	TLiteral
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:     "TEOF",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
		TColon:   "TColon",
		TComma:   "TComma",
		TString:  "TString",
		TInteger: "TInteger",
		TFloat:   "TFloat",
		TTrue:    "TTrue",
		TFalse:   "TFalse",
		TNull:    "TNull",
		TLiteral: "TLiteral",
	}[t]
}

// Describe returns how t reads in an error message.
func (t TokenType) Describe() string {
	switch t {
	case TEOF:
		return "end of input"
	case TLCurl:
		return "'{'"
	case TRCurl:
		return "'}'"
	case TLSquare:
		return "'['"
	case TRSquare:
		return "']'"
	case TColon:
		return "':'"
	case TComma:
		return "','"
	case TString:
		return "string"
	case TInteger, TFloat:
		return "number"
	case TTrue:
		return "true"
	case TFalse:
		return "false"
	case TNull:
		return "null"
	case TLiteral:
		return "name"
	}
	return t.String()
}

// Token is one lexical element. Pos is where it starts and End is the
// offset just past it.
type Token struct {
	Type  TokenType
	Pos   *Pos
	End   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded value of a string token, and the raw text of
// any other token.
func (t *Token) String() string {
	if t.Type == TString {
		s, err := Unquote(t.Bytes)
		if err != nil {
			return string(t.Bytes)
		}
		return s
	}
	return string(t.Bytes)
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("expected %s", what), p)
}

func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, what), p)
}
