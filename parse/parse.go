package parse

import (
	"errors"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
)

var valueStart = []token.TokenType{
	token.TLCurl, token.TLSquare, token.TString, token.TInteger,
	token.TTrue, token.TFalse, token.TNull,
}

// Parse parses a complete JSON document. With the default error handler
// any malformed input fails the whole parse and no tree is returned.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	var abort error
	tOpts := append(pOpts.TokenizeOpts(), token.TokenRecover(func(te *token.TokenizeErr) bool {
		pos := te.Pos
		abort = pOpts.handler.OnParseError(&ParseError{Pos: &pos, Err: te})
		return abort == nil
	}))
	toks, err := token.Tokenize(nil, d, tOpts...)
	if err != nil {
		if abort != nil {
			return nil, abort
		}
		return nil, err
	}
	p := &parser{toks: toks, opts: pOpts}
	res, err := p.document()
	if err != nil {
		return nil, err
	}
	return res, nil
}

type parser struct {
	toks  []token.Token
	i     int
	depth int
	opts  *parseOpts
}

func (p *parser) peek() *token.Token {
	return &p.toks[p.i]
}

func (p *parser) next() *token.Token {
	t := &p.toks[p.i]
	if t.Type != token.TEOF {
		p.i++
	}
	return t
}

// fail reports an error to the handler. A nil result means recover.
func (p *parser) fail(found *token.Token, err error, expected ...token.TokenType) error {
	return p.opts.handler.OnParseError(&ParseError{
		Pos:      found.Pos,
		Expected: expected,
		Found:    found,
		Err:      err,
	})
}

func (p *parser) track(node *ir.Node, t *token.Token) {
	if p.opts.positions != nil {
		p.opts.positions[node] = t.Pos
	}
}

func (p *parser) document() (*ir.Node, error) {
	t := p.peek()
	if t.Type == token.TEOF {
		if err := p.fail(t, token.ErrEmptyDoc, valueStart...); err != nil {
			return nil, err
		}
		return ir.Null(), nil
	}
	res, err := p.value()
	if err != nil {
		return nil, err
	}
	for {
		t = p.peek()
		if t.Type == token.TEOF {
			return res, nil
		}
		if err := p.fail(t, nil, token.TEOF); err != nil {
			return nil, err
		}
		p.sync(true)
		p.next()
	}
}

func (p *parser) value() (*ir.Node, error) {
	t := p.peek()
	switch t.Type {
	case token.TLCurl:
		return p.nested(t, p.object)
	case token.TLSquare:
		return p.nested(t, p.array)
	case token.TString:
		p.next()
		s, err := token.Unquote(t.Bytes)
		if err != nil {
			if err := p.fail(t, err); err != nil {
				return nil, err
			}
			return p.leaf(ir.Null(), t), nil
		}
		return p.leaf(ir.FromString(s), t), nil
	case token.TInteger, token.TFloat:
		p.next()
		n, err := ir.ParseNumber(string(t.Bytes))
		if err != nil {
			if err := p.fail(t, err); err != nil {
				return nil, err
			}
			return p.leaf(ir.Null(), t), nil
		}
		return p.leaf(ir.FromNumber(n), t), nil
	case token.TTrue, token.TFalse:
		p.next()
		return p.leaf(ir.FromBool(t.Type == token.TTrue), t), nil
	case token.TNull:
		p.next()
		return p.leaf(ir.Null(), t), nil
	}
	if err := p.fail(t, nil, valueStart...); err != nil {
		return nil, err
	}
	switch t.Type {
	case token.TEOF, token.TComma, token.TRCurl, token.TRSquare:
		// leave for the enclosing container to deal with
	default:
		p.next()
	}
	return p.leaf(ir.Null(), t), nil
}

func (p *parser) leaf(n *ir.Node, t *token.Token) *ir.Node {
	p.track(n, t)
	return n
}

func (p *parser) nested(t *token.Token, f func() (*ir.Node, error)) (*ir.Node, error) {
	if p.depth >= p.opts.maxDepth {
		if err := p.fail(t, ErrDepth); err != nil {
			return nil, err
		}
		p.next()
		p.sync(false)
		p.next()
		return p.leaf(ir.Null(), t), nil
	}
	p.depth++
	defer func() { p.depth-- }()
	return f()
}

// sync skips tokens up to the next ',' or closing bracket at the current
// nesting level, or the end of input. If all is set, commas are skipped
// as well.
func (p *parser) sync(all bool) {
	depth := 0
	for {
		t := p.peek()
		switch t.Type {
		case token.TEOF:
			return
		case token.TLCurl, token.TLSquare:
			depth++
		case token.TRCurl, token.TRSquare:
			if depth == 0 {
				return
			}
			depth--
		case token.TComma:
			if depth == 0 && !all {
				return
			}
		}
		p.next()
	}
}

func (p *parser) object() (*ir.Node, error) {
	open := p.next()
	obj := &ir.Node{Type: ir.ObjectType}
	p.track(obj, open)
	if p.peek().Type == token.TRCurl {
		p.next()
		return obj, nil
	}
	for {
		t := p.peek()
		var key string
		switch {
		case t.Type == token.TString:
			s, err := token.Unquote(t.Bytes)
			if err != nil {
				if err := p.fail(t, err); err != nil {
					return nil, err
				}
			}
			key = s
		case t.Type == token.TLiteral && p.opts.unquotedKeys:
			key = string(t.Bytes)
		default:
			expected := []token.TokenType{token.TString}
			if p.opts.unquotedKeys {
				expected = append(expected, token.TLiteral)
			}
			if err := p.fail(t, nil, expected...); err != nil {
				return nil, err
			}
			if done := p.recoverObject(); done {
				return obj, nil
			}
			continue
		}
		p.next()
		if c := p.peek(); c.Type != token.TColon {
			if err := p.fail(c, nil, token.TColon); err != nil {
				return nil, err
			}
			if done := p.recoverObject(); done {
				return obj, nil
			}
			continue
		}
		p.next()
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		p.setProperty(obj, key, val)

		t = p.peek()
		switch t.Type {
		case token.TComma:
			p.next()
			if c := p.peek(); c.Type == token.TRCurl {
				if err := p.fail(c, nil, token.TString); err != nil {
					return nil, err
				}
				p.next()
				return obj, nil
			}
		case token.TRCurl:
			p.next()
			return obj, nil
		default:
			if err := p.fail(t, nil, token.TComma, token.TRCurl); err != nil {
				return nil, err
			}
			switch t.Type {
			case token.TString, token.TLiteral:
				// assume a missing comma
			default:
				if done := p.recoverObject(); done {
					return obj, nil
				}
			}
		}
	}
}

// recoverObject skips to the next member of the object being parsed. It
// reports whether the object is finished.
func (p *parser) recoverObject() bool {
	p.sync(false)
	t := p.peek()
	switch t.Type {
	case token.TComma:
		p.next()
		return false
	case token.TRCurl:
		p.next()
		return true
	case token.TRSquare:
		// mismatched closer, let the enclosing array have it
		return true
	default:
		return true
	}
}

func (p *parser) setProperty(obj *ir.Node, key string, val *ir.Node) {
	i := obj.Index(key)
	if val.Type == ir.NullType && p.opts.nulls == DropNulls {
		if i != -1 {
			obj.Fields = append(obj.Fields[:i], obj.Fields[i+1:]...)
			obj.Values = append(obj.Values[:i], obj.Values[i+1:]...)
		}
		return
	}
	if i != -1 {
		obj.Values[i] = val
		return
	}
	obj.Fields = append(obj.Fields, key)
	obj.Values = append(obj.Values, val)
}

func (p *parser) array() (*ir.Node, error) {
	open := p.next()
	arr := &ir.Node{Type: ir.ArrayType, Values: []*ir.Node{}}
	p.track(arr, open)
	if p.peek().Type == token.TRSquare {
		p.next()
		return arr, nil
	}
	for {
		before := p.i
		elt, err := p.value()
		if err != nil {
			return nil, err
		}
		if p.i != before || elt.Type != ir.NullType || p.peek().Type == token.TComma {
			arr.Values = append(arr.Values, elt)
		}
		t := p.peek()
		switch t.Type {
		case token.TComma:
			p.next()
			if c := p.peek(); c.Type == token.TRSquare {
				if err := p.fail(c, nil, valueStart...); err != nil {
					return nil, err
				}
				p.next()
				return arr, nil
			}
		case token.TRSquare:
			p.next()
			return arr, nil
		default:
			if err := p.fail(t, nil, token.TComma, token.TRSquare); err != nil {
				return nil, err
			}
			if isValueStart(t.Type) {
				// assume a missing comma
				continue
			}
			p.sync(false)
			switch p.peek().Type {
			case token.TComma:
				p.next()
			case token.TRSquare:
				p.next()
				return arr, nil
			default:
				return arr, nil
			}
		}
	}
}

func isValueStart(tt token.TokenType) bool {
	for _, v := range valueStart {
		if v == tt {
			return true
		}
	}
	return tt == token.TFloat
}

// IsParseError reports whether err came from malformed input.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}
