// SPDX-License-Identifier: MIT

package expression

import (
	"fmt"
	"strconv"
	"unicode"
)

// tokenKind classifies lexical tokens.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp    // + - * / ^ = < > ( )
	tokPrime // postfix . or '
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// operand reports whether the token can end an operand; a following '.'
// is then a prime marker rather than the start of a number.
func (t token) operand() bool {
	switch t.kind {
	case tokNumber, tokIdent, tokPrime:
		return true
	case tokOp:
		return t.text == ")"
	}
	return false
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at %d: %s", ErrSyntax, pos, fmt.Sprintf(format, args...))
}

func isIdentStart(r rune) bool { return r == '_' || r == '$' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return isIdentStart(r) || unicode.IsDigit(r) }

// tokenize splits s into tokens.
//
// A '.' starts a number only when followed by a digit and when the previous
// token does not end an operand, so "x1.=..." reads x1 followed by a prime.
func tokenize(s string) ([]token, error) {
	rs := []rune(s)
	out := make([]token, 0, len(rs)/2+1)
	prev := token{kind: tokEOF}
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
			continue
		case r == '.' && (i+1 >= len(rs) || !unicode.IsDigit(rs[i+1]) || prev.operand()),
			r == '\'':
			prev = token{kind: tokPrime, text: string(r), pos: i}
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				i++
			}
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				j := i + 1
				if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
					j++
				}
				if j < len(rs) && unicode.IsDigit(rs[j]) {
					for j < len(rs) && unicode.IsDigit(rs[j]) {
						j++
					}
					i = j
				}
			}
			text := string(rs[start:i])
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, syntaxErrorf(start, "bad number %q", text)
			}
			prev = token{kind: tokNumber, text: text, num: v, pos: start}
		case isIdentStart(r):
			start := i
			for i < len(rs) && isIdentPart(rs[i]) {
				i++
			}
			prev = token{kind: tokIdent, text: string(rs[start:i]), pos: start}
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^' ||
			r == '=' || r == '<' || r == '>' || r == '(' || r == ')':
			prev = token{kind: tokOp, text: string(r), pos: i}
			i++
		default:
			return nil, syntaxErrorf(i, "unexpected character %q", r)
		}
		out = append(out, prev)
	}
	out = append(out, token{kind: tokEOF, pos: len(rs)})

	return out, nil
}

// parser is a recursive-descent parser over a token slice.
//
//	program  := sum [('='|'<'|'>') sum]
//	sum      := product (('+'|'-') product)*
//	product  := unary (('*'|'/') unary)*
//	unary    := ('+'|'-') unary | power
//	power    := postfix ['^' unary]
//	postfix  := primary ('.'|'\'')*
//	primary  := NUMBER | ID ['(' sum ')'] | '(' sum ')'
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) acceptOp(ops string) (byte, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return 0, false
	}
	for i := 0; i < len(ops); i++ {
		if t.text[0] == ops[i] {
			p.pos++
			return ops[i], true
		}
	}
	return 0, false
}

// Parse parses a single expression or relation.
//
// Errors: ErrSyntax (wrapped with the offending position).
func Parse(s string) (*Expression, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, syntaxErrorf(0, "empty expression")
	}
	lhs, err := p.sum()
	if err != nil {
		return nil, err
	}
	if op, ok := p.acceptOp("=<>"); ok {
		rhs, err := p.sum()
		if err != nil {
			return nil, err
		}
		lhs = Relation(op, lhs, rhs)
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxErrorf(t.pos, "unexpected %q", t.text)
	}

	return lhs, nil
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(s string) *Expression {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) sum() (*Expression, error) {
	first, err := p.product()
	if err != nil {
		return nil, err
	}
	terms := []*Expression{first}
	for {
		op, ok := p.acceptOp("+-")
		if !ok {
			break
		}
		t, err := p.product()
		if err != nil {
			return nil, err
		}
		if op == '-' {
			t = Negate(t)
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return first, nil
	}

	return Sum(terms...), nil
}

func (p *parser) product() (*Expression, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	factors := []*Expression{first}
	for {
		op, ok := p.acceptOp("*/")
		if !ok {
			break
		}
		f, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == '/' {
			f = Power(f, Constant(-1))
		}
		factors = append(factors, f)
	}
	if len(factors) == 1 {
		return first, nil
	}

	return Product(factors...), nil
}

func (p *parser) unary() (*Expression, error) {
	if op, ok := p.acceptOp("+-"); ok {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == '-' {
			return Negate(x), nil
		}
		return x, nil
	}

	return p.power()
}

func (p *parser) power() (*Expression, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if _, ok := p.acceptOp("^"); ok {
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Power(base, exp), nil
	}

	return base, nil
}

func (p *parser) postfix() (*Expression, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPrime {
		p.next()
		x = Prime(x)
	}

	return x, nil
}

func (p *parser) primary() (*Expression, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Constant(t.num), nil
	case tokIdent:
		if nt := p.peek(); nt.kind == tokOp && nt.text == "(" {
			p.next()
			arg, err := p.sum()
			if err != nil {
				return nil, err
			}
			if _, ok := p.acceptOp(")"); !ok {
				return nil, syntaxErrorf(p.peek().pos, "missing ')' after %s(", t.text)
			}
			return Call(t.text, arg), nil
		}
		return Variable(t.text), nil
	case tokOp:
		if t.text == "(" {
			x, err := p.sum()
			if err != nil {
				return nil, err
			}
			if _, ok := p.acceptOp(")"); !ok {
				return nil, syntaxErrorf(p.peek().pos, "missing ')'")
			}
			return x, nil
		}
	case tokEOF:
		return nil, syntaxErrorf(t.pos, "unexpected end of input")
	}

	return nil, syntaxErrorf(t.pos, "unexpected %q", t.text)
}
