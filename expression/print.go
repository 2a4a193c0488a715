// SPDX-License-Identifier: MIT

package expression

import (
	"strconv"
	"strings"
)

// precedence levels used by the printer.
const (
	precRelation = iota
	precSum
	precProduct
	precPower
	precPrime
	precAtom
)

func (e *Expression) precedence() int {
	if e.kind == KindConstant && e.value < 0 {
		// A leading minus binds like a product coefficient.
		return precProduct
	}
	if e.kind != KindOperator {
		return precAtom
	}
	switch e.op {
	case OpSum:
		return precSum
	case OpProduct:
		return precProduct
	case OpPower:
		return precPower
	case OpPrime:
		return precPrime
	default:
		return precRelation
	}
}

// formatNumber prints v in the shortest form that round-trips.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String prints e canonically, e.g. "a+b*x1*x2-c*x1" or "x1. = a-x1".
func (e *Expression) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expression) write(b *strings.Builder) {
	switch e.kind {
	case KindConstant:
		b.WriteString(formatNumber(e.value))
		return
	case KindVariable:
		b.WriteString(e.name)
		return
	case KindFunction:
		b.WriteString(e.name)
		b.WriteByte('(')
		e.branches[0].write(b)
		b.WriteByte(')')
		return
	}

	switch e.op {
	case OpSum:
		e.writeSum(b)
	case OpProduct:
		e.writeProduct(b)
	case OpPower:
		e.branches[0].writeChild(b, precPower+1)
		b.WriteByte('^')
		exp := e.branches[1]
		if exp.IsConstant() {
			exp.write(b)
		} else {
			exp.writeChild(b, precPower+1)
		}
	case OpPrime:
		e.branches[0].writeChild(b, precPrime)
		b.WriteByte('.')
	default:
		e.branches[0].write(b)
		b.WriteByte(' ')
		b.WriteByte(e.op)
		b.WriteByte(' ')
		e.branches[1].write(b)
	}
}

// writeChild parenthesises e when it binds looser than minPrec.
func (e *Expression) writeChild(b *strings.Builder, minPrec int) {
	if e.precedence() < minPrec {
		b.WriteByte('(')
		e.write(b)
		b.WriteByte(')')
		return
	}
	e.write(b)
}

func (e *Expression) writeSum(b *strings.Builder) {
	first := true
	for i, t := range e.branches {
		if i == 0 && t.IsConstant() && t.value == 0 {
			continue
		}
		if !first {
			if neg, ok := t.negated(); ok {
				b.WriteByte('-')
				neg.writeChild(b, precProduct)
				continue
			}
			b.WriteByte('+')
		}
		t.writeChild(b, precSum+1)
		first = false
	}
	if first {
		b.WriteByte('0')
	}
}

func (e *Expression) writeProduct(b *strings.Builder) {
	factors := e.branches
	if c := factors[0]; c.IsConstant() {
		switch c.value {
		case 1:
		case -1:
			b.WriteByte('-')
		default:
			b.WriteString(formatNumber(c.value))
			b.WriteByte('*')
		}
		factors = factors[1:]
	}
	for i, f := range factors {
		if i > 0 {
			b.WriteByte('*')
		}
		f.writeChild(b, precProduct+1)
	}
}

// negated returns −e when e carries an explicit negative sign (a negative
// constant or a product with a negative coefficient).
func (e *Expression) negated() (*Expression, bool) {
	switch {
	case e.IsConstant() && e.value < 0:
		return Constant(-e.value), true
	case e.kind == KindOperator && e.op == OpProduct && e.branches[0].IsConstant() && e.branches[0].value < 0:
		return Product(Constant(-1), e), true
	}
	return nil, false
}
