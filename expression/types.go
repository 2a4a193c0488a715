// SPDX-License-Identifier: MIT

package expression

import (
	"errors"
	"math"
)

// Sentinel errors for parsing, evaluation and analysis.
var (
	// ErrSyntax indicates input that does not match the expression grammar.
	ErrSyntax = errors.New("expression: syntax error")

	// ErrUnknownVariable indicates Eval met a variable the lookup does not provide.
	ErrUnknownVariable = errors.New("expression: unknown variable")

	// ErrUnknownFunction indicates a call to a function outside the supported set.
	ErrUnknownFunction = errors.New("expression: unknown function")

	// ErrNotEvaluable indicates a node with no numeric value (a prime marker).
	ErrNotEvaluable = errors.New("expression: node cannot be evaluated")

	// ErrNotPowerLaw indicates a term that is not a product of a constant and
	// variables raised to constant exponents.
	ErrNotPowerLaw = errors.New("expression: term is not a power law")
)

// Kind identifies the node type of an Expression.
type Kind uint8

const (
	// KindConstant is a numeric literal.
	KindConstant Kind = iota
	// KindVariable is a named variable.
	KindVariable
	// KindFunction is a call name(arg).
	KindFunction
	// KindOperator is an arithmetic operator, the prime marker or a relation.
	KindOperator
)

// Operator symbols stored in Expression.Op.
const (
	OpSum     byte = '+'
	OpProduct byte = '*'
	OpPower   byte = '^'
	OpPrime   byte = '.'
	OpEqual   byte = '='
	OpLess    byte = '<'
	OpGreater byte = '>'
)

// Expression is an immutable node of a symbolic expression tree.
// Constructors fold constants; callers never mutate a node after building it.
type Expression struct {
	kind     Kind
	value    float64       // KindConstant
	name     string        // KindVariable, KindFunction
	op       byte          // KindOperator
	branches []*Expression // operator operands or the single function argument
}

// Lookup resolves variable values during evaluation.
type Lookup interface {
	Lookup(name string) (float64, bool)
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(name string) (float64, bool)

// Lookup calls f.
func (f LookupFunc) Lookup(name string) (float64, bool) { return f(name) }

// MapLookup adapts a map to Lookup.
type MapLookup map[string]float64

// Lookup returns m[name].
func (m MapLookup) Lookup(name string) (float64, bool) {
	v, ok := m[name]
	return v, ok
}

// Kind returns the node kind.
func (e *Expression) Kind() Kind { return e.kind }

// Op returns the operator symbol, or 0 for non-operator nodes.
func (e *Expression) Op() byte {
	if e.kind != KindOperator {
		return 0
	}
	return e.op
}

// Name returns the variable or function name, or "" for other kinds.
func (e *Expression) Name() string { return e.name }

// Value returns the constant value; it is meaningful only for KindConstant.
func (e *Expression) Value() float64 { return e.value }

// NumberOfBranches returns the operand count.
func (e *Expression) NumberOfBranches() int { return len(e.branches) }

// Branch returns operand i, or nil when out of range.
func (e *Expression) Branch(i int) *Expression {
	if i < 0 || i >= len(e.branches) {
		return nil
	}
	return e.branches[i]
}

// IsConstant reports whether e is a numeric literal.
func (e *Expression) IsConstant() bool { return e.kind == KindConstant }

// IsRelation reports whether e is an =, < or > node.
func (e *Expression) IsRelation() bool {
	return e.kind == KindOperator && (e.op == OpEqual || e.op == OpLess || e.op == OpGreater)
}

// Left returns the left side of a relation, or nil.
func (e *Expression) Left() *Expression {
	if !e.IsRelation() {
		return nil
	}
	return e.branches[0]
}

// Right returns the right side of a relation, or nil.
func (e *Expression) Right() *Expression {
	if !e.IsRelation() {
		return nil
	}
	return e.branches[1]
}

// ---------- constructors ----------

// Constant returns a numeric literal node.
func Constant(v float64) *Expression {
	return &Expression{kind: KindConstant, value: v}
}

// Variable returns a variable node.
func Variable(name string) *Expression {
	return &Expression{kind: KindVariable, name: name}
}

// Call returns name(arg). A constant argument to a known function is folded.
func Call(name string, arg *Expression) *Expression {
	if arg.IsConstant() {
		if fn, ok := functions[name]; ok {
			if v := fn(arg.value); !math.IsNaN(v) && !math.IsInf(v, 0) {
				return Constant(v)
			}
		}
	}
	return &Expression{kind: KindFunction, name: name, branches: []*Expression{arg}}
}

// Prime returns the derivative marker x. (written x. or x').
func Prime(x *Expression) *Expression {
	return &Expression{kind: KindOperator, op: OpPrime, branches: []*Expression{x}}
}

// Relation returns lhs op rhs for op in {'=', '<', '>'}.
func Relation(op byte, lhs, rhs *Expression) *Expression {
	return &Expression{kind: KindOperator, op: op, branches: []*Expression{lhs, rhs}}
}

// Sum builds an n-ary sum. Nested sums are flattened and numeric terms are
// folded into a single constant at branch 0, dropped when it is 0.
// An empty sum is 0; a sum with one remaining term is that term.
func Sum(terms ...*Expression) *Expression {
	c := 0.0
	rest := make([]*Expression, 0, len(terms))
	for _, t := range terms {
		switch {
		case t == nil:
			continue
		case t.IsConstant():
			c += t.value
		case t.kind == KindOperator && t.op == OpSum:
			for i, b := range t.branches {
				if i == 0 && b.IsConstant() {
					c += b.value
					continue
				}
				rest = append(rest, b)
			}
		default:
			rest = append(rest, t)
		}
	}
	if len(rest) == 0 {
		return Constant(c)
	}
	if c == 0 && len(rest) == 1 {
		return rest[0]
	}
	branches := make([]*Expression, 0, len(rest)+1)
	if c != 0 {
		branches = append(branches, Constant(c))
	}
	branches = append(branches, rest...)

	return &Expression{kind: KindOperator, op: OpSum, branches: branches}
}

// Product builds an n-ary product. Nested products are flattened and numeric
// factors are folded into a single constant at branch 0, dropped when it is 1.
// A zero constant collapses the product to 0.
func Product(factors ...*Expression) *Expression {
	c := 1.0
	rest := make([]*Expression, 0, len(factors))
	for _, f := range factors {
		switch {
		case f == nil:
			continue
		case f.IsConstant():
			c *= f.value
		case f.kind == KindOperator && f.op == OpProduct:
			for i, b := range f.branches {
				if i == 0 && b.IsConstant() {
					c *= b.value
					continue
				}
				rest = append(rest, b)
			}
		default:
			rest = append(rest, f)
		}
	}
	if c == 0 || len(rest) == 0 {
		return Constant(c)
	}
	if c == 1 && len(rest) == 1 {
		return rest[0]
	}
	branches := make([]*Expression, 0, len(rest)+1)
	if c != 1 {
		branches = append(branches, Constant(c))
	}
	branches = append(branches, rest...)

	return &Expression{kind: KindOperator, op: OpProduct, branches: branches}
}

// Power builds base^exponent. Constant^constant is folded, x^1 is x and
// x^0 is 1.
func Power(base, exponent *Expression) *Expression {
	if exponent.IsConstant() {
		switch {
		case exponent.value == 0:
			return Constant(1)
		case exponent.value == 1:
			return base
		case base.IsConstant():
			if v := math.Pow(base.value, exponent.value); !math.IsNaN(v) && !math.IsInf(v, 0) {
				return Constant(v)
			}
		}
	}
	return &Expression{kind: KindOperator, op: OpPower, branches: []*Expression{base, exponent}}
}

// Negate returns −e as a product with a −1 coefficient (or a negated constant).
func Negate(e *Expression) *Expression {
	if e.IsConstant() {
		return Constant(-e.value)
	}
	return Product(Constant(-1), e)
}

// Difference returns a − b, stored as a + (−1·b).
func Difference(a, b *Expression) *Expression { return Sum(a, Negate(b)) }

// Quotient returns a / b, stored as a·b^−1.
func Quotient(a, b *Expression) *Expression { return Product(a, Power(b, Constant(-1))) }
