// SPDX-License-Identifier: MIT

package expression

import (
	"fmt"
	"math"
)

// Variables returns the distinct variable names of e in order of first
// appearance (left to right, depth first). Function names are not included.
func (e *Expression) Variables() []string {
	seen := make(map[string]struct{})
	var out []string
	var walk func(*Expression)
	walk = func(n *Expression) {
		if n.kind == KindVariable {
			if _, ok := seen[n.name]; !ok {
				seen[n.name] = struct{}{}
				out = append(out, n.name)
			}
			return
		}
		for _, b := range n.branches {
			walk(b)
		}
	}
	walk(e)

	return out
}

// Terms returns the additive terms of e: the branches of a sum, or e itself.
// A folded constant at branch 0 of a sum is a term like any other.
func (e *Expression) Terms() []*Expression {
	if e.kind == KindOperator && e.op == OpSum {
		return append([]*Expression(nil), e.branches...)
	}
	return []*Expression{e}
}

// IsNegative reports whether a term carries a negative sign.
func (e *Expression) IsNegative() bool {
	_, neg := e.negated()
	return neg
}

// NumberOfPositiveTerms counts terms of e without a negative sign.
func (e *Expression) NumberOfPositiveTerms() int {
	n := 0
	for _, t := range e.Terms() {
		if !t.IsNegative() {
			n++
		}
	}
	return n
}

// NumberOfNegativeTerms counts terms of e with a negative sign.
func (e *Expression) NumberOfNegativeTerms() int {
	n := 0
	for _, t := range e.Terms() {
		if t.IsNegative() {
			n++
		}
	}
	return n
}

// PowerLawTerm is coefficient · Π name^exponent. Names lists the factors in
// order of first appearance.
type PowerLawTerm struct {
	Coefficient float64
	Names       []string
	Exponents   map[string]float64
}

// Exponent returns the exponent of name (0 when absent).
func (t PowerLawTerm) Exponent(name string) float64 { return t.Exponents[name] }

func (t *PowerLawTerm) addExponent(name string, g float64) {
	if _, ok := t.Exponents[name]; !ok {
		t.Names = append(t.Names, name)
	}
	t.Exponents[name] += g
}

// PowerLaw decomposes a single term into coefficient and exponents.
// Accepted shapes: constants, variables, products of accepted shapes, and
// accepted shapes raised to constant exponents.
//
// Errors: ErrNotPowerLaw.
func (e *Expression) PowerLaw() (PowerLawTerm, error) {
	t := PowerLawTerm{Coefficient: 1, Exponents: make(map[string]float64)}
	if err := e.collectPowerLaw(&t, 1); err != nil {
		return PowerLawTerm{}, fmt.Errorf("%s: %w", e, err)
	}
	return t, nil
}

func (e *Expression) collectPowerLaw(t *PowerLawTerm, scale float64) error {
	switch e.kind {
	case KindConstant:
		t.Coefficient *= math.Pow(e.value, scale)
		return nil
	case KindVariable:
		t.addExponent(e.name, scale)
		return nil
	case KindFunction:
		return ErrNotPowerLaw
	}

	switch e.op {
	case OpProduct:
		for _, b := range e.branches {
			if err := b.collectPowerLaw(t, scale); err != nil {
				return err
			}
		}
		return nil
	case OpPower:
		exp := e.branches[1]
		if !exp.IsConstant() {
			return ErrNotPowerLaw
		}
		return e.branches[0].collectPowerLaw(t, scale*exp.value)
	}

	return ErrNotPowerLaw
}

// PowerLawExpression builds coefficient · Π name^exponent, skipping zero exponents.
func PowerLawExpression(coefficient float64, names []string, exponents []float64) *Expression {
	factors := make([]*Expression, 0, len(names)+1)
	factors = append(factors, Constant(coefficient))
	for i, n := range names {
		if exponents[i] == 0 {
			continue
		}
		factors = append(factors, Power(Variable(n), Constant(exponents[i])))
	}
	return Product(factors...)
}
