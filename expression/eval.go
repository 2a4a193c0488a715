// SPDX-License-Identifier: MIT

package expression

import (
	"fmt"
	"math"
)

// functions is the closed set of callable functions. log is base 10, the
// convention of the S-system literature.
var functions = map[string]func(float64) float64{
	"log":   math.Log10,
	"log10": math.Log10,
	"ln":    math.Log,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"real":  func(x float64) float64 { return x },
}

// IsFunction reports whether name is a supported function.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// Eval computes the numeric value of e. Relations evaluate to lhs−rhs for
// '=' and to 1 or 0 for '<' and '>'.
//
// Errors: ErrUnknownVariable, ErrUnknownFunction, ErrNotEvaluable.
func (e *Expression) Eval(vars Lookup) (float64, error) {
	switch e.kind {
	case KindConstant:
		return e.value, nil
	case KindVariable:
		if vars != nil {
			if v, ok := vars.Lookup(e.name); ok {
				return v, nil
			}
		}
		return 0, fmt.Errorf("%q: %w", e.name, ErrUnknownVariable)
	case KindFunction:
		fn, ok := functions[e.name]
		if !ok {
			return 0, fmt.Errorf("%q: %w", e.name, ErrUnknownFunction)
		}
		x, err := e.branches[0].Eval(vars)
		if err != nil {
			return 0, err
		}
		return fn(x), nil
	}

	switch e.op {
	case OpSum:
		total := 0.0
		for _, b := range e.branches {
			v, err := b.Eval(vars)
			if err != nil {
				return 0, err
			}
			total += v
		}
		return total, nil
	case OpProduct:
		total := 1.0
		for _, b := range e.branches {
			v, err := b.Eval(vars)
			if err != nil {
				return 0, err
			}
			total *= v
		}
		return total, nil
	case OpPower:
		base, err := e.branches[0].Eval(vars)
		if err != nil {
			return 0, err
		}
		exp, err := e.branches[1].Eval(vars)
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	case OpEqual, OpLess, OpGreater:
		l, err := e.branches[0].Eval(vars)
		if err != nil {
			return 0, err
		}
		r, err := e.branches[1].Eval(vars)
		if err != nil {
			return 0, err
		}
		switch e.op {
		case OpEqual:
			return l - r, nil
		case OpLess:
			return boolValue(l < r), nil
		default:
			return boolValue(l > r), nil
		}
	}

	return 0, fmt.Errorf("operator %q: %w", e.op, ErrNotEvaluable)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
