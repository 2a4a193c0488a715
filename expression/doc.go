// SPDX-License-Identifier: MIT

// Package expression parses, prints, evaluates and decomposes the symbolic
// expressions that make up power-law models.
//
// A model equation such as
//
//	x1. = a + b*x1*x2 - c*x1
//
// parses into a relation whose left side is the prime (time derivative) of
// x1 and whose right side is an n-ary sum of power-law products. Sums and
// products keep at most one folded numeric constant, always at branch 0, so
// that a term's coefficient and sign can be read in O(1).
//
// Printing is canonical and compact: no spaces around arithmetic operators,
// a−b for a+(−1·b), and parentheses only where precedence requires them.
//
// Evaluation takes any Lookup; *variables.Pool satisfies it.
package expression
