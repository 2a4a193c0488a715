// SPDX-License-Identifier: MIT

// Package ssystem builds S-systems, the power-law models with exactly one
// positive and one negative term per equation, and solves them in
// logarithmic coordinates.
//
// Writing y = log10(X), the steady state of
//
//	Xd_i. = α_i Π X^G_i − β_i Π X^H_i
//
// satisfies the linear system Ad·yd + Ai·yi = B with Ad = Gd − Hd,
// Ai = Gi − Hi and B = log10(β/α). When Ad is invertible (M = Ad⁻¹) the
// solution is yd = M·B + L·yi with L = −M·Ai, the matrix of logarithmic
// gains. Local stability follows from the Routh–Hurwitz test on the
// Jacobian at the steady state.
package ssystem
