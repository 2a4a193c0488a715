// SPDX-License-Identifier: MIT

// Package gma parses generalized mass action (GMA) models.
//
// Every equation of a GMA model reads
//
//	Xd_i. = Σ_p α_ip Π_j X_j^g_ipj − Σ_n β_in Π_j X_j^h_inj
//
// where Xd are the dependent variables (one per equation) and Xi the
// independent variables: every other symbol on a right-hand side, including
// rate constants such as a, b or c. System stores the coefficients α, β and
// the kinetic orders split into dependent (Gd, Hd) and independent (Gi, Hi)
// blocks, which is exactly the data the ssystem and cases packages consume.
package gma
