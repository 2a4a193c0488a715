// SPDX-License-Identifier: MIT

// Package dstoolbox analyses the design space of generalized mass action
// (GMA) models: systems of ODEs whose right-hand sides are sums of positive
// and negative power laws.
//
// Picking one dominant positive and one dominant negative term per equation
// turns a GMA system into an S-system, which is linear in log space and has
// a closed-form steady state. Each such choice is a case. A case is valid
// over a polytope of parameter space where its dominance conditions hold,
// and the valid cases together partition that space: the design space.
//
// Everything lives in subpackages:
//
//	variables/    Pool, the ordered name→value point used everywhere
//	expression/   parser, printer and evaluator for equations and conditions
//	matrix/       dense linear algebra (inverse, rank, nullspace, char. polynomial)
//	gma/          a GMA system parsed into power-law term matrices
//	ssystem/      S-systems: steady state, fluxes, log gains, Routh stability
//	lp/           linear programs on gonum's simplex
//	vertices/     polygon clipping and vertex sets of slices
//	cases/        one case: conditions, boundaries, validity, slice geometry
//	designspace/  case enumeration, valid cases, intersections
//	dsplot/       renderer-neutral plot scenes and a gonum/plot renderer
//	config/       YAML model files
//	store/        Badger persistence of models and results
//	metrics/      Prometheus instrumentation
//	server/       HTTP API
//	cmd/dstool/   command-line front end
//
// Quick example:
//
//	ds, _ := designspace.New([]string{
//		"x1. = a + b*x1*x2 - c*x1",
//		"x2. = c*x1 - x2",
//	}, nil)
//	valid, _ := ds.ValidCases(context.Background())
//	for _, c := range valid {
//		fmt.Println(c) // Case 1: 1111, Case 2: 2111
//	}
package dstoolbox
