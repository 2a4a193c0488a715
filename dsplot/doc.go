// SPDX-License-Identifier: MIT

// Package dsplot draws design spaces on 2-D slices of parameter space.
//
// A Plot fixes a design space, a point holding every independent variable,
// and two axes with their (linear) limits. Draw returns a Scene: a
// renderer-neutral description in log10 coordinates made of colored
// regions, function cells and outlines. Render writes a Scene to PNG, SVG
// or PDF with gonum/plot.
//
// Three modes are supported:
//
//   - ModeSlice: one region per valid case, plus regions where valid cases
//     overlap, keyed "c1,c2".
//   - ModeFunction: a function of Xi, the steady state Xd and the fluxes
//     V_<xd> sampled over each valid case.
//   - ModeRouth: the largest Routh index of the cases valid at each grid
//     point, −1 where none is.
package dsplot
