// SPDX-License-Identifier: MIT

// Package cases builds the cases of a GMA system: one dominant positive and
// one dominant negative term per equation.
//
// A case carries two sets of linear inequalities in log10 space:
//
//   - Conditions: δ + Cd·yd + Ci·yi > 0, one row per non-dominant term, saying
//     the chosen term dominates it.
//   - Boundaries: ζ + U·yi > 0, the conditions with the steady state of the
//     case's S-system substituted for yd (W = Cd·M, ζ = W·B + δ, U = Ci − W·Ai).
//     Boundaries exist only when the S-system has a solution.
//
// The region where a case is valid is the interior of its boundaries. Validity,
// parameter witnesses, bounding ranges and slice vertices are found with
// linear programs from package lp, or by clipping in package vertices.
//
// Case numbers are 1-based and read the signature as a mixed-radix number,
// last term least significant (BigEndian). LittleEndian makes the first
// term least significant.
//
// Errors (sentinel):
//
//   - ErrCaseNumberZero, ErrCaseNumberOutOfRange for bad case numbers.
//   - ErrSignatureMismatch for signatures that do not fit the system.
//   - ErrNoSolution for boundary work on a case without a steady state.
//   - ErrVariableNotIndependent for slice axes that are not Xi.
//   - ErrSliceDimension, ErrNotFixed for slices with the wrong free variables.
//   - ErrNotValid when a region is empty.
package cases
