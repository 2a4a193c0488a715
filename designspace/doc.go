// SPDX-License-Identifier: MIT

// Package designspace partitions a GMA model into cases.
//
// A DesignSpace owns one parsed gma.System. Each combination of dominant
// terms is a case; cases are numbered 1..NumberOfCases and built on demand
// by the cases package. Enumeration (CalculateCases, ValidCases,
// ValidCasesForSlice, UnderdeterminedCases) runs on an errgroup worker
// pool, records an OpenTelemetry span and updates the metrics package.
//
// An underdetermined case (no steady state, dependent equations) resolves
// through Subcase into an internal design space of its own.
//
// The valid case numbers are memoised; AddConditions clears the memo.
// A DesignSpace is safe for concurrent use.
package designspace
