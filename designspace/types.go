// SPDX-License-Identifier: MIT

package designspace

import (
	"errors"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/gma"
)

// Sentinel errors.
var (
	// ErrConditionShape indicates extra conditions whose shape does not match Xd, Xi or δ.
	ErrConditionShape = errors.New("designspace: condition matrices have the wrong shape")

	// ErrNotUnderdetermined indicates a case that has a solution or no problematic equations.
	ErrNotUnderdetermined = errors.New("designspace: case is not underdetermined")

	// ErrNoSubcase indicates an underdetermined case whose dominant terms do
	// not cancel, so it has no internal design space.
	ErrNoSubcase = errors.New("designspace: case has no subcase design space")

	// ErrTooFewCases indicates an intersection query with fewer than two cases.
	ErrTooFewCases = errors.New("designspace: intersection needs at least two cases")
)

// batchSize is the number of cases enumerated between progress logs.
const batchSize = 256

// Options configures a DesignSpace.
type Options struct {
	Xi         []string       // leading order of the independent variables
	Workers    int            // enumeration goroutines; ≤ 0 means GOMAXPROCS
	Logger     *slog.Logger   // nil means slog.Default()
	Conditions *cases.Conditions
	Endianness cases.Endianness
}

// Option mutates Options.
type Option func(*Options)

// WithXi fixes the order of the independent variables. Names not listed are
// appended in order of first appearance.
func WithXi(names ...string) Option {
	return func(o *Options) { o.Xi = append([]string(nil), names...) }
}

// WithWorkers bounds the number of cases built concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger used for enumeration progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithConditions adds user conditions δ + Cd·log Xd + Ci·log Xi > 0 to
// every case, one row each.
func WithConditions(cd, ci [][]float64, delta []float64) Option {
	return func(o *Options) {
		o.Conditions = &cases.Conditions{Cd: cd, Ci: ci, Delta: delta}
	}
}

// WithLittleEndian numbers cases with the first signature entry least
// significant.
func WithLittleEndian() Option {
	return func(o *Options) { o.Endianness = cases.LittleEndian }
}

// DesignSpace is a GMA model together with its case enumeration.
type DesignSpace struct {
	sys     *gma.System // immutable
	workers int
	logger  *slog.Logger
	endian  cases.Endianness

	mu    sync.RWMutex
	extra *cases.Conditions // replaced, never mutated, by AddConditions
	valid []int             // memoised valid case numbers; nil until computed
	gen   uint64            // bumped by AddConditions; a memo from an older gen is dropped
}

// Intersection is a group of cases whose regions overlap.
type Intersection []*cases.Case

// Numbers returns the case numbers of the group.
func (in Intersection) Numbers() []int {
	out := make([]int, len(in))
	for k, c := range in {
		out[k] = c.Number()
	}
	return out
}

// Key joins the case numbers with commas, e.g. "3,7".
func (in Intersection) Key() string {
	parts := make([]string, len(in))
	for k, c := range in {
		parts[k] = strconv.Itoa(c.Number())
	}
	return strings.Join(parts, ",")
}

// Subcase describes an underdetermined case: its S-system has no steady
// state and the listed groups of equations are linearly dependent.
type Subcase struct {
	CaseNumber  int
	Problematic [][]int // 0-based equation indices per dependent group
	Case        *cases.Case

	parent *DesignSpace
}

func defaultWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
