// SPDX-License-Identifier: MIT

package designspace

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/variables"
)

// New parses the equations into a design space. xd names the dependent
// variable of each equation; nil takes them from the left-hand sides.
//
// Errors: the gma parse errors, ErrConditionShape.
func New(equations, xd []string, opts ...Option) (*DesignSpace, error) {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}

	var dep, indep *variables.Pool
	var err error
	if xd != nil {
		if dep, err = variables.NewPool(xd...); err != nil {
			return nil, fmt.Errorf("designspace: dependent variables: %w", err)
		}
	}
	if len(o.Xi) > 0 {
		if indep, err = variables.NewPool(o.Xi...); err != nil {
			return nil, fmt.Errorf("designspace: independent variables: %w", err)
		}
	}
	sys, err := gma.ParseWithXi(equations, dep, indep)
	if err != nil {
		return nil, err
	}

	ds := &DesignSpace{
		sys:     sys,
		workers: defaultWorkers(o.Workers),
		logger:  o.Logger,
		endian:  o.Endianness,
	}
	if ds.logger == nil {
		ds.logger = slog.Default()
	}
	if c := o.Conditions; c != nil {
		if err = ds.AddConditions(c.Cd, c.Ci, c.Delta); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// AddConditions appends user conditions δ + Cd·log Xd + Ci·log Xi > 0.
// Cd must have |Xd| columns and Ci |Xi| columns (Ci may be nil when there
// are no Xi); all three must have the same number of rows. The valid case
// memo is cleared.
func (ds *DesignSpace) AddConditions(cd, ci [][]float64, delta []float64) error {
	nd, ni := ds.sys.NumberOfEquations(), len(ds.sys.XiNames())
	if ci == nil && ni == 0 {
		ci = make([][]float64, len(cd))
	}
	if len(cd) != len(delta) || len(ci) != len(delta) {
		return fmt.Errorf("%w: %d/%d/%d rows", ErrConditionShape, len(cd), len(ci), len(delta))
	}
	for r := range cd {
		if len(cd[r]) != nd {
			return fmt.Errorf("%w: Cd row %d has %d columns, want %d", ErrConditionShape, r, len(cd[r]), nd)
		}
		if len(ci[r]) != ni {
			return fmt.Errorf("%w: Ci row %d has %d columns, want %d", ErrConditionShape, r, len(ci[r]), ni)
		}
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	next := &cases.Conditions{}
	if ds.extra != nil {
		next.Cd = append(next.Cd, ds.extra.Cd...)
		next.Ci = append(next.Ci, ds.extra.Ci...)
		next.Delta = append(next.Delta, ds.extra.Delta...)
	}
	for r := range cd {
		next.Cd = append(next.Cd, append([]float64(nil), cd[r]...))
		next.Ci = append(next.Ci, append([]float64(nil), ci[r]...))
	}
	next.Delta = append(next.Delta, delta...)
	ds.extra = next
	ds.valid = nil
	ds.gen++
	return nil
}

// GMA returns the underlying model.
func (ds *DesignSpace) GMA() *gma.System { return ds.sys }

// NumberOfEquations returns |Xd|.
func (ds *DesignSpace) NumberOfEquations() int { return ds.sys.NumberOfEquations() }

// Equations returns the model equations.
func (ds *DesignSpace) Equations() []*expression.Expression { return ds.sys.Equations() }

// Xd returns a copy of the dependent variables.
func (ds *DesignSpace) Xd() *variables.Pool { return ds.sys.Xd() }

// Xi returns a copy of the independent variables.
func (ds *DesignSpace) Xi() *variables.Pool { return ds.sys.Xi() }

// Signature returns the term counts [p0, n0, p1, n1, ...].
func (ds *DesignSpace) Signature() []int { return ds.sys.Signature() }

// NumberOfCases returns the product of the term counts.
func (ds *DesignSpace) NumberOfCases() int { return ds.sys.NumberOfCases() }

// Endianness returns the case numbering in use.
func (ds *DesignSpace) Endianness() cases.Endianness { return ds.endian }

func (ds *DesignSpace) caseOptions() []cases.Option {
	ds.mu.RLock()
	extra := ds.extra
	ds.mu.RUnlock()
	return []cases.Option{cases.WithEndianness(ds.endian), cases.WithExtraConditions(extra)}
}

// CaseWithNumber builds the case with the given 1-based number.
func (ds *DesignSpace) CaseWithNumber(n int) (*cases.Case, error) {
	return cases.New(ds.sys, n, ds.caseOptions()...)
}

// CaseWithSignature builds the case with the given dominant terms.
func (ds *DesignSpace) CaseWithSignature(sig []int) (*cases.Case, error) {
	return cases.NewFromSignature(ds.sys, sig, ds.caseOptions()...)
}

// CaseWithNumberIsValid builds case n and reports whether it is valid.
func (ds *DesignSpace) CaseWithNumberIsValid(n int) (bool, error) {
	c, err := ds.CaseWithNumber(n)
	if err != nil {
		return false, err
	}
	return c.IsValid(), nil
}

// String lists the equations, one per line.
func (ds *DesignSpace) String() string { return ds.sys.String() }
