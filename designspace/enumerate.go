// SPDX-License-Identifier: MIT

package designspace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/metrics"
	"github.com/katalvlaran/dstoolbox/variables"
)

var tracer = otel.Tracer("dstoolbox.designspace")

// keepFunc decides whether an enumerated case is returned.
type keepFunc func(*cases.Case) (bool, error)

func keepAll(*cases.Case) (bool, error) { return true, nil }

// allNumbers returns 1..NumberOfCases.
func (ds *DesignSpace) allNumbers() []int {
	out := make([]int, ds.NumberOfCases())
	for k := range out {
		out[k] = k + 1
	}
	return out
}

// scan builds the numbered cases on the worker pool, batchSize at a time,
// and returns those keep accepts, in the order of numbers.
func (ds *DesignSpace) scan(ctx context.Context, span trace.Span, op string, numbers []int, keep keepFunc) ([]*cases.Case, error) {
	out := make([]*cases.Case, len(numbers))
	for start := 0; start < len(numbers); start += batchSize {
		end := min(start+batchSize, len(numbers))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(ds.workers)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				c, err := ds.CaseWithNumber(numbers[i])
				if err != nil {
					return fmt.Errorf("case %d: %w", numbers[i], err)
				}
				ok, err := keep(c)
				if err != nil {
					return fmt.Errorf("case %d: %w", numbers[i], err)
				}
				if ok {
					out[i] = c
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		ds.logger.Debug("designspace batch done",
			slog.String("op", op),
			slog.Int("from", numbers[start]),
			slog.Int("to", numbers[end-1]),
			slog.Int("total", len(numbers)),
		)
	}

	kept := out[:0]
	for _, c := range out {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// CalculateCases builds the numbered cases concurrently; nil numbers means
// every case. The result follows the order of numbers.
func (ds *DesignSpace) CalculateCases(ctx context.Context, numbers []int) ([]*cases.Case, error) {
	if numbers == nil {
		numbers = ds.allNumbers()
	}
	ctx, span := tracer.Start(ctx, "designspace.CalculateCases",
		trace.WithAttributes(attribute.Int("cases", len(numbers)), attribute.Int("workers", ds.workers)))
	defer span.End()

	out, err := ds.scan(ctx, span, "CalculateCases", numbers, keepAll)
	if err != nil {
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// validNumbers returns the memoised valid case numbers, computing them on
// first use. A result is not memoised when AddConditions ran during the scan.
func (ds *DesignSpace) validNumbers(ctx context.Context) ([]int, error) {
	ds.mu.RLock()
	memo, gen := ds.valid, ds.gen
	ds.mu.RUnlock()
	if memo != nil {
		return append([]int(nil), memo...), nil
	}

	ctx, span := tracer.Start(ctx, "designspace.ValidCases",
		trace.WithAttributes(attribute.Int("cases", ds.NumberOfCases()), attribute.Int("workers", ds.workers)))
	defer span.End()

	began := time.Now()
	valid, err := ds.scan(ctx, span, "ValidCases", ds.allNumbers(), func(c *cases.Case) (bool, error) {
		ok := c.IsValid()
		metrics.ObserveCase(ok)
		return ok, nil
	})
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(began)
	metrics.ObserveEnumeration(elapsed)

	numbers := make([]int, len(valid))
	for k, c := range valid {
		numbers[k] = c.Number()
	}
	span.SetAttributes(attribute.Int("valid", len(numbers)))
	span.SetStatus(codes.Ok, "")
	ds.logger.Info("designspace valid cases",
		slog.Int("cases", ds.NumberOfCases()),
		slog.Int("valid", len(numbers)),
		slog.Duration("elapsed", elapsed),
	)

	ds.mu.Lock()
	if ds.gen == gen {
		ds.valid = numbers
	}
	ds.mu.Unlock()
	return append([]int(nil), numbers...), nil
}

// ValidCaseNumbers returns the valid case numbers in ascending order.
func (ds *DesignSpace) ValidCaseNumbers(ctx context.Context) ([]int, error) {
	return ds.validNumbers(ctx)
}

// ValidCases returns every valid case, ordered by case number.
func (ds *DesignSpace) ValidCases(ctx context.Context) ([]*cases.Case, error) {
	numbers, err := ds.validNumbers(ctx)
	if err != nil {
		return nil, err
	}
	return ds.CalculateCases(ctx, numbers)
}

// NumberOfValidCases returns the number of valid cases.
func (ds *DesignSpace) NumberOfValidCases(ctx context.Context) (int, error) {
	numbers, err := ds.validNumbers(ctx)
	if err != nil {
		return 0, err
	}
	return len(numbers), nil
}

// ValidCasesForSlice returns the cases valid inside the box lower..upper,
// ordered by case number. Every case is tested, so a case that only touches
// the slice at a fixed point is included.
func (ds *DesignSpace) ValidCasesForSlice(ctx context.Context, lower, upper *variables.Pool) ([]*cases.Case, error) {
	ctx, span := tracer.Start(ctx, "designspace.ValidCasesForSlice",
		trace.WithAttributes(attribute.Int("cases", ds.NumberOfCases()), attribute.Int("workers", ds.workers)))
	defer span.End()

	began := time.Now()
	out, err := ds.scan(ctx, span, "ValidCasesForSlice", ds.allNumbers(), func(c *cases.Case) (bool, error) {
		ok, err := c.IsValidAtSlice(lower, upper)
		if err != nil {
			return false, err
		}
		metrics.ObserveCase(ok)
		return ok, nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveEnumeration(time.Since(began))
	span.SetAttributes(attribute.Int("valid", len(out)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// UnderdeterminedCases returns the numbers of the invalid cases that have
// no steady state and at least one group of problematic equations.
func (ds *DesignSpace) UnderdeterminedCases(ctx context.Context) ([]int, error) {
	ctx, span := tracer.Start(ctx, "designspace.UnderdeterminedCases",
		trace.WithAttributes(attribute.Int("cases", ds.NumberOfCases())))
	defer span.End()

	found, err := ds.scan(ctx, span, "UnderdeterminedCases", ds.allNumbers(), func(c *cases.Case) (bool, error) {
		if c.HasSolution() {
			return false, nil
		}
		groups, err := c.ProblematicEquations()
		return len(groups) > 0, err
	})
	if err != nil {
		return nil, err
	}
	out := make([]int, len(found))
	for k, c := range found {
		out[k] = c.Number()
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// Subcase returns the problematic equation groups of an underdetermined
// case. Subcase.DesignSpace resolves them into an internal design space.
//
// Errors: the case construction errors, ErrNotUnderdetermined.
func (ds *DesignSpace) Subcase(caseNumber int) (*Subcase, error) {
	c, err := ds.CaseWithNumber(caseNumber)
	if err != nil {
		return nil, err
	}
	if c.HasSolution() {
		return nil, fmt.Errorf("case %d has a steady state: %w", caseNumber, ErrNotUnderdetermined)
	}
	groups, err := c.ProblematicEquations()
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("case %d has no problematic equations: %w", caseNumber, ErrNotUnderdetermined)
	}
	return &Subcase{CaseNumber: caseNumber, Problematic: groups, Case: c, parent: ds}, nil
}
