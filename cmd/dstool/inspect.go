// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/variables"
)

func newCasesCmd(g *globals) *cobra.Command {
	var slice string
	cmd := &cobra.Command{
		Use:   "cases <model.yaml>",
		Short: "List the valid cases of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := g.load(args[0])
			if err != nil {
				return err
			}
			var valid []*cases.Case
			if slice == "" {
				valid, err = ds.ValidCases(cmd.Context())
			} else {
				lower, upper, perr := parseSlice(slice)
				if perr != nil {
					return perr
				}
				valid, err = ds.ValidCasesForSlice(cmd.Context(), lower, upper)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Number of cases: %d\n", ds.NumberOfCases())
			fmt.Fprintf(w, "Valid cases: %d\n", len(valid))
			for _, c := range valid {
				fmt.Fprintln(w, c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&slice, "slice", "", `slice bounds, e.g. "b=0.01:100, c=1"`)
	return cmd
}

// parseSlice reads "name=lo:hi" and "name=value" entries separated by
// commas into the lower and upper corners of a slice.
func parseSlice(s string) (*variables.Pool, *variables.Pool, error) {
	lower, _ := variables.NewPool()
	upper, _ := variables.NewPool()
	for _, part := range strings.Split(s, ",") {
		name, bounds, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, nil, fmt.Errorf("--slice: %q: %w", part, variables.ErrMalformed)
		}
		lo, hi, ranged := strings.Cut(bounds, ":")
		if !ranged {
			hi = lo
		}
		l, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("--slice: %q: %w", part, variables.ErrMalformed)
		}
		u, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("--slice: %q: %w", part, variables.ErrMalformed)
		}
		name = strings.TrimSpace(name)
		if err = lower.Add(name, min(l, u)); err != nil {
			return nil, nil, err
		}
		if err = upper.Add(name, max(l, u)); err != nil {
			return nil, nil, err
		}
	}
	return lower, upper, nil
}

func newCaseCmd(g *globals) *cobra.Command {
	var logForm bool
	cmd := &cobra.Command{
		Use:   "case <model.yaml> <number>",
		Short: "Print the equations, solution, conditions and boundaries of a case",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := g.load(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("case number %q: %w", args[1], err)
			}
			c, err := ds.CaseWithNumber(n)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, c)
			section(w, "Equations", c.Equations())
			if c.HasSolution() {
				sol, err := c.Solution(logForm)
				if err != nil {
					return err
				}
				section(w, "Solution", sol)
			} else {
				fmt.Fprintln(w, "Solution: none")
			}
			section(w, "Conditions", c.Conditions(logForm))
			if c.HasSolution() {
				bnd, err := c.Boundaries(logForm)
				if err != nil {
					return err
				}
				section(w, "Boundaries", bnd)
			}
			fmt.Fprintf(w, "Valid: %t\n", c.IsValid())
			return nil
		},
	}
	cmd.Flags().BoolVar(&logForm, "log", false, "print conditions and solution in log form")
	return cmd
}

func section(w io.Writer, title string, es []*expression.Expression) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, e := range es {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func newSteadyStateCmd(g *globals) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "steady-state <model.yaml> <number>",
		Short: "Evaluate the steady state and fluxes of a case at a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ds, err := g.load(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("case number %q: %w", args[1], err)
			}
			c, err := ds.CaseWithNumber(n)
			if err != nil {
				return err
			}
			point, err := m.PointPool()
			if err != nil {
				return err
			}
			if at != "" {
				if point, err = variables.Parse(at); err != nil {
					return fmt.Errorf("--at: %w", err)
				}
			}

			ss, err := c.SteadyStateAt(point)
			if err != nil {
				return err
			}
			fl, err := c.FluxAt(point)
			if err != nil {
				return err
			}
			valid, err := c.IsValidAtPoint(point)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for k, name := range c.Xd() {
				fmt.Fprintf(w, "%s = %.6g\n", name, ss[k])
			}
			for k, name := range c.Xd() {
				fmt.Fprintf(w, "V_%s = %.6g\n", name, fl[k])
			}
			fmt.Fprintf(w, "Valid: %t\n", valid)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "point, e.g. a=1,b=2; defaults to the model's point")
	return cmd
}
