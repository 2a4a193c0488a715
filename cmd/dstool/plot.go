// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/dstoolbox/dsplot"
)

func newPlotCmd(g *globals) *cobra.Command {
	var (
		out, scenePath string
		caseNumber     int
		width, height  float64
	)
	cmd := &cobra.Command{
		Use:   "plot <model.yaml>",
		Short: "Draw the slice described by the model's plot block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ds, err := g.load(args[0])
			if err != nil {
				return err
			}
			p, draw, err := m.NewPlot(ds)
			if err != nil {
				return err
			}
			var s *dsplot.Scene
			if caseNumber > 0 {
				s, err = p.DrawCase(cmd.Context(), caseNumber, draw)
			} else {
				s, err = p.Draw(cmd.Context(), draw)
			}
			if err != nil {
				return err
			}

			if scenePath != "" {
				raw, err := json.MarshalIndent(s, "", "  ")
				if err != nil {
					return err
				}
				if err = os.WriteFile(scenePath, raw, 0o644); err != nil {
					return err
				}
			}
			if err = dsplot.Render(s, out, vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch); err != nil {
				return err
			}
			g.logger.Info("plot written", "path", out, "mode", p.Mode().String(),
				"regions", len(s.Regions), "cells", len(s.Cells))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "designspace.png", "image path; the extension selects the format")
	cmd.Flags().StringVar(&scenePath, "scene", "", "also write the scene as JSON to this path")
	cmd.Flags().IntVar(&caseNumber, "case", 0, "draw a single case")
	cmd.Flags().Float64Var(&width, "width", 6, "width in inches")
	cmd.Flags().Float64Var(&height, "height", 5, "height in inches")
	return cmd
}
