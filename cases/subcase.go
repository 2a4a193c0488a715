// SPDX-License-Identifier: MIT

package cases

import (
	"math"

	"github.com/katalvlaran/dstoolbox/matrix"
)

// nullTolerance is the magnitude below which a left-nullspace entry is zero.
const nullTolerance = 1e-14

// ProblematicEquations returns, for a case whose S-system has no steady
// state, the groups of equations that make Ad singular: one group per basis
// vector of the left nullspace of Ad, holding the 0-based equations with a
// non-zero entry.
//
// The result is nil when the case has a solution, or when some basis vector
// has non-zero entries of different values. Only dependencies in which the
// equations cancel with equal weights are reported.
func (c *Case) ProblematicEquations() ([][]int, error) {
	if c.HasSolution() {
		return nil, nil
	}
	ns, err := matrix.LeftNullspace(c.ssys.Ad())
	if err != nil {
		return nil, caseErrorf("ProblematicEquations", err)
	}
	groups := make([][]int, 0, ns.Cols())
	for col := 0; col < ns.Cols(); col++ {
		first := math.NaN()
		var group []int
		for row := 0; row < ns.Rows(); row++ {
			v := ns.Get(row, col)
			if math.Abs(v) < nullTolerance {
				continue
			}
			if math.IsNaN(first) {
				first = v
			} else if math.Abs(v-first) >= nullTolerance {
				return nil, nil
			}
			group = append(group, row)
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return groups, nil
}
