package lp

import "groupassign/internal/ilp"

// NewBackend returns the preferred solver backend for numVars variables:
// golp/lp_solve when the build carries CGO and the golp tag, the pure-Go
// branch-and-bound solver otherwise. CreateGolpSolver always returns an
// error on the non-CGO build (see golp_solver_nocgo.go), so there the
// fallback is always taken.
func NewBackend(numVars int) LPSolver {
	if golp, err := CreateGolpSolver(numVars); err == nil {
		return golp
	}
	return NewBranchAndBoundSolver(numVars)
}

// SolveProblem translates an ilp.Problem into backend calls and returns the
// raw LPResult. Coefficients are expanded into the dense arrays LPSolver's
// ABI expects; sparse Expr terms not present in a row default to zero.
func SolveProblem(backend LPSolver, p *ilp.Problem) (*LPResult, error) {
	n := p.NumVars()

	objective := make([]float64, n)
	for _, v := range p.RewardVars() {
		objective[v] += 1
	}
	if err := backend.SetObjective(objective, true); err != nil {
		return nil, err
	}

	for _, c := range p.Constraints() {
		row := make([]float64, n)
		for _, t := range c.Expr.Terms {
			row[t.Var] += t.Coeff
		}
		rhs := c.RHS - c.Expr.Constant
		if err := backend.AddConstraint(row, string(c.Op), rhs); err != nil {
			return nil, err
		}
	}

	for i := 0; i < n; i++ {
		if p.IsBinary(i) {
			if err := backend.SetBinary(i); err != nil {
				return nil, err
			}
			continue
		}
		lower, upper := p.Bounds(i)
		if err := backend.SetBounds(i, lower, upper); err != nil {
			return nil, err
		}
	}

	return backend.Solve()
}
