package lp

import "errors"

// BranchAndBoundSolver adds binary-variable support on top of
// PureGoSimplexSolver by branching on fractional values of variables
// marked SetBinary: each node fixes one such variable to 0 or to 1 (via
// bounds) and re-solves the LP relaxation, depth-first, keeping the best
// integral-feasible objective found. It exists because the pure-Go simplex
// solves LP relaxations only and the golp/lp_solve backend is unavailable
// outside a CGO build.
type BranchAndBoundSolver struct {
	numVars     int
	objective   []float64
	maximize    bool
	constraints []golpConstraint
	lower       []float64
	upper       []float64
	binaryVars  map[int]bool
	maxNodes    int
	tolerance   float64
}

// NewBranchAndBoundSolver returns a solver for numVars variables.
func NewBranchAndBoundSolver(numVars int) *BranchAndBoundSolver {
	upper := make([]float64, numVars)
	for i := range upper {
		upper[i] = 1e30
	}
	return &BranchAndBoundSolver{
		numVars:    numVars,
		objective:  make([]float64, numVars),
		lower:      make([]float64, numVars),
		upper:      upper,
		binaryVars: make(map[int]bool),
		maxNodes:   20000,
		tolerance:  1e-6,
	}
}

func (s *BranchAndBoundSolver) GetName() string { return "PureGo-BranchAndBound" }

func (s *BranchAndBoundSolver) Close() {}

func (s *BranchAndBoundSolver) SetObjective(coefficients []float64, maximize bool) error {
	if len(coefficients) != s.numVars {
		return errors.New("coefficient count must match number of variables")
	}
	s.objective = append([]float64(nil), coefficients...)
	s.maximize = maximize
	return nil
}

func (s *BranchAndBoundSolver) AddConstraint(coefficients []float64, op string, rhs float64) error {
	if len(coefficients) != s.numVars {
		return errors.New("coefficient count must match number of variables")
	}
	if op != "<=" && op != ">=" && op != "=" {
		return errors.New("operator must be <=, >=, or =")
	}
	s.constraints = append(s.constraints, golpConstraint{
		coefficients: append([]float64(nil), coefficients...),
		op:           op,
		rhs:          rhs,
	})
	return nil
}

func (s *BranchAndBoundSolver) SetBounds(varIndex int, lower, upper float64) error {
	if varIndex < 0 || varIndex >= s.numVars {
		return errors.New("variable index out of range")
	}
	s.lower[varIndex] = lower
	s.upper[varIndex] = upper
	return nil
}

func (s *BranchAndBoundSolver) SetBinary(varIndex int) error {
	if varIndex < 0 || varIndex >= s.numVars {
		return errors.New("variable index out of range")
	}
	s.binaryVars[varIndex] = true
	s.lower[varIndex] = 0
	s.upper[varIndex] = 1
	return nil
}

type bnbNode struct {
	lower []float64
	upper []float64
}

func (s *BranchAndBoundSolver) Solve() (*LPResult, error) {
	result := &LPResult{SolverName: s.GetName(), Status: LPInfeasible}

	if len(s.binaryVars) == 0 {
		return s.solveRelaxation(s.lower, s.upper)
	}

	best := (*LPResult)(nil)
	stack := []bnbNode{{lower: s.lower, upper: s.upper}}
	nodes := 0

	for len(stack) > 0 && nodes < s.maxNodes {
		nodes++
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		relaxed, err := s.solveRelaxation(node.lower, node.upper)
		if err != nil {
			return nil, err
		}
		if relaxed.Status != LPOptimal {
			continue
		}
		if best != nil && s.worseOrEqual(relaxed.ObjectiveValue, best.ObjectiveValue) {
			continue
		}

		branchVar, frac := s.mostFractional(relaxed.Solution)
		if branchVar == -1 {
			best = relaxed
			continue
		}

		floorUpper := append([]float64(nil), node.upper...)
		floorUpper[branchVar] = floorFrac(frac)
		floorLower := append([]float64(nil), node.lower...)
		stack = append(stack, bnbNode{lower: floorLower, upper: floorUpper})

		ceilLower := append([]float64(nil), node.lower...)
		ceilLower[branchVar] = floorFrac(frac) + 1
		ceilUpper := append([]float64(nil), node.upper...)
		stack = append(stack, bnbNode{lower: ceilLower, upper: ceilUpper})
	}

	if best == nil {
		result.Solution = make([]float64, s.numVars)
		return result, nil
	}
	best.SolverName = s.GetName()
	return best, nil
}

func floorFrac(v float64) float64 {
	i := int64(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}

func (s *BranchAndBoundSolver) worseOrEqual(candidate, incumbent float64) bool {
	if s.maximize {
		return candidate <= incumbent+s.tolerance
	}
	return candidate >= incumbent-s.tolerance
}

func (s *BranchAndBoundSolver) mostFractional(solution []float64) (int, float64) {
	best := -1
	bestDist := s.tolerance
	for v := range s.binaryVars {
		if v >= len(solution) {
			continue
		}
		frac := solution[v] - floorFrac(solution[v])
		dist := frac
		if 1-frac < dist {
			dist = 1 - frac
		}
		if dist > bestDist {
			bestDist = dist
			best = v
		}
	}
	return best, boundedSolution(solution, best)
}

func boundedSolution(solution []float64, idx int) float64 {
	if idx == -1 {
		return 0
	}
	return solution[idx]
}

func (s *BranchAndBoundSolver) solveRelaxation(lower, upper []float64) (*LPResult, error) {
	inner := NewPureGoSimplexSolver(s.numVars)
	if err := inner.SetObjective(s.objective, s.maximize); err != nil {
		return nil, err
	}
	for _, con := range s.constraints {
		if err := inner.AddConstraint(con.coefficients, con.op, con.rhs); err != nil {
			return nil, err
		}
	}
	for i := 0; i < s.numVars; i++ {
		if err := inner.SetBounds(i, lower[i], upper[i]); err != nil {
			return nil, err
		}
	}
	return inner.Solve()
}
