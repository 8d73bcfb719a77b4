// Package ilp builds an integer-linear-program problem incrementally:
// 0/1 variables (plus bounded continuous reward variables), linear
// constraints over them, and a linear objective to maximize. It is the
// sole mutable state a goal-set compile pass writes to;
// the Driver hands the finished Problem to an internal/solver/lp.LPSolver.
package ilp

import "fmt"

// VarKind distinguishes the role a variable plays, purely for name
// prefixing (names must be unique, and the membership variables must
// round-trip through "membership_<sid>_<gid>" for the Driver's decode
// step).
type VarKind string

const (
	KindMembership VarKind = "membership"
	KindIndicator  VarKind = "ind"
	KindReward     VarKind = "reward"
)

// Op is a constraint relational operator.
type Op string

const (
	LE Op = "<="
	GE Op = ">="
	EQ Op = "="
)

// Term is one coefficient*variable addend in a linear expression.
type Term struct {
	Var   int
	Coeff float64
}

// Expr is a linear expression: a sum of terms plus a constant.
type Expr struct {
	Terms    []Term
	Constant float64
}

// Plus returns a new expression with an additional coeff*var term.
func (e Expr) Plus(coeff float64, v int) Expr {
	e.Terms = append(append([]Term(nil), e.Terms...), Term{Var: v, Coeff: coeff})
	return e
}

// Sum builds the expression Σ coeff_i * vars_i.
func Sum(coeff float64, vars ...int) Expr {
	e := Expr{Terms: make([]Term, 0, len(vars))}
	for _, v := range vars {
		e.Terms = append(e.Terms, Term{Var: v, Coeff: coeff})
	}
	return e
}

// VarExpr wraps a single variable as an expression with coefficient 1.
func VarExpr(v int) Expr { return Sum(1, v) }

// Constraint is a single linear constraint: Σ coeff*var <op> rhs.
type Constraint struct {
	Expr Expr
	Op   Op
	RHS  float64
}

// Problem accumulates variables, constraints and reward terms for one
// goal-set compile-and-solve attempt. A fresh Problem is created per goal
// set.
type Problem struct {
	names       []string
	binary      []bool
	lower       []float64
	upper       []float64
	constraints []Constraint
	rewardVars  []int
	counter     int
}

// NewProblem returns an empty problem with its own variable counter, so
// auxiliary-variable names stay deterministic and collision-free within a
// single invocation.
func NewProblem() *Problem {
	return &Problem{}
}

// NewVar allocates a fresh 0/1 variable with a role-prefixed, unique name
// and returns its index. Membership variables pass their exact ABI name;
// every other kind gets <kind>_<counter>.
func (p *Problem) NewVar(kind VarKind, name string) int {
	return p.newVar(kind, name, true, 0, 1)
}

// NewContinuousVar allocates a fresh real-valued variable bounded by
// [lower, upper], used for reward terms whose magnitude is not 0/1 (a
// partial or net reward can be any configured weight).
func (p *Problem) NewContinuousVar(kind VarKind, lower, upper float64) int {
	return p.newVar(kind, "", false, lower, upper)
}

func (p *Problem) newVar(kind VarKind, name string, binary bool, lower, upper float64) int {
	idx := len(p.names)
	if name == "" {
		name = fmt.Sprintf("%s_%d", kind, p.counter)
	}
	p.counter++
	p.names = append(p.names, name)
	p.binary = append(p.binary, binary)
	p.lower = append(p.lower, lower)
	p.upper = append(p.upper, upper)
	return idx
}

// NumVars returns the number of variables allocated so far.
func (p *Problem) NumVars() int { return len(p.names) }

// Name returns the variable name at index idx.
func (p *Problem) Name(idx int) string { return p.names[idx] }

// IsBinary reports whether the variable at idx is constrained to {0,1}.
func (p *Problem) IsBinary(idx int) bool { return p.binary[idx] }

// Bounds returns the [lower, upper] bound for a non-binary variable.
func (p *Problem) Bounds(idx int) (float64, float64) { return p.lower[idx], p.upper[idx] }

// AddConstraint appends a constraint to the problem.
func (p *Problem) AddConstraint(c Constraint) { p.constraints = append(p.constraints, c) }

// Constraints returns the accumulated constraints in insertion order.
func (p *Problem) Constraints() []Constraint { return p.constraints }

// AddReward registers a variable (typically a RewardVar) as contributing to
// the objective Σ rewards.
func (p *Problem) AddReward(v int) { p.rewardVars = append(p.rewardVars, v) }

// RewardVars returns the variables summed into the objective.
func (p *Problem) RewardVars() []int { return p.rewardVars }

// BigM returns the large constant used by the Indicator Builder's
// linearizations: the fixed reference value 19999, not sized from the
// problem's contents.
func (p *Problem) BigM() float64 {
	const reference = 19999
	return reference
}
