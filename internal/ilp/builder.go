package ilp

// Builder emits auxiliary 0/1 variables and the linear constraints that
// bind them to threshold / AND / OR / conditional-reward semantics over an
// existing linear expression. GEQ, LEQ, AND and OR return the index of the
// fresh indicator variable they introduce, RewardVar returns its reward
// variable, and RequireTrue returns nothing; the constraints themselves are
// written straight into the Problem.
type Builder struct {
	problem *Problem
}

// NewBuilder returns an Indicator Builder writing into p.
func NewBuilder(p *Problem) *Builder {
	return &Builder{problem: p}
}

// GEQ introduces b such that b=1 iff expr >= k, using the Big-M
// linearization:
//
//	b*M <= expr - k + M   (forces b=0 when expr < k)
//	b*M >= expr - k + 1   (forces b=1 when expr >= k)
//	b   <= 1
func (b *Builder) GEQ(expr Expr, k float64) int {
	m := b.problem.BigM()
	ind := b.problem.NewVar(KindIndicator, "")

	// b*M - expr <= M - k
	upper := negate(expr)
	upper = upper.Plus(m, ind)
	b.problem.AddConstraint(Constraint{Expr: upper, Op: LE, RHS: m - k})

	// b*M - expr >= 1 - k
	lower := negate(expr)
	lower = lower.Plus(m, ind)
	b.problem.AddConstraint(Constraint{Expr: lower, Op: GE, RHS: 1 - k})

	b.problem.AddConstraint(Constraint{Expr: VarExpr(ind), Op: LE, RHS: 1})
	return ind
}

// LEQ introduces b such that b=1 iff expr <= k:
//
//	b*M <= k - expr + M
//	b*M >= k - expr + 1
//	b   <= 1
func (b *Builder) LEQ(expr Expr, k float64) int {
	m := b.problem.BigM()
	ind := b.problem.NewVar(KindIndicator, "")

	upper := expr.Plus(m, ind)
	b.problem.AddConstraint(Constraint{Expr: upper, Op: LE, RHS: m + k})

	lower := expr.Plus(m, ind)
	b.problem.AddConstraint(Constraint{Expr: lower, Op: GE, RHS: 1 + k})

	b.problem.AddConstraint(Constraint{Expr: VarExpr(ind), Op: LE, RHS: 1})
	return ind
}

// AND introduces c such that c=1 iff a=b=1: 0 <= a + b - 2c <= 1.
func (b *Builder) AND(a, bb int) int {
	c := b.problem.NewVar(KindIndicator, "")
	expr := Sum(1, a, bb).Plus(-2, c)
	b.problem.AddConstraint(Constraint{Expr: expr, Op: GE, RHS: 0})
	b.problem.AddConstraint(Constraint{Expr: expr, Op: LE, RHS: 1})
	return c
}

// OR introduces c such that c=1 iff a OR bb: c <= a+b, 2c >= a+b.
func (b *Builder) OR(a, bb int) int {
	c := b.problem.NewVar(KindIndicator, "")
	sum := Sum(1, a, bb)

	upper := negate(sum).Plus(1, c)
	b.problem.AddConstraint(Constraint{Expr: upper, Op: LE, RHS: 0})

	lower := negate(sum).Plus(2, c)
	b.problem.AddConstraint(Constraint{Expr: lower, Op: GE, RHS: 0})
	return c
}

// RequireTrue emits the constraint v >= 1, forcing an indicator to hold in
// every feasible solution.
func (b *Builder) RequireTrue(v int) {
	b.problem.AddConstraint(Constraint{Expr: VarExpr(v), Op: GE, RHS: 1})
}

// RewardVar introduces a fresh variable r with r = reward*boolVar and
// appends it to the objective. A zero reward is still wired through (it
// simply contributes nothing), matching the source's uniform treatment of
// required/partial/net rewards regardless of magnitude.
func (b *Builder) RewardVar(boolVar int, reward float64) int {
	lower, upper := reward, 0.0
	if reward > 0 {
		lower, upper = 0, reward
	}
	r := b.problem.NewContinuousVar(KindReward, lower, upper)
	expr := VarExpr(r).Plus(-reward, boolVar)
	b.problem.AddConstraint(Constraint{Expr: expr, Op: EQ, RHS: 0})
	b.problem.AddReward(r)
	return r
}

func negate(e Expr) Expr {
	out := Expr{Terms: make([]Term, len(e.Terms)), Constant: -e.Constant}
	for i, t := range e.Terms {
		out.Terms[i] = Term{Var: t.Var, Coeff: -t.Coeff}
	}
	return out
}
