// Package goals implements the five goal compilers: each translates its
// declarative parameters into ILP constraints and reward terms via the
// Indicator Builder, against the Indexed Store.
package goals

import (
	"groupassign/internal/ilp"
	"groupassign/internal/store"
)

// Base carries the fields every goal kind shares.
type Base struct {
	Required      bool
	NetReward     float64
	PartialReward float64
}

// Context is what a goal compiler needs: the populated store to filter
// against, the problem/builder to write into, and a sink for the
// human-readable log lines the Driver accumulates and returns as the sole
// user-visible diagnostic channel.
type Context struct {
	Store   *store.Store
	Problem *ilp.Problem
	Builder *ilp.Builder
	Log     func(format string, args ...any)
}

// CompileError signals that this goal could not be compiled at all and the
// entire goal set must be abandoned (GroupFilterGoal's "nonempty students,
// empty groups" case is the canonical example).
type CompileError struct{ Reason string }

func (e *CompileError) Error() string { return e.Reason }

// Goal compiles one declarative goal into the problem. A non-nil error is
// always a CompileError and always means "abandon this goal set".
type Goal interface {
	Compile(c *Context) error
}

// GoalSet is an ordered, implicitly-conjoined list of goals.
type GoalSet []Goal

// satisfiedFromUnits is the shared required/partial/net reward assembly
// used by GroupFilterGoal, MustMatchGoal and PodGoal: each per-unit
// indicator gets RequireTrue (if required) and a partial reward; the
// aggregate "all units satisfied" indicator gets RequireTrue (if required)
// and the net reward.
func satisfiedFromUnits(c *Context, base Base, units []int) int {
	for _, u := range units {
		if base.Required {
			c.Builder.RequireTrue(u)
		}
		c.Builder.RewardVar(u, base.PartialReward)
	}
	satisfied := c.Builder.GEQ(ilp.Sum(1, units...), float64(len(units)))
	if base.Required {
		c.Builder.RequireTrue(satisfied)
	}
	c.Builder.RewardVar(satisfied, base.NetReward)
	return satisfied
}

