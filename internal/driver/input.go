// Package driver implements the top-level orchestration: id assignment,
// the indexed store construction, the prioritized goal-set loop, solver
// invocation, and decoding the solved assignment back into a group ->
// students mapping.
package driver

import (
	"groupassign/internal/domain"
	"groupassign/internal/goals"
)

// DefaultPopulationCeiling is the hard ceiling New falls back to when the
// caller passes zero, matching config.SolverConfig's own default.
const DefaultPopulationCeiling = 500

// Entity is one raw student or group record: its property map as received
// from the caller, before id assignment.
type Entity struct {
	Info domain.Info
}

// Input is one invocation's request: the raw student and group rosters and
// the priority-ordered list of goal sets to try.
type Input struct {
	Students         []Entity
	Groups           []Entity
	GoalSets         []GoalSetInput
	Nondeterministic bool
}

// GoalSetInput names a goal set for logging/output purposes alongside its
// compiled goals.
type GoalSetInput struct {
	Name  string
	Goals goals.GoalSet
}
