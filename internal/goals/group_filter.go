package goals

import (
	"groupassign/internal/filter"
	"groupassign/internal/ilp"
)

// GroupFilterGoal requires (or rewards) every student matching
// studentFilter to land in a group matching groupFilter.
type GroupFilterGoal struct {
	Base
	StudentFilter *filter.Filter
	GroupFilter   *filter.Filter
}

func (g *GroupFilterGoal) Compile(c *Context) error {
	students := c.Store.FilterStudents(g.StudentFilter)
	if len(students) == 0 {
		// Emit nothing when the student filter is empty, even though other
		// compilers still emit the net reward for an unconstrained
		// "satisfied" in this situation.
		return nil
	}

	groups := c.Store.FilterGroups(g.GroupFilter)
	if len(groups) == 0 {
		return &CompileError{Reason: "GroupFilterGoal: student filter nonempty but group filter matched no groups"}
	}

	groupIDs := make(map[int]bool, len(groups))
	for _, gr := range groups {
		groupIDs[gr.ID()] = true
	}

	placed := make([]int, 0, len(students))
	for _, s := range students {
		var vars []int
		for _, mv := range s.Memberships() {
			if groupIDs[mv.GroupID] {
				vars = append(vars, mv.Var)
			}
		}
		if len(vars) == 0 {
			c.Log("GroupFilterGoal: student %d has no membership variable into any matched group", s.ID())
			continue
		}
		placedS := c.Builder.GEQ(ilp.Sum(1, vars...), 1)
		placed = append(placed, placedS)
	}

	satisfiedFromUnits(c, g.Base, placed)
	return nil
}
