package goals

import (
	"groupassign/internal/filter"
	"groupassign/internal/ilp"
)

// PodGoal requires (or rewards) each pod of students to land together in a
// single group. A single studentFilter is the one-pod case; StudentFilters
// may list any number of pods.
type PodGoal struct {
	Base
	StudentFilters []*filter.Filter
}

func (g *PodGoal) Compile(c *Context) error {
	groups := c.Store.AllGroups()

	var podOKs []int
	for _, pf := range g.StudentFilters {
		pod := c.Store.FilterStudents(pf)

		var togetherVars []int
		for _, gr := range groups {
			vars := membershipVarsInGroup(pod, gr.ID())
			together := c.Builder.GEQ(ilp.Sum(1, vars...), float64(len(pod)))
			togetherVars = append(togetherVars, together)
		}

		podOK := c.Builder.GEQ(ilp.Sum(1, togetherVars...), 1)
		podOKs = append(podOKs, podOK)
	}

	satisfiedFromUnits(c, g.Base, podOKs)
	return nil
}
