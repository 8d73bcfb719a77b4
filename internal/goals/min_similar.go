package goals

import (
	"groupassign/internal/domain"
	"groupassign/internal/filter"
	"groupassign/internal/ilp"
)

// MinSimilarGoal rewards (or requires) each matched group to hold at least
// k students sharing some value of propertyName, for some cohort.
type MinSimilarGoal struct {
	Base
	GroupFilter  *filter.Filter
	PropertyName string
	MinSimilar   Threshold
}

func (g *MinSimilarGoal) Compile(c *Context) error {
	cohorts := c.Store.StudentsSharingProperty(g.PropertyName)
	groups := c.Store.FilterGroups(g.GroupFilter)

	var groupOK []int
	for _, gr := range groups {
		size, hasSize := gr.Size()
		if !hasSize {
			size = 0
		}
		k, ok := g.MinSimilar.forSize(size, func(size int) float64 { return float64(size) })
		if !ok {
			continue
		}
		if k == 0 {
			c.Log("MinSimilarGoal: group %d cutoff resolved to 0, skipping", gr.ID())
			continue
		}

		var cohortOKs []int
		for _, cohort := range cohorts {
			vars := membershipVarsInGroup(cohort, gr.ID())
			if len(vars) == 0 {
				continue
			}
			cohortOKs = append(cohortOKs, c.Builder.GEQ(ilp.Sum(1, vars...), k))
		}
		if len(cohortOKs) == 0 {
			continue
		}

		anyCohortOK := c.Builder.GEQ(ilp.Sum(1, cohortOKs...), 1)
		notInUse, _ := gr.NotInUse()
		ok2 := c.Builder.OR(anyCohortOK, notInUse)
		c.Builder.RewardVar(ok2, g.PartialReward)
		groupOK = append(groupOK, ok2)
	}

	if len(groupOK) == 0 {
		return nil
	}

	satisfied := c.Builder.GEQ(ilp.Sum(1, groupOK...), float64(len(groupOK)))
	if g.Required {
		c.Builder.RequireTrue(satisfied)
	}
	c.Builder.RewardVar(satisfied, g.NetReward)
	return nil
}

func membershipVarsInGroup(students []*domain.Student, groupID int) []int {
	var vars []int
	for _, s := range students {
		if mv, ok := s.MembershipIn(groupID); ok {
			vars = append(vars, mv.Var)
		}
	}
	return vars
}
