package goals

import (
	"groupassign/internal/filter"
	"groupassign/internal/ilp"
)

// MaxSimilarGoal rewards (or requires) each matched group to hold no more
// than k students sharing some value of propertyName, for every cohort.
// The per-group cutoff placeholder differs from MinSimilarGoal's on
// purpose.
type MaxSimilarGoal struct {
	Base
	GroupFilter  *filter.Filter
	PropertyName string
	MaxSimilar   Threshold
}

func (g *MaxSimilarGoal) Compile(c *Context) error {
	cohorts := c.Store.StudentsSharingProperty(g.PropertyName)
	groups := c.Store.FilterGroups(g.GroupFilter)

	var violateVariables []int

	for _, gr := range groups {
		size, hasSize := gr.Size()
		if !hasSize {
			size = 0
		}
		k, ok := g.MaxSimilar.forSize(size, func(int) float64 { return 1 })
		if !ok {
			continue
		}
		if k == 0 || (hasSize && k > float64(size)) {
			c.Log("MaxSimilarGoal: group %d cutoff %v out of range for size %d, skipping", gr.ID(), k, size)
			continue
		}

		var groupViolates []int
		for _, cohort := range cohorts {
			vars := membershipVarsInGroup(cohort, gr.ID())
			if len(vars) == 0 {
				continue
			}
			violate := c.Builder.GEQ(ilp.Sum(1, vars...), k+1)
			groupViolates = append(groupViolates, violate)
			violateVariables = append(violateVariables, violate)
		}
		if len(groupViolates) == 0 {
			continue
		}

		groupReward := c.Builder.LEQ(ilp.Sum(1, groupViolates...), 0)
		c.Builder.RewardVar(groupReward, g.PartialReward)
	}

	if len(violateVariables) == 0 {
		return nil
	}

	satisfied := c.Builder.LEQ(ilp.Sum(1, violateVariables...), 0)
	if g.Required {
		c.Builder.RequireTrue(satisfied)
	}
	c.Builder.RewardVar(satisfied, g.NetReward)
	return nil
}
