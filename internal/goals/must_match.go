package goals

import (
	"groupassign/internal/domain"
	"groupassign/internal/filter"
	"groupassign/internal/ilp"
)

// MustMatchGoal requires (or rewards) each matched student to land in a
// matched group whose groupProperty equals the student's studentProperty,
// with WILDCARD matching either side.
type MustMatchGoal struct {
	Base
	GroupFilter     *filter.Filter
	GroupProperty   string
	StudentFilter   *filter.Filter
	StudentProperty string
}

func (g *MustMatchGoal) Compile(c *Context) error {
	students := c.Store.FilterStudents(g.StudentFilter)
	groups := c.Store.FilterGroups(g.GroupFilter)

	var matched []int
	for _, s := range students {
		sv, ok := s.Properties().Get(g.StudentProperty)
		if !ok {
			continue
		}

		var eligible []int
		for _, gr := range groups {
			gv, ok := gr.Properties().Get(g.GroupProperty)
			if !ok {
				continue
			}
			if !eligibleMatch(sv, gv) {
				continue
			}
			mv, ok := s.MembershipIn(gr.ID())
			if !ok {
				continue
			}
			eligible = append(eligible, mv.Var)
		}

		if len(eligible) == 0 {
			continue
		}

		matchedS := c.Builder.GEQ(ilp.Sum(1, eligible...), 1)
		matched = append(matched, matchedS)
	}

	satisfiedFromUnits(c, g.Base, matched)
	return nil
}

func eligibleMatch(sv, gv domain.Value) bool {
	if sv.String() == domain.Wildcard || gv.String() == domain.Wildcard {
		return true
	}
	return sv.Equal(gv)
}
