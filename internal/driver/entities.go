package driver

import (
	"groupassign/internal/domain"
	"groupassign/internal/ilp"
	"groupassign/internal/store"
)

// buildAttempt constructs fresh membership variables, entities and an
// indexed store bound to a brand-new Problem, one per goal-set attempt
// (the solver's variable-id space does not carry across attempts, even
// though the student/group ids and property maps themselves are stable for
// the whole invocation).
func buildAttempt(studentIDs, groupIDs []idEntity) (*ilp.Problem, *ilp.Builder, *store.Store, error) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	groupsByID := make(map[int]*domain.Group, len(groupIDs))
	groups := make([]*domain.Group, 0, len(groupIDs))
	for _, ge := range groupIDs {
		g := domain.NewGroup(ge.id, ge.info)
		groupsByID[ge.id] = g
		groups = append(groups, g)
	}

	students := make([]*domain.Student, 0, len(studentIDs))
	for _, se := range studentIDs {
		s := domain.NewStudent(se.id, se.info)
		for _, g := range groups {
			mv := s.AddMembership(p, g.ID())
			g.AddMembership(mv)
		}
		students = append(students, s)
	}

	for _, s := range students {
		if err := s.GenConstraints(p); err != nil {
			return nil, nil, nil, err
		}
	}
	for _, g := range groups {
		if err := g.GenConstraints(p, b); err != nil {
			return nil, nil, nil, err
		}
	}

	return p, b, store.New(students, groups), nil
}
