package domain

import "groupassign/internal/ilp"

// Student is one member of the roster to be assigned. Its id is unique and
// assigned by the Driver in input order; its property map is immutable once
// constructed.
type Student struct {
	id    int
	info  Info
	memberships []MembershipVariable
	byGroup     map[int]MembershipVariable
}

// NewStudent constructs a student. Membership variables are created in
// lockstep by the caller via AddMembership, one per candidate group.
func NewStudent(id int, info Info) *Student {
	return &Student{
		id:      id,
		info:    info,
		byGroup: make(map[int]MembershipVariable),
	}
}

func (s *Student) ID() int           { return s.id }
func (s *Student) Properties() Info  { return s.info }

// AddMembership binds a fresh membership variable for (s, g) into the
// problem and records it on the student.
func (s *Student) AddMembership(p *ilp.Problem, groupID int) MembershipVariable {
	mv := NewMembershipVariable(p, s.id, groupID)
	s.memberships = append(s.memberships, mv)
	s.byGroup[groupID] = mv
	return mv
}

// Memberships returns every membership variable owned by this student, in
// the order groups were presented.
func (s *Student) Memberships() []MembershipVariable { return s.memberships }

// MembershipIn looks up the membership variable for a specific group.
func (s *Student) MembershipIn(groupID int) (MembershipVariable, bool) {
	mv, ok := s.byGroup[groupID]
	return mv, ok
}

// GenConstraints emits the "exactly one group" structural constraint:
// Σ memberships = 1.
func (s *Student) GenConstraints(p *ilp.Problem) error {
	if len(s.memberships) == 0 {
		return nil
	}
	vars := make([]int, len(s.memberships))
	for i, mv := range s.memberships {
		vars[i] = mv.Var
	}
	p.AddConstraint(ilp.Constraint{Expr: ilp.Sum(1, vars...), Op: ilp.EQ, RHS: 1})
	return nil
}
