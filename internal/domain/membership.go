package domain

import (
	"fmt"

	"groupassign/internal/ilp"
)

// MembershipVariable is the 0/1 decision variable for a single
// (student, group) pair. Its solver-visible name is the ABI contract the
// Driver decodes after solving: "membership_<sid>_<gid>".
type MembershipVariable struct {
	StudentID int
	GroupID   int
	Var       int
}

// MembershipName renders the ABI name for a (studentID, groupID) pair.
func MembershipName(studentID, groupID int) string {
	return fmt.Sprintf("membership_%d_%d", studentID, groupID)
}

// NewMembershipVariable allocates the membership variable for (s, g) in
// the given problem and returns its binding.
func NewMembershipVariable(p *ilp.Problem, studentID, groupID int) MembershipVariable {
	v := p.NewVar(ilp.KindMembership, MembershipName(studentID, groupID))
	return MembershipVariable{StudentID: studentID, GroupID: groupID, Var: v}
}
