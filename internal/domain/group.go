package domain

import "groupassign/internal/ilp"

// Group is one candidate destination for students. Groups with a "size"
// property of zero are dropped before id assignment; callers must filter
// those out before calling NewGroup.
type Group struct {
	id          int
	info        Info
	size        *int
	minSize     *int
	memberships []MembershipVariable
	notInUse    int
	hasNotInUse bool
}

// NewGroup constructs a group, reading its distinguished "size"/"minsize"
// properties out of info when present.
func NewGroup(id int, info Info) *Group {
	g := &Group{id: id, info: info}
	if v, ok := info.Get("size"); ok && v.IsNumber() {
		n := int(v.Number())
		g.size = &n
	}
	if v, ok := info.Get("minsize"); ok && v.IsNumber() {
		n := int(v.Number())
		g.minSize = &n
	}
	return g
}

func (g *Group) ID() int          { return g.id }
func (g *Group) Properties() Info { return g.info }

// Size returns the hard membership ceiling and whether it is set.
func (g *Group) Size() (int, bool) {
	if g.size == nil {
		return 0, false
	}
	return *g.size, true
}

// MinSize returns the hard membership floor and whether it is set.
func (g *Group) MinSize() (int, bool) {
	if g.minSize == nil {
		return 0, false
	}
	return *g.minSize, true
}

// AddMembership records a membership variable contributed by a student
// assigning into this group. Groups only ever append; the variable itself
// was allocated by the student.
func (g *Group) AddMembership(mv MembershipVariable) {
	g.memberships = append(g.memberships, mv)
}

// Memberships returns every membership variable targeting this group.
func (g *Group) Memberships() []MembershipVariable { return g.memberships }

// NotInUse returns the group's not-in-use indicator variable. It is only
// valid after GenConstraints has run.
func (g *Group) NotInUse() (int, bool) { return g.notInUse, g.hasNotInUse }

// GenConstraints emits, in order: the size ceiling, the minsize floor when
// nonzero, and the not-in-use indicator binding.
func (g *Group) GenConstraints(p *ilp.Problem, b *ilp.Builder) error {
	vars := make([]int, len(g.memberships))
	for i, mv := range g.memberships {
		vars[i] = mv.Var
	}
	sum := ilp.Sum(1, vars...)

	if size, ok := g.Size(); ok {
		p.AddConstraint(ilp.Constraint{Expr: sum, Op: ilp.LE, RHS: float64(size)})
	}
	if minSize, ok := g.MinSize(); ok && minSize != 0 {
		p.AddConstraint(ilp.Constraint{Expr: sum, Op: ilp.GE, RHS: float64(minSize)})
	}

	g.notInUse = b.LEQ(sum, 0)
	g.hasNotInUse = true
	return nil
}
