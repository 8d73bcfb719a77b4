package goals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupassign/internal/domain"
	"groupassign/internal/filter"
	"groupassign/internal/goals"
	"groupassign/internal/ilp"
	"groupassign/internal/store"
)

func newCtx(students []*domain.Student, groups []*domain.Group) (*goals.Context, *ilp.Problem) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)
	st := store.New(students, groups)
	return &goals.Context{Store: st, Problem: p, Builder: b, Log: func(string, ...any) {}}, p
}

func withMembership(p *ilp.Problem, s *domain.Student, g *domain.Group) {
	mv := s.AddMembership(p, g.ID())
	g.AddMembership(mv)
}

func TestGroupFilterGoal_EmptyStudentFilterIsNoop(t *testing.T) {
	s := domain.NewStudent(1, domain.Info{})
	g := domain.NewGroup(1, domain.Info{})

	ctx, _ := newCtx([]*domain.Student{s}, []*domain.Group{g})

	goal := &goals.GroupFilterGoal{
		StudentFilter: filter.New(filter.Stencil{Prop: "absent", Pred: filter.Equals(domain.StringValue("x"))}),
	}

	err := goal.Compile(ctx)
	assert.NoError(t, err)
}

func TestGroupFilterGoal_NoMatchingGroupsIsCompileError(t *testing.T) {
	s := domain.NewStudent(1, domain.Info{"track": domain.StringValue("math")})
	g := domain.NewGroup(1, domain.Info{"track": domain.StringValue("art")})

	ctx, p := newCtx([]*domain.Student{s}, []*domain.Group{g})
	withMembership(p, s, g)

	goal := &goals.GroupFilterGoal{
		StudentFilter: filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("math"))}),
		GroupFilter:   filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("math"))}),
	}

	err := goal.Compile(ctx)
	require.Error(t, err)
	var ce *goals.CompileError
	assert.ErrorAs(t, err, &ce)
}

func TestGroupFilterGoal_MatchedStudentsEmitIndicator(t *testing.T) {
	s := domain.NewStudent(1, domain.Info{"track": domain.StringValue("math")})
	g := domain.NewGroup(1, domain.Info{"track": domain.StringValue("math")})

	ctx, p := newCtx([]*domain.Student{s}, []*domain.Group{g})
	withMembership(p, s, g)

	before := p.NumVars()
	goal := &goals.GroupFilterGoal{
		Base:          goals.Base{Required: true},
		StudentFilter: filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("math"))}),
		GroupFilter:   filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("math"))}),
	}

	err := goal.Compile(ctx)
	require.NoError(t, err)
	assert.Greater(t, p.NumVars(), before)
}
