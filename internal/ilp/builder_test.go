package ilp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"groupassign/internal/ilp"
)

func TestGEQ_ProducesBoundedIndicator(t *testing.T) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	x := p.NewVar(ilp.KindMembership, "x")
	ind := b.GEQ(ilp.VarExpr(x), 1)

	assert.True(t, p.IsBinary(ind))
	assert.Equal(t, 3, len(p.Constraints()))
}

func TestLEQ_ProducesBoundedIndicator(t *testing.T) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	x := p.NewVar(ilp.KindMembership, "x")
	ind := b.LEQ(ilp.VarExpr(x), 0)

	assert.True(t, p.IsBinary(ind))
	assert.Equal(t, 3, len(p.Constraints()))
}

func TestAND_ProducesConjunctionIndicator(t *testing.T) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	a := p.NewVar(ilp.KindIndicator, "")
	bb := p.NewVar(ilp.KindIndicator, "")
	c := b.AND(a, bb)

	assert.NotEqual(t, a, c)
	assert.NotEqual(t, bb, c)
	assert.True(t, p.IsBinary(c))
}

func TestOR_ProducesDisjunctionIndicator(t *testing.T) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	a := p.NewVar(ilp.KindIndicator, "")
	bb := p.NewVar(ilp.KindIndicator, "")
	c := b.OR(a, bb)

	assert.True(t, p.IsBinary(c))
}

func TestRequireTrue_EmitsGEConstraint(t *testing.T) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	v := p.NewVar(ilp.KindIndicator, "")
	before := len(p.Constraints())
	b.RequireTrue(v)

	assert.Equal(t, before+1, len(p.Constraints()))
	last := p.Constraints()[len(p.Constraints())-1]
	assert.Equal(t, ilp.GE, last.Op)
	assert.Equal(t, float64(1), last.RHS)
}

func TestRewardVar_ZeroRewardStillWired(t *testing.T) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	v := p.NewVar(ilp.KindIndicator, "")
	r := b.RewardVar(v, 0)

	lower, upper := p.Bounds(r)
	assert.Equal(t, float64(0), lower)
	assert.Equal(t, float64(0), upper)
	assert.Contains(t, p.RewardVars(), r)
}

func TestRewardVar_PositiveRewardBounded(t *testing.T) {
	p := ilp.NewProblem()
	b := ilp.NewBuilder(p)

	v := p.NewVar(ilp.KindIndicator, "")
	r := b.RewardVar(v, 5)

	lower, upper := p.Bounds(r)
	assert.Equal(t, float64(0), lower)
	assert.Equal(t, float64(5), upper)
}

func TestMembershipVariable_NameRoundtrips(t *testing.T) {
	p := ilp.NewProblem()
	idx := p.NewVar(ilp.KindMembership, "membership_1_2")
	assert.Equal(t, "membership_1_2", p.Name(idx))
}
