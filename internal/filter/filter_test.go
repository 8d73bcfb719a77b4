package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"groupassign/internal/domain"
	"groupassign/internal/filter"
)

type fakeEntity struct {
	id    int
	props domain.Info
}

func (e fakeEntity) ID() int                { return e.id }
func (e fakeEntity) Properties() domain.Info { return e.props }

func entities(n int, prop string, values ...string) []domain.Entity {
	out := make([]domain.Entity, n)
	for i := 0; i < n; i++ {
		out[i] = fakeEntity{id: i + 1, props: domain.Info{prop: domain.StringValue(values[i])}}
	}
	return out
}

type mapIndex map[string]map[string][]domain.Entity

func (m mapIndex) Lookup(prop, value string) []domain.Entity { return m[prop][value] }

func buildIndex(all []domain.Entity) mapIndex {
	idx := mapIndex{}
	for _, e := range all {
		for prop, v := range e.Properties() {
			if idx[prop] == nil {
				idx[prop] = map[string][]domain.Entity{}
			}
			idx[prop][v.String()] = append(idx[prop][v.String()], e)
		}
	}
	return idx
}

func TestApply_NilFilterMatchesAll(t *testing.T) {
	all := entities(3, "track", "a", "b", "c")
	got := filter.Apply(nil, buildIndex(all), all)
	assert.Equal(t, all, got)
}

func TestApply_EqualsLeaf(t *testing.T) {
	all := entities(3, "track", "a", "b", "a")
	idx := buildIndex(all)

	f := filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("a"))})
	got := filter.Apply(f, idx, all)

	assert.Len(t, got, 2)
	assert.ElementsMatch(t, []int{1, 3}, ids(got))
}

func TestApply_Wildcard(t *testing.T) {
	all := []domain.Entity{
		fakeEntity{id: 1, props: domain.Info{"track": domain.StringValue("a")}},
		fakeEntity{id: 2, props: domain.Info{"track": domain.StringValue(domain.Wildcard)}},
		fakeEntity{id: 3, props: domain.Info{"track": domain.StringValue("b")}},
	}
	idx := buildIndex(all)

	f := filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("a"))})
	got := filter.Apply(f, idx, all)

	assert.ElementsMatch(t, []int{1, 2}, ids(got))
}

func TestApply_AndOrDiff(t *testing.T) {
	all := []domain.Entity{
		fakeEntity{id: 1, props: domain.Info{"track": domain.StringValue("a"), "year": domain.NumberValue(1)}},
		fakeEntity{id: 2, props: domain.Info{"track": domain.StringValue("a"), "year": domain.NumberValue(2)}},
		fakeEntity{id: 3, props: domain.Info{"track": domain.StringValue("b"), "year": domain.NumberValue(1)}},
	}
	idx := buildIndex(all)

	trackA := filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("a"))})
	year1 := filter.New(filter.Stencil{Prop: "year", Pred: filter.Equals(domain.NumberValue(1))})

	and := trackA.And(year1)
	assert.ElementsMatch(t, []int{1}, ids(filter.Apply(and, idx, all)))

	or := trackA.Or(year1)
	assert.ElementsMatch(t, []int{1, 2, 3}, ids(filter.Apply(or, idx, all)))

	diff := trackA.Minus(year1)
	assert.ElementsMatch(t, []int{2}, ids(filter.Apply(diff, idx, all)))
}

func TestApply_ComparisonPredicate(t *testing.T) {
	all := []domain.Entity{
		fakeEntity{id: 1, props: domain.Info{"gpa": domain.NumberValue(2.5)}},
		fakeEntity{id: 2, props: domain.Info{"gpa": domain.NumberValue(3.5)}},
		fakeEntity{id: 3, props: domain.Info{"gpa": domain.NumberValue(4.0)}},
	}
	idx := buildIndex(all)

	f := filter.New(filter.Stencil{Prop: "gpa", Pred: filter.GTE(domain.NumberValue(3.5))})
	got := filter.Apply(f, idx, all)

	assert.ElementsMatch(t, []int{2, 3}, ids(got))
}

func TestApply_IsInNotIn(t *testing.T) {
	all := entities(4, "track", "a", "b", "c", "a")
	idx := buildIndex(all)

	in := filter.New(filter.Stencil{Prop: "track", Pred: filter.IsIn(domain.StringValue("a"), domain.StringValue("b"))})
	assert.ElementsMatch(t, []int{1, 2, 4}, ids(filter.Apply(in, idx, all)))

	notIn := filter.New(filter.Stencil{Prop: "track", Pred: filter.NotIn(domain.StringValue("a"), domain.StringValue("b"))})
	assert.ElementsMatch(t, []int{3}, ids(filter.Apply(notIn, idx, all)))
}

func TestApply_MultiStencilLeafIsConjunction(t *testing.T) {
	all := []domain.Entity{
		fakeEntity{id: 1, props: domain.Info{"track": domain.StringValue("a"), "year": domain.NumberValue(1)}},
		fakeEntity{id: 2, props: domain.Info{"track": domain.StringValue("a"), "year": domain.NumberValue(2)}},
	}
	idx := buildIndex(all)

	f := filter.New(
		filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("a"))},
		filter.Stencil{Prop: "year", Pred: filter.Equals(domain.NumberValue(2))},
	)
	got := filter.Apply(f, idx, all)
	assert.ElementsMatch(t, []int{2}, ids(got))
}

func ids(entities []domain.Entity) []int {
	out := make([]int, len(entities))
	for i, e := range entities {
		out[i] = e.ID()
	}
	return out
}
