package filter

import "groupassign/internal/domain"

// Op is the operator carried by an internal Filter node.
type Op int

const (
	opLeaf Op = iota
	OpAnd
	OpOr
	OpDiff
)

// Filter is the recursive boolean algebra tree: leaves carry a stencil
// (property -> predicate), internal nodes carry an operator and exactly two
// children. A nil stencil on a leaf matches every entity.
type Filter struct {
	op       Op
	stencil  []stencilEntry // preserves input-iteration order, unlike a map
	left     *Filter
	right    *Filter
}

type stencilEntry struct {
	prop string
	pred Predicate
}

// New builds a leaf filter from a stencil given in the order its entries
// should be evaluated. Passing no entries yields the empty-stencil leaf
// that matches every entity.
func New(stencil ...Stencil) *Filter {
	f := &Filter{}
	for _, s := range stencil {
		f.stencil = append(f.stencil, stencilEntry{prop: s.Prop, pred: s.Pred})
	}
	return f
}

// Stencil is one (property, predicate) entry passed to New, in the order
// the caller wants it evaluated.
type Stencil struct {
	Prop string
	Pred Predicate
}

// And, Or, Minus compose two filters into a fresh internal node. Composed
// filters are associative: arbitrary-depth trees are legal.
func (f *Filter) And(other *Filter) *Filter { return &Filter{op: OpAnd, left: f, right: other} }
func (f *Filter) Or(other *Filter) *Filter  { return &Filter{op: OpOr, left: f, right: other} }
func (f *Filter) Minus(other *Filter) *Filter {
	return &Filter{op: OpDiff, left: f, right: other}
}

// Index is the read-only property index a Filter evaluates leaf predicates
// against. internal/store.Store implements this for both its student and
// group populations.
type Index interface {
	// Lookup returns every entity whose value for prop equals value,
	// as given in the index key space (domain.Value.String()).
	Lookup(prop, value string) []domain.Entity
}

// Apply evaluates the filter tree against idx, falling back to all when f
// is nil.
func Apply(f *Filter, idx Index, all []domain.Entity) []domain.Entity {
	if f == nil {
		return all
	}
	return f.apply(idx, all)
}

func (f *Filter) apply(idx Index, all []domain.Entity) []domain.Entity {
	switch f.op {
	case OpAnd:
		l := f.left.apply(idx, all)
		r := f.right.apply(idx, all)
		return intersect(l, r)
	case OpOr:
		l := f.left.apply(idx, all)
		r := f.right.apply(idx, all)
		return union(l, r)
	case OpDiff:
		l := f.left.apply(idx, all)
		r := f.right.apply(idx, all)
		return difference(l, r)
	default:
		return f.applyLeaf(idx, all)
	}
}

func (f *Filter) applyLeaf(idx Index, all []domain.Entity) []domain.Entity {
	if len(f.stencil) == 0 {
		return all
	}

	var acc []domain.Entity
	accumulated := false

	for _, entry := range f.stencil {
		candidates := candidateSet(entry.prop, entry.pred, idx, all)
		if !accumulated {
			acc = candidates
			accumulated = true
		} else {
			acc = intersect(acc, candidates)
		}
		if len(acc) == 0 {
			return nil
		}
	}
	return acc
}

// candidateSet computes the per-predicate candidate set: comparisons scan
// linearly, equality/set-membership predicates go through the index plus
// the wildcard bucket.
func candidateSet(prop string, pred Predicate, idx Index, all []domain.Entity) []domain.Entity {
	if pred.isComparison() {
		var out []domain.Entity
		for _, e := range all {
			v, ok := e.Properties().Get(prop)
			if !ok {
				continue
			}
			if pred.compare(v) {
				out = append(out, e)
			}
		}
		return out
	}

	switch pred.Kind {
	case KindEquals:
		return union(idx.Lookup(prop, pred.Value.String()), idx.Lookup(prop, domain.Wildcard))
	case KindIsIn:
		var out []domain.Entity
		for _, v := range pred.Values {
			out = union(out, idx.Lookup(prop, v.String()))
		}
		return union(out, idx.Lookup(prop, domain.Wildcard))
	case KindNotIn:
		in := candidateSet(prop, Predicate{Kind: KindIsIn, Values: pred.Values}, idx, all)
		return difference(all, in)
	case KindIsNot:
		in := candidateSet(prop, Predicate{Kind: KindIsIn, Values: []domain.Value{pred.Value}}, idx, all)
		return difference(all, in)
	default:
		return nil
	}
}

func intersect(a, b []domain.Entity) []domain.Entity {
	set := make(map[int]bool, len(b))
	for _, e := range b {
		set[e.ID()] = true
	}
	out := make([]domain.Entity, 0, len(a))
	seen := make(map[int]bool, len(a))
	for _, e := range a {
		if set[e.ID()] && !seen[e.ID()] {
			out = append(out, e)
			seen[e.ID()] = true
		}
	}
	return out
}

func union(a, b []domain.Entity) []domain.Entity {
	seen := make(map[int]bool, len(a)+len(b))
	out := make([]domain.Entity, 0, len(a)+len(b))
	for _, e := range a {
		if !seen[e.ID()] {
			seen[e.ID()] = true
			out = append(out, e)
		}
	}
	for _, e := range b {
		if !seen[e.ID()] {
			seen[e.ID()] = true
			out = append(out, e)
		}
	}
	return out
}

func difference(a, b []domain.Entity) []domain.Entity {
	exclude := make(map[int]bool, len(b))
	for _, e := range b {
		exclude[e.ID()] = true
	}
	out := make([]domain.Entity, 0, len(a))
	for _, e := range a {
		if !exclude[e.ID()] {
			out = append(out, e)
		}
	}
	return out
}
