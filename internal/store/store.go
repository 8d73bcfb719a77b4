// Package store holds the indexed property store: the two populations
// (students, groups) plus a two-level property -> value -> entities index
// over each, built once and treated as read-only thereafter.
package store

import (
	"groupassign/internal/domain"
	"groupassign/internal/filter"
)

// propertyIndex is one population's property -> value -> entities index.
// It implements filter.Index so the filter algebra can query it directly.
type propertyIndex struct {
	all   []domain.Entity
	byKey map[string]map[string][]domain.Entity
}

func newPropertyIndex(entities []domain.Entity) *propertyIndex {
	idx := &propertyIndex{
		all:   entities,
		byKey: make(map[string]map[string][]domain.Entity),
	}
	for _, e := range entities {
		for prop, val := range e.Properties() {
			byValue, ok := idx.byKey[prop]
			if !ok {
				byValue = make(map[string][]domain.Entity)
				idx.byKey[prop] = byValue
			}
			key := val.String()
			byValue[key] = append(byValue[key], e)
		}
	}
	return idx
}

// Lookup implements filter.Index.
func (idx *propertyIndex) Lookup(prop, value string) []domain.Entity {
	byValue, ok := idx.byKey[prop]
	if !ok {
		return nil
	}
	return byValue[value]
}

// cohorts returns one entity list per distinct value present for prop,
// preserving first-seen order of values.
func (idx *propertyIndex) cohorts(prop string) [][]domain.Entity {
	byValue, ok := idx.byKey[prop]
	if !ok {
		return nil
	}
	var order []string
	seen := make(map[string]bool)
	for _, e := range idx.all {
		v, ok := e.Properties().Get(prop)
		if !ok {
			continue
		}
		key := v.String()
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
		}
	}
	out := make([][]domain.Entity, 0, len(order))
	for _, key := range order {
		out = append(out, byValue[key])
	}
	return out
}

// Store holds both populations and their property indexes, built once from
// the entity lists passed to New.
type Store struct {
	students      []*domain.Student
	groups        []*domain.Group
	studentEntities []domain.Entity
	groupEntities   []domain.Entity
	studentIndex  *propertyIndex
	groupIndex    *propertyIndex
}

// New builds the indexed store from the already-id-assigned student and
// group lists.
func New(students []*domain.Student, groups []*domain.Group) *Store {
	studentEntities := make([]domain.Entity, len(students))
	for i, s := range students {
		studentEntities[i] = s
	}
	groupEntities := make([]domain.Entity, len(groups))
	for i, g := range groups {
		groupEntities[i] = g
	}

	return &Store{
		students:        students,
		groups:          groups,
		studentEntities: studentEntities,
		groupEntities:   groupEntities,
		studentIndex:    newPropertyIndex(studentEntities),
		groupIndex:      newPropertyIndex(groupEntities),
	}
}

// AllStudents returns every student, preserving insertion (id) order.
func (st *Store) AllStudents() []*domain.Student { return st.students }

// AllGroups returns every group, preserving insertion (id) order.
func (st *Store) AllGroups() []*domain.Group { return st.groups }

// FilterStudents applies f over the student population, or returns every
// student when f is nil.
func (st *Store) FilterStudents(f *filter.Filter) []*domain.Student {
	return toStudents(filter.Apply(f, st.studentIndex, st.studentEntities))
}

// FilterGroups applies f over the group population, or returns every group
// when f is nil.
func (st *Store) FilterGroups(f *filter.Filter) []*domain.Group {
	return toGroups(filter.Apply(f, st.groupIndex, st.groupEntities))
}

// StudentsSharingProperty returns one cohort per distinct value present for
// prop across the student population.
func (st *Store) StudentsSharingProperty(prop string) [][]*domain.Student {
	raw := st.studentIndex.cohorts(prop)
	out := make([][]*domain.Student, len(raw))
	for i, cohort := range raw {
		out[i] = toStudents(cohort)
	}
	return out
}

func toStudents(entities []domain.Entity) []*domain.Student {
	out := make([]*domain.Student, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*domain.Student))
	}
	return out
}

func toGroups(entities []domain.Entity) []*domain.Group {
	out := make([]*domain.Group, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*domain.Group))
	}
	return out
}
