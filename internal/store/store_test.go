package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"groupassign/internal/domain"
	"groupassign/internal/filter"
	"groupassign/internal/store"
)

func TestStore_FilterStudents(t *testing.T) {
	students := []*domain.Student{
		domain.NewStudent(1, domain.Info{"track": domain.StringValue("math")}),
		domain.NewStudent(2, domain.Info{"track": domain.StringValue("art")}),
	}
	groups := []*domain.Group{domain.NewGroup(1, domain.Info{})}

	st := store.New(students, groups)

	f := filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(domain.StringValue("math"))})
	got := st.FilterStudents(f)

	assert.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID())
}

func TestStore_FilterStudents_NilFilterReturnsAll(t *testing.T) {
	students := []*domain.Student{
		domain.NewStudent(1, domain.Info{}),
		domain.NewStudent(2, domain.Info{}),
	}
	st := store.New(students, nil)

	assert.Len(t, st.FilterStudents(nil), 2)
}

func TestStore_StudentsSharingProperty(t *testing.T) {
	students := []*domain.Student{
		domain.NewStudent(1, domain.Info{"lang": domain.StringValue("en")}),
		domain.NewStudent(2, domain.Info{"lang": domain.StringValue("en")}),
		domain.NewStudent(3, domain.Info{"lang": domain.StringValue("fr")}),
	}
	st := store.New(students, nil)

	cohorts := st.StudentsSharingProperty("lang")
	assert.Len(t, cohorts, 2)

	total := 0
	for _, c := range cohorts {
		total += len(c)
	}
	assert.Equal(t, 3, total)
}

func TestStore_AllStudentsAllGroupsPreserveOrder(t *testing.T) {
	students := []*domain.Student{domain.NewStudent(1, domain.Info{}), domain.NewStudent(2, domain.Info{})}
	groups := []*domain.Group{domain.NewGroup(1, domain.Info{}), domain.NewGroup(2, domain.Info{})}
	st := store.New(students, groups)

	assert.Equal(t, []int{1, 2}, []int{st.AllStudents()[0].ID(), st.AllStudents()[1].ID()})
	assert.Equal(t, []int{1, 2}, []int{st.AllGroups()[0].ID(), st.AllGroups()[1].ID()})
}
