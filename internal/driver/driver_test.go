package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"groupassign/internal/domain"
	"groupassign/internal/driver"
	"groupassign/internal/filter"
	"groupassign/internal/goals"
)

func entity(props map[string]domain.Value) driver.Entity {
	return driver.Entity{Info: domain.Info(props)}
}

func str(s string) domain.Value { return domain.StringValue(s) }
func num(n float64) domain.Value { return domain.NumberValue(n) }

func studentsTotaling(names ...string) []driver.Entity {
	out := make([]driver.Entity, len(names))
	for i, n := range names {
		out[i] = entity(map[string]domain.Value{"name": str(n)})
	}
	return out
}

func TestRun_TrivialPlacement(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)

	in := driver.Input{
		Students: studentsTotaling("alice", "bob"),
		Groups: []driver.Entity{
			entity(map[string]domain.Value{"size": num(2)}),
		},
		GoalSets: []driver.GoalSetInput{
			{Name: "default", Goals: goals.GoalSet{}},
		},
	}

	res, err := d.Run(in)
	require.NoError(t, err)
	require.NotNil(t, res.Groups)
	assert.Equal(t, 0, res.GoalGroup)
	assert.Len(t, res.Groups[0].Students, 2)
}

func TestRun_RequiredGroupFilterHonored(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)

	mathStudent := entity(map[string]domain.Value{"track": str("math")})
	groupA := entity(map[string]domain.Value{"track": str("math"), "size": num(1)})
	groupB := entity(map[string]domain.Value{"track": str("art"), "size": num(1)})

	goal := &goals.GroupFilterGoal{
		Base:          goals.Base{Required: true},
		StudentFilter: filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(str("math"))}),
		GroupFilter:   filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(str("math"))}),
	}

	in := driver.Input{
		Students: []driver.Entity{mathStudent},
		Groups:   []driver.Entity{groupA, groupB},
		GoalSets: []driver.GoalSetInput{
			{Name: "default", Goals: goals.GoalSet{goal}},
		},
	}

	res, err := d.Run(in)
	require.NoError(t, err)
	require.NotNil(t, res.Groups)

	placedInMath := false
	for _, s := range res.Groups[0].Students {
		if v, ok := s.Get("track"); ok && v.String() == "math" {
			placedInMath = true
		}
	}
	assert.True(t, placedInMath)
}

func TestRun_FallsBackAcrossGoalSets(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)

	student := entity(map[string]domain.Value{"track": str("math")})
	group := entity(map[string]domain.Value{"track": str("art"), "size": num(1)})

	impossible := &goals.GroupFilterGoal{
		Base:          goals.Base{Required: true},
		StudentFilter: filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(str("math"))}),
		GroupFilter:   filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(str("math"))}),
	}

	in := driver.Input{
		Students: []driver.Entity{student},
		Groups:   []driver.Entity{group},
		GoalSets: []driver.GoalSetInput{
			{Name: "strict", Goals: goals.GoalSet{impossible}},
			{Name: "fallback", Goals: goals.GoalSet{}},
		},
	}

	res, err := d.Run(in)
	require.NoError(t, err)
	require.NotNil(t, res.Groups)
	assert.Equal(t, 1, res.GoalGroup)
}

func TestRun_TotalFailureReturnsNilGroups(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)

	student := entity(map[string]domain.Value{"track": str("math")})
	group := entity(map[string]domain.Value{"track": str("art"), "size": num(1)})

	impossible := &goals.GroupFilterGoal{
		Base:          goals.Base{Required: true},
		StudentFilter: filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(str("math"))}),
		GroupFilter:   filter.New(filter.Stencil{Prop: "track", Pred: filter.Equals(str("math"))}),
	}

	in := driver.Input{
		Students: []driver.Entity{student},
		Groups:   []driver.Entity{group},
		GoalSets: []driver.GoalSetInput{
			{Name: "only-strict", Goals: goals.GoalSet{impossible}},
		},
	}

	res, err := d.Run(in)
	require.NoError(t, err)
	assert.Nil(t, res.Groups)
	assert.NotEmpty(t, res.Logs)
}

func TestRun_MinSimilarKeepsCohortTogether(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)

	students := []driver.Entity{
		entity(map[string]domain.Value{"lang": str("en")}),
		entity(map[string]domain.Value{"lang": str("en")}),
	}
	groups := []driver.Entity{entity(map[string]domain.Value{"size": num(2)})}

	goal := &goals.MinSimilarGoal{
		Base:         goals.Base{Required: true},
		PropertyName: "lang",
		MinSimilar:   goals.ScalarThreshold(2),
	}

	in := driver.Input{
		Students: students,
		Groups:   groups,
		GoalSets: []driver.GoalSetInput{
			{Name: "default", Goals: goals.GoalSet{goal}},
		},
	}

	res, err := d.Run(in)
	require.NoError(t, err)
	require.NotNil(t, res.Groups)
	assert.Len(t, res.Groups[0].Students, 2)
}

func TestRun_MaxSimilarViolatedFallsBack(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)

	students := []driver.Entity{
		entity(map[string]domain.Value{"lang": str("en")}),
		entity(map[string]domain.Value{"lang": str("en")}),
	}
	groups := []driver.Entity{entity(map[string]domain.Value{"size": num(2)})}

	strict := &goals.MaxSimilarGoal{
		Base:         goals.Base{Required: true},
		PropertyName: "lang",
		MaxSimilar:   goals.ScalarThreshold(1),
	}

	in := driver.Input{
		Students: students,
		Groups:   groups,
		GoalSets: []driver.GoalSetInput{
			{Name: "strict", Goals: goals.GoalSet{strict}},
			{Name: "fallback", Goals: goals.GoalSet{}},
		},
	}

	res, err := d.Run(in)
	require.NoError(t, err)
	require.NotNil(t, res.Groups)
	assert.Equal(t, 1, res.GoalGroup)
}

func TestRun_PodGoalKeepsGroupTogether(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)

	pod := []driver.Entity{
		entity(map[string]domain.Value{"name": str("alice"), "pod": str("x")}),
		entity(map[string]domain.Value{"name": str("bob"), "pod": str("x")}),
	}
	others := []driver.Entity{entity(map[string]domain.Value{"name": str("carol"), "pod": str("y")})}

	groups := []driver.Entity{
		entity(map[string]domain.Value{"size": num(2)}),
		entity(map[string]domain.Value{"size": num(1)}),
	}

	goal := &goals.PodGoal{
		Base: goals.Base{Required: true},
		StudentFilters: []*filter.Filter{
			filter.New(filter.Stencil{Prop: "pod", Pred: filter.Equals(str("x"))}),
		},
	}

	in := driver.Input{
		Students: append(append([]driver.Entity{}, pod...), others...),
		Groups:   groups,
		GoalSets: []driver.GoalSetInput{
			{Name: "default", Goals: goals.GoalSet{goal}},
		},
	}

	res, err := d.Run(in)
	require.NoError(t, err)
	require.NotNil(t, res.Groups)

	podGroup := -1
	for gi, gr := range res.Groups {
		for _, s := range gr.Students {
			if v, ok := s.Get("name"); ok && (v.String() == "alice" || v.String() == "bob") {
				if podGroup == -1 {
					podGroup = gi
				}
				assert.Equal(t, podGroup, gi, "alice and bob must land in the same group")
			}
		}
	}
	assert.NotEqual(t, -1, podGroup)
}

func TestRun_NoStudentsErrors(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)
	_, err := d.Run(driver.Input{Groups: []driver.Entity{entity(map[string]domain.Value{"size": num(1)})}})
	assert.ErrorIs(t, err, driver.ErrNoStudents)
}

func TestRun_NoGroupsErrors(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)
	_, err := d.Run(driver.Input{Students: studentsTotaling("alice")})
	assert.ErrorIs(t, err, driver.ErrNoGroups)
}

func TestRun_PopulationTooBigErrors(t *testing.T) {
	d := driver.New(zap.NewNop(), nil, 0, false)
	names := make([]string, driver.DefaultPopulationCeiling+1)
	for i := range names {
		names[i] = "s"
	}
	_, err := d.Run(driver.Input{
		Students: studentsTotaling(names...),
		Groups:   []driver.Entity{entity(map[string]domain.Value{"size": num(1)})},
	})
	assert.ErrorIs(t, err, driver.ErrPopulationTooBig)
}
