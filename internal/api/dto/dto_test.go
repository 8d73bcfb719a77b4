package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupassign/internal/api/dto"
	"groupassign/internal/domain"
	"groupassign/internal/driver"
)

func TestAssignmentRequest_ToInput_Basic(t *testing.T) {
	req := dto.AssignmentRequest{
		Students: []dto.EntityRequest{
			{Properties: map[string]interface{}{"track": "math"}},
		},
		Groups: []dto.EntityRequest{
			{Properties: map[string]interface{}{"size": float64(1), "track": "math"}},
		},
		GoalSets: []dto.GoalSetRequest{
			{
				Name: "default",
				Goals: []dto.GoalRequest{
					{
						Type:     "group_filter",
						Required: true,
						StudentFilter: &dto.FilterRequest{
							Stencil: []dto.StencilRequest{
								{Prop: "track", Predicate: dto.PredicateRequest{Kind: "equals", Value: dto.ValueRequest{Str: "math"}}},
							},
						},
						GroupFilter: &dto.FilterRequest{
							Stencil: []dto.StencilRequest{
								{Prop: "track", Predicate: dto.PredicateRequest{Kind: "equals", Value: dto.ValueRequest{Str: "math"}}},
							},
						},
					},
				},
			},
		},
	}

	in, err := req.ToInput()
	require.NoError(t, err)
	assert.Len(t, in.Students, 1)
	assert.Len(t, in.Groups, 1)
	require.Len(t, in.GoalSets, 1)
	assert.Len(t, in.GoalSets[0].Goals, 1)
}

func TestAssignmentRequest_ToInput_UnknownGoalTypeErrors(t *testing.T) {
	req := dto.AssignmentRequest{
		Students: []dto.EntityRequest{{Properties: map[string]interface{}{}}},
		Groups:   []dto.EntityRequest{{Properties: map[string]interface{}{}}},
		GoalSets: []dto.GoalSetRequest{
			{Name: "bad", Goals: []dto.GoalRequest{{Type: "not_a_real_goal"}}},
		},
	}

	_, err := req.ToInput()
	assert.Error(t, err)
}

func TestAssignmentRequest_ToInput_UnknownFilterOpErrors(t *testing.T) {
	req := dto.AssignmentRequest{
		Students: []dto.EntityRequest{{Properties: map[string]interface{}{}}},
		Groups:   []dto.EntityRequest{{Properties: map[string]interface{}{}}},
		GoalSets: []dto.GoalSetRequest{
			{
				Name: "bad",
				Goals: []dto.GoalRequest{
					{Type: "group_filter", StudentFilter: &dto.FilterRequest{Op: "xor"}},
				},
			},
		},
	}

	_, err := req.ToInput()
	assert.Error(t, err)
}

func TestFromResult_Infeasible(t *testing.T) {
	res := &driver.Result{Groups: nil, Logs: []string{"exhausted"}}
	resp := dto.FromResult(res)

	assert.False(t, resp.Feasible)
	assert.Nil(t, resp.Groups)
	assert.Equal(t, []string{"exhausted"}, resp.Logs)
}

func TestFromResult_FeasibleRendersGroupsAndStudents(t *testing.T) {
	res := &driver.Result{
		Groups: []driver.GroupResult{
			{
				Info:     domain.Info{"name": domain.StringValue("group-a")},
				Students: []domain.Info{{"name": domain.StringValue("alice")}},
			},
		},
		Reward:    3,
		GoalGroup: 0,
		Logs:      []string{"ok"},
	}

	resp := dto.FromResult(res)

	require.True(t, resp.Feasible)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "group-a", resp.Groups[0].Properties["name"])
	require.Len(t, resp.Groups[0].Students, 1)
	assert.Equal(t, "alice", resp.Groups[0].Students[0]["name"])
}
