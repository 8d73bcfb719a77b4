// Package dto defines the wire shapes for the assignment endpoint and their
// conversion into the domain/filter/goals types the driver consumes.
package dto

import (
	"fmt"

	"groupassign/internal/domain"
	"groupassign/internal/driver"
	"groupassign/internal/filter"
	"groupassign/internal/goals"
)

// EntityRequest is one student or group row: a flat property bag. "size" and
// "minsize" are read out of Properties by domain.NewGroup when present.
type EntityRequest struct {
	Properties map[string]interface{} `json:"properties"`
}

// ValueRequest round-trips a domain.Value: exactly one of Str/Num must be
// set, chosen by which field the JSON payload populated.
type ValueRequest struct {
	Str string  `json:"str,omitempty"`
	Num float64 `json:"num,omitempty"`
	// IsNum distinguishes NumberValue(0) from an omitted Num.
	IsNum bool `json:"is_num,omitempty"`
}

func (v ValueRequest) toDomain() domain.Value {
	if v.IsNum || v.Num != 0 {
		return domain.NumberValue(v.Num)
	}
	return domain.StringValue(v.Str)
}

// PredicateRequest is one leaf test against a property.
type PredicateRequest struct {
	Kind   string         `json:"kind"` // equals, is_in, not_in, is_not, lt, lte, gt, gte
	Value  ValueRequest   `json:"value,omitempty"`
	Values []ValueRequest `json:"values,omitempty"`
}

func (p PredicateRequest) toDomain() (filter.Predicate, error) {
	values := make([]domain.Value, len(p.Values))
	for i, v := range p.Values {
		values[i] = v.toDomain()
	}
	switch p.Kind {
	case "equals", "":
		return filter.Equals(p.Value.toDomain()), nil
	case "is_in":
		return filter.IsIn(values...), nil
	case "not_in":
		return filter.NotIn(values...), nil
	case "is_not":
		return filter.IsNot(p.Value.toDomain()), nil
	case "lt":
		return filter.LT(p.Value.toDomain()), nil
	case "lte":
		return filter.LTE(p.Value.toDomain()), nil
	case "gt":
		return filter.GT(p.Value.toDomain()), nil
	case "gte":
		return filter.GTE(p.Value.toDomain()), nil
	default:
		return filter.Predicate{}, fmt.Errorf("unknown predicate kind %q", p.Kind)
	}
}

// StencilRequest pairs a property name with the predicate tested against it.
type StencilRequest struct {
	Prop      string           `json:"prop"`
	Predicate PredicateRequest `json:"predicate"`
}

// FilterRequest is the recursive filter tree. A leaf carries Stencil; an
// internal node carries Op plus Left/Right. An entirely empty FilterRequest
// (nil pointer) matches everything.
type FilterRequest struct {
	Op      string            `json:"op,omitempty"` // and, or, diff; empty means leaf
	Stencil []StencilRequest  `json:"stencil,omitempty"`
	Left    *FilterRequest    `json:"left,omitempty"`
	Right   *FilterRequest    `json:"right,omitempty"`
}

// ToDomain converts a possibly-nil FilterRequest into a *filter.Filter. A nil
// receiver yields a nil *filter.Filter, which filter.Apply treats as
// match-everything.
func (f *FilterRequest) ToDomain() (*filter.Filter, error) {
	if f == nil {
		return nil, nil
	}
	switch f.Op {
	case "", "leaf":
		stencil := make([]filter.Stencil, len(f.Stencil))
		for i, s := range f.Stencil {
			pred, err := s.Predicate.toDomain()
			if err != nil {
				return nil, fmt.Errorf("stencil[%d] prop %q: %w", i, s.Prop, err)
			}
			stencil[i] = filter.Stencil{Prop: s.Prop, Pred: pred}
		}
		return filter.New(stencil...), nil
	case "and", "or", "diff":
		left, err := f.Left.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("left: %w", err)
		}
		right, err := f.Right.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("right: %w", err)
		}
		if left == nil {
			left = filter.New()
		}
		if right == nil {
			right = filter.New()
		}
		switch f.Op {
		case "and":
			return left.And(right), nil
		case "or":
			return left.Or(right), nil
		default:
			return left.Minus(right), nil
		}
	default:
		return nil, fmt.Errorf("unknown filter op %q", f.Op)
	}
}

// ThresholdRequest is the dual scalar-or-by-size-mapping cutoff shape.
// Mapping, when non-empty, takes precedence over Scalar.
type ThresholdRequest struct {
	Scalar  float64         `json:"scalar,omitempty"`
	Mapping map[string]float64 `json:"mapping,omitempty"`
}

func (t ThresholdRequest) toDomain() goals.Threshold {
	if len(t.Mapping) > 0 {
		m := make(map[int]float64, len(t.Mapping))
		for k, v := range t.Mapping {
			var size int
			fmt.Sscanf(k, "%d", &size)
			m[size] = v
		}
		return goals.MappingThreshold(m)
	}
	return goals.ScalarThreshold(t.Scalar)
}

// GoalRequest is one tagged-union goal entry. Type selects which fields are
// read; fields irrelevant to Type are ignored.
type GoalRequest struct {
	Type          string  `json:"type"`
	Required      bool    `json:"required,omitempty"`
	NetReward     float64 `json:"net_reward,omitempty"`
	PartialReward float64 `json:"partial_reward,omitempty"`

	StudentFilter *FilterRequest `json:"student_filter,omitempty"`
	GroupFilter   *FilterRequest `json:"group_filter,omitempty"`

	PropertyName string           `json:"property_name,omitempty"`
	MinSimilar   ThresholdRequest `json:"min_similar,omitempty"`
	MaxSimilar   ThresholdRequest `json:"max_similar,omitempty"`

	GroupProperty   string `json:"group_property,omitempty"`
	StudentProperty string `json:"student_property,omitempty"`

	StudentFilters []*FilterRequest `json:"student_filters,omitempty"`
}

func (g GoalRequest) base() goals.Base {
	return goals.Base{Required: g.Required, NetReward: g.NetReward, PartialReward: g.PartialReward}
}

// ToDomain compiles one GoalRequest into the goals.Goal it names.
func (g GoalRequest) ToDomain() (goals.Goal, error) {
	switch g.Type {
	case "group_filter":
		studentFilter, err := g.StudentFilter.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("student_filter: %w", err)
		}
		groupFilter, err := g.GroupFilter.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("group_filter: %w", err)
		}
		return &goals.GroupFilterGoal{Base: g.base(), StudentFilter: studentFilter, GroupFilter: groupFilter}, nil

	case "min_similar":
		groupFilter, err := g.GroupFilter.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("group_filter: %w", err)
		}
		return &goals.MinSimilarGoal{
			Base:         g.base(),
			GroupFilter:  groupFilter,
			PropertyName: g.PropertyName,
			MinSimilar:   g.MinSimilar.toDomain(),
		}, nil

	case "max_similar":
		groupFilter, err := g.GroupFilter.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("group_filter: %w", err)
		}
		return &goals.MaxSimilarGoal{
			Base:         g.base(),
			GroupFilter:  groupFilter,
			PropertyName: g.PropertyName,
			MaxSimilar:   g.MaxSimilar.toDomain(),
		}, nil

	case "must_match":
		groupFilter, err := g.GroupFilter.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("group_filter: %w", err)
		}
		studentFilter, err := g.StudentFilter.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("student_filter: %w", err)
		}
		return &goals.MustMatchGoal{
			Base:            g.base(),
			GroupFilter:     groupFilter,
			GroupProperty:   g.GroupProperty,
			StudentFilter:   studentFilter,
			StudentProperty: g.StudentProperty,
		}, nil

	case "pod":
		filters := make([]*filter.Filter, len(g.StudentFilters))
		for i, sf := range g.StudentFilters {
			f, err := sf.ToDomain()
			if err != nil {
				return nil, fmt.Errorf("student_filters[%d]: %w", i, err)
			}
			filters[i] = f
		}
		return &goals.PodGoal{Base: g.base(), StudentFilters: filters}, nil

	default:
		return nil, fmt.Errorf("unknown goal type %q", g.Type)
	}
}

// GoalSetRequest is one named, ordered goal list.
type GoalSetRequest struct {
	Name  string        `json:"name"`
	Goals []GoalRequest `json:"goals"`
}

// AssignmentRequest is the full request body for POST /api/v1/assignments.
type AssignmentRequest struct {
	Students         []EntityRequest  `json:"students"`
	Groups           []EntityRequest  `json:"groups"`
	Nondeterministic bool             `json:"nondeterministic,omitempty"`
	GoalSets         []GoalSetRequest `json:"goal_sets"`
}

func entityInfo(props map[string]interface{}) domain.Info {
	info := make(domain.Info, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case float64:
			info[k] = domain.NumberValue(val)
		case int:
			info[k] = domain.NumberValue(float64(val))
		case string:
			info[k] = domain.StringValue(val)
		default:
			info[k] = domain.StringValue(fmt.Sprintf("%v", val))
		}
	}
	return info
}

// GroupResultResponse is one output group and the students it holds.
type GroupResultResponse struct {
	Properties map[string]interface{} `json:"properties"`
	Students   []map[string]interface{} `json:"students"`
}

// AssignmentResponse is the full response body.
type AssignmentResponse struct {
	Feasible  bool                   `json:"feasible"`
	Groups    []GroupResultResponse  `json:"groups,omitempty"`
	Reward    float64                `json:"reward,omitempty"`
	GoalGroup int                    `json:"goal_group,omitempty"`
	Logs      []string               `json:"logs"`
}

// ToInput converts a request body into a driver.Input, compiling every
// filter and goal along the way.
func (r AssignmentRequest) ToInput() (driver.Input, error) {
	students := make([]driver.Entity, len(r.Students))
	for i, s := range r.Students {
		students[i] = driver.Entity{Info: entityInfo(s.Properties)}
	}
	groups := make([]driver.Entity, len(r.Groups))
	for i, g := range r.Groups {
		groups[i] = driver.Entity{Info: entityInfo(g.Properties)}
	}

	goalSets := make([]driver.GoalSetInput, len(r.GoalSets))
	for i, gs := range r.GoalSets {
		compiled := make(goals.GoalSet, len(gs.Goals))
		for j, gr := range gs.Goals {
			goal, err := gr.ToDomain()
			if err != nil {
				return driver.Input{}, fmt.Errorf("goal_sets[%d].goals[%d]: %w", i, j, err)
			}
			compiled[j] = goal
		}
		goalSets[i] = driver.GoalSetInput{Name: gs.Name, Goals: compiled}
	}

	return driver.Input{
		Students:         students,
		Groups:           groups,
		GoalSets:         goalSets,
		Nondeterministic: r.Nondeterministic,
	}, nil
}

// FromResult converts a driver.Result into the response body. A nil Groups
// on the result signals every goal set was exhausted without a feasible
// solve, reported as Feasible: false.
func FromResult(res *driver.Result) AssignmentResponse {
	resp := AssignmentResponse{
		Feasible:  res.Groups != nil,
		Reward:    res.Reward,
		GoalGroup: res.GoalGroup,
		Logs:      res.Logs,
	}
	if !resp.Feasible {
		return resp
	}
	resp.Groups = make([]GroupResultResponse, len(res.Groups))
	for i, g := range res.Groups {
		students := make([]map[string]interface{}, len(g.Students))
		for j, si := range g.Students {
			students[j] = valueMap(si)
		}
		resp.Groups[i] = GroupResultResponse{
			Properties: valueMap(g.Info),
			Students:   students,
		}
	}
	return resp
}

func valueMap(info domain.Info) map[string]interface{} {
	out := make(map[string]interface{}, len(info))
	for k, v := range info {
		if v.IsNumber() {
			out[k] = v.Number()
		} else {
			out[k] = v.String()
		}
	}
	return out
}
