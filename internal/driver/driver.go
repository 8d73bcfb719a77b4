package driver

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"groupassign/internal/goals"
	"groupassign/internal/solver/lp"
)

// ErrNoStudents and ErrNoGroups are returned when Input is missing either
// population.
var (
	ErrNoStudents       = errors.New("driver: no students provided")
	ErrNoGroups         = errors.New("driver: no groups provided")
	ErrPopulationTooBig = errors.New("driver: population exceeds the hard ceiling")
)

// Driver runs one invocation of the compile/solve/decode pipeline.
type Driver struct {
	log               *zap.Logger
	newSolver         func(numVars int) lp.LPSolver
	populationCeiling int
	nondeterministic  bool
}

// New returns a Driver. newSolver defaults to lp.NewBackend when nil, so
// callers only override it in tests that need a deterministic stub.
// populationCeiling defaults to DefaultPopulationCeiling when zero, so
// callers that don't care about the config-driven value can pass 0.
// nondeterministic is the config-level default; a request that sets
// Input.Nondeterministic explicitly still forces randomized ids for that
// one call.
func New(log *zap.Logger, newSolver func(numVars int) lp.LPSolver, populationCeiling int, nondeterministic bool) *Driver {
	if newSolver == nil {
		newSolver = lp.NewBackend
	}
	if populationCeiling == 0 {
		populationCeiling = DefaultPopulationCeiling
	}
	return &Driver{log: log, newSolver: newSolver, populationCeiling: populationCeiling, nondeterministic: nondeterministic}
}

// Run executes the full pipeline: validation, id assignment, the
// prioritized goal-set loop, solve, and decode.
func (d *Driver) Run(in Input) (*Result, error) {
	var logs []string
	logf := func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		logs = append(logs, line)
		d.log.Debug(line)
	}

	if len(in.Students) == 0 {
		return nil, ErrNoStudents
	}
	if len(in.Groups) == 0 {
		return nil, ErrNoGroups
	}
	if len(in.Students) > d.populationCeiling || len(in.Groups) > d.populationCeiling {
		return nil, ErrPopulationTooBig
	}

	var rng *rand.Rand
	if in.Nondeterministic || d.nondeterministic {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	studentIDs, groupIDs := assignIdentifiers(in.Students, in.Groups, rng)

	for i, gs := range in.GoalSets {
		problem, builder, st, err := buildAttempt(studentIDs, groupIDs)
		if err != nil {
			logf("goal set %d (%s): structural constraint failure: %v", i, gs.Name, err)
			continue
		}

		ctx := &goals.Context{Store: st, Problem: problem, Builder: builder, Log: logf}

		failed := false
		for _, goal := range gs.Goals {
			if err := goal.Compile(ctx); err != nil {
				logf("goal set %d (%s): compile failed: %v", i, gs.Name, err)
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		backend := d.newSolver(problem.NumVars())
		res, err := lp.SolveProblem(backend, problem)
		backend.Close()
		if err != nil {
			logf("goal set %d (%s): solver error: %v", i, gs.Name, err)
			continue
		}
		if res.Status != lp.LPOptimal {
			logf("goal set %d (%s): solver status %s, advancing", i, gs.Name, res.Status)
			continue
		}

		buckets := decode(problem, res)
		return &Result{
			Groups:    buildGroupResults(groupIDs, studentIDs, buckets),
			Reward:    res.ObjectiveValue,
			GoalGroup: i,
			Logs:      logs,
		}, nil
	}

	logf("all goal sets exhausted")
	return failureResult(logs), nil
}

func buildGroupResults(groupIDs, studentIDs []idEntity, buckets map[int][]int) []GroupResult {
	studentInfoByID := make(map[int]int, len(studentIDs))
	for idx, se := range studentIDs {
		studentInfoByID[se.id] = idx
	}

	out := make([]GroupResult, len(groupIDs))
	for i, ge := range groupIDs {
		gr := GroupResult{Info: ge.info}
		for _, sid := range buckets[ge.id] {
			idx, ok := studentInfoByID[sid]
			if !ok {
				continue
			}
			gr.Students = append(gr.Students, studentIDs[idx].info)
		}
		out[i] = gr
	}
	return out
}
