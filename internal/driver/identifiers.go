package driver

import (
	"math/rand"

	"groupassign/internal/domain"
)

type idEntity struct {
	id   int
	info domain.Info
}

// assignIdentifiers assigns group ids 1..G in order, skipping any group
// whose "size" property is present and numeric zero, then assigns student
// ids 1..S in order. rng is nil unless nondeterministic mode shuffles the
// input lists first.
func assignIdentifiers(students, groups []Entity, rng *rand.Rand) ([]idEntity, []idEntity) {
	if rng != nil {
		students = shuffled(students, rng)
		groups = shuffled(groups, rng)
	}

	groupEntities := make([]idEntity, 0, len(groups))
	nextGroupID := 1
	for _, g := range groups {
		if v, ok := g.Info.Get("size"); ok && v.IsNumber() && v.Number() == 0 {
			continue
		}
		groupEntities = append(groupEntities, idEntity{id: nextGroupID, info: g.Info})
		nextGroupID++
	}

	studentEntities := make([]idEntity, 0, len(students))
	for i, s := range students {
		studentEntities = append(studentEntities, idEntity{id: i + 1, info: s.Info})
	}

	return studentEntities, groupEntities
}

func shuffled(in []Entity, rng *rand.Rand) []Entity {
	out := append([]Entity(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
