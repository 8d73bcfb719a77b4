package goals

// Threshold is the dual scalar-or-by-size-mapping shape shared by
// MinSimilarGoal.minSimilar and MaxSimilarGoal.maxSimilar. A nil Mapping
// means "scalar form"; a non-nil Mapping means "look the cutoff up by the
// group's size, or skip the group entirely when its size isn't a key".
type Threshold struct {
	Scalar  float64
	Mapping map[int]float64
}

// ScalarThreshold builds the scalar form of a Min/MaxSimilar cutoff.
func ScalarThreshold(v float64) Threshold { return Threshold{Scalar: v} }

// MappingThreshold builds the by-group-size form.
func MappingThreshold(m map[int]float64) Threshold { return Threshold{Mapping: m} }

// forSize resolves the cutoff for a group of the given size. placeholder is
// the value substituted when the scalar form carries the -1 sentinel:
// MinSimilarGoal substitutes the group's own size, MaxSimilarGoal
// substitutes 1 — the asymmetry between the two is intentional, not a bug.
func (t Threshold) forSize(size int, placeholder func(size int) float64) (k float64, ok bool) {
	if t.Mapping != nil {
		v, present := t.Mapping[size]
		return v, present
	}
	if t.Scalar == -1 {
		return placeholder(size), true
	}
	return t.Scalar, true
}
