package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"groupassign/internal/domain"
)

// CacheKey returns a deterministic hash of an Input's students, groups and
// goal-set names, suitable as a cache.ResultCache key for identical
// repeated invocations. Goal bodies themselves are not hashed (goal
// compilers are not serializable); callers that vary goal parameters
// without varying goal-set names must not share a cache.
func CacheKey(in Input) string {
	type canonical struct {
		Students []map[string]string `json:"students"`
		Groups   []map[string]string `json:"groups"`
		GoalSets []string            `json:"goal_sets"`
	}

	c := canonical{}
	for _, e := range in.Students {
		c.Students = append(c.Students, canonicalInfo(e.Info))
	}
	for _, e := range in.Groups {
		c.Groups = append(c.Groups, canonicalInfo(e.Info))
	}
	for _, gs := range in.GoalSets {
		c.GoalSets = append(c.GoalSets, gs.Name)
	}

	body, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// canonicalInfo renders a property map as a sorted-key string map so its
// JSON encoding is stable regardless of Go's randomized map iteration.
func canonicalInfo(info domain.Info) map[string]string {
	out := make(map[string]string, len(info))
	for k, v := range info {
		out[k] = v.String()
	}
	return out
}
