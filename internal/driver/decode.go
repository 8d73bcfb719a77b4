package driver

import (
	"strconv"
	"strings"

	"groupassign/internal/ilp"
	"groupassign/internal/solver/lp"
)

// decode reads membership_<sid>_<gid> variable values off a solved result
// and returns the group -> student-ids bucketing. Unparseable names and
// non-membership variables are ignored, per the Driver's "ignore that
// variable" handling of a malformed decoded name.
func decode(p *ilp.Problem, res *lp.LPResult) map[int][]int {
	buckets := make(map[int][]int)
	for i := 0; i < p.NumVars(); i++ {
		sid, gid, ok := parseMembershipName(p.Name(i))
		if !ok {
			continue
		}
		if i >= len(res.Solution) {
			continue
		}
		if res.Solution[i] > 0.5 {
			buckets[gid] = append(buckets[gid], sid)
		}
	}
	return buckets
}

func parseMembershipName(name string) (studentID, groupID int, ok bool) {
	const prefix = "membership_"
	if !strings.HasPrefix(name, prefix) {
		return 0, 0, false
	}
	rest := name[len(prefix):]
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	sid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	gid, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return sid, gid, true
}
