package analyze

import "sort"

// Bounds used by the two ranking call sites.
const (
	SummaryTopN   = 3
	BreakdownTopN = 10
)

// TopN returns up to n activities ordered by descending hours. The sort is
// stable, so activities with equal hours keep their first-seen order. The
// input slice is not modified.
func TopN(activities []Activity, n int) []Activity {
	out := make([]Activity, len(activities))
	copy(out, activities)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hours > out[j].Hours
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
