package analyze

import (
	"context"
	"fmt"

	"github.com/amirR01/google-calendar-tracker/internal/dates"
)

// BreakdownReport details one category's share of a window. Activities are
// the target category's titles in first-seen order, without case folding.
type BreakdownReport struct {
	Window         dates.Range
	Category       string
	CategoryHours  float64
	TotalHours     float64
	Percentage     float64
	Activities     []Activity
	ActivityShares map[string]float64
	TopActivities  []Activity
	DistinctTitles int
	Skipped        SkipStats
}

// Breakdown aggregates one window and computes the target category's share
// of all calendar time plus its internal activity distribution. A window
// with no events at all yields zero percentages, never a division error.
func (a *Analyzer) Breakdown(ctx context.Context, w dates.Range, target string) (*BreakdownReport, error) {
	timeMin, timeMax := w.QueryInterval()
	events, err := a.src.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	totals := Aggregate(events, a.mapping, Options{FoldTitles: false})

	categoryHours := totals.Categories[target]
	totalHours := totals.TotalHours()
	activities := totals.ActivitiesFor(target)

	var pct float64
	if totalHours > 0 {
		pct = categoryHours / totalHours * 100
	}

	// Per-activity shares are only meaningful against a positive category
	// total; a zero or negative total leaves the map empty even when
	// individual activities exist.
	shares := make(map[string]float64)
	if categoryHours > 0 {
		for _, act := range activities {
			shares[act.Title] = act.Hours / categoryHours * 100
		}
	}

	return &BreakdownReport{
		Window:         w,
		Category:       target,
		CategoryHours:  categoryHours,
		TotalHours:     totalHours,
		Percentage:     pct,
		Activities:     activities,
		ActivityShares: shares,
		TopActivities:  TopN(activities, BreakdownTopN),
		DistinctTitles: len(activities),
		Skipped:        totals.Skipped,
	}, nil
}
