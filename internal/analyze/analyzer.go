package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/amirR01/google-calendar-tracker/internal/category"
	"github.com/amirR01/google-calendar-tracker/internal/dates"
	"github.com/amirR01/google-calendar-tracker/internal/source"
)

// Analyzer is the aggregation engine's facade. It owns the event source and
// the classification mapping; all analysis entry points hang off it. One
// analysis call is synchronous and recomputes everything from fresh fetches.
type Analyzer struct {
	src     source.Source
	mapping category.Mapping
	now     func() time.Time
}

// New builds an Analyzer over a source and mapping.
func New(src source.Source, m category.Mapping) *Analyzer {
	return &Analyzer{src: src, mapping: m, now: time.Now}
}

// WithClock overrides the clock used to anchor trend windows. For tests.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Categories exposes the mapping's distinct category names, for menu
// population and back-fill.
func (a *Analyzer) Categories() []string {
	return a.mapping.Categories()
}

// Mapping returns the injected classification mapping.
func (a *Analyzer) Mapping() category.Mapping {
	return a.mapping
}

// RangeReport is the general range analysis: totals for one window plus the
// top three activities per category.
type RangeReport struct {
	Window        dates.Range
	Totals        Totals
	TopActivities map[string][]Activity
	TotalHours    float64
}

// Range fetches and aggregates all events in the window. Activity titles
// are case-folded in this view.
func (a *Analyzer) Range(ctx context.Context, w dates.Range) (*RangeReport, error) {
	timeMin, timeMax := w.QueryInterval()
	events, err := a.src.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	totals := Aggregate(events, a.mapping, Options{FoldTitles: true})

	top := make(map[string][]Activity, len(totals.Activities))
	for cat, acts := range totals.Activities {
		top[cat] = TopN(acts, SummaryTopN)
	}

	return &RangeReport{
		Window:        w,
		Totals:        totals,
		TopActivities: top,
		TotalHours:    totals.TotalHours(),
	}, nil
}
