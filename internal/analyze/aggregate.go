// Package analyze turns raw calendar events into time-per-category
// summaries, weekly trends, and category breakdowns.
package analyze

import (
	"strings"
	"time"

	"github.com/amirR01/google-calendar-tracker/internal/category"
	"github.com/amirR01/google-calendar-tracker/internal/source"
)

// Activity is one distinct event title with its accumulated hours.
type Activity struct {
	Title string
	Hours float64
}

// SkipStats counts events the aggregator could not use, broken out by
// reason. NegativeDuration is a diagnostic only: those events still
// contribute their (negative) hours to the totals.
type SkipStats struct {
	MissingStart     int
	MissingEnd       int
	BadTimestamp     int
	UnknownTag       int
	NegativeDuration int
}

// Skipped returns how many events were excluded from the totals.
func (s SkipStats) Skipped() int {
	return s.MissingStart + s.MissingEnd + s.BadTimestamp + s.UnknownTag
}

// Totals is the output of one aggregation pass. Categories maps category
// name to summed hours; Activities keeps per-category activity lists in
// first-seen order so ranking ties resolve deterministically. Categories
// with no events are simply absent.
type Totals struct {
	Categories map[string]float64
	Activities map[string][]Activity
	Skipped    SkipStats
}

// TotalHours sums every category's hours.
func (t Totals) TotalHours() float64 {
	var sum float64
	for _, h := range t.Categories {
		sum += h
	}
	return sum
}

// ActivitiesFor returns the accumulated activity list for one category,
// in first-seen order.
func (t Totals) ActivitiesFor(cat string) []Activity {
	return t.Activities[cat]
}

// Options controls title normalization during aggregation. Titles are
// always whitespace-trimmed; FoldTitles additionally lower-cases them,
// which the cross-category summary view uses and the single-category
// breakdown view does not.
type Options struct {
	FoldTitles bool
}

// Aggregate classifies each event and sums durations per category and per
// (category, title). Events missing a start or end timestamp, carrying an
// unparseable timestamp, or whose color tag is not in the mapping are
// skipped and counted in SkipStats. Durations are end minus start in
// fractional hours; zero and negative durations pass through unclamped.
func Aggregate(events []source.Event, m category.Mapping, opts Options) Totals {
	t := Totals{
		Categories: make(map[string]float64),
		Activities: make(map[string][]Activity),
	}

	for _, e := range events {
		if e.Start.DateTime == "" {
			t.Skipped.MissingStart++
			continue
		}
		if e.End.DateTime == "" {
			t.Skipped.MissingEnd++
			continue
		}
		cat, ok := m.Classify(e.ColorID)
		if !ok {
			t.Skipped.UnknownTag++
			continue
		}

		start, err := time.Parse(time.RFC3339, e.Start.DateTime)
		if err != nil {
			t.Skipped.BadTimestamp++
			continue
		}
		end, err := time.Parse(time.RFC3339, e.End.DateTime)
		if err != nil {
			t.Skipped.BadTimestamp++
			continue
		}

		hours := end.Sub(start).Hours()
		if hours < 0 {
			t.Skipped.NegativeDuration++
		}

		title := normalizeTitle(e.Summary, opts.FoldTitles)
		t.Categories[cat] += hours
		t.Activities[cat] = addActivity(t.Activities[cat], title, hours)
	}

	return t
}

func normalizeTitle(summary string, fold bool) string {
	title := strings.TrimSpace(summary)
	if title == "" {
		title = "Untitled"
	}
	if fold {
		title = strings.ToLower(title)
	}
	return title
}

// addActivity accumulates hours onto an existing title or appends a new
// one, preserving first-seen order.
func addActivity(list []Activity, title string, hours float64) []Activity {
	for i := range list {
		if list[i].Title == title {
			list[i].Hours += hours
			return list
		}
	}
	return append(list, Activity{Title: title, Hours: hours})
}
