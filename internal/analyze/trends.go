package analyze

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/amirR01/google-calendar-tracker/internal/dates"
)

// Direction classifies a category's week-over-week movement.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// Movement below this many hours in either direction counts as stable.
const stableThreshold = 0.5

// WeekData is one analyzed week within a trend series.
type WeekData struct {
	Window        dates.Range
	Totals        Totals
	TopActivities map[string][]Activity
	TotalHours    float64
}

// TrendRecord tracks one category across the analyzed weeks. Hours is
// chronological oldest to newest and always has one entry per week, with
// zeros for weeks the category had no events.
type TrendRecord struct {
	Hours         []float64
	RecentAvg     float64
	OlderAvg      float64
	Change        float64
	PercentChange float64
	Direction     Direction
}

// TrendSummary aggregates the per-category trend records.
type TrendSummary struct {
	TotalWeeks   int
	Increasing   []string
	Decreasing   []string
	MostImproved string
	MostDeclined string
}

// TrendReport is the weekly trend analysis result.
type TrendReport struct {
	Weeks   []WeekData
	Trends  map[string]TrendRecord
	Summary TrendSummary
}

// WeeklyTrends analyzes the last numWeeks Saturday-ending weeks. Weeks are
// fetched and aggregated concurrently; the series is ordered oldest first
// with the week ending on the most recent Saturday last. Every category in
// the mapping appears in Trends regardless of activity.
func (a *Analyzer) WeeklyTrends(ctx context.Context, numWeeks int) (*TrendReport, error) {
	if numWeeks < 1 {
		return nil, fmt.Errorf("numWeeks must be >= 1, got %d", numWeeks)
	}

	anchor := dates.SaturdayAnchor(a.now())
	windows := dates.WeekWindows(anchor, numWeeks)

	// Each week is an independent fetch+aggregate; fan out and collect by
	// index to keep chronological order.
	weeks := make([]WeekData, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		g.Go(func() error {
			report, err := a.Range(gctx, w)
			if err != nil {
				return fmt.Errorf("analyzing week %s: %w", w.Start.Format("2006-01-02"), err)
			}
			weeks[i] = WeekData{
				Window:        report.Window,
				Totals:        report.Totals,
				TopActivities: report.TopActivities,
				TotalHours:    report.TotalHours,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories := a.mapping.Categories()
	trends := make(map[string]TrendRecord, len(categories))
	for _, cat := range categories {
		hours := make([]float64, len(weeks))
		for i, wk := range weeks {
			hours[i] = wk.Totals.Categories[cat]
		}
		trends[cat] = computeTrend(hours)
	}

	return &TrendReport{
		Weeks:   weeks,
		Trends:  trends,
		Summary: summarize(categories, trends, numWeeks),
	}, nil
}

// computeTrend derives the averages and direction for one category's weekly
// hours series. The recent average covers the last two weeks; the older
// average covers everything before them, or the single earliest week when
// only two exist.
func computeTrend(hours []float64) TrendRecord {
	r := TrendRecord{Hours: hours, Direction: Stable}

	if len(hours) < 2 {
		if len(hours) == 1 {
			r.RecentAvg = hours[0]
			r.OlderAvg = hours[0]
		}
		return r
	}

	r.RecentAvg = (hours[len(hours)-1] + hours[len(hours)-2]) / 2
	if len(hours) > 2 {
		var sum float64
		for _, h := range hours[:len(hours)-2] {
			sum += h
		}
		r.OlderAvg = sum / float64(len(hours)-2)
	} else {
		r.OlderAvg = hours[0]
	}

	r.Change = r.RecentAvg - r.OlderAvg
	if r.OlderAvg > 0 {
		r.PercentChange = r.Change / r.OlderAvg * 100
	}

	switch {
	case r.Change > stableThreshold:
		r.Direction = Increasing
	case r.Change < -stableThreshold:
		r.Direction = Decreasing
	}

	return r
}

// summarize walks categories in mapping order so most-improved and
// most-declined tie-break deterministically.
func summarize(categories []string, trends map[string]TrendRecord, numWeeks int) TrendSummary {
	s := TrendSummary{TotalWeeks: numWeeks}

	first := true
	var bestUp, bestDown float64
	for _, cat := range categories {
		rec, ok := trends[cat]
		if !ok {
			continue
		}
		switch rec.Direction {
		case Increasing:
			s.Increasing = append(s.Increasing, cat)
		case Decreasing:
			s.Decreasing = append(s.Decreasing, cat)
		}
		if first || rec.Change > bestUp {
			bestUp = rec.Change
			s.MostImproved = cat
		}
		if first || rec.Change < bestDown {
			bestDown = rec.Change
			s.MostDeclined = cat
		}
		first = false
	}

	return s
}
