package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
	"github.com/amirR01/google-calendar-tracker/internal/dates"
)

func init() {
	color.NoColor = true
}

func window() dates.Range {
	return dates.Range{
		Start: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummary(t *testing.T) {
	r := &analyze.RangeReport{
		Window: window(),
		Totals: analyze.Totals{
			Categories: map[string]float64{"Meetings": 1.5, "Professional Tasks": 3.0},
		},
		TopActivities: map[string][]analyze.Activity{
			"Meetings":           {{Title: "standup", Hours: 1.5}},
			"Professional Tasks": {{Title: "coding", Hours: 3.0}},
		},
		TotalHours: 4.5,
	}

	var buf bytes.Buffer
	New(&buf).Summary(r)
	out := buf.String()

	// Categories sorted by hours, largest first.
	if strings.Index(out, "Professional Tasks") > strings.Index(out, "Meetings") {
		t.Errorf("categories not sorted by hours:\n%s", out)
	}
	for _, want := range []string{"66.7% (3.00 hours)", "33.3% (1.50 hours)", "- standup (1.50h)", "Total: 4.50 hours"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Skipped") {
		t.Errorf("no skip line expected:\n%s", out)
	}
}

func TestSummaryEmptyAndSkips(t *testing.T) {
	r := &analyze.RangeReport{
		Window: window(),
		Totals: analyze.Totals{
			Categories: map[string]float64{},
			Skipped:    analyze.SkipStats{MissingStart: 2, UnknownTag: 1},
		},
	}

	var buf bytes.Buffer
	New(&buf).Summary(r)
	out := buf.String()

	if !strings.Contains(out, "No events in this period.") {
		t.Errorf("missing empty notice:\n%s", out)
	}
	if !strings.Contains(out, "Skipped 3 invalid events") {
		t.Errorf("missing skip diagnostics:\n%s", out)
	}
}

func TestTrends(t *testing.T) {
	r := &analyze.TrendReport{
		Weeks: []analyze.WeekData{
			{Window: window()},
			{Window: dates.Range{
				Start: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC),
			}},
		},
		Trends: map[string]analyze.TrendRecord{
			"Meetings": {
				Hours: []float64{2, 5}, RecentAvg: 3.5, OlderAvg: 2,
				Change: 1.5, PercentChange: 75, Direction: analyze.Increasing,
			},
		},
		Summary: analyze.TrendSummary{
			TotalWeeks:   2,
			Increasing:   []string{"Meetings"},
			MostImproved: "Meetings",
		},
	}

	var buf bytes.Buffer
	New(&buf).Trends(r)
	out := buf.String()

	for _, want := range []string{"Weekly Trends (2 weeks)", "Meetings", "+1.5", "increasing", "Most improved: Meetings"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestBreakdown(t *testing.T) {
	r := &analyze.BreakdownReport{
		Window:        window(),
		Category:      "Meetings",
		CategoryHours: 4,
		TotalHours:    8,
		Percentage:    50,
		TopActivities: []analyze.Activity{
			{Title: "Planning", Hours: 3},
			{Title: "Standup", Hours: 1},
		},
		ActivityShares: map[string]float64{"Planning": 75, "Standup": 25},
		DistinctTitles: 2,
	}

	var buf bytes.Buffer
	New(&buf).Breakdown(r)
	out := buf.String()

	for _, want := range []string{"Meetings Breakdown", "Share: 50.0%", "Planning", "75.0%", "Distinct activities: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestBreakdownEmpty(t *testing.T) {
	r := &analyze.BreakdownReport{Window: window(), Category: "Romance"}
	var buf bytes.Buffer
	New(&buf).Breakdown(r)
	if !strings.Contains(buf.String(), "No activities in this period.") {
		t.Errorf("missing empty notice:\n%s", buf.String())
	}
}
