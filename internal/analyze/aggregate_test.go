package analyze

import (
	"math"
	"testing"
	"time"

	"github.com/amirR01/google-calendar-tracker/internal/category"
	"github.com/amirR01/google-calendar-tracker/internal/source"
)

func event(tag, title string, start time.Time, hours float64) source.Event {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return source.Event{
		Summary: title,
		ColorID: tag,
		Start:   source.EventTime{DateTime: start.Format(time.RFC3339)},
		End:     source.EventTime{DateTime: end.Format(time.RFC3339)},
	}
}

var baseTime = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateBasic(t *testing.T) {
	events := []source.Event{
		event("7", "standup", baseTime, 1),
		event("7", "standup", baseTime.Add(24*time.Hour), 0.5),
		event("2", "coding", baseTime.Add(2*time.Hour), 3),
	}

	totals := Aggregate(events, category.Default(), Options{FoldTitles: true})

	if got := totals.Categories["Meetings"]; !approx(got, 1.5) {
		t.Errorf("Meetings = %v, want 1.5", got)
	}
	if got := totals.Categories["Professional Tasks"]; !approx(got, 3.0) {
		t.Errorf("Professional Tasks = %v, want 3.0", got)
	}

	top := TopN(totals.ActivitiesFor("Meetings"), 1)
	if len(top) != 1 || top[0].Title != "standup" || !approx(top[0].Hours, 1.5) {
		t.Errorf("top_1 for Meetings = %+v", top)
	}
}

func TestAggregatePartitionInvariant(t *testing.T) {
	// Sum over category totals must equal the sum of individual valid
	// event durations: aggregation partitions, never double counts.
	events := []source.Event{
		event("2", "a", baseTime, 1.25),
		event("7", "b", baseTime, 2),
		event("3", "c", baseTime, 0.75),
		event("11", "d", baseTime, 4.5),
		event("2", "a", baseTime, 0.5),
	}
	want := 1.25 + 2 + 0.75 + 4.5 + 0.5

	totals := Aggregate(events, category.Default(), Options{})
	if got := totals.TotalHours(); !approx(got, want) {
		t.Fatalf("TotalHours() = %v, want %v", got, want)
	}

	// Activities partition each category the same way.
	for cat, hours := range totals.Categories {
		var actSum float64
		for _, a := range totals.ActivitiesFor(cat) {
			actSum += a.Hours
		}
		if !approx(actSum, hours) {
			t.Errorf("category %s: activities sum %v != total %v", cat, actSum, hours)
		}
	}
}

func TestAggregateSkipsInvalidEvents(t *testing.T) {
	valid := event("2", "work", baseTime, 2)

	events := []source.Event{
		valid,
		{Summary: "no start", ColorID: "2", End: source.EventTime{DateTime: baseTime.Format(time.RFC3339)}},
		{Summary: "no end", ColorID: "2", Start: source.EventTime{DateTime: baseTime.Format(time.RFC3339)}},
		{Summary: "all-day", ColorID: "2", Start: source.EventTime{Date: "2024-03-04"}, End: source.EventTime{Date: "2024-03-05"}},
		event("99", "unknown tag", baseTime, 1),
		{
			Summary: "garbage times", ColorID: "2",
			Start: source.EventTime{DateTime: "not-a-time"},
			End:   source.EventTime{DateTime: "also-not"},
		},
	}

	totals := Aggregate(events, category.Default(), Options{})
	if got := totals.TotalHours(); !approx(got, 2) {
		t.Fatalf("only the valid event should count, got %v hours", got)
	}
	if totals.Skipped.MissingStart != 2 { // explicit missing + all-day
		t.Errorf("MissingStart = %d", totals.Skipped.MissingStart)
	}
	if totals.Skipped.MissingEnd != 1 {
		t.Errorf("MissingEnd = %d", totals.Skipped.MissingEnd)
	}
	if totals.Skipped.UnknownTag != 1 {
		t.Errorf("UnknownTag = %d", totals.Skipped.UnknownTag)
	}
	if totals.Skipped.BadTimestamp != 1 {
		t.Errorf("BadTimestamp = %d", totals.Skipped.BadTimestamp)
	}
	if totals.Skipped.Skipped() != 5 {
		t.Errorf("Skipped() = %d, want 5", totals.Skipped.Skipped())
	}
}

func TestAggregateMissingTagDefaults(t *testing.T) {
	events := []source.Event{event("", "sleep", baseTime, 8)}
	totals := Aggregate(events, category.Default(), Options{})
	if got := totals.Categories["Self-Maintenance"]; !approx(got, 8) {
		t.Fatalf("untagged event should land in Self-Maintenance, got %v", got)
	}
}

func TestAggregateNegativeDurationPassesThrough(t *testing.T) {
	// end < start is nonsensical upstream data; it flows through
	// arithmetically rather than being clamped.
	e := event("2", "backwards", baseTime, -2)
	totals := Aggregate([]source.Event{e, event("2", "forward", baseTime, 3)}, category.Default(), Options{})

	if got := totals.Categories["Professional Tasks"]; !approx(got, 1) {
		t.Fatalf("net hours = %v, want 1 (3 + -2)", got)
	}
	if totals.Skipped.NegativeDuration != 1 {
		t.Errorf("NegativeDuration = %d", totals.Skipped.NegativeDuration)
	}
	if totals.Skipped.Skipped() != 0 {
		t.Errorf("negative durations must not count as skipped, got %d", totals.Skipped.Skipped())
	}
}

func TestAggregateTitleNormalization(t *testing.T) {
	events := []source.Event{
		event("7", "  Standup  ", baseTime, 1),
		event("7", "standup", baseTime, 1),
		event("7", "", baseTime, 1),
	}

	folded := Aggregate(events, category.Default(), Options{FoldTitles: true})
	acts := folded.ActivitiesFor("Meetings")
	if len(acts) != 2 {
		t.Fatalf("folded: expected [standup untitled], got %+v", acts)
	}
	if acts[0].Title != "standup" || !approx(acts[0].Hours, 2) {
		t.Errorf("folded standup = %+v", acts[0])
	}
	if acts[1].Title != "untitled" {
		t.Errorf("folded empty title = %+v", acts[1])
	}

	// Without folding, case is preserved and the two standups stay apart.
	unfolded := Aggregate(events, category.Default(), Options{FoldTitles: false})
	acts = unfolded.ActivitiesFor("Meetings")
	if len(acts) != 3 {
		t.Fatalf("unfolded: expected 3 distinct titles, got %+v", acts)
	}
	if acts[0].Title != "Standup" {
		t.Errorf("unfolded should trim but keep case, got %q", acts[0].Title)
	}
	if acts[2].Title != "Untitled" {
		t.Errorf("unfolded empty title = %q", acts[2].Title)
	}
}

func TestTopN(t *testing.T) {
	acts := []Activity{
		{"a", 1},
		{"b", 3},
		{"c", 3}, // tie with b; insertion order must hold
		{"d", 2},
		{"e", 0.5},
	}

	top := TopN(acts, 3)
	if len(top) != 3 {
		t.Fatalf("len = %d", len(top))
	}
	want := []string{"b", "c", "d"}
	for i, w := range want {
		if top[i].Title != w {
			t.Fatalf("top = %+v, want order %v", top, want)
		}
	}

	// Non-increasing hours.
	for i := 1; i < len(top); i++ {
		if top[i].Hours > top[i-1].Hours {
			t.Fatalf("not sorted: %+v", top)
		}
	}

	// Re-running on identical input yields identical order.
	again := TopN(acts, 3)
	for i := range top {
		if top[i] != again[i] {
			t.Fatalf("unstable: %+v vs %+v", top, again)
		}
	}

	// n larger than the list and n zero.
	if got := TopN(acts, 100); len(got) != 5 {
		t.Errorf("TopN(100) len = %d", len(got))
	}
	if got := TopN(acts, 0); len(got) != 0 {
		t.Errorf("TopN(0) len = %d", len(got))
	}

	// Input untouched.
	if acts[0].Title != "a" {
		t.Errorf("input mutated: %+v", acts)
	}
}
