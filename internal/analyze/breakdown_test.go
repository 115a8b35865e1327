package analyze

import (
	"context"
	"testing"
	"time"

	"github.com/amirR01/google-calendar-tracker/internal/category"
	"github.com/amirR01/google-calendar-tracker/internal/dates"
	"github.com/amirR01/google-calendar-tracker/internal/source"
)

func testWindow(t *testing.T) dates.Range {
	t.Helper()
	w, err := dates.CustomRange(
		time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestBreakdown(t *testing.T) {
	src := source.Static{
		event("7", "Standup", baseTime, 1),
		event("7", "Planning", baseTime, 3),
		event("2", "coding", baseTime, 4),
	}
	a := New(src, category.Default())

	report, err := a.Breakdown(context.Background(), testWindow(t), "Meetings")
	if err != nil {
		t.Fatal(err)
	}

	if !approx(report.CategoryHours, 4) {
		t.Errorf("CategoryHours = %v", report.CategoryHours)
	}
	if !approx(report.TotalHours, 8) {
		t.Errorf("TotalHours = %v", report.TotalHours)
	}
	if !approx(report.Percentage, 50) {
		t.Errorf("Percentage = %v", report.Percentage)
	}
	if report.DistinctTitles != 2 {
		t.Errorf("DistinctTitles = %d", report.DistinctTitles)
	}

	// Titles keep their case in this view.
	if !approx(report.ActivityShares["Standup"], 25) {
		t.Errorf("Standup share = %v", report.ActivityShares["Standup"])
	}
	if !approx(report.ActivityShares["Planning"], 75) {
		t.Errorf("Planning share = %v", report.ActivityShares["Planning"])
	}

	if len(report.TopActivities) != 2 || report.TopActivities[0].Title != "Planning" {
		t.Errorf("TopActivities = %+v", report.TopActivities)
	}
}

func TestBreakdownEmptyWindow(t *testing.T) {
	a := New(source.Static{}, category.Default())
	report, err := a.Breakdown(context.Background(), testWindow(t), "Meetings")
	if err != nil {
		t.Fatal(err)
	}
	if report.Percentage != 0 || report.CategoryHours != 0 || report.TotalHours != 0 {
		t.Fatalf("empty window must yield zeros, got %+v", report)
	}
	if len(report.ActivityShares) != 0 {
		t.Fatalf("shares must be empty: %v", report.ActivityShares)
	}
}

func TestBreakdownZeroCategoryTotalSkipsShares(t *testing.T) {
	// A category netting to zero via a negative duration keeps its
	// activity list but gets no percentage distribution.
	src := source.Static{
		event("7", "forward", baseTime, 2),
		event("7", "backward", baseTime, -2),
		event("2", "coding", baseTime, 1),
	}
	a := New(src, category.Default())

	report, err := a.Breakdown(context.Background(), testWindow(t), "Meetings")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(report.CategoryHours, 0) {
		t.Fatalf("CategoryHours = %v", report.CategoryHours)
	}
	if len(report.Activities) != 2 {
		t.Fatalf("Activities = %+v", report.Activities)
	}
	if len(report.ActivityShares) != 0 {
		t.Fatalf("shares must stay empty at zero total: %v", report.ActivityShares)
	}
}

func TestRangeReport(t *testing.T) {
	src := source.Static{
		event("7", "Standup", baseTime, 1),
		event("7", "standup", baseTime, 0.5),
		event("2", "coding", baseTime, 3),
	}
	a := New(src, category.Default())

	report, err := a.Range(context.Background(), testWindow(t))
	if err != nil {
		t.Fatal(err)
	}

	if !approx(report.TotalHours, 4.5) {
		t.Errorf("TotalHours = %v", report.TotalHours)
	}
	// Summary view folds case, so the two standups merge.
	top := report.TopActivities["Meetings"]
	if len(top) != 1 || top[0].Title != "standup" || !approx(top[0].Hours, 1.5) {
		t.Errorf("Meetings top = %+v", top)
	}
	if len(top) > SummaryTopN {
		t.Errorf("summary top bounded by %d, got %d", SummaryTopN, len(top))
	}
}

func TestAnalyzerCategories(t *testing.T) {
	a := New(source.Static{}, category.Default())
	if got := len(a.Categories()); got != 8 {
		t.Fatalf("Categories() len = %d", got)
	}
}
