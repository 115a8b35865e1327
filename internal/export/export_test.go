package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
	"github.com/amirR01/google-calendar-tracker/internal/dates"
)

func sampleReport() *analyze.RangeReport {
	return &analyze.RangeReport{
		Window: dates.Range{
			Start: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
		Totals: analyze.Totals{
			Categories: map[string]float64{
				"Meetings":           1.5,
				"Professional Tasks": 3.0,
			},
			Activities: map[string][]analyze.Activity{
				"Meetings":           {{Title: "standup", Hours: 1.5}},
				"Professional Tasks": {{Title: "coding", Hours: 2}, {Title: "review", Hours: 1}},
			},
		},
		TotalHours: 4.5,
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := ToCSV(sampleReport(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// Header plus one row per (category, activity) pair.
	if len(rows) != 4 {
		t.Fatalf("rows = %d: %v", len(rows), rows)
	}
	if rows[0][0] != "Category" {
		t.Errorf("header = %v", rows[0])
	}

	// Categories come out ordered by descending hours.
	if rows[1][0] != "Professional Tasks" || rows[2][0] != "Professional Tasks" {
		t.Errorf("rows 1-2 should be Professional Tasks: %v", rows[1:])
	}
	if rows[3][0] != "Meetings" || rows[3][3] != "standup" || rows[3][4] != "1.50" {
		t.Errorf("standup row wrong: %v", rows[3])
	}
	// Activities keep their ranking order within the category.
	if rows[1][3] != "coding" || rows[2][3] != "review" {
		t.Errorf("activity order wrong: %v, %v", rows[1], rows[2])
	}
}

func TestToCSVOrderStable(t *testing.T) {
	read := func(path string) [][]string {
		t.Helper()
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		return rows
	}

	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	if err := ToCSV(sampleReport(), first); err != nil {
		t.Fatal(err)
	}
	want := read(first)

	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "b.csv")
		if err := ToCSV(sampleReport(), path); err != nil {
			t.Fatal(err)
		}
		got := read(path)
		for j := range want {
			if len(got) != len(want) || got[j][0] != want[j][0] || got[j][3] != want[j][3] {
				t.Fatalf("run %d row %d = %v, want %v", i, j, got[j], want[j])
			}
		}
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := ToJSON(sampleReport(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.TotalHours != 4.5 {
		t.Errorf("TotalHours = %v", got.TotalHours)
	}
	if got.WindowFrom != "2024-03-03" || got.WindowTo != "2024-03-09" {
		t.Errorf("window = %s..%s", got.WindowFrom, got.WindowTo)
	}
	if len(got.Categories) != 2 {
		t.Fatalf("categories = %+v", got.Categories)
	}
	// Descending hours order, every run.
	if got.Categories[0].Name != "Professional Tasks" || got.Categories[1].Name != "Meetings" {
		t.Fatalf("category order = %s, %s", got.Categories[0].Name, got.Categories[1].Name)
	}
	pt := got.Categories[0]
	if pt.SharePct < 66 || pt.SharePct > 67 {
		t.Errorf("share = %v", pt.SharePct)
	}
	if len(pt.Activities) != 2 {
		t.Errorf("activities = %+v", pt.Activities)
	}
}
