package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
)

// sortedByHours orders category names by descending hours with name
// tiebreak, so exports are stable run to run.
func sortedByHours(totals map[string]float64) []string {
	names := make([]string, 0, len(totals))
	for cat := range totals {
		names = append(names, cat)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// ToCSV writes a range analysis as one row per (category, activity) pair.
func ToCSV(r *analyze.RangeReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Category", "Category Hours", "Share %", "Activity", "Activity Hours"}); err != nil {
		return err
	}

	for _, cat := range sortedByHours(r.Totals.Categories) {
		hours := r.Totals.Categories[cat]
		share := 0.0
		if r.TotalHours > 0 {
			share = hours / r.TotalHours * 100
		}
		acts := r.Totals.ActivitiesFor(cat)
		if len(acts) == 0 {
			if err := w.Write([]string{cat, fmt.Sprintf("%.2f", hours), fmt.Sprintf("%.1f", share), "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, act := range acts {
			row := []string{
				cat,
				fmt.Sprintf("%.2f", hours),
				fmt.Sprintf("%.1f", share),
				act.Title,
				fmt.Sprintf("%.2f", act.Hours),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
