package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	WindowFrom string         `json:"window_from"`
	WindowTo   string         `json:"window_to"`
	TotalHours float64        `json:"total_hours"`
	Categories []jsonCategory `json:"categories"`
}

type jsonCategory struct {
	Name       string         `json:"name"`
	Hours      float64        `json:"hours"`
	SharePct   float64        `json:"share_pct"`
	Activities []jsonActivity `json:"activities,omitempty"`
}

type jsonActivity struct {
	Title string  `json:"title"`
	Hours float64 `json:"hours"`
}

// ToJSON writes a range analysis with per-category activity lists.
func ToJSON(r *analyze.RangeReport, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		WindowFrom: r.Window.Start.Format("2006-01-02"),
		WindowTo:   r.Window.End.Format("2006-01-02"),
		TotalHours: r.TotalHours,
	}

	for _, cat := range sortedByHours(r.Totals.Categories) {
		hours := r.Totals.Categories[cat]
		share := 0.0
		if r.TotalHours > 0 {
			share = hours / r.TotalHours * 100
		}
		jc := jsonCategory{Name: cat, Hours: hours, SharePct: share}
		for _, act := range r.Totals.ActivitiesFor(cat) {
			jc.Activities = append(jc.Activities, jsonActivity{Title: act.Title, Hours: act.Hours})
		}
		export.Categories = append(export.Categories, jc)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
