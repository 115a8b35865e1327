// Package report renders analysis results as plain-text reports.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
)

// Writer renders reports to one output stream.
type Writer struct {
	out io.Writer
}

func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	t := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{ShowHeader: tw.Off}},
		}),
	)
	t.Header(headers)
	return t
}

// Summary prints the range analysis: categories sorted by hours, each with
// its share of total time and top three activities.
func (w *Writer) Summary(r *analyze.RangeReport) {
	color.New(color.FgWhite, color.Bold).Fprintf(w.out, "\nCalendar Summary\n")
	fmt.Fprintf(w.out, "From %s to %s\n\n",
		r.Window.Start.Format("Monday, 2006-01-02"),
		r.Window.End.Format("Monday, 2006-01-02"),
	)

	if len(r.Totals.Categories) == 0 {
		color.New(color.Faint).Fprintln(w.out, "No events in this period.")
		w.printSkips(r.Totals.Skipped)
		return
	}

	for _, cat := range sortedByHours(r.Totals.Categories) {
		hours := r.Totals.Categories[cat]
		pct := 0.0
		if r.TotalHours > 0 {
			pct = hours / r.TotalHours * 100
		}
		color.New(color.FgCyan, color.Bold).Fprintf(w.out, "%s: ", cat)
		fmt.Fprintf(w.out, "%.1f%% (%.2f hours)\n", pct, hours)
		for _, act := range r.TopActivities[cat] {
			fmt.Fprintf(w.out, "    - %s (%.2fh)\n", act.Title, act.Hours)
		}
		fmt.Fprintln(w.out)
	}

	fmt.Fprintf(w.out, "Total: %.2f hours\n", r.TotalHours)
	w.printSkips(r.Totals.Skipped)
}

// Trends prints the weekly trend table plus the summary lines.
func (w *Writer) Trends(r *analyze.TrendReport) {
	color.New(color.FgWhite, color.Bold).Fprintf(w.out, "\nWeekly Trends (%d weeks)\n\n", r.Summary.TotalWeeks)

	headers := []string{"Category"}
	for _, wk := range r.Weeks {
		headers = append(headers, wk.Window.End.Format("Jan 02"))
	}
	headers = append(headers, "Recent", "Older", "Change", "Direction")

	t := newTable(w.out, headers)
	for _, cat := range sortedCategories(r.Trends) {
		rec := r.Trends[cat]
		row := []string{cat}
		for _, h := range rec.Hours {
			row = append(row, fmt.Sprintf("%.1f", h))
		}
		row = append(row,
			fmt.Sprintf("%.1f", rec.RecentAvg),
			fmt.Sprintf("%.1f", rec.OlderAvg),
			fmt.Sprintf("%+.1f", rec.Change),
			directionLabel(rec.Direction),
		)
		t.Append(row)
	}
	t.Render()

	fmt.Fprintln(w.out)
	if len(r.Summary.Increasing) > 0 {
		color.New(color.FgGreen).Fprintf(w.out, "Increasing: %s\n", strings.Join(r.Summary.Increasing, ", "))
	}
	if len(r.Summary.Decreasing) > 0 {
		color.New(color.FgRed).Fprintf(w.out, "Decreasing: %s\n", strings.Join(r.Summary.Decreasing, ", "))
	}
	if r.Summary.MostImproved != "" {
		fmt.Fprintf(w.out, "Most improved: %s\n", r.Summary.MostImproved)
	}
	if r.Summary.MostDeclined != "" {
		fmt.Fprintf(w.out, "Most declined: %s\n", r.Summary.MostDeclined)
	}
}

// Breakdown prints one category's share of the window and its activity
// distribution.
func (w *Writer) Breakdown(r *analyze.BreakdownReport) {
	color.New(color.FgWhite, color.Bold).Fprintf(w.out, "\n%s Breakdown\n", r.Category)
	fmt.Fprintf(w.out, "From %s to %s\n\n",
		r.Window.Start.Format("2006-01-02"),
		r.Window.End.Format("2006-01-02"),
	)

	fmt.Fprintf(w.out, "Category total: %.2f hours\n", r.CategoryHours)
	fmt.Fprintf(w.out, "Calendar total: %.2f hours\n", r.TotalHours)
	fmt.Fprintf(w.out, "Share: %.1f%%\n", r.Percentage)
	fmt.Fprintf(w.out, "Distinct activities: %d\n\n", r.DistinctTitles)

	if len(r.TopActivities) == 0 {
		color.New(color.Faint).Fprintln(w.out, "No activities in this period.")
		return
	}

	t := newTable(w.out, []string{"Activity", "Hours", "Share"})
	for _, act := range r.TopActivities {
		share := ""
		if s, ok := r.ActivityShares[act.Title]; ok {
			share = fmt.Sprintf("%.1f%%", s)
		}
		t.Append([]string{act.Title, fmt.Sprintf("%.2f", act.Hours), share})
	}
	t.Render()
}

func (w *Writer) printSkips(s analyze.SkipStats) {
	if s.Skipped() == 0 {
		return
	}
	color.New(color.FgYellow).Fprintf(w.out,
		"Skipped %d invalid events (missing start: %d, missing end: %d, bad timestamp: %d, unknown tag: %d)\n",
		s.Skipped(), s.MissingStart, s.MissingEnd, s.BadTimestamp, s.UnknownTag,
	)
}

func directionLabel(d analyze.Direction) string {
	switch d {
	case analyze.Increasing:
		return color.GreenString("↑ increasing")
	case analyze.Decreasing:
		return color.RedString("↓ decreasing")
	default:
		return "→ stable"
	}
}

// sortedByHours orders category names by descending hours.
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

func sortedCategories(trends map[string]analyze.TrendRecord) []string {
	names := make([]string, 0, len(trends))
	for cat := range trends {
		names = append(names, cat)
	}
	sort.Strings(names)
	return names
}
