package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
)

const (
	minTrendWeeks = 2
	maxTrendWeeks = 12
)

type trendsModel struct {
	analyzer *analyze.Analyzer
	width    int
	height   int

	numWeeks int
	report   *analyze.TrendReport
	loading  bool

	chart barchart.Model
}

func newTrendsModel(a *analyze.Analyzer, numWeeks int) trendsModel {
	return trendsModel{
		analyzer: a,
		numWeeks: clamp(numWeeks, minTrendWeeks, maxTrendWeeks),
		chart:    barchart.New(60, 12),
	}
}

func (t *trendsModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t trendsModel) refresh() tea.Cmd {
	analyzer := t.analyzer
	n := t.numWeeks
	return func() tea.Msg {
		report, err := analyzer.WeeklyTrends(context.Background(), n)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Trend error: %v", err), isError: true}
		}
		return trendsDataMsg{report: report}
	}
}

func (t trendsModel) update(msg tea.Msg) (trendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsDataMsg:
		t.report = msg.report
		t.loading = false
		t.buildChart()
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if t.numWeeks > minTrendWeeks {
				t.numWeeks--
				t.loading = true
				return t, t.refresh()
			}
		case key.Matches(msg, keys.Right):
			if t.numWeeks < maxTrendWeeks {
				t.numWeeks++
				t.loading = true
				return t, t.refresh()
			}
		case key.Matches(msg, keys.Refresh):
			t.loading = true
			return t, t.refresh()
		}
	}
	return t, nil
}

// buildChart stacks each week's hours by category, colored with the
// calendar palette.
func (t *trendsModel) buildChart() {
	chartWidth := t.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if t.height > 30 {
		chartHeight = 16
	}

	t.chart = barchart.New(chartWidth, chartHeight)
	if t.report == nil {
		return
	}

	mapping := t.analyzer.Mapping()
	categories := mapping.Categories()

	var bars []barchart.BarData
	for _, wk := range t.report.Weeks {
		var values []barchart.BarValue
		for _, cat := range categories {
			hours := wk.Totals.Categories[cat]
			if hours <= 0 {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(mapping.Color(cat)))
			values = append(values, barchart.BarValue{
				Name:  cat,
				Value: hours,
				Style: style,
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  wk.Window.End.Format("Jan 02"),
			Values: values,
		})
	}

	t.chart.PushAll(bars)
	t.chart.Draw()
}

func (t trendsModel) view() string {
	w := t.width - 4

	weeksLabel := mutedStyle.Render(fmt.Sprintf("last %d weeks", t.numWeeks))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly Trends"), "  ", weeksLabel,
	)

	var body string
	switch {
	case t.loading:
		body = mutedStyle.Render("  Analyzing weeks...")
	case t.report == nil:
		body = mutedStyle.Render("  Press r to load")
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			t.chart.View(), "", t.renderLegend(), "", t.renderTrendTable(w), "", t.renderSummary(),
		)
	}

	nav := mutedStyle.Render("  ←/→: fewer/more weeks  r: refresh")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (t trendsModel) renderLegend() string {
	if t.report == nil {
		return ""
	}
	mapping := t.analyzer.Mapping()

	// Only categories with any hours in the analyzed span.
	var items []string
	for _, cat := range mapping.Categories() {
		rec, ok := t.report.Trends[cat]
		if !ok {
			continue
		}
		var total float64
		for _, h := range rec.Hours {
			total += h
		}
		if total <= 0 {
			continue
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(mapping.Color(cat))).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, cat))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}

func (t trendsModel) renderTrendTable(w int) string {
	if t.report == nil {
		return ""
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %8s %8s %8s  %s", "Category", "Recent", "Older", "Change", "Direction")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 60))))

	for _, cat := range t.analyzer.Categories() {
		rec, ok := t.report.Trends[cat]
		if !ok {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-20s %8.1f %8.1f %+8.1f  %s",
			cat, rec.RecentAvg, rec.OlderAvg, rec.Change, directionBadge(rec.Direction),
		))
	}

	return strings.Join(rows, "\n")
}

func (t trendsModel) renderSummary() string {
	if t.report == nil {
		return ""
	}
	s := t.report.Summary

	var rows []string
	if s.MostImproved != "" {
		rows = append(rows, fmt.Sprintf("  Most improved: %s", successStyle.Render(s.MostImproved)))
	}
	if s.MostDeclined != "" {
		rows = append(rows, fmt.Sprintf("  Most declined: %s", errorStyle.Render(s.MostDeclined)))
	}
	return strings.Join(rows, "\n")
}

func directionBadge(d analyze.Direction) string {
	switch d {
	case analyze.Increasing:
		return successStyle.Render("↑ increasing")
	case analyze.Decreasing:
		return errorStyle.Render("↓ decreasing")
	default:
		return mutedStyle.Render("→ stable")
	}
}
