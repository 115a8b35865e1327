package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
	"github.com/amirR01/google-calendar-tracker/internal/dates"
)

type breakdownModel struct {
	analyzer *analyze.Analyzer
	width    int
	height   int

	categories []string
	cursor     int
	mode       rangeMode // week or month window
	report     *analyze.BreakdownReport
	loading    bool
}

func newBreakdownModel(a *analyze.Analyzer) breakdownModel {
	return breakdownModel{
		analyzer:   a,
		categories: a.Categories(),
	}
}

func (b *breakdownModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

func (b breakdownModel) window() dates.Range {
	if b.mode == modeMonth {
		return dates.MonthRange(time.Now())
	}
	return dates.WeekRange(time.Now())
}

func (b breakdownModel) refresh() tea.Cmd {
	if len(b.categories) == 0 {
		return nil
	}
	analyzer := b.analyzer
	w := b.window()
	target := b.categories[b.cursor]
	return func() tea.Msg {
		report, err := analyzer.Breakdown(context.Background(), w, target)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Breakdown error: %v", err), isError: true}
		}
		return breakdownDataMsg{report: report}
	}
}

func (b breakdownModel) update(msg tea.Msg) (breakdownModel, tea.Cmd) {
	switch msg := msg.(type) {
	case breakdownDataMsg:
		b.report = msg.report
		b.loading = false
		return b, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if b.cursor > 0 {
				b.cursor--
			}
			return b, nil
		case key.Matches(msg, keys.Down):
			if b.cursor < len(b.categories)-1 {
				b.cursor++
			}
			return b, nil
		case key.Matches(msg, keys.Enter):
			b.loading = true
			return b, b.refresh()
		case key.Matches(msg, keys.Week):
			b.mode = modeWeek
			b.loading = true
			return b, b.refresh()
		case key.Matches(msg, keys.Month):
			b.mode = modeMonth
			b.loading = true
			return b, b.refresh()
		case key.Matches(msg, keys.Refresh):
			b.loading = true
			return b, b.refresh()
		}
	}
	return b, nil
}

func (b breakdownModel) view() string {
	w := b.width - 4

	win := b.window()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		win.Start.Format("Jan 02"), win.End.Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Category Breakdown"), "  ", dateLabel,
	)

	picker := b.renderPicker()

	var detail string
	switch {
	case b.loading:
		detail = mutedStyle.Render("  Analyzing...")
	case b.report == nil:
		detail = mutedStyle.Render("  Select a category and press enter")
	default:
		detail = b.renderReport(w)
	}

	nav := mutedStyle.Render("  ↑/↓: category  enter: analyze  w/m: window")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", picker, "", detail, "", nav),
	)
}

func (b breakdownModel) renderPicker() string {
	mapping := b.analyzer.Mapping()

	var items []string
	for i, cat := range b.categories {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(mapping.Color(cat))).Render("●")
		if i == b.cursor {
			items = append(items, selectedItemStyle.Render("> ")+dot+" "+selectedItemStyle.Render(cat))
		} else {
			items = append(items, "  "+dot+" "+normalItemStyle.Render(cat))
		}
	}
	return strings.Join(items, "\n")
}

func (b breakdownModel) renderReport(w int) string {
	r := b.report

	var rows []string
	rows = append(rows, fmt.Sprintf("  %s: %s of %s tracked (%s)",
		titleStyle.Render(r.Category),
		highlightStyle.Render(fmt.Sprintf("%.1f%%", r.Percentage)),
		formatHours(r.TotalHours),
		formatHours(r.CategoryHours),
	))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d distinct activities", r.DistinctTitles)))
	rows = append(rows, "")

	if len(r.TopActivities) == 0 {
		rows = append(rows, mutedStyle.Render("  No activities in this window"))
		return strings.Join(rows, "\n")
	}

	barWidth := min(w-40, 30)
	if barWidth < 10 {
		barWidth = 10
	}

	for _, act := range r.TopActivities {
		share := r.ActivityShares[act.Title]
		filled := clamp(int(share/100*float64(barWidth)), 0, barWidth)
		bar := highlightStyle.Render(strings.Repeat("█", filled)) +
			mutedStyle.Render(strings.Repeat("░", barWidth-filled))
		rows = append(rows, fmt.Sprintf("  %-24s %s %5.1f%%  %s",
			truncate(act.Title, 24), bar, share, formatHours(act.Hours)))
	}

	return strings.Join(rows, "\n")
}

// truncate shortens s to n runes, never splitting a multibyte character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
