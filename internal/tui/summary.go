package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
	"github.com/amirR01/google-calendar-tracker/internal/dates"
)

type summaryModel struct {
	analyzer *analyze.Analyzer
	width    int
	height   int

	mode    rangeMode
	offset  int // periods back from the current one (0 = current)
	custom  *dates.Range
	report  *analyze.RangeReport
	loading bool

	formActive  bool
	form        *huh.Form
	customStart *string
	customEnd   *string
}

func newSummaryModel(a *analyze.Analyzer) summaryModel {
	cs, ce := "", ""
	return summaryModel{
		analyzer:    a,
		customStart: &cs,
		customEnd:   &ce,
	}
}

func (s *summaryModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// monthBack steps offset months back from today's month. Anchoring on day 1
// keeps AddDate-style overflow (May 31 − 1 month → "April 31" → May 1) from
// landing back in the current month.
func monthBack(today time.Time, offset int) time.Time {
	y, m, _ := today.Date()
	return time.Date(y, m-time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
}

func (s summaryModel) window() dates.Range {
	today := time.Now()
	switch s.mode {
	case modeMonth:
		return dates.MonthRange(monthBack(today, s.offset))
	case modeCustom:
		if s.custom != nil {
			return *s.custom
		}
		return dates.WeekRange(today)
	default:
		return dates.WeekRange(today.AddDate(0, 0, -7*s.offset))
	}
}

func (s summaryModel) refresh() tea.Cmd {
	w := s.window()
	analyzer := s.analyzer
	return func() tea.Msg {
		report, err := analyzer.Range(context.Background(), w)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Analysis error: %v", err), isError: true}
		}
		return summaryDataMsg{report: report}
	}
}

func (s summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case summaryDataMsg:
		s.report = msg.report
		s.loading = false
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Week):
			s.mode = modeWeek
			s.offset = 0
			s.loading = true
			return s, s.refresh()
		case key.Matches(msg, keys.Month):
			s.mode = modeMonth
			s.offset = 0
			s.loading = true
			return s, s.refresh()
		case key.Matches(msg, keys.Custom):
			return s.showForm()
		case key.Matches(msg, keys.Left):
			if s.mode != modeCustom {
				s.offset++
				s.loading = true
				return s, s.refresh()
			}
		case key.Matches(msg, keys.Right):
			if s.mode != modeCustom && s.offset > 0 {
				s.offset--
				s.loading = true
				return s, s.refresh()
			}
		case key.Matches(msg, keys.Refresh):
			s.loading = true
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s summaryModel) showForm() (summaryModel, tea.Cmd) {
	*s.customStart = ""
	*s.customEnd = ""

	validDate := func(v string) error {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return fmt.Errorf("use YYYY-MM-DD")
		}
		return nil
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(s.customStart).Validate(validDate),
			huh.NewInput().Title("End date (YYYY-MM-DD)").Value(s.customEnd).Validate(validDate),
		).Title("Custom Range"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s summaryModel) updateForm(msg tea.Msg) (summaryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		start, _ := time.Parse("2006-01-02", *s.customStart)
		end, _ := time.Parse("2006-01-02", *s.customEnd)

		w, err := dates.CustomRange(start, end)
		if err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: "Start date cannot be after end date", isError: true}
			}
		}
		s.mode = modeCustom
		s.custom = &w
		s.loading = true
		return s, s.refresh()
	}

	return s, cmd
}

func (s summaryModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Custom Range"), "", s.form.View()),
		)
	}

	// Mode tabs
	var tabs []string
	for i, name := range modeNames {
		if rangeMode(i) == s.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	win := s.window()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		win.Start.Format("Mon Jan 02"), win.End.Format("Mon Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Summary"), "  ", modeTabs, "  ", dateLabel,
	)

	var body string
	switch {
	case s.loading:
		body = mutedStyle.Render("  Fetching events...")
	case s.report == nil:
		body = mutedStyle.Render("  Press r to load")
	default:
		body = s.renderReport()
	}

	nav := mutedStyle.Render("  w/m/c: mode  ←/→: navigate  r: refresh  e: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (s summaryModel) renderReport() string {
	r := s.report
	if len(r.Totals.Categories) == 0 {
		return mutedStyle.Render("  No events in this period")
	}

	names := make([]string, 0, len(r.Totals.Categories))
	for cat := range r.Totals.Categories {
		names = append(names, cat)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if r.Totals.Categories[names[i]] != r.Totals.Categories[names[j]] {
			return r.Totals.Categories[names[i]] > r.Totals.Categories[names[j]]
		}
		return names[i] < names[j]
	})

	mapping := s.analyzer.Mapping()

	var rows []string
	for _, cat := range names {
		hours := r.Totals.Categories[cat]
		pct := 0.0
		if r.TotalHours > 0 {
			pct = hours / r.TotalHours * 100
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(mapping.Color(cat))).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %s %s",
			dot,
			titleStyle.Render(fmt.Sprintf("%-20s", cat)),
			highlightStyle.Render(fmt.Sprintf("%5.1f%%  %s", pct, formatHours(hours))),
		))
		for _, act := range r.TopActivities[cat] {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("      - %s (%s)", act.Title, formatHours(act.Hours))))
		}
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Total: %s", successStyle.Render(formatHours(r.TotalHours))))

	if skipped := r.Totals.Skipped.Skipped(); skipped > 0 {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  Skipped %d invalid events", skipped)))
	}

	return strings.Join(rows, "\n")
}
