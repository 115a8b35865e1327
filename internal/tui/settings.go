package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirR01/google-calendar-tracker/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	trendWeeks  int
	defaultMode string
	cacheCount  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weeksInput *string
	modeInput  *string
}

func newSettingsModel(s *store.Store) settingsModel {
	wi, mi := "", ""
	return settingsModel{
		store:      s,
		weeksInput: &wi,
		modeInput:  &mi,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		msg := settingsDataMsg{trendWeeks: 4, defaultMode: "week"}
		if v, err := st.GetSetting("trend_weeks"); err == nil {
			if n, err := strconv.Atoi(v); err == nil {
				msg.trendWeeks = n
			}
		}
		if v, err := st.GetSetting("default_mode"); err == nil {
			msg.defaultMode = v
		}
		if windows, err := st.ListWindows(); err == nil {
			msg.cacheCount = len(windows)
		}
		return msg
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.trendWeeks = msg.trendWeeks
		s.defaultMode = msg.defaultMode
		s.cacheCount = msg.cacheCount
		return s, nil

	case cachePurgedMsg:
		s.cacheCount = 0
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		case msg.String() == "p":
			st := s.store
			return s, func() tea.Msg {
				if err := st.Purge(); err != nil {
					return statusMsg{text: fmt.Sprintf("Purge error: %v", err), isError: true}
				}
				return cachePurgedMsg{}
			}
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.weeksInput = strconv.Itoa(s.trendWeeks)
	*s.modeInput = s.defaultMode

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Trend weeks (2-12)").Value(s.weeksInput).
				Validate(func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n < minTrendWeeks || n > maxTrendWeeks {
						return fmt.Errorf("must be a number between %d and %d", minTrendWeeks, maxTrendWeeks)
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Default range mode").
				Options(
					huh.NewOption("Week", "week"),
					huh.NewOption("Month", "month"),
				).Value(s.modeInput),
		).Title("Preferences"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		s.store.SetSetting("trend_weeks", *s.weeksInput)
		s.store.SetSetting("default_mode", *s.modeInput)
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("trend_weeks"),
		highlightStyle.Render(strconv.Itoa(s.trendWeeks))))
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("default_mode"),
		highlightStyle.Render(s.defaultMode)))
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("cached windows"),
		highlightStyle.Render(strconv.Itoa(s.cacheCount))))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  p: purge cache"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
