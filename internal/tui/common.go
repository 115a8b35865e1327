package tui

import (
	"fmt"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
)

// viewState represents the currently active view.
type viewState int

const (
	viewSummary viewState = iota
	viewTrends
	viewBreakdown
	viewSettings
)

var viewNames = []string{"Summary", "Trends", "Breakdown", "Settings"}

// rangeMode selects how the summary window is derived.
type rangeMode int

const (
	modeWeek rangeMode = iota
	modeMonth
	modeCustom
)

var modeNames = []string{"Week", "Month", "Custom"}

// --- Messages ---

type summaryDataMsg struct {
	report *analyze.RangeReport
}

type trendsDataMsg struct {
	report *analyze.TrendReport
}

type breakdownDataMsg struct {
	report *analyze.BreakdownReport
}

type settingsDataMsg struct {
	trendWeeks  int
	defaultMode string
	cacheCount  int
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type cachePurgedMsg struct{}

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
