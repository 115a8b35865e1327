// Package dates computes calendar-aligned analysis windows.
package dates

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a custom range has start after end.
var ErrInvalidRange = errors.New("start date cannot be after end date")

// Range is an inclusive pair of calendar dates. Both values are midnight UTC;
// only the calendar components matter.
type Range struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekRange returns the Sunday-to-Saturday week containing ref.
func WeekRange(ref time.Time) Range {
	d := Day(ref)
	start := d.AddDate(0, 0, -int(d.Weekday())) // Sunday == 0
	return Range{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthRange returns the first-to-last day of ref's month. The end is found
// by stepping from day 28 past the month boundary and backing up one day,
// which lands correctly for every month length including leap Februaries.
func MonthRange(ref time.Time) Range {
	d := Day(ref)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := time.Date(d.Year(), d.Month(), 28, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 4)
	end := time.Date(nextMonth.Year(), nextMonth.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return Range{Start: start, End: end}
}

// CustomRange validates an arbitrary inclusive date pair.
func CustomRange(start, end time.Time) (Range, error) {
	s, e := Day(start), Day(end)
	if s.After(e) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: s, End: e}, nil
}

// QueryInterval converts the inclusive range into the half-open
// [start, end+1d) timestamp pair the event source expects. The values are
// naive midnights with a "Z" suffix, matching the query format of the
// upstream system rather than performing a real UTC conversion.
func (r Range) QueryInterval() (timeMin, timeMax string) {
	const layout = "2006-01-02T15:04:05"
	timeMin = r.Start.Format(layout) + "Z"
	timeMax = r.End.AddDate(0, 0, 1).Format(layout) + "Z"
	return timeMin, timeMax
}

// Days returns the number of calendar days in the range, inclusive.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// SaturdayAnchor returns the most recent Saturday on or before ref.
func SaturdayAnchor(ref time.Time) time.Time {
	d := Day(ref)
	since := (int(d.Weekday()) - int(time.Saturday) + 7) % 7
	return d.AddDate(0, 0, -since)
}

// WeekWindows generates n consecutive 7-day windows ending on anchor,
// ordered oldest first. The window ending on anchor is last.
func WeekWindows(anchor time.Time, n int) []Range {
	a := Day(anchor)
	windows := make([]Range, 0, n)
	for offset := n - 1; offset >= 0; offset-- {
		end := a.AddDate(0, 0, -offset*7)
		windows = append(windows, Range{Start: end.AddDate(0, 0, -6), End: end})
	}
	return windows
}
