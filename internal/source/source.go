// Package source fetches raw calendar events from an upstream provider.
package source

import "context"

// EventTime carries either a timed instant (DateTime) or an all-day marker
// (Date). Aggregation only accepts timed events; all-day events count as
// missing timestamps.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Event is one raw calendar event as delivered by the provider. ColorID may
// be empty; classification falls back to the default tag in that case.
type Event struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	ColorID string    `json:"colorId,omitempty"`
	Start   EventTime `json:"start"`
	End     EventTime `json:"end"`
}

// Source lists every event overlapping the half-open interval
// [timeMin, timeMax). Implementations handle their own pagination and return
// the fully accumulated slice. Errors propagate to the caller unretried.
type Source interface {
	ListEvents(ctx context.Context, timeMin, timeMax string) ([]Event, error)
}

// Static is an in-memory Source serving a fixed event slice regardless of
// the requested interval. Useful for tests and offline runs.
type Static []Event

func (s Static) ListEvents(_ context.Context, _, _ string) ([]Event, error) {
	return []Event(s), nil
}
