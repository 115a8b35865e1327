package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirR01/google-calendar-tracker/internal/source"
)

// CachedWindow is one stored fetch result.
type CachedWindow struct {
	QueryKey   string
	CalendarID string
	TimeMin    string
	TimeMax    string
	EventCount int
	FetchedAt  time.Time
}

func cacheKey(calendarID, timeMin, timeMax string) string {
	return calendarID + "|" + timeMin + "|" + timeMax
}

// PutEvents stores the events fetched for one query window, replacing any
// previous entry for the same window.
func (s *Store) PutEvents(calendarID, timeMin, timeMax string, events []source.Event) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.Exec(
		`INSERT INTO event_cache (query_key, calendar_id, time_min, time_max, payload, event_count, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(query_key) DO UPDATE SET
		   payload = excluded.payload,
		   event_count = excluded.event_count,
		   fetched_at = excluded.fetched_at`,
		cacheKey(calendarID, timeMin, timeMax), calendarID, timeMin, timeMax,
		string(payload), len(events), now,
	)
	if err != nil {
		return fmt.Errorf("put events: %w", err)
	}
	return nil
}

// GetEvents returns the cached events for a query window if an entry exists
// and is younger than maxAge. The second return reports a usable hit.
func (s *Store) GetEvents(calendarID, timeMin, timeMax string, maxAge time.Duration) ([]source.Event, bool, error) {
	var payload, fetchedAt string
	err := s.db.QueryRow(
		`SELECT payload, fetched_at FROM event_cache WHERE query_key = ?`,
		cacheKey(calendarID, timeMin, timeMax),
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get events: %w", err)
	}

	fetched, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(fetched) > maxAge {
		return nil, false, nil
	}

	var events []source.Event
	if err := json.Unmarshal([]byte(payload), &events); err != nil {
		return nil, false, fmt.Errorf("decode cached events: %w", err)
	}
	return events, true, nil
}

// ListWindows returns cache entry metadata, newest first.
func (s *Store) ListWindows() ([]CachedWindow, error) {
	rows, err := s.db.Query(
		`SELECT query_key, calendar_id, time_min, time_max, event_count, fetched_at
		 FROM event_cache ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	defer rows.Close()

	var windows []CachedWindow
	for rows.Next() {
		var w CachedWindow
		var fetchedAt string
		if err := rows.Scan(&w.QueryKey, &w.CalendarID, &w.TimeMin, &w.TimeMax, &w.EventCount, &fetchedAt); err != nil {
			return nil, err
		}
		w.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// Purge removes every cached window.
func (s *Store) Purge() error {
	_, err := s.db.Exec(`DELETE FROM event_cache`)
	return err
}

// CachedSource wraps a Source with the store's cache. Hits younger than
// MaxAge skip the upstream fetch; misses fetch and then populate the cache.
// Cache write failures are logged, not propagated: a broken cache must not
// fail an analysis.
type CachedSource struct {
	Upstream   source.Source
	Store      *Store
	CalendarID string
	MaxAge     time.Duration
	Log        *slog.Logger
}

// NewCachedSource wraps upstream with caching for one calendar.
func NewCachedSource(upstream source.Source, s *Store, calendarID string, maxAge time.Duration) *CachedSource {
	return &CachedSource{
		Upstream:   upstream,
		Store:      s,
		CalendarID: calendarID,
		MaxAge:     maxAge,
		Log:        slog.Default(),
	}
}

func (c *CachedSource) ListEvents(ctx context.Context, timeMin, timeMax string) ([]source.Event, error) {
	events, hit, err := c.Store.GetEvents(c.CalendarID, timeMin, timeMax, c.MaxAge)
	if err != nil {
		c.Log.Warn("cache read failed", "err", err)
	} else if hit {
		return events, nil
	}

	events, err = c.Upstream.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return nil, err
	}

	if err := c.Store.PutEvents(c.CalendarID, timeMin, timeMax, events); err != nil {
		c.Log.Warn("cache write failed", "err", err)
	}
	return events, nil
}
