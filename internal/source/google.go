package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://www.googleapis.com/calendar/v3"
	pageSize       = 250
)

type listResponse struct {
	Items         []Event `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
}

// GoogleClient is a Source backed by the Google Calendar events API. It
// pages through results until no continuation token is returned.
type GoogleClient struct {
	CalendarID string
	Token      string
	BaseURL    string
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewGoogleClient builds a client for one calendar with a bounded HTTP
// timeout.
func NewGoogleClient(calendarID, token string) *GoogleClient {
	return &GoogleClient{
		CalendarID: calendarID,
		Token:      token,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Log:        slog.Default(),
	}
}

// ListEvents fetches all events in [timeMin, timeMax), expanding recurring
// events into single instances and ordering by start time.
func (c *GoogleClient) ListEvents(ctx context.Context, timeMin, timeMax string) ([]Event, error) {
	var all []Event
	pageToken := ""
	pages := 0

	for {
		page, next, err := c.listPage(ctx, timeMin, timeMax, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		pages++

		if next == "" {
			break
		}
		pageToken = next
	}

	c.Log.Debug("calendar fetch done",
		"calendar", c.CalendarID,
		"timeMin", timeMin,
		"timeMax", timeMax,
		"events", len(all),
		"pages", pages,
	)
	return all, nil
}

func (c *GoogleClient) listPage(ctx context.Context, timeMin, timeMax, pageToken string) ([]Event, string, error) {
	q := url.Values{}
	q.Set("timeMin", timeMin)
	q.Set("timeMax", timeMax)
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", fmt.Sprintf("%d", pageSize))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	apiURL := fmt.Sprintf("%s/calendars/%s/events?%s", c.BaseURL, url.PathEscape(c.CalendarID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("executing request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("calendar API returned %d: %s", resp.StatusCode, string(body))
	}

	var result listResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, "", fmt.Errorf("decoding response: %w", err)
	}
	return result.Items, result.NextPageToken, nil
}
