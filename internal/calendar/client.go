package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"room-availability-backend/internal/model"
)

// ErrNotConfigured is returned when the calendar base URL or auth token is
// missing. There is no meaningful partial-credential mode; the whole
// request fails.
var ErrNotConfigured = errors.New("calendar source is not configured")

// Source is the read/write contract with the external calendar service
// that owns the actual reservation records.
type Source interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]model.ReservationRecord, error)
	InsertEvent(ctx context.Context, calendarID, title string, start, end time.Time) (string, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Client is the HTTP implementation of Source.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient validates the credentials and builds a client whose requests
// are bounded by timeout.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" || token == "" {
		return nil, ErrNotConfigured
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// ListEvents returns the reservation records for calendarID within
// [from, to). Records with unparsable timestamps are skipped rather than
// failing the whole listing.
func (c *Client) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]model.ReservationRecord, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events?from=%s&to=%s",
		c.baseURL,
		url.PathEscape(calendarID),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp listEventsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("listing events for calendar %s: %w", calendarID, err)
	}

	records := make([]model.ReservationRecord, 0, len(resp.Events))
	for _, ev := range resp.Events {
		start, err := time.Parse(time.RFC3339, ev.Start)
		if err != nil {
			log.Printf("Warning: skipping event %s with bad start %q: %v", ev.ID, ev.Start, err)
			continue
		}
		end, err := time.Parse(time.RFC3339, ev.End)
		if err != nil {
			log.Printf("Warning: skipping event %s with bad end %q: %v", ev.ID, ev.End, err)
			continue
		}
		records = append(records, model.ReservationRecord{
			EventID: ev.ID,
			Title:   ev.Title,
			Start:   start,
			End:     end,
		})
	}
	return records, nil
}

// InsertEvent creates a reservation on the upstream calendar and returns
// the external event identity assigned to it.
func (c *Client) InsertEvent(ctx context.Context, calendarID, title string, start, end time.Time) (string, error) {
	body, err := json.Marshal(insertEventRequest{
		Title: title,
		Start: start.Format(time.RFC3339),
		End:   end.Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp insertEventResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("inserting event into calendar %s: %w", calendarID, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("calendar %s accepted the event but returned no id", calendarID)
	}
	return resp.ID, nil
}

// DeleteEvent removes a reservation by its external event identity.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(calendarID), url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("deleting event %s from calendar %s: %w", eventID, calendarID, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("received non-2xx status code: %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
