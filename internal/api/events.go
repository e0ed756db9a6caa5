package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// EventPayload carries the writable fields of an event.
type EventPayload struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	PlaceID     string `json:"place"`
	Description string `json:"description"`
}

// Events retrieves one page of the events list.
func (c *Client) Events(ctx context.Context, page, limit int) (EventsPage, error) {
	if c == nil {
		return EventsPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var payload EventsPage
	if err := c.doQuery(ctx, http.MethodGet, "/events", values, &payload, requestOpts{}); err != nil {
		return EventsPage{}, err
	}
	return payload, nil
}

// Event retrieves the full event record with tickets, merch and media.
func (c *Client) Event(ctx context.Context, eventID string) (*EventDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id required")
	}
	var payload EventDetail
	if err := c.doJSON(ctx, http.MethodGet, "/event/"+eventID, nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateEvent creates an event. The event JSON travels as a form field with
// the optional banner file alongside it.
func (c *Client) CreateEvent(ctx context.Context, event EventPayload, banner *Upload) (*Event, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	form, contentType, err := eventForm(event, banner)
	if err != nil {
		return nil, err
	}
	var payload Event
	if err := c.doForm(ctx, http.MethodPost, "/event", form, contentType, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateEvent replaces an event's writable fields.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, event EventPayload, banner *Upload) (*Event, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id required")
	}
	form, contentType, err := eventForm(event, banner)
	if err != nil {
		return nil, err
	}
	var payload Event
	if err := c.doForm(ctx, http.MethodPut, "/event/"+eventID, form, contentType, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if eventID == "" {
		return fmt.Errorf("event id required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/event/"+eventID, nil, nil, requestOpts{})
}

func eventForm(event EventPayload, banner *Upload) (form *bytes.Buffer, contentType string, err error) {
	encoded, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("encode event: %w", err)
	}
	files := map[string]Upload{}
	if banner != nil {
		files["banner"] = *banner
	}
	return multipartForm(map[string]string{"event": string(encoded)}, files)
}
