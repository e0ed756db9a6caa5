package api

import (
	"context"
	"fmt"
	"net/http"
)

// PlacePayload carries the writable fields of a place.
type PlacePayload struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Capacity    int    `json:"capacity"`
}

// Places retrieves all places.
func (c *Client) Places(ctx context.Context) ([]Place, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Place
	if err := c.doJSON(ctx, http.MethodGet, "/places", nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return payload, nil
}

// Place retrieves a single place.
func (c *Client) Place(ctx context.Context, placeID string) (*Place, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if placeID == "" {
		return nil, fmt.Errorf("place id required")
	}
	var payload Place
	if err := c.doJSON(ctx, http.MethodGet, "/place/"+placeID, nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreatePlace creates a place.
func (c *Client) CreatePlace(ctx context.Context, place PlacePayload) (*Place, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Place
	if err := c.doJSON(ctx, http.MethodPost, "/place", place, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdatePlace replaces a place's writable fields.
func (c *Client) UpdatePlace(ctx context.Context, placeID string, place PlacePayload) (*Place, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if placeID == "" {
		return nil, fmt.Errorf("place id required")
	}
	var payload Place
	if err := c.doJSON(ctx, http.MethodPut, "/place/"+placeID, place, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeletePlace removes a place.
func (c *Client) DeletePlace(ctx context.Context, placeID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if placeID == "" {
		return fmt.Errorf("place id required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/place/"+placeID, nil, nil, requestOpts{})
}
