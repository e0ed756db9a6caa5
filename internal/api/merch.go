package api

import (
	"context"
	"fmt"
	"net/http"
)

// MerchPayload carries the writable fields of a merchandise item.
type MerchPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// AddMerch creates a merchandise item under an event.
func (c *Client) AddMerch(ctx context.Context, eventID string, merch MerchPayload) (*Merch, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id required")
	}
	var payload Merch
	path := "/event/" + eventID + "/merch"
	if err := c.doJSON(ctx, http.MethodPost, path, merch, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateMerch replaces a merchandise item's writable fields.
func (c *Client) UpdateMerch(ctx context.Context, eventID, merchID string, merch MerchPayload) (*Merch, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if eventID == "" || merchID == "" {
		return nil, fmt.Errorf("event and merch ids required")
	}
	var payload Merch
	path := "/event/" + eventID + "/merch/" + merchID
	if err := c.doJSON(ctx, http.MethodPut, path, merch, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteMerch removes a merchandise item.
func (c *Client) DeleteMerch(ctx context.Context, eventID, merchID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if eventID == "" || merchID == "" {
		return fmt.Errorf("event and merch ids required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/event/"+eventID+"/merch/"+merchID, nil, nil, requestOpts{})
}

// BuyMerch purchases quantity units. The quantity must be at least one and no
// more than the displayed stock; stock is re-checked server-side.
func (c *Client) BuyMerch(ctx context.Context, eventID, merchID string, quantity, stock int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if eventID == "" || merchID == "" {
		return fmt.Errorf("event and merch ids required")
	}
	if quantity < 1 || quantity > stock {
		return fmt.Errorf("merch quantity %d outside [1,%d]", quantity, stock)
	}
	payload := map[string]int{"quantity": quantity}
	path := "/event/" + eventID + "/merch/" + merchID + "/buy"
	return c.doJSON(ctx, http.MethodPost, path, payload, nil, requestOpts{})
}
