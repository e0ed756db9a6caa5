package api

import (
	"context"
	"fmt"
	"net/http"
)

// Ticket purchases are bounded client-side; the API enforces the same limit.
const (
	MinTicketPurchase = 1
	MaxTicketPurchase = 5
)

// TicketPayload carries the writable fields of a ticket class.
type TicketPayload struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// AddTicket creates a ticket class under an event.
func (c *Client) AddTicket(ctx context.Context, eventID string, ticket TicketPayload) (*Ticket, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id required")
	}
	var payload Ticket
	path := "/event/" + eventID + "/ticket"
	if err := c.doJSON(ctx, http.MethodPost, path, ticket, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateTicket replaces a ticket class's writable fields.
func (c *Client) UpdateTicket(ctx context.Context, eventID, ticketID string, ticket TicketPayload) (*Ticket, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if eventID == "" || ticketID == "" {
		return nil, fmt.Errorf("event and ticket ids required")
	}
	var payload Ticket
	path := "/event/" + eventID + "/ticket/" + ticketID
	if err := c.doJSON(ctx, http.MethodPut, path, ticket, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteTicket removes a ticket class.
func (c *Client) DeleteTicket(ctx context.Context, eventID, ticketID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if eventID == "" || ticketID == "" {
		return fmt.Errorf("event and ticket ids required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/event/"+eventID+"/ticket/"+ticketID, nil, nil, requestOpts{})
}

// BuyTicket purchases quantity tickets. Quantity must already be within
// [MinTicketPurchase, MaxTicketPurchase]; the check here is the last line of
// defense against programmatic misuse, not the UI validation.
func (c *Client) BuyTicket(ctx context.Context, eventID, ticketID string, quantity int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if eventID == "" || ticketID == "" {
		return fmt.Errorf("event and ticket ids required")
	}
	if quantity < MinTicketPurchase || quantity > MaxTicketPurchase {
		return fmt.Errorf("ticket quantity %d outside [%d,%d]", quantity, MinTicketPurchase, MaxTicketPurchase)
	}
	payload := map[string]int{"quantity": quantity}
	path := "/event/" + eventID + "/ticket/" + ticketID + "/buy"
	return c.doJSON(ctx, http.MethodPost, path, payload, nil, requestOpts{})
}
