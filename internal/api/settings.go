package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Settings retrieves the current user's settings.
func (c *Client) Settings(ctx context.Context) ([]Setting, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Setting
	if err := c.doJSON(ctx, http.MethodGet, "/settings", nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpdateSetting changes a single setting by type.
func (c *Client) UpdateSetting(ctx context.Context, settingType, value string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if settingType == "" {
		return fmt.Errorf("setting type required")
	}
	payload := map[string]string{"value": value}
	return c.doJSON(ctx, http.MethodPut, "/settings/"+settingType, payload, nil, requestOpts{})
}

// clientID tags activity entries from this process so overlapping sessions
// can be told apart server-side.
var clientID = uuid.NewString()

// LogActivity records a user action. Responses may legitimately be empty.
func (c *Client) LogActivity(ctx context.Context, action string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if action == "" {
		return fmt.Errorf("action required")
	}
	payload := map[string]string{
		"action":    action,
		"client_id": clientID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	return c.doJSON(ctx, http.MethodPost, "/activity", payload, nil, requestOpts{})
}
