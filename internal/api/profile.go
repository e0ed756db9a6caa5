package api

import (
	"context"
	"fmt"
	"net/http"
)

// Profile retrieves the logged-in user's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Profile
	if err := c.doJSON(ctx, http.MethodGet, "/profile", nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProfile sends a partial profile update. Only changed fields are
// included; an optional new picture rides along in the same form.
func (c *Client) UpdateProfile(ctx context.Context, changed map[string]string, picture *Upload) (*Profile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(changed) == 0 && picture == nil {
		return nil, fmt.Errorf("no fields to update")
	}
	files := map[string]Upload{}
	if picture != nil {
		files["profile_picture"] = *picture
	}
	form, contentType, err := multipartForm(changed, files)
	if err != nil {
		return nil, err
	}
	var payload Profile
	if err := c.doForm(ctx, http.MethodPut, "/profile", form, contentType, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteProfile permanently removes the logged-in user's account.
func (c *Client) DeleteProfile(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.doJSON(ctx, http.MethodDelete, "/profile", nil, nil, requestOpts{})
}

// UserProfile retrieves another user's public profile, including whether the
// current user follows them.
func (c *Client) UserProfile(ctx context.Context, username string) (*PublicProfile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if username == "" {
		return nil, fmt.Errorf("username required")
	}
	var payload PublicProfile
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+username, nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ToggleFollow follows or unfollows userID and reports the resulting state.
func (c *Client) ToggleFollow(ctx context.Context, userID string) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	if userID == "" {
		return false, fmt.Errorf("user id required")
	}
	var payload struct {
		IsFollowing bool `json:"isFollowing"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/follows/"+userID, nil, &payload, requestOpts{}); err != nil {
		return false, err
	}
	return payload.IsFollowing, nil
}

// FollowSuggestions retrieves users the current user might want to follow.
func (c *Client) FollowSuggestions(ctx context.Context) ([]Suggestion, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Suggestion
	if err := c.doJSON(ctx, http.MethodGet, "/follow/suggestions", nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return payload, nil
}
