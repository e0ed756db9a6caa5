package api

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges credentials for a token pair. The call itself never enters
// the refresh cycle.
func (c *Client) Login(ctx context.Context, username, password string) (AuthData, error) {
	if c == nil {
		return AuthData{}, fmt.Errorf("client is nil")
	}
	payload := map[string]string{"username": username, "password": password}
	var resp envelope[AuthData]
	err := c.doJSON(ctx, http.MethodPost, "/login", payload, &resp, requestOpts{noAuthRetry: true})
	if err != nil {
		return AuthData{}, err
	}
	if resp.Data.Token == "" {
		return AuthData{}, &MalformedError{Err: fmt.Errorf("login response missing token")}
	}
	return resp.Data, nil
}

// Register creates a new account. It does not authenticate the new user.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	payload := map[string]string{"username": username, "email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/register", payload, nil, requestOpts{noAuthRetry: true})
}

// RefreshToken exchanges the refresh token for a fresh access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	payload := map[string]string{"refreshToken": refreshToken}
	var resp envelope[struct {
		Token string `json:"token"`
	}]
	err := c.doJSON(ctx, http.MethodPost, "/refresh-token", payload, &resp, requestOpts{noAuthRetry: true})
	if err != nil {
		return "", err
	}
	if resp.Data.Token == "" {
		return "", &MalformedError{Err: fmt.Errorf("refresh response missing token")}
	}
	return resp.Data.Token, nil
}
