package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// CredentialSource supplies the bearer token for authenticated requests and
// performs the single refresh attempt after a 401. It is implemented by the
// session manager; a possibly-nil source means every request goes out
// anonymous.
type CredentialSource interface {
	AccessToken() string
	RefreshAccess(ctx context.Context) error
}

// Monitor observes request lifecycle for the process-wide loading indicator.
// It is best-effort and not reference-counted; overlapping requests may make
// the indicator flicker.
type Monitor interface {
	RequestStarted()
	RequestFinished()
}

// Client talks to the platform's REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	creds     CredentialSource
	monitor   Monitor
	userAgent string
}

const defaultUserAgent = "mingle/0.1"

// NewClient builds a Client for the given API base URL.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// SetCredentials wires the session manager in as the token source.
func (c *Client) SetCredentials(creds CredentialSource) { c.creds = creds }

// SetMonitor wires the UI's loading indicator in.
func (c *Client) SetMonitor(m Monitor) { c.monitor = m }

// requestOpts tune a single request.
type requestOpts struct {
	// noAuthRetry disables the 401 refresh-and-retry cycle. Set on the auth
	// endpoints themselves so a failing refresh can never recurse.
	noAuthRetry bool
}

// doJSON sends payload as an application/json body and decodes the response
// into dest when dest is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any, dest any, opts requestOpts) error {
	var body []byte
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = encoded
		contentType = "application/json"
	}
	rel := &url.URL{Path: path}
	return c.do(ctx, method, rel, body, contentType, dest, opts)
}

// doForm sends a multipart form body. The content type carries the writer's
// boundary, so it must come from the multipart writer untouched.
func (c *Client) doForm(ctx context.Context, method, path string, form *bytes.Buffer, contentType string, dest any, opts requestOpts) error {
	rel := &url.URL{Path: path}
	return c.do(ctx, method, rel, form.Bytes(), contentType, dest, opts)
}

// doQuery sends a body-less request with query parameters.
func (c *Client) doQuery(ctx context.Context, method, path string, values url.Values, dest any, opts requestOpts) error {
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	return c.do(ctx, method, rel, nil, "", dest, opts)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body []byte, contentType string, dest any, opts requestOpts) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	if c.monitor != nil {
		c.monitor.RequestStarted()
		defer c.monitor.RequestFinished()
	}

	token := ""
	if c.creds != nil {
		token = c.creds.AccessToken()
	}

	status, raw, err := c.send(ctx, method, rel, body, contentType, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && token != "" && !opts.noAuthRetry {
		if err := c.creds.RefreshAccess(ctx); err != nil {
			if Aborted(err) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrAuthRequired, err)
		}
		status, raw, err = c.send(ctx, method, rel, body, contentType, c.creds.AccessToken())
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return &HTTPError{Status: status, Body: string(raw)}
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		// 2xx with an empty body is a valid outcome, not a parse error.
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &MalformedError{Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, body []byte, contentType, token string) (int, []byte, error) {
	// The configured base may carry a path prefix (e.g. "/api"), so join
	// paths instead of resolving rel against the base.
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, wrapTransport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, wrapTransport(err)
	}
	return resp.StatusCode, raw, nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
