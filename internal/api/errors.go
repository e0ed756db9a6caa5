package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrAuthRequired reports that a request needed a valid session and the token
// could not be refreshed. The session manager forces a logout when it occurs.
var ErrAuthRequired = errors.New("authentication required")

// HTTPError is a non-2xx response with its status and raw body.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, msg)
}

// Message extracts the server's message from a {"message": ...} body when
// present, otherwise the trimmed raw body.
func (e *HTTPError) Message() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return body
}

// NetworkError is a transport-level failure (connection refused, DNS, offline).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedError reports a 2xx response whose body did not match the expected
// shape.
type MalformedError struct {
	Err error
}

func (e *MalformedError) Error() string { return fmt.Sprintf("malformed response: %v", e.Err) }
func (e *MalformedError) Unwrap() error { return e.Err }

// Aborted reports whether err is the expected outcome of a cancelled request.
// Callers treat aborted requests as "no result", never as a user-visible
// failure.
func Aborted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// UserMessage renders err for display. Server-provided messages win; aborted
// requests should be filtered out by the caller before this point.
func UserMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
		return fmt.Sprintf("request failed (status %d)", httpErr.Status)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "network problem, please try again later"
	}
	var malformed *MalformedError
	if errors.As(err, &malformed) {
		return "unexpected response from the server"
	}
	if errors.Is(err, ErrAuthRequired) {
		return "session expired, please log in again"
	}
	return err.Error()
}

func wrapTransport(err error) error {
	if err == nil {
		return nil
	}
	// Cancellation is not a network failure; let errors.Is(context.Canceled)
	// keep working through url.Error's unwrap chain.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &NetworkError{Err: err}
}
