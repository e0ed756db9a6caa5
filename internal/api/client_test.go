package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type staticCreds struct {
	token      string
	refreshed  atomic.Int32
	refreshTo  string
	refreshErr error
}

func (s *staticCreds) AccessToken() string { return s.token }

func (s *staticCreds) RefreshAccess(ctx context.Context) error {
	s.refreshed.Add(1)
	if s.refreshErr != nil {
		return s.refreshErr
	}
	s.token = s.refreshTo
	return nil
}

func TestParseBaseURL_NormalizesAndKeepsPrefix(t *testing.T) {
	u, err := parseBaseURL("example.com:9000/api/")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api" {
		t.Fatalf("path = %q, want /api", u.Path)
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatal("parseBaseURL accepted empty input")
	}
}

func TestClient_AttachesBearerAndJoinsBasePath(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode(Profile{Username: "ada"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetCredentials(&staticCreds{token: "tok-1"})

	profile, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.Username != "ada" {
		t.Fatalf("Profile username = %q, want ada", profile.Username)
	}
	if gotPath != "/api/profile" {
		t.Fatalf("request path = %q, want /api/profile", gotPath)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q, want Bearer tok-1", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
}

func TestClient_EmptyBodyIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetCredentials(&staticCreds{token: "tok"})

	if err := c.LogActivity(context.Background(), "viewed events"); err != nil {
		t.Fatalf("LogActivity returned error on empty 204 body: %v", err)
	}
}

func TestClient_RefreshesOnceAndRetriesOn401(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(Profile{Username: "ada"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	creds := &staticCreds{token: "stale", refreshTo: "fresh"}
	c.SetCredentials(creds)

	profile, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.Username != "ada" {
		t.Fatalf("Profile username = %q, want ada", profile.Username)
	}
	if got := creds.refreshed.Load(); got != 1 {
		t.Fatalf("refresh calls = %d, want 1", got)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("request calls = %d, want 2 (original + retry)", got)
	}
}

func TestClient_FailedRefreshSurfacesAuthRequired(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetCredentials(&staticCreds{token: "stale", refreshErr: errors.New("refresh token expired")})

	_, err = c.Profile(context.Background())
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("Profile error = %v, want ErrAuthRequired", err)
	}
}

func TestClient_AnonymousRequestSkipsRefresh(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	creds := &staticCreds{}
	c.SetCredentials(creds)

	_, err = c.Profile(context.Background())
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusUnauthorized {
		t.Fatalf("Profile error = %v, want HTTPError 401", err)
	}
	if got := creds.refreshed.Load(); got != 0 {
		t.Fatalf("refresh calls = %d, want 0 without a token", got)
	}
}

func TestClient_HTTPErrorCarriesServerMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"username already taken"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.Register(context.Background(), "ada", "ada@example.com", "secret1")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Register error = %v, want HTTPError", err)
	}
	if httpErr.Status != http.StatusConflict {
		t.Fatalf("status = %d, want 409", httpErr.Status)
	}
	if httpErr.Message() != "username already taken" {
		t.Fatalf("message = %q, want server message", httpErr.Message())
	}
	if UserMessage(err) != "username already taken" {
		t.Fatalf("UserMessage = %q, want server message", UserMessage(err))
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": "not-an-array"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Events(context.Background(), 1, 10)
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("Events error = %v, want MalformedError", err)
	}
}

func TestClient_AbortedRequestIsDetectable(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Events(ctx, 1, 10)
		done <- err
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		if !Aborted(err) {
			t.Fatalf("Events error = %v, want aborted", err)
		}
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			t.Fatalf("aborted request misclassified as network error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled request did not return")
	}
}

func TestClient_MultipartFormKeepsBoundary(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotEventField string
	var gotBanner []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotEventField = r.FormValue("event")
		file, _, err := r.FormFile("banner")
		if err == nil {
			defer file.Close()
			buf := make([]byte, 16)
			n, _ := file.Read(buf)
			gotBanner = buf[:n]
		}
		_ = json.NewEncoder(w).Encode(Event{EventID: "e1", Title: "Launch"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetCredentials(&staticCreds{token: "tok"})

	event, err := c.CreateEvent(context.Background(), EventPayload{
		Title:       "Launch",
		Date:        "2026-09-01T19:00",
		Location:    "Berlin",
		PlaceID:     "p1",
		Description: "launch party",
	}, &Upload{Filename: "banner.jpg", Content: []byte("jpegbytes")})
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if event.EventID != "e1" {
		t.Fatalf("EventID = %q, want e1", event.EventID)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data; boundary=") {
		t.Fatalf("Content-Type = %q, want multipart with boundary", gotContentType)
	}
	if !strings.Contains(gotEventField, `"title":"Launch"`) {
		t.Fatalf("event field = %q, want embedded event JSON", gotEventField)
	}
	if string(gotBanner) != "jpegbytes" {
		t.Fatalf("banner = %q, want jpegbytes", gotBanner)
	}
}

func TestClient_AuthEnvelopeDecoding(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			_, _ = w.Write([]byte(`{"data":{"token":"t1","userid":"u1","refreshToken":"r1"},"message":"ok"}`))
		case "/refresh-token":
			var body struct {
				RefreshToken string `json:"refreshToken"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.RefreshToken != "r1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"data":{"token":"t2"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	auth, err := c.Login(context.Background(), "ada", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if auth.Token != "t1" || auth.UserID != "u1" || auth.RefreshToken != "r1" {
		t.Fatalf("Login data = %#v, want t1/u1/r1", auth)
	}

	token, err := c.RefreshToken(context.Background(), "r1")
	if err != nil {
		t.Fatalf("RefreshToken returned error: %v", err)
	}
	if token != "t2" {
		t.Fatalf("RefreshToken = %q, want t2", token)
	}
}

func TestBuyTicket_RejectsOutOfBoundsWithoutNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetCredentials(&staticCreds{token: "tok"})

	for _, qty := range []int{0, -1, 6, 100} {
		if err := c.BuyTicket(context.Background(), "e1", "t1", qty); err == nil {
			t.Fatalf("BuyTicket accepted quantity %d", qty)
		}
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("server calls = %d, want 0 for rejected quantities", got)
	}

	if err := c.BuyTicket(context.Background(), "e1", "t1", 5); err != nil {
		t.Fatalf("BuyTicket(5) returned error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server calls = %d, want 1 after valid purchase", got)
	}
}

func TestBuyMerch_RespectsStockBound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetCredentials(&staticCreds{token: "tok"})

	if err := c.BuyMerch(context.Background(), "e1", "m1", 4, 3); err == nil {
		t.Fatal("BuyMerch accepted quantity above stock")
	}
	if err := c.BuyMerch(context.Background(), "e1", "m1", 0, 3); err == nil {
		t.Fatal("BuyMerch accepted zero quantity")
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("server calls = %d, want 0 for rejected quantities", got)
	}
	if err := c.BuyMerch(context.Background(), "e1", "m1", 3, 3); err != nil {
		t.Fatalf("BuyMerch(3 of 3) returned error: %v", err)
	}
}
