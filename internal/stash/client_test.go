package stash

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestHTTPClientPost_SendsCredentialsAndReturnsPayload(t *testing.T) {
	var gotForm url.Values
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":{"value":"OK"},"payload":{"user":{"id":"5","first_name":"Ana"}}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "ck", "dev", nil)
	rec, err := c.Post(context.Background(), "users/info", url.Values{"user_id": {"5"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotPath != "/users/info" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotForm.Get("client_key") != "ck" || gotForm.Get("device_id") != "dev" || gotForm.Get("user_id") != "5" {
		t.Fatalf("unexpected form %v", gotForm)
	}
	user, err := rec.Object("user")
	if err != nil {
		t.Fatalf("expected user object: %v", err)
	}
	if id, _ := user.ID("id"); id != 5 {
		t.Fatalf("expected id 5, got %d", id)
	}
}

func TestHTTPClientPost_ErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "http 404", status: http.StatusNotFound, body: ``, want: ErrNotFound},
		{name: "http 403", status: http.StatusForbidden, body: ``, want: ErrPermission},
		{name: "status not found", status: http.StatusOK, body: `{"status":{"value":"ERROR","message":"File not found"}}`, want: ErrNotFound},
		{name: "status permission", status: http.StatusOK, body: `{"status":{"value":"ERROR","short_message":"Missing permission"}}`, want: ErrPermission},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, "ck", "dev", nil).Post(context.Background(), "file/info", nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Path != "file/info" {
				t.Fatalf("expected APIError for file/info, got %v", err)
			}
		})
	}
}

func TestHTTPClientPost_GenericFailureHasNoKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":{"value":"ERROR","message":"rate limit"}}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "ck", "dev", nil).Post(context.Background(), "x", nil)
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermission) {
		t.Fatalf("expected generic APIError, got %v", err)
	}
}

func TestMockClient_RecordsCallsAndDefaultsToNotFound(t *testing.T) {
	m := &MockClient{}
	if _, err := m.Post(context.Background(), "users/info", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if m.CallCount("users/info") != 1 {
		t.Fatalf("expected one recorded call")
	}
}
