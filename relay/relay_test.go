package relay

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

func TestSendPostsJSON(t *testing.T) {
	type capture struct {
		method  string
		headers http.Header
		body    map[string]string
	}
	captured := make(chan capture, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := capture{method: r.Method, headers: r.Header.Clone()}
		if err := json.NewDecoder(r.Body).Decode(&c.body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		captured <- c
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRequestID(func() string { return "req-1" }))
	err := c.Send(context.Background(), Submission{
		Name:    "  Ada  ",
		Email:   "ada@example.com",
		Message: "Café project",
	})
	if err != nil {
		t.Fatalf("Send() = %v", err)
	}

	got := <-captured
	gotMethod, gotHeaders, gotBody := got.method, got.headers, got.body
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if ct := gotHeaders.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if a := gotHeaders.Get("Accept"); a != "application/json" {
		t.Errorf("Accept = %q", a)
	}
	if id := gotHeaders.Get("X-Request-ID"); id != "req-1" {
		t.Errorf("X-Request-ID = %q", id)
	}

	want := map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"message":  "Café project",
		"_subject": "New Portfolio Contact from Ada",
		"_replyto": "ada@example.com",
		"_format":  "plain",
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("body[%q] = %q, want %q", k, gotBody[k], v)
		}
	}
}

func TestSendDefaultRequestIDIsUUID(t *testing.T) {
	ids := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	if err := New(srv.URL).Send(context.Background(), validSubmission()); err != nil {
		t.Fatal(err)
	}
	id := <-ids
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Errorf("X-Request-ID = %q, want a UUID", id)
	}
}

func TestSendStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"form not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := New(srv.URL).Send(context.Background(), validSubmission())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Send() = %v, want *StatusError", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("Code = %d", se.Code)
	}
	if !strings.Contains(se.Body, "form not found") {
		t.Errorf("Body = %q", se.Body)
	}
}

func TestSendNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_ = New(srv.URL).Send(context.Background(), validSubmission())
	if n := calls.Load(); n != 1 {
		t.Errorf("relay called %d times, want exactly 1", n)
	}
}

func TestSendValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid submission reached the relay")
	}))
	defer srv.Close()

	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"blank name", Submission{Name: "  ", Email: "a@b.co", Message: "hi"}, ErrMissingField},
		{"blank email", Submission{Name: "A", Message: "hi"}, ErrMissingField},
		{"blank message", Submission{Name: "A", Email: "a@b.co", Message: "\n"}, ErrMissingField},
		{"bad email", Submission{Name: "A", Email: "not-an-email", Message: "hi"}, ErrInvalidEmail},
		{"display name", Submission{Name: "A", Email: "Ada <a@b.co>", Message: "hi"}, ErrInvalidEmail},
	}
	c := New(srv.URL)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Send(context.Background(), tt.sub); !errors.Is(err, tt.want) {
				t.Errorf("Send() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSendContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := New(srv.URL).Send(ctx, validSubmission())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Send() = %v, want context.DeadlineExceeded", err)
	}
}

func TestNewDefaults(t *testing.T) {
	if got := New("").Endpoint(); got != DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want default", got)
	}
}

func validSubmission() Submission {
	return Submission{Name: "Ada", Email: "ada@example.com", Message: "Hello"}
}
