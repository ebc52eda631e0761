// Package relay forwards contact form submissions to a hosted form-relay
// endpoint (Formspree style: JSON POST, 2xx on success).
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/reveal"
)

// DefaultEndpoint is the relay form the portfolio posts to.
const DefaultEndpoint = "https://formspree.io/f/xqalzwbz"

// DefaultTimeout bounds one submission round trip.
const DefaultTimeout = 15 * time.Second

// maxErrorBody is how much of a failed response body is kept for the error.
const maxErrorBody = 512

// Common errors.
var (
	// ErrMissingField is returned when a required field is blank.
	ErrMissingField = errors.New("relay: missing required field")

	// ErrInvalidEmail is returned when the email does not parse as an address.
	ErrInvalidEmail = errors.New("relay: invalid email address")

	// ErrNoEndpoint is returned when the client has no endpoint configured.
	ErrNoEndpoint = errors.New("relay: no endpoint configured")
)

// StatusError reports a non-2xx response from the relay.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relay: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("relay: unexpected status %d: %s", e.Code, e.Body)
}

// Submission is one contact form message.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Normalize trims surrounding whitespace and converts every field to NFC so
// visually identical input is sent identically.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    norm.NFC.String(strings.TrimSpace(s.Name)),
		Email:   norm.NFC.String(strings.TrimSpace(s.Email)),
		Message: norm.NFC.String(strings.TrimSpace(s.Message)),
	}
}

// Validate reports the first problem with s, or nil.
func (s Submission) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case strings.TrimSpace(s.Email) == "":
		return fmt.Errorf("%w: email", ErrMissingField)
	case strings.TrimSpace(s.Message) == "":
		return fmt.Errorf("%w: message", ErrMissingField)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(s.Email))
	if err != nil || addr.Name != "" {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, s.Email)
	}
	return nil
}

// payload is the relay's JSON body. Underscore keys are relay directives.
type payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Subject string `json:"_subject"`
	ReplyTo string `json:"_replyto"`
	Format  string `json:"_format"`
}

func newPayload(s Submission) payload {
	return payload{
		Name:    s.Name,
		Email:   s.Email,
		Message: s.Message,
		Subject: "New Portfolio Contact from " + s.Name,
		ReplyTo: s.Email,
		Format:  "plain",
	}
}

// Sender delivers submissions. *Client implements it; hosts accept the
// interface so tests can substitute a fake.
type Sender interface {
	Send(ctx context.Context, s Submission) error
}

// Client posts submissions to a relay endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	newID    func() string
}

var _ Sender = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRequestID overrides the generator for the X-Request-ID header.
func WithRequestID(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a client for endpoint. An empty endpoint selects
// DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the relay URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Send normalizes, validates and posts s. It performs exactly one attempt.
func (c *Client) Send(ctx context.Context, s Submission) error {
	if c.endpoint == "" {
		return ErrNoEndpoint
	}
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(newPayload(s))
	if err != nil {
		return fmt.Errorf("relay: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	id := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)

	log := reveal.Logger().With("request_id", id)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("relay: request failed", "err", err)
		return fmt.Errorf("relay: post: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("relay: rejected", "status", resp.StatusCode)
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	log.Info("relay: submission delivered", "status", resp.StatusCode)
	return nil
}
