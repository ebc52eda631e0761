// Package contact hosts the reveal overlay over a contact form: it gates
// the form on the reveal percentage and forwards submissions to a relay.
//
// Wire a Section to a canvas with reveal.WithOnReveal(section.Reveal).
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/reveal"
	"github.com/gogpu/reveal/gate"
	"github.com/gogpu/reveal/relay"
)

// User-visible status messages.
const (
	SuccessMessage = "Thanks for reaching out! I'll get back to you within 24 hours."
	ErrorMessage   = "Something went wrong. Please try again or contact me directly."
	SendingMessage = "Sending..."
)

// Common errors.
var (
	// ErrFieldsLocked is returned when editing a field before enough of the
	// overlay is revealed.
	ErrFieldsLocked = errors.New("contact: fields locked")

	// ErrSubmitLocked is returned by Submit before the submit threshold.
	ErrSubmitLocked = errors.New("contact: submit locked")

	// ErrBusy is returned by Submit while a submission is in flight.
	ErrBusy = errors.New("contact: submission in progress")

	// ErrNoSender is returned by NewSection without a relay.
	ErrNoSender = errors.New("contact: nil sender")
)

// Status is the submission outcome shown under the form.
type Status uint8

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Message returns the user-visible text for s, or "" when nothing is shown.
func (s Status) Message() string {
	switch s {
	case StatusSending:
		return SendingMessage
	case StatusSuccess:
		return SuccessMessage
	case StatusError:
		return ErrorMessage
	default:
		return ""
	}
}

// Field names a form input.
type Field uint8

const (
	FieldName Field = iota
	FieldEmail
	FieldMessage
)

// Option configures a Section.
type Option func(*Section)

// WithPolicy replaces the default reveal thresholds.
func WithPolicy(p gate.Policy) Option {
	return func(s *Section) {
		s.policy = p
	}
}

// WithOnGateChange registers a callback fired whenever a gating flag flips.
// It runs without the section lock held.
func WithOnGateChange(fn func(gate.State)) Option {
	return func(s *Section) {
		s.onGate = fn
	}
}

// Section is the contact form host.
type Section struct {
	mu       sync.Mutex
	policy   gate.Policy
	sender   relay.Sender
	onGate   func(gate.State)
	form     relay.Submission
	state    gate.State
	status   Status
	inFlight bool
}

// NewSection creates a section that submits through sender.
func NewSection(sender relay.Sender, opts ...Option) (*Section, error) {
	if sender == nil {
		return nil, ErrNoSender
	}
	s := &Section{
		policy: gate.DefaultPolicy(),
		sender: sender,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.policy.Validate(); err != nil {
		return nil, err
	}
	s.state = s.policy.Evaluate(0)
	return s, nil
}

// Reveal consumes a coverage reading from the overlay.
func (s *Section) Reveal(pct float64) {
	s.mu.Lock()
	prev := s.state
	s.state = s.policy.Evaluate(pct)
	next := s.state
	fn := s.onGate
	s.mu.Unlock()

	if next.Changed(prev) {
		reveal.Logger().Info("contact: gate changed",
			"percentage", next.Percentage,
			"fields", next.FieldsEnabled,
			"submit", next.SubmitEnabled,
			"overlay_hidden", next.OverlayHidden)
		if fn != nil {
			fn(next)
		}
	}
}

// Gate returns the current gating state.
func (s *Section) Gate() gate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set updates one field. Edits are rejected while fields are locked.
func (s *Section) Set(f Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.FieldsEnabled {
		return ErrFieldsLocked
	}
	switch f {
	case FieldName:
		s.form.Name = value
	case FieldEmail:
		s.form.Email = value
	case FieldMessage:
		s.form.Message = value
	default:
		return fmt.Errorf("contact: unknown field %d", f)
	}
	return nil
}

// Form returns a copy of the current form contents.
func (s *Section) Form() relay.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Status returns the latest submission status.
func (s *Section) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit sends the form once. Relay failures are not returned as errors:
// they end in StatusError, whose Message is shown to the user. Errors are
// reserved for preconditions (locked, busy, invalid form), which leave the
// status untouched.
func (s *Section) Submit(ctx context.Context) (Status, error) {
	s.mu.Lock()
	if !s.state.SubmitEnabled {
		s.mu.Unlock()
		return s.Status(), ErrSubmitLocked
	}
	if s.inFlight {
		s.mu.Unlock()
		return StatusSending, ErrBusy
	}
	form := s.form
	if err := form.Normalize().Validate(); err != nil {
		st := s.status
		s.mu.Unlock()
		return st, err
	}
	s.inFlight = true
	s.status = StatusSending
	s.mu.Unlock()

	err := s.sender.Send(ctx, form)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		reveal.Logger().Warn("contact: submission failed", "err", err)
		s.status = StatusError
		return s.status, nil
	}
	s.status = StatusSuccess
	s.form = relay.Submission{}
	reveal.Logger().Info("contact: submission sent")
	return s.status, nil
}
