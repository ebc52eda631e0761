// Package gate turns a reveal percentage into form interactivity.
//
// The thresholds are host policy, not part of the overlay: the overlay only
// reports how much has been uncovered, and a Policy decides what that
// unlocks.
package gate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPolicy is returned by Policy.Validate.
var ErrInvalidPolicy = errors.New("gate: invalid policy")

// Policy holds the reveal thresholds, in percent.
type Policy struct {
	// FormVisible raises the form from dimmed to fully opaque (strictly above).
	FormVisible float64
	// Fields enables the inputs (at or above).
	Fields float64
	// Submit enables the submit button (at or above).
	Submit float64
	// HideOverlay lets pointer events pass through the overlay and hides the
	// progress badge (strictly above).
	HideOverlay float64
	// HintHidden hides the touch instruction on small screens (at or above).
	HintHidden float64
}

// DefaultPolicy returns the thresholds used by the portfolio contact section.
func DefaultPolicy() Policy {
	return Policy{
		FormVisible: 20,
		Fields:      30,
		Submit:      50,
		HideOverlay: 80,
		HintHidden:  20,
	}
}

// Validate checks that every threshold is within [0, 100] and that inputs
// unlock no later than submission, which unlocks no later than the overlay
// disappears.
func (p Policy) Validate() error {
	for name, v := range map[string]float64{
		"FormVisible": p.FormVisible,
		"Fields":      p.Fields,
		"Submit":      p.Submit,
		"HideOverlay": p.HideOverlay,
		"HintHidden":  p.HintHidden,
	} {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("%w: %s=%v outside [0, 100]", ErrInvalidPolicy, name, v)
		}
	}
	if p.Fields > p.Submit {
		return fmt.Errorf("%w: Fields (%v) above Submit (%v)", ErrInvalidPolicy, p.Fields, p.Submit)
	}
	if p.Submit > p.HideOverlay {
		return fmt.Errorf("%w: Submit (%v) above HideOverlay (%v)", ErrInvalidPolicy, p.Submit, p.HideOverlay)
	}
	return nil
}

// DimmedFormOpacity is the form's opacity until FormVisible is passed.
const DimmedFormOpacity = 0.3

// State is what the host should render for one reveal percentage.
type State struct {
	Percentage    float64
	FormOpaque    bool
	FieldsEnabled bool
	SubmitEnabled bool
	OverlayHidden bool
	ShowProgress  bool
	ShowHint      bool
}

// Evaluate maps a coverage percentage to a State. Values outside [0, 100]
// are clamped; NaN counts as 0.
func (p Policy) Evaluate(pct float64) State {
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return State{
		Percentage:    pct,
		FormOpaque:    pct > p.FormVisible,
		FieldsEnabled: pct >= p.Fields,
		SubmitEnabled: pct >= p.Submit,
		OverlayHidden: pct > p.HideOverlay,
		ShowProgress:  pct > 0 && pct < p.HideOverlay,
		ShowHint:      pct < p.HintHidden,
	}
}

// FormOpacity is the opacity to draw the form at: dimmed, never hidden,
// until the form turns opaque.
func (s State) FormOpacity() float64 {
	if s.FormOpaque {
		return 1
	}
	return DimmedFormOpacity
}

// ProgressLabel renders the progress badge text, e.g. "42% revealed".
func (s State) ProgressLabel() string {
	return fmt.Sprintf("%d%% revealed", int(math.Round(s.Percentage)))
}

// Changed reports whether any gating flag differs between s and o.
// The percentage itself is ignored.
func (s State) Changed(o State) bool {
	s.Percentage, o.Percentage = 0, 0
	return s != o
}
