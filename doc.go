// Package reveal implements an erasable paint overlay ("reveal canvas").
//
// # Overview
//
// A Canvas owns an opaque RGBA surface painted with a soft gradient, a
// sparse speckle texture and two lines of instructional text. While the
// user drags a pointer (or finger) across it, the surface is erased with a
// soft-edged disc using destination-out compositing, and after every stroke
// the fraction of effectively transparent pixels is reported to the host.
//
// # Quick Start
//
//	cv := reveal.New(640, 600, 2,
//	    reveal.WithOnReveal(func(pct float64) {
//	        state := policy.Evaluate(pct)
//	        // enable fields, submit button, hide overlay...
//	    }),
//	)
//	defer cv.Close()
//
//	cv.PointerDown()
//	cv.PointerMove(120, 80)
//	cv.PointerUp()
//
// # Coordinate System
//
// Erase coordinates are in CSS pixels relative to the top-left corner of the
// surface. The backing buffer is CSS size multiplied by the device pixel
// ratio captured at the last (re)initialization.
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Architecture
//
// The computational core (Surface, Paint, Coverage) takes dimensions and
// coordinates as arguments and never touches a windowing system, so it can
// be tested headless. Hosts live elsewhere:
//   - gate: threshold policy that unlocks the contact form
//   - contact: form model and submission status
//   - relay: client for the hosted form-relay endpoint
//   - cmd/revealdemo, cmd/revealterm, cmd/revealdesk, cmd/revealwasm
package reveal

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
