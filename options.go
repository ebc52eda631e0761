package reveal

import (
	"math/rand/v2"
	"time"
)

// DefaultResizeDebounce is the delay between the last Resize call and the
// surface rebuild.
const DefaultResizeDebounce = 100 * time.Millisecond

// Option configures a Canvas during creation.
//
// Example:
//
//	cv := reveal.New(640, 480, 2,
//	    reveal.WithOnReveal(func(pct float64) { log.Printf("%.1f%%", pct) }),
//	    reveal.WithRand(rand.New(rand.NewPCG(1, 2))),
//	)
type Option func(*options)

// options holds optional configuration for Canvas creation.
type options struct {
	onReveal func(percentage float64)
	class    string
	rnd      Rand
	alloc    Allocator
	debounce time.Duration
}

// defaultOptions returns the default canvas options.
func defaultOptions() options {
	return options{
		rnd:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // texture only
		alloc:    DefaultAllocator,
		debounce: DefaultResizeDebounce,
	}
}

// WithOnReveal sets the callback invoked with the latest coverage
// percentage after every erase. The callback runs without the canvas lock
// held, so it may call back into the Canvas.
func WithOnReveal(fn func(percentage float64)) Option {
	return func(o *options) {
		o.onReveal = fn
	}
}

// WithClass attaches a cosmetic style token for the host's container.
func WithClass(class string) Option {
	return func(o *options) {
		o.class = class
	}
}

// WithRand sets the randomness source for the speckle texture.
// Use a seeded source for reproducible overlays.
func WithRand(r Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rnd = r
		}
	}
}

// WithAllocator sets the provider of backing pixel buffers. Tests inject
// fakes here; an allocator that always fails models a missing drawing
// context.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithResizeDebounce sets the resize debounce delay. Zero rebuilds the
// surface synchronously inside Resize.
func WithResizeDebounce(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.debounce = d
		}
	}
}
