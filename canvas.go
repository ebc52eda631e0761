package reveal

import (
	"image"
	"sync"
	"time"
)

// Canvas is a mounted reveal widget: it owns one Surface, the drag state,
// the latest coverage reading and the resize debounce timer.
//
// Canvas is safe for concurrent use; operations are serialized so an erase
// and its coverage estimate always complete before the next call runs.
type Canvas struct {
	mu   sync.Mutex
	opts options

	surface *Surface
	err     error

	// Target container size for the next (re)initialization.
	cssW, cssH, dpr float64

	state    DragState
	coverage float64
	timer    *time.Timer
	closed   bool
}

// New mounts a canvas over a container of width x height CSS pixels at the
// given device pixel ratio and paints the initial overlay.
//
// New never fails. If no drawing surface can be acquired, the canvas is
// inert: every operation is a no-op and Err reports why.
func New(width, height, dpr float64, opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		opts: o,
		cssW: width,
		cssH: height,
		dpr:  dpr,
	}
	c.mu.Lock()
	c.reinitializeLocked()
	c.mu.Unlock()
	return c
}

// reinitializeLocked replaces the surface with a freshly painted one for the
// current target size. Coverage drops back to the new surface's reading.
func (c *Canvas) reinitializeLocked() {
	s, err := NewSurface(c.cssW, c.cssH, c.dpr, c.opts.alloc)
	if err != nil {
		Logger().Warn("reveal: drawing context unavailable",
			"width", c.cssW, "height", c.cssH, "dpr", c.dpr, "err", err)
		c.surface = nil
		c.err = err
		c.coverage = 0
		return
	}

	Paint(s, c.opts.rnd)
	c.surface = s
	c.err = nil
	c.coverage = s.Coverage()
	Logger().Debug("reveal: surface initialized",
		"width", s.Width(), "height", s.Height(), "dpr", s.PixelRatio())
}

// Reinitialize immediately rebuilds the overlay at the current target size,
// discarding all erased area and any pending debounced resize.
func (c *Canvas) Reinitialize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopTimerLocked()
	c.reinitializeLocked()
}

// Resize records a new container size and schedules a rebuild after the
// debounce delay. Each call restarts the delay, so a drag-resize rebuilds
// only once it settles.
func (c *Canvas) Resize(width, height, dpr float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cssW, c.cssH, c.dpr = width, height, dpr
	c.stopTimerLocked()

	if c.opts.debounce <= 0 {
		c.reinitializeLocked()
		return
	}

	var t *time.Timer
	t = time.AfterFunc(c.opts.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A newer Resize, Reinitialize or Close superseded this timer.
		if c.closed || c.timer != t {
			return
		}
		c.timer = nil
		c.reinitializeLocked()
	})
	c.timer = t
}

func (c *Canvas) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Erase removes paint around CSS coordinate (x, y), re-estimates coverage
// and reports it to the OnReveal callback. It does not consult the drag
// state; PointerMove and TouchMove do.
//
// On an inert or closed canvas Erase does nothing and returns 0.
func (c *Canvas) Erase(x, y float64) float64 {
	pct, _ := c.stroke(x, y, false)
	return pct
}

// stroke applies one erase under the lock, optionally only while armed,
// then notifies the host outside the lock.
func (c *Canvas) stroke(x, y float64, armedOnly bool) (pct float64, applied bool) {
	c.mu.Lock()
	if c.closed || c.surface == nil || (armedOnly && c.state != Erasing) {
		c.mu.Unlock()
		return 0, false
	}
	c.surface.Erase(x, y)
	pct = c.surface.Coverage()
	c.coverage = pct
	fn := c.opts.onReveal
	c.mu.Unlock()

	if fn != nil {
		fn(pct)
	}
	return pct, true
}

// Coverage returns the most recent coverage reading in [0, 100].
func (c *Canvas) Coverage() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coverage
}

// Snapshot returns a copy of the overlay, or nil if the canvas is inert.
// The copy never aliases the live buffer. A zero-area canvas yields an
// image with empty bounds.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return nil
	}
	return c.surface.Snapshot()
}

// Size returns the backing size of the current surface in device pixels.
func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return 0, 0
	}
	return c.surface.Width(), c.surface.Height()
}

// Scale returns the CSS→backing scale factors of the current surface.
func (c *Canvas) Scale() (sx, sy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return 1, 1
	}
	return c.surface.Scale()
}

// Class returns the cosmetic style token set with WithClass.
func (c *Canvas) Class() string {
	return c.opts.class
}

// Err reports why the canvas is inert, or nil.
func (c *Canvas) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close stops any pending resize and releases the surface. Further calls
// are no-ops. Close always returns nil.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.stopTimerLocked()
	c.surface = nil
	c.state = Idle
	return nil
}
