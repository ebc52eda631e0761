package reveal

// DragState says whether pointer movement currently erases.
type DragState uint8

const (
	// Idle ignores pointer movement.
	Idle DragState = iota
	// Erasing turns every pointer or touch move into an erase stroke.
	Erasing
)

// String returns the state name.
func (d DragState) String() string {
	switch d {
	case Idle:
		return "Idle"
	case Erasing:
		return "Erasing"
	default:
		return "DragState(?)"
	}
}

// Rect is the on-screen bounding box of the surface in client coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Local converts a client position to surface-local CSS coordinates.
func (r Rect) Local(clientX, clientY float64) (x, y float64) {
	return clientX - r.Left, clientY - r.Top
}

// State returns the current drag state.
func (c *Canvas) State() DragState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Canvas) setState(s DragState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state = s
}

// PointerEnter arms the eraser when the pointer enters the surface, so
// hovering alone reveals on desktop.
func (c *Canvas) PointerEnter() { c.setState(Erasing) }

// PointerDown arms the eraser.
func (c *Canvas) PointerDown() { c.setState(Erasing) }

// PointerUp disarms the eraser.
func (c *Canvas) PointerUp() { c.setState(Idle) }

// PointerLeave disarms the eraser.
func (c *Canvas) PointerLeave() { c.setState(Idle) }

// PointerMove erases at surface-local CSS coordinates (x, y) while the
// eraser is armed. It reports whether a stroke was applied.
func (c *Canvas) PointerMove(x, y float64) bool {
	_, applied := c.stroke(x, y, true)
	return applied
}

// TouchStart arms the eraser for a touch drag.
func (c *Canvas) TouchStart() { c.setState(Erasing) }

// TouchEnd disarms the eraser.
func (c *Canvas) TouchEnd() { c.setState(Idle) }

// TouchMove erases at (x, y) while armed. The result tells the host to
// suppress the platform's default scroll or gesture handling so the stroke
// is not interrupted. An inert or closed canvas never asks for it.
func (c *Canvas) TouchMove(x, y float64) (preventDefault bool) {
	_, applied := c.stroke(x, y, true)
	return applied
}
