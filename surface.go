package reveal

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Common errors reported by Canvas and Surface construction.
var (
	// ErrNoContext is returned when no drawing surface could be acquired.
	ErrNoContext = errors.New("reveal: drawing context unavailable")

	// ErrInvalidDimensions is returned when width, height or pixel ratio
	// is negative or not finite.
	ErrInvalidDimensions = errors.New("reveal: invalid dimensions")

	// ErrSurfaceTooLarge is returned by the default allocator when the
	// backing buffer would exceed MaxBackingPixels.
	ErrSurfaceTooLarge = errors.New("reveal: surface too large")
)

// MaxBackingPixels bounds the backing buffer the default allocator hands out.
const MaxBackingPixels = 1 << 26

// Allocator provides the backing pixel buffer for a surface of the given
// device-pixel size. Returning an error models an environment without a
// drawing context; the Canvas then turns every operation into a no-op.
type Allocator func(width, height int) (*image.RGBA, error)

// DefaultAllocator allocates a zeroed *image.RGBA.
func DefaultAllocator(width, height int) (*image.RGBA, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	if int64(width)*int64(height) > MaxBackingPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceTooLarge, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// Surface is the erasable overlay bitmap.
//
// The backing buffer holds premultiplied RGBA at device resolution:
// round(cssWidth*dpr) x round(cssHeight*dpr). Scale factors are captured at
// creation and only change when a new Surface replaces this one.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	img    *image.RGBA
	cssW   float64
	cssH   float64
	dpr    float64
	scaleX float64
	scaleY float64
}

// NewSurface creates a transparent surface for a container of cssWidth x
// cssHeight CSS pixels at the given device pixel ratio. A zero or negative
// dpr is treated as 1, matching browsers that do not report one.
func NewSurface(cssWidth, cssHeight, dpr float64, alloc Allocator) (*Surface, error) {
	if !finite(cssWidth) || !finite(cssHeight) || cssWidth < 0 || cssHeight < 0 {
		return nil, ErrInvalidDimensions
	}
	if !finite(dpr) || dpr <= 0 {
		dpr = 1
	}
	if alloc == nil {
		alloc = DefaultAllocator
	}

	if cssWidth*dpr > MaxBackingPixels || cssHeight*dpr > MaxBackingPixels {
		return nil, fmt.Errorf("%w: %gx%g at %g", ErrSurfaceTooLarge, cssWidth, cssHeight, dpr)
	}

	w := int(math.Round(cssWidth * dpr))
	h := int(math.Round(cssHeight * dpr))
	img, err := alloc(w, h)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrNoContext
	}
	if b := img.Bounds(); b.Min != (image.Point{}) || b.Dx() != w || b.Dy() != h {
		return nil, fmt.Errorf("%w: allocator returned %v, want %dx%d at origin",
			ErrInvalidDimensions, b, w, h)
	}

	s := &Surface{
		img:  img,
		cssW: cssWidth,
		cssH: cssHeight,
		dpr:  dpr,
	}
	s.scaleX, s.scaleY = 1, 1
	if cssWidth > 0 {
		s.scaleX = float64(w) / cssWidth
	}
	if cssHeight > 0 {
		s.scaleY = float64(h) / cssHeight
	}
	return s, nil
}

// Width returns the backing width in device pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the backing height in device pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// CSSSize returns the container size the surface was created for.
func (s *Surface) CSSSize() (width, height float64) { return s.cssW, s.cssH }

// PixelRatio returns the device pixel ratio captured at creation.
func (s *Surface) PixelRatio() float64 { return s.dpr }

// Scale returns the CSS→backing scale factors.
func (s *Surface) Scale() (sx, sy float64) { return s.scaleX, s.scaleY }

// Empty reports whether the surface has no pixels.
func (s *Surface) Empty() bool { return s.Width() == 0 || s.Height() == 0 }

// Coverage returns the revealed percentage of this surface.
func (s *Surface) Coverage() float64 { return Coverage(s.img) }

// Snapshot returns a copy of the backing buffer.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Alpha returns the alpha at device pixel (x, y), or 0 outside the buffer.
func (s *Surface) Alpha(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(s.img.Rect) {
		return 0
	}
	return s.img.Pix[s.img.PixOffset(x, y)+3]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
