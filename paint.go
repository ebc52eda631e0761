package reveal

import (
	"image"
	"math"

	"github.com/gogpu/reveal/internal/composite"
)

// Texture constants of the overlay.
const (
	// SpeckleCount is the number of texture rectangles painted per surface.
	SpeckleCount = 100

	// SpeckleMaxSize is the maximum speckle edge in CSS pixels.
	SpeckleMaxSize = 3

	// SpeckleAlpha is the opacity of every speckle.
	SpeckleAlpha = 0.1

	// gradientLUTSize is the number of precomputed gradient samples.
	gradientLUTSize = 1024
)

// Rand is the source of randomness for the speckle texture.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// overlayStops is the paint gradient, top-left to bottom-right.
var overlayStops = []ColorStop{
	{Offset: 0, Color: paintWhite},
	{Offset: 0.3, Color: paintSlate50},
	{Offset: 0.7, Color: paintSlate2},
	{Offset: 1, Color: paintSlate3},
}

// Paint fully repaints s: gradient, speckle texture, then instructional text.
// Every pixel is overwritten, so repeated calls never accumulate. A surface
// with zero width or height is left untouched.
func Paint(s *Surface, rnd Rand) {
	if s == nil || s.Empty() {
		return
	}
	paintGradient(s.img)
	if rnd != nil {
		paintSpeckles(s, rnd)
	}
	drawInstructions(s)
}

// paintGradient fills img with the opaque overlay gradient from (0,0) to
// (w,h), sampling pixel centers.
func paintGradient(img *image.RGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	g := NewLinearGradient(0, 0, float64(w), float64(h), overlayStops...)

	// t only depends on the projection onto the diagonal, so a LUT avoids
	// per-pixel gamma conversion.
	var lut [gradientLUTSize][3]uint8
	for i := range lut {
		t := float64(i) / (gradientLUTSize - 1)
		c := colorAtOffset(g.Stops, t)
		lut[i] = [3]uint8{unit8(c.R), unit8(c.G), unit8(c.B)}
	}

	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	lengthSq := dx*dx + dy*dy
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		py := float64(y) + 0.5
		for x := 0; x < w; x++ {
			t := ((float64(x)+0.5)*dx + py*dy) / lengthSq
			c := lut[int(clamp01(t)*(gradientLUTSize-1)+0.5)]
			i := x * 4
			row[i+0] = c[0]
			row[i+1] = c[1]
			row[i+2] = c[2]
			row[i+3] = 255
		}
	}
}

// paintSpeckles scatters SpeckleCount translucent rectangles. Coordinates
// are drawn in CSS space and scaled to the backing buffer.
func paintSpeckles(s *Surface, rnd Rand) {
	for i := 0; i < SpeckleCount; i++ {
		c := inkSlate4
		if rnd.Float64() > 0.5 {
			c = inkSlate5
		}
		x := rnd.Float64() * s.cssW
		y := rnd.Float64() * s.cssH
		w := rnd.Float64() * SpeckleMaxSize
		h := rnd.Float64() * SpeckleMaxSize

		fillRect(s.img,
			x*s.scaleX, y*s.scaleY,
			(x+w)*s.scaleX, (y+h)*s.scaleY,
			c.WithAlpha(SpeckleAlpha))
	}
}

// fillRect composites c over the rectangle [x0,x1)x[y0,y1) in device space.
// Partially covered pixels receive alpha proportional to the covered area.
func fillRect(img *image.RGBA, x0, y0, x1, y1 float64, c RGBA) {
	b := img.Rect
	ix0 := max(int(math.Floor(x0)), b.Min.X)
	iy0 := max(int(math.Floor(y0)), b.Min.Y)
	ix1 := min(int(math.Ceil(x1)), b.Max.X)
	iy1 := min(int(math.Ceil(y1)), b.Max.Y)

	nc := c.NRGBA()
	for py := iy0; py < iy1; py++ {
		cy := overlap(float64(py), float64(py)+1, y0, y1)
		for px := ix0; px < ix1; px++ {
			cov := cy * overlap(float64(px), float64(px)+1, x0, x1)
			if cov <= 0 {
				continue
			}
			sa := unit8(c.A * cov)
			if sa == 0 {
				continue
			}
			sr, sg, sb, _ := composite.Premultiply(nc.R, nc.G, nc.B, sa)
			i := img.PixOffset(px, py)
			p := img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = composite.SourceOver(sr, sg, sb, sa, p[0], p[1], p[2], p[3])
		}
	}
}

// overlap returns the length of [a0,a1) ∩ [b0,b1).
func overlap(a0, a1, b0, b1 float64) float64 {
	return math.Max(0, math.Min(a1, b1)-math.Max(a0, b0))
}
