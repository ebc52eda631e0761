package reveal

import (
	"math"

	"github.com/gogpu/reveal/internal/composite"
)

// EraseRadius is the eraser radius in CSS pixels.
const EraseRadius = 40

// eraserRamp is the eraser's radial alpha: solid core, soft rim.
var eraserRamp = AlphaRamp{
	{Offset: 0, Alpha: 1},
	{Offset: 0.7, Alpha: 0.8},
	{Offset: 1, Alpha: 0},
}

// Erase removes opacity within a soft disc centered at CSS coordinate
// (x, y). The disc radius is EraseRadius scaled by the smaller of the two
// scale factors so it stays circular on non-uniform surfaces.
//
// Compositing is destination-out: a pixel's alpha can only go down, and
// an already transparent pixel is left alone. Coordinates outside the
// surface (including NaN and infinities) are silently clipped.
func (s *Surface) Erase(x, y float64) {
	if s == nil || s.Empty() || !finite(x) || !finite(y) {
		return
	}

	cx := x * s.scaleX
	cy := y * s.scaleY
	r := EraseRadius * math.Min(s.scaleX, s.scaleY)
	if r <= 0 {
		return
	}

	b := s.img.Rect
	if cx+r <= 0 || cy+r <= 0 || cx-r >= float64(b.Max.X) || cy-r >= float64(b.Max.Y) {
		return
	}
	x0 := max(int(math.Floor(cx-r)), b.Min.X)
	y0 := max(int(math.Floor(cy-r)), b.Min.Y)
	x1 := min(int(math.Ceil(cx+r)), b.Max.X)
	y1 := min(int(math.Ceil(cy+r)), b.Max.Y)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	invR := 1 / r
	for py := y0; py < y1; py++ {
		dy := float64(py) + 0.5 - cy
		row := s.img.PixOffset(0, py)
		for px := x0; px < x1; px++ {
			dx := float64(px) + 0.5 - cx
			t := math.Sqrt(dx*dx+dy*dy) * invR
			if t >= 1 {
				continue
			}
			sa := unit8(eraserRamp.Alpha(t))
			if sa == 0 {
				continue
			}
			i := row + px*4
			p := s.img.Pix[i : i+4 : i+4]
			if p[3] == 0 {
				continue
			}
			p[0], p[1], p[2], p[3] = composite.DestinationOut(sa, p[0], p[1], p[2], p[3])
		}
	}
}
