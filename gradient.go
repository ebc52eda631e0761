package reveal

import (
	"math"
	"sort"
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// LinearGradient is a color transition along the segment Start→End.
// Points beyond either end take the nearest stop color.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// NewLinearGradient creates a linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64, stops ...ColorStop) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: sortStops(stops)}
}

// ColorAt returns the color at the given point.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	dx := g.X1 - g.X0
	dy := g.Y1 - g.Y0
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return firstStopColor(g.Stops)
	}

	// t = dot(P - Start, End - Start) / |End - Start|^2
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / lengthSq
	return colorAtOffset(g.Stops, t)
}

// AlphaRamp is a radial alpha profile: Alpha(t) for t = distance/radius.
// It models a radial gradient whose stops differ only in alpha, which is
// all the eraser needs.
type AlphaRamp []AlphaStop

// AlphaStop is one stop of an AlphaRamp.
type AlphaStop struct {
	Offset float64
	Alpha  float64
}

// Alpha returns the interpolated alpha at t, clamped to the end stops.
func (r AlphaRamp) Alpha(t float64) float64 {
	if len(r) == 0 || math.IsNaN(t) {
		return 0
	}
	if t <= r[0].Offset {
		return r[0].Alpha
	}
	for i := 1; i < len(r); i++ {
		if t <= r[i].Offset {
			a, b := r[i-1], r[i]
			if b.Offset == a.Offset {
				return a.Alpha
			}
			k := (t - a.Offset) / (b.Offset - a.Offset)
			return a.Alpha + k*(b.Alpha-a.Alpha)
		}
	}
	return r[len(r)-1].Alpha
}

// sortStops returns a sorted copy of stops.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// firstStopColor returns the first stop's color or transparent if empty.
func firstStopColor(stops []ColorStop) RGBA {
	if len(stops) == 0 {
		return RGBA{}
	}
	return stops[0].Color
}

// colorAtOffset returns the interpolated color at t (pad extend mode).
// Stops must be sorted.
func colorAtOffset(stops []ColorStop, t float64) RGBA {
	switch len(stops) {
	case 0:
		return RGBA{}
	case 1:
		return stops[0].Color
	}

	t = clamp01(t)
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx < len(stops) && stops[idx].Offset == t {
		// Exact hit: the stop color, without a linear-light round trip.
		return stops[idx].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1, s2 := stops[idx-1], stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return interpolateLinearLight(s1.Color, s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}

// interpolateLinearLight blends two colors in linear sRGB space.
func interpolateLinearLight(c1, c2 RGBA, t float64) RGBA {
	lerp := func(a, b float64) float64 {
		la, lb := srgbToLinear(a), srgbToLinear(b)
		return linearToSRGB(la + t*(lb-la))
	}
	return RGBA{
		R: lerp(c1.R, c2.R),
		G: lerp(c1.G, c2.G),
		B: lerp(c1.B, c2.B),
		A: c1.A + t*(c2.A-c1.A),
	}
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
