package reveal

import (
	"math"
	"testing"
)

func TestAlphaRamp(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{-1, 1},
		{0, 1},
		{0.35, 0.9},
		{0.7, 0.8},
		{0.85, 0.4},
		{1, 0},
		{2, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := eraserRamp.Alpha(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Alpha(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	if got := (AlphaRamp{}).Alpha(0.5); got != 0 {
		t.Errorf("empty ramp Alpha = %v, want 0", got)
	}
}

func TestAlphaRampMonotonic(t *testing.T) {
	prev := eraserRamp.Alpha(0)
	for i := 1; i <= 1000; i++ {
		a := eraserRamp.Alpha(float64(i) / 1000)
		if a > prev {
			t.Fatalf("eraser alpha increases at t=%v", float64(i)/1000)
		}
		prev = a
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0,
		ColorStop{Offset: 1, Color: RGBA{R: 0, G: 0, B: 1, A: 1}},
		ColorStop{Offset: 0, Color: RGBA{R: 1, G: 0, B: 0, A: 1}},
	)

	if c := g.ColorAt(0, 50); c.R != 1 || c.B != 0 {
		t.Errorf("start = %+v, want red", c)
	}
	if c := g.ColorAt(100, 0); c.B != 1 || c.R != 0 {
		t.Errorf("end = %+v, want blue", c)
	}
	if c := g.ColorAt(-50, 0); c.R != 1 {
		t.Errorf("before start = %+v, want padded red", c)
	}
	if c := g.ColorAt(500, 0); c.B != 1 {
		t.Errorf("after end = %+v, want padded blue", c)
	}

	// Linear-light blending keeps the midpoint brighter than a naive sRGB mix.
	mid := g.ColorAt(50, 0)
	if mid.R <= 0.5 || mid.B <= 0.5 {
		t.Errorf("midpoint = %+v, want both channels above 0.5", mid)
	}
}

func TestColorAtStopIsExact(t *testing.T) {
	stops := sortStops(overlayStops)
	for _, st := range stops {
		if got := colorAtOffset(stops, st.Offset); got != st.Color {
			t.Errorf("colorAtOffset(%v) = %+v, want stop color %+v", st.Offset, got, st.Color)
		}
	}
	if got := colorAtOffset(stops, 2); got != stops[len(stops)-1].Color {
		t.Errorf("colorAtOffset past end = %+v, want last stop", got)
	}
}

func TestLinearGradientDegenerate(t *testing.T) {
	g := NewLinearGradient(5, 5, 5, 5, ColorStop{Offset: 0.5, Color: paintWhite})
	if c := g.ColorAt(1, 1); c != paintWhite {
		t.Errorf("degenerate gradient = %+v, want first stop", c)
	}
	if c := NewLinearGradient(0, 0, 1, 1).ColorAt(0, 0); c != (RGBA{}) {
		t.Errorf("no stops = %+v, want transparent", c)
	}
}
