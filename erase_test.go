package reveal

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"
)

// newPainted returns a painted surface with a deterministic texture.
func newPainted(t testing.TB, w, h, dpr float64) *Surface {
	t.Helper()
	s, err := NewSurface(w, h, dpr, nil)
	if err != nil {
		t.Fatalf("NewSurface(%v, %v, %v): %v", w, h, dpr, err)
	}
	Paint(s, rand.New(rand.NewPCG(1, 2)))
	return s
}

// singleStrokeBound is the area of one eraser disc as a percentage of a
// 200x200 surface: π·40²/40000·100.
var singleStrokeBound = math.Pi * EraseRadius * EraseRadius / (200 * 200) * 100

func TestEraseScenario(t *testing.T) {
	s := newPainted(t, 200, 200, 1)

	if got := s.Coverage(); got != 0 {
		t.Fatalf("fresh coverage = %v, want 0", got)
	}

	s.Erase(100, 100)
	first := s.Coverage()
	if first <= 0 || first > singleStrokeBound {
		t.Fatalf("coverage after one stroke = %v, want in (0, %.2f]", first, singleStrokeBound)
	}

	s.Erase(100, 100)
	second := s.Coverage()
	if second < first {
		t.Errorf("second stroke at same point decreased coverage: %v -> %v", first, second)
	}
	if second > singleStrokeBound {
		t.Errorf("second stroke at same point = %v, exceeds single-disc bound %.2f", second, singleStrokeBound)
	}

	s.Erase(10, 10)
	third := s.Coverage()
	if third <= second {
		t.Errorf("disjoint stroke did not increase coverage: %v -> %v", second, third)
	}
	if third-second > singleStrokeBound {
		t.Errorf("disjoint corner stroke added %v, more than one disc", third-second)
	}
}

func TestEraseClearsCenter(t *testing.T) {
	s := newPainted(t, 200, 200, 1)
	s.Erase(100, 100)

	// One stroke leaves at most a trace at the center; a couple more
	// clear the core completely.
	if a := s.Alpha(100, 100); a > 1 {
		t.Errorf("center alpha after one stroke = %d, want <= 1", a)
	}
	s.Erase(100, 100)
	s.Erase(100, 100)
	for y := 90; y < 110; y++ {
		for x := 90; x < 110; x++ {
			if a := s.Alpha(x, y); a != 0 {
				t.Fatalf("core alpha at (%d, %d) after three strokes = %d, want 0", x, y, a)
			}
		}
	}
	// Outside the radius nothing changes.
	if a := s.Alpha(100+EraseRadius+2, 100); a != 255 {
		t.Errorf("alpha beyond radius = %d, want 255", a)
	}
	// The rim is soft: partially erased between 0.7r and r.
	rim := s.Alpha(100+int(0.9*EraseRadius), 100)
	if rim == 0 || rim == 255 {
		t.Errorf("rim alpha = %d, want partially transparent", rim)
	}
}

func TestEraseUsesMinScale(t *testing.T) {
	s := newPainted(t, 100, 100, 2)
	sx, sy := s.Scale()
	if sx != 2 || sy != 2 {
		t.Fatalf("Scale() = (%v, %v), want (2, 2)", sx, sy)
	}

	s.Erase(50, 50) // device center (100, 100), radius 80 device px
	if a := s.Alpha(100+60, 100); a >= TransparentThreshold {
		t.Errorf("alpha at 60 device px = %d, want erased", a)
	}
	if a := s.Alpha(100+85, 100); a != 255 {
		t.Errorf("alpha at 85 device px = %d, want untouched", a)
	}
}

func TestEraseBoundsSafety(t *testing.T) {
	s := newPainted(t, 200, 200, 1)
	before := bytes.Clone(s.img.Pix)

	coords := []struct{ x, y float64 }{
		{-1000, -1000},
		{1e9, 50},
		{50, -1e12},
		{math.NaN(), 10},
		{10, math.Inf(1)},
		{math.Inf(-1), math.Inf(-1)},
	}
	for _, c := range coords {
		s.Erase(c.x, c.y)
	}

	if !bytes.Equal(before, s.img.Pix) {
		t.Error("out-of-bounds erase modified the buffer")
	}
	if got := s.Coverage(); got != 0 {
		t.Errorf("coverage after out-of-bounds erase = %v, want 0", got)
	}
}

func TestErasePartiallyOutside(t *testing.T) {
	s := newPainted(t, 200, 200, 1)
	s.Erase(-20, 100) // disc overlaps the left edge
	if got := s.Coverage(); got <= 0 {
		t.Errorf("edge-overlapping stroke coverage = %v, want > 0", got)
	}
	if a := s.Alpha(0, 100); a >= TransparentThreshold {
		t.Errorf("edge pixel alpha = %d, want erased", a)
	}
}

// TestEraseMonotonic erases at random points, some outside the surface, and
// checks both the reading and every pixel alpha never go up.
func TestEraseMonotonic(t *testing.T) {
	s := newPainted(t, 160, 120, 1.5)
	rnd := rand.New(rand.NewPCG(7, 11))

	prevCov := s.Coverage()
	prevPix := bytes.Clone(s.img.Pix)
	for i := 0; i < 200; i++ {
		s.Erase(rnd.Float64()*240-40, rnd.Float64()*200-40)

		cov := s.Coverage()
		if cov < prevCov {
			t.Fatalf("stroke %d: coverage decreased %v -> %v", i, prevCov, cov)
		}
		for j := 3; j < len(prevPix); j += 4 {
			if s.img.Pix[j] > prevPix[j] {
				t.Fatalf("stroke %d: alpha at byte %d increased %d -> %d", i, j, prevPix[j], s.img.Pix[j])
			}
		}
		prevCov = cov
		copy(prevPix, s.img.Pix)
	}
}

func TestEraseFullSurface(t *testing.T) {
	s := newPainted(t, 200, 200, 1)
	for pass := 0; pass < 2; pass++ {
		for y := 0.0; y <= 200; y += 10 {
			for x := 0.0; x <= 200; x += 10 {
				s.Erase(x, y)
				if c := s.Coverage(); c < 0 || c > 100 {
					t.Fatalf("coverage %v outside [0, 100]", c)
				}
			}
		}
	}
	if c := s.Coverage(); c < 99 {
		t.Errorf("coverage after dense erasing = %v, want >= 99", c)
	}
}

func TestEraseAlreadyTransparent(t *testing.T) {
	s, err := NewSurface(50, 50, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Unpainted surface is fully transparent.
	s.Erase(25, 25)
	for i, v := range s.img.Pix {
		if v != 0 {
			t.Fatalf("erase on transparent surface wrote %d at %d", v, i)
		}
	}
}

func TestEraseEmptySurface(t *testing.T) {
	s, err := NewSurface(0, 80, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Erase(0, 0)
	if got := s.Coverage(); got != 0 {
		t.Errorf("empty surface coverage = %v, want 0", got)
	}

	var nilSurface *Surface
	nilSurface.Erase(1, 1) // must not panic
}
