package reveal

import (
	"math/rand/v2"
	"testing"
)

// BenchmarkPaint measures a full overlay rebuild at a typical retina size.
func BenchmarkPaint(b *testing.B) {
	s, err := NewSurface(672, 600, 2, nil)
	if err != nil {
		b.Fatal(err)
	}
	rnd := rand.New(rand.NewPCG(1, 2))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Paint(s, rnd)
	}
}

// BenchmarkStroke measures one pointer move: erase plus coverage estimate.
func BenchmarkStroke(b *testing.B) {
	s := newPainted(b, 672, 600, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Erase(float64(i%672), float64((i/672)%600))
		_ = s.Coverage()
	}
}

func BenchmarkCoverage(b *testing.B) {
	s := newPainted(b, 672, 600, 2)
	b.SetBytes(int64(len(s.img.Pix)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Coverage()
	}
}
