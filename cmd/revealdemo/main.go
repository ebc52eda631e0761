// Command revealdemo paints the reveal overlay, drags the eraser across it
// and saves the result as a PNG.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"

	"github.com/gogpu/reveal"
	"github.com/gogpu/reveal/gate"
)

func main() {
	var (
		width   = flag.Float64("width", 480, "overlay width in CSS pixels")
		height  = flag.Float64("height", 360, "overlay height in CSS pixels")
		dpr     = flag.Float64("dpr", 2, "device pixel ratio")
		seed    = flag.Uint64("seed", 1, "speckle seed")
		strokes = flag.Int("strokes", 3, "number of zigzag passes")
		output  = flag.String("output", "reveal.png", "output file")
		verbose = flag.Bool("v", false, "log canvas events")
	)
	flag.Parse()

	if *verbose {
		reveal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	policy := gate.DefaultPolicy()
	last := policy.Evaluate(0)
	cv := reveal.New(*width, *height, *dpr,
		reveal.WithRand(rand.New(rand.NewPCG(*seed, *seed))),
		reveal.WithResizeDebounce(0),
		reveal.WithOnReveal(func(pct float64) {
			st := policy.Evaluate(pct)
			if st.Changed(last) {
				log.Printf("%s: fields=%t submit=%t overlay hidden=%t",
					st.ProgressLabel(), st.FieldsEnabled, st.SubmitEnabled, st.OverlayHidden)
			}
			last = st
		}),
	)
	defer cv.Close()
	if err := cv.Err(); err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}

	drag(cv, *width, *height, *strokes)

	if err := save(*output, cv); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	w, h := cv.Size()
	log.Printf("Overlay saved to %s (%dx%d, %.1f%% revealed)\n", *output, w, h, cv.Coverage())
}

// drag sweeps a sine zigzag across the overlay, one pass per band.
func drag(cv *reveal.Canvas, w, h float64, passes int) {
	if passes <= 0 {
		return
	}
	band := h / float64(passes)
	cv.PointerDown()
	defer cv.PointerUp()
	for p := 0; p < passes; p++ {
		mid := band * (float64(p) + 0.5)
		for x := 0.0; x <= w; x += 6 {
			xx := x
			if p%2 == 1 {
				xx = w - x
			}
			cv.PointerMove(xx, mid+band*0.35*math.Sin(x/30))
		}
	}
}

func save(path string, cv *reveal.Canvas) error {
	img := cv.Snapshot()
	if img == nil {
		return reveal.ErrNoContext
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
