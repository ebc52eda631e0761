package reveal

import "image"

// TransparentThreshold is the alpha below which a pixel counts as revealed.
const TransparentThreshold = 128

// Coverage returns the percentage of pixels in img whose alpha is below
// TransparentThreshold. The result is in [0, 100]; a nil or empty image
// yields 0.
func Coverage(img *image.RGBA) float64 {
	if img == nil {
		return 0
	}
	b := img.Rect
	w, h := b.Dx(), b.Dy()
	total := w * h
	if total <= 0 {
		return 0
	}

	transparent := 0
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		row := img.Pix[off : off+w*4]
		for i := 3; i < len(row); i += 4 {
			if row[i] < TransparentThreshold {
				transparent++
			}
		}
	}

	pct := float64(transparent) / float64(total) * 100
	return min(max(pct, 0), 100)
}
