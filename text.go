package reveal

import (
	"bytes"
	"image"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/reveal/internal/cache"
)

// Instruction lines painted at the center of a fresh overlay.
const (
	HeadlineText = "Hover to reveal contact form"
	HintText     = "Move your cursor over this area"
)

type fontID int

const (
	fontBold fontID = iota
	fontRegular
)

var fontData = [...][]byte{
	fontBold:    gobold.TTF,
	fontRegular: goregular.TTF,
}

// textLine describes one centered line in CSS units.
type textLine struct {
	text    string
	font    fontID
	size    float64 // CSS px
	color   RGBA
	offsetY float64 // baseline offset from the vertical center, CSS px
}

var instructionLines = []textLine{
	{text: HeadlineText, font: fontBold, size: 24, color: inkSlate5, offsetY: -20},
	{text: HintText, font: fontRegular, size: 16, color: inkSlate4, offsetY: 10},
}

// fontSet holds parsed fonts. Both parsers are read-only after loading.
type fontSet struct {
	once    sync.Once
	err     error
	outline [len(fontData)]*opentype.Font
	shape   [len(fontData)]*gotext.Font

	// HarfbuzzShaper keeps a scratch buffer and is not safe for concurrent use.
	mu     sync.Mutex
	shaper shaping.HarfbuzzShaper
}

var fonts fontSet

func (fs *fontSet) load() error {
	fs.once.Do(func() {
		for id, ttf := range fontData {
			f, err := opentype.Parse(ttf)
			if err != nil {
				fs.err = err
				return
			}
			fs.outline[id] = f

			face, err := gotext.ParseTTF(bytes.NewReader(ttf))
			if err != nil {
				fs.err = err
				return
			}
			fs.shape[id] = face.Font
		}
	})
	return fs.err
}

// advance measures text at size device pixels with HarfBuzz shaping so
// kerning is accounted for when centering.
func (fs *fontSet) advance(id fontID, text string, size float64) (fixed.Int26_6, bool) {
	f := fs.shape[id]
	if f == nil {
		return 0, false
	}
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}

	fs.mu.Lock()
	out := fs.shaper.Shape(input)
	fs.mu.Unlock()
	return out.Advance, true
}

// maskKey identifies one rasterized instruction line.
type maskKey struct {
	text string
	font fontID
	size fixed.Int26_6
}

// textMask is a line's coverage mask with its origin at the pen position on
// the baseline.
type textMask struct {
	mask    *image.Alpha
	advance fixed.Int26_6
}

// masks keeps rendered lines so repaints at an unchanged size skip glyph
// rasterization.
var masks = cache.New[maskKey, *textMask](16)

func renderMask(line textLine, size float64) (*textMask, error) {
	face, err := opentype.NewFace(fonts.outline[line.font], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	bounds, adv := font.BoundString(face, line.text)
	if shaped, ok := fonts.advance(line.font, line.text, size); ok {
		adv = shaped
	}
	m := image.NewAlpha(image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	))
	d := font.Drawer{Dst: m, Src: image.Opaque, Face: face}
	d.DrawString(line.text)
	return &textMask{mask: m, advance: adv}, nil
}

// drawInstructions renders the centered instruction lines onto s.
// Font failures are logged and leave the painted gradient as is.
func drawInstructions(s *Surface) {
	if err := fonts.load(); err != nil {
		Logger().Warn("reveal: instruction text skipped", "err", err)
		return
	}

	cx := s.cssW / 2 * s.scaleX
	for _, line := range instructionLines {
		size := line.size * s.scaleY
		key := maskKey{text: line.text, font: line.font, size: fixed.Int26_6(size * 64)}
		tm, err := masks.GetOrCreate(key, func() (*textMask, error) {
			return renderMask(line, size)
		})
		if err != nil {
			Logger().Warn("reveal: font face", "size", size, "err", err)
			continue
		}

		baseline := (s.cssH/2 + line.offsetY) * s.scaleY
		pen := image.Pt(
			int(math.Round(cx-float64(tm.advance)/128)),
			int(math.Round(baseline)),
		)
		draw.DrawMask(s.img, tm.mask.Rect.Add(pen), image.NewUniform(line.color.NRGBA()),
			image.Point{}, tm.mask, tm.mask.Rect.Min, draw.Over)
	}
}
