// Command revealterm runs the reveal overlay over a contact form in a
// terminal. Hover or drag the mouse to scratch the overlay away; once enough
// is revealed, Tab between fields, type, and press Enter to send.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/reveal"
	"github.com/gogpu/reveal/contact"
	"github.com/gogpu/reveal/gate"
	"github.com/gogpu/reveal/relay"
)

// One terminal cell stands for cellW x cellH CSS pixels; each cell shows
// two vertically stacked samples via the upper half block.
const (
	cellW = 8
	cellH = 16
)

var (
	formBackground = [3]int32{15, 23, 42}
	formText       = tcell.NewRGBColor(226, 232, 240)
	formAccent     = tcell.NewRGBColor(56, 189, 248)
)

type app struct {
	screen  tcell.Screen
	canvas  *reveal.Canvas
	section *contact.Section
	field   contact.Field
	hovered bool
	pressed bool
	events  chan tcell.Event
}

func main() {
	var (
		endpoint = flag.String("endpoint", os.Getenv("REVEAL_RELAY_ENDPOINT"), "form relay endpoint")
		logFile  = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		reveal.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	a, err := newApp(relay.New(*endpoint))
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	a.run()
}

func newApp(sender relay.Sender) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	section, err := contact.NewSection(sender)
	if err != nil {
		screen.Fini()
		return nil, err
	}

	cols, rows := screen.Size()
	a := &app{
		screen:  screen,
		section: section,
		events:  make(chan tcell.Event, 64),
	}
	a.canvas = reveal.New(float64(cols*cellW), float64((rows-1)*cellH), 1,
		reveal.WithOnReveal(section.Reveal),
	)
	return a, nil
}

func (a *app) run() {
	defer a.screen.Fini()
	defer a.canvas.Close()

	quit := make(chan struct{})
	defer close(quit)
	go pump(a.screen.PollEvent, a.events, quit)

	// Resizes land asynchronously after the debounce; repaint on a tick.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-a.events:
			if !a.handle(ev) {
				return
			}
		case <-ticker.C:
		}
		a.draw()
	}
}

// pump forwards polled events to out until poll returns nil or quit is
// closed.
func pump(poll func() tcell.Event, out chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-quit:
			return
		}
	}
}

func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.key(ev)
	case *tcell.EventMouse:
		a.mouse(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.canvas.Resize(float64(cols*cellW), float64((rows-1)*cellH), 1)
		a.screen.Sync()
	}
	return true
}

func (a *app) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, rows := a.screen.Size()
	inside := y < rows-1

	switch {
	case inside && !a.hovered:
		a.hovered = true
		a.canvas.PointerEnter()
	case !inside && a.hovered:
		a.hovered = false
		a.canvas.PointerLeave()
	}

	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !a.pressed:
		a.pressed = true
		a.canvas.PointerDown()
	case !down && a.pressed:
		a.pressed = false
		a.canvas.PointerUp()
	}

	if inside {
		a.canvas.PointerMove(float64(x*cellW+cellW/2), float64(y*cellH+cellH/2))
	}
}

func (a *app) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		a.field = (a.field + 1) % (contact.FieldMessage + 1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if v := []rune(a.value(a.field)); len(v) > 0 {
			a.setField(string(v[:len(v)-1]))
		}
	case tcell.KeyEnter:
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), relay.DefaultTimeout)
			defer cancel()
			if _, err := a.section.Submit(ctx); err != nil {
				reveal.Logger().Info("revealterm: submit refused", "err", err)
				return
			}
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}()
	case tcell.KeyRune:
		a.setField(a.value(a.field) + string(ev.Rune()))
	}
	return true
}

func (a *app) value(f contact.Field) string {
	form := a.section.Form()
	switch f {
	case contact.FieldName:
		return form.Name
	case contact.FieldEmail:
		return form.Email
	default:
		return form.Message
	}
}

// setField ignores edits while the fields are still locked.
func (a *app) setField(v string) {
	_ = a.section.Set(a.field, v)
}

func (a *app) formLines() []string {
	marker := func(f contact.Field) string {
		if f == a.field {
			return ">"
		}
		return " "
	}
	return []string{
		"",
		"  Get in touch",
		"",
		fmt.Sprintf(" %s Name:    %s", marker(contact.FieldName), a.value(contact.FieldName)),
		fmt.Sprintf(" %s Email:   %s", marker(contact.FieldEmail), a.value(contact.FieldEmail)),
		fmt.Sprintf(" %s Message: %s", marker(contact.FieldMessage), a.value(contact.FieldMessage)),
		"",
		"    [ Send Message ]  (Enter)",
		"",
		"  " + a.section.Status().Message(),
	}
}

func (a *app) draw() {
	cols, rows := a.screen.Size()
	st := a.section.Gate()
	img := a.canvas.Snapshot()
	lines := a.formLines()

	for y := 0; y < rows-1; y++ {
		var line []rune
		if y < len(lines) {
			line = []rune(lines[y])
		}
		for x := 0; x < cols; x++ {
			ch := ' '
			if x < len(line) {
				ch = line[x]
			}
			top := sample(img, st, x*cellW+cellW/2, y*cellH+cellH/4)
			bot := sample(img, st, x*cellW+cellW/2, y*cellH+3*cellH/4)
			if (int(top.a)+int(bot.a))/2 < reveal.TransparentThreshold {
				fg := formText
				if y == 7 && st.SubmitEnabled {
					fg = formAccent
				}
				style := tcell.StyleDefault.Foreground(fg).Background(bot.color()).Dim(!st.FormOpaque)
				a.screen.SetContent(x, y, ch, nil, style)
				continue
			}
			a.screen.SetContent(x, y, '▀', nil, tcell.StyleDefault.Foreground(top.color()).Background(bot.color()))
		}
	}

	status := []rune(statusLine(st))
	for x := 0; x < cols; x++ {
		ch := ' '
		if x < len(status) {
			ch = status[x]
		}
		a.screen.SetContent(x, rows-1, ch, nil, tcell.StyleDefault.Reverse(true))
	}
	a.screen.Show()
}

func statusLine(st gate.State) string {
	switch {
	case st.ShowHint:
		return " Hover to reveal contact form  (Esc to quit)"
	case st.ShowProgress:
		return " " + st.ProgressLabel()
	default:
		return " Form unlocked"
	}
}

type px struct {
	r, g, b int32
	a       uint8
}

func (p px) color() tcell.Color { return tcell.NewRGBColor(p.r, p.g, p.b) }

// sample composites the overlay pixel at (x, y) over the form background.
func sample(img *image.RGBA, st gate.State, x, y int) px {
	bg := px{formBackground[0], formBackground[1], formBackground[2], 0}
	if img == nil || st.OverlayHidden || !(image.Point{x, y}.In(img.Bounds())) {
		return bg
	}
	c := img.RGBAAt(x, y)
	inv := int32(255 - c.A)
	return px{
		r: int32(c.R) + bg.r*inv/255,
		g: int32(c.G) + bg.g*inv/255,
		b: int32(c.B) + bg.b*inv/255,
		a: c.A,
	}
}
