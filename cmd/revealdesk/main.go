// Command revealdesk is a desktop contact card hidden under the reveal
// overlay. Scratch the overlay away to unlock the form.
package main

import (
	"context"
	"flag"
	"image/color"
	"log/slog"
	"math"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/reveal"
	"github.com/gogpu/reveal/contact"
	"github.com/gogpu/reveal/gate"
	"github.com/gogpu/reveal/relay"
)

func main() {
	var (
		endpoint = flag.String("endpoint", os.Getenv("REVEAL_RELAY_ENDPOINT"), "form relay endpoint")
		verbose  = flag.Bool("v", false, "log canvas events")
	)
	flag.Parse()

	if *verbose {
		reveal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	a := app.New()
	win := a.NewWindow("Get in touch")

	ui := newContactUI(relay.New(*endpoint), func() float32 { return win.Canvas().Scale() })
	if ui == nil {
		return
	}
	defer ui.cv.Close()

	win.SetContent(ui.content())
	win.Resize(fyne.NewSize(520, 420))
	win.ShowAndRun()
}

type contactUI struct {
	cv      *reveal.Canvas
	section *contact.Section
	overlay *overlayWidget
	dim     *canvas.Rectangle

	name, email, message *widget.Entry
	submit               *widget.Button
	form                 *widget.Form
	progress             *widget.Label
	status               *widget.Label
}

func newContactUI(sender relay.Sender, scale func() float32) *contactUI {
	ui := &contactUI{
		name:     widget.NewEntry(),
		email:    widget.NewEntry(),
		message:  widget.NewMultiLineEntry(),
		progress: widget.NewLabel("Hover to reveal contact form"),
		status:   widget.NewLabel(""),
		dim:      canvas.NewRectangle(color.Transparent),
	}

	section, err := contact.NewSection(sender, contact.WithOnGateChange(func(st gate.State) {
		fyne.Do(func() { ui.applyGate(st) })
	}))
	if err != nil {
		slog.Error("revealdesk: contact section", "err", err)
		return nil
	}
	ui.section = section

	ui.cv = reveal.New(480, 320, float64(scale()), reveal.WithOnReveal(func(pct float64) {
		section.Reveal(pct)
		st := section.Gate()
		fyne.Do(func() {
			if st.ShowProgress {
				ui.progress.SetText(st.ProgressLabel())
			}
		})
	}))
	ui.overlay = newOverlayWidget(ui.cv, scale)

	bind := func(e *widget.Entry, f contact.Field) {
		e.OnChanged = func(v string) { _ = section.Set(f, v) }
	}
	bind(ui.name, contact.FieldName)
	bind(ui.email, contact.FieldEmail)
	bind(ui.message, contact.FieldMessage)
	ui.name.SetPlaceHolder("Your name")
	ui.email.SetPlaceHolder("your@email.com")
	ui.message.SetPlaceHolder("Tell me about your project...")

	ui.submit = widget.NewButton("Send Message", ui.send)
	ui.form = widget.NewForm(
		widget.NewFormItem("Name", ui.name),
		widget.NewFormItem("Email", ui.email),
		widget.NewFormItem("Message", ui.message),
	)
	ui.applyGate(section.Gate())
	return ui
}

func (ui *contactUI) content() fyne.CanvasObject {
	card := container.NewVBox(ui.form, ui.submit, ui.status)
	return container.NewBorder(nil, ui.progress, nil, nil, container.NewStack(card, ui.dim, ui.overlay))
}

// applyGate must run on the UI goroutine.
func (ui *contactUI) applyGate(st gate.State) {
	for _, e := range []*widget.Entry{ui.name, ui.email, ui.message} {
		if st.FieldsEnabled {
			e.Enable()
		} else {
			e.Disable()
		}
	}
	if st.SubmitEnabled {
		ui.submit.Enable()
	} else {
		ui.submit.Disable()
	}
	ui.dim.FillColor = dimColor(st, theme.Color(theme.ColorNameBackground))
	ui.dim.Refresh()
	if st.OverlayHidden {
		ui.overlay.Hide()
		ui.progress.SetText("")
	}
}

// dimColor is a veil of bg that leaves the card underneath showing at
// st.FormOpacity.
func dimColor(st gate.State, bg color.Color) color.NRGBA {
	c := color.NRGBAModel.Convert(bg).(color.NRGBA)
	c.A = uint8(math.Round((1 - st.FormOpacity()) * 255))
	return c
}

func (ui *contactUI) send() {
	ui.submit.Disable()
	ui.status.SetText(contact.StatusSending.Message())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), relay.DefaultTimeout)
		defer cancel()
		st, err := ui.section.Submit(ctx)
		fyne.Do(func() {
			ui.submit.Enable()
			if err != nil {
				ui.status.SetText(err.Error())
				return
			}
			ui.status.SetText(st.Message())
			if st == contact.StatusSuccess {
				ui.name.SetText("")
				ui.email.SetText("")
				ui.message.SetText("")
			}
		})
	}()
}
