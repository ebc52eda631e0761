package main

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/reveal"
)

// overlayWidget shows a reveal.Canvas and feeds it pointer events.
type overlayWidget struct {
	widget.BaseWidget
	cv     *reveal.Canvas
	raster *canvas.Raster
	scale  func() float32
}

var _ fyne.Widget = (*overlayWidget)(nil)
var _ fyne.Draggable = (*overlayWidget)(nil)
var _ desktop.Mouseable = (*overlayWidget)(nil)
var _ desktop.Hoverable = (*overlayWidget)(nil)

func newOverlayWidget(cv *reveal.Canvas, scale func() float32) *overlayWidget {
	o := &overlayWidget{cv: cv, scale: scale}
	o.raster = canvas.NewRaster(func(w, h int) image.Image {
		if img := o.cv.Snapshot(); img != nil {
			return img
		}
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	})
	o.ExtendBaseWidget(o)
	return o
}

// Resize follows the container and repaints once the debounced
// reinitialization has landed.
func (o *overlayWidget) Resize(size fyne.Size) {
	if size == o.Size() {
		return
	}
	o.BaseWidget.Resize(size)
	o.cv.Resize(float64(size.Width), float64(size.Height), float64(o.scale()))
	time.AfterFunc(reveal.DefaultResizeDebounce+10*time.Millisecond, func() {
		fyne.Do(o.raster.Refresh)
	})
}

func (o *overlayWidget) MouseIn(*desktop.MouseEvent) { o.cv.PointerEnter() }

func (o *overlayWidget) MouseMoved(e *desktop.MouseEvent) {
	if o.cv.PointerMove(float64(e.Position.X), float64(e.Position.Y)) {
		o.raster.Refresh()
	}
}

func (o *overlayWidget) MouseOut() { o.cv.PointerLeave() }

func (o *overlayWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		o.cv.PointerDown()
	}
}

func (o *overlayWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		o.cv.PointerUp()
	}
}

// Dragged covers touch drags, which arrive without hover or press events.
func (o *overlayWidget) Dragged(e *fyne.DragEvent) {
	if o.cv.State() == reveal.Idle {
		o.cv.TouchStart()
	}
	if o.cv.TouchMove(float64(e.Position.X), float64(e.Position.Y)) {
		o.raster.Refresh()
	}
}

func (o *overlayWidget) DragEnd() { o.cv.TouchEnd() }

func (o *overlayWidget) CreateRenderer() fyne.WidgetRenderer {
	return &overlayRenderer{overlay: o}
}

type overlayRenderer struct {
	overlay *overlayWidget
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.overlay.raster}
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	r.overlay.raster.Resize(size)
}

func (r *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *overlayRenderer) Refresh() {
	r.overlay.raster.Refresh()
}

func (r *overlayRenderer) Destroy() {}
