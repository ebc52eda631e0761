//go:build js && wasm

// Command revealwasm mounts the reveal overlay on a <canvas> element in a
// web page. The canvas should sit absolutely positioned over the contact
// form inside a common container; its size tracks the container.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o reveal.wasm ./cmd/revealwasm
//
// and load it with the wasm_exec.js shipped with Go. Coverage readings are
// dispatched on the canvas as "reveal" CustomEvents with the percentage in
// event.detail.
package main

import (
	"image"
	"strconv"
	"syscall/js"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/reveal"
)

const canvasID = "reveal-canvas"

type host struct {
	window    js.Value
	element   js.Value
	container js.Value
	ctx2d     js.Value

	cv        *reveal.Canvas
	listeners []listener
	done      chan struct{}
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

func main() {
	h := newHost()
	if h == nil {
		return
	}
	<-h.done
}

func newHost() *host {
	window := js.Global()
	doc := window.Get("document")
	el := doc.Call("getElementById", canvasID)
	if el.IsNull() || el.IsUndefined() {
		reveal.Logger().Warn("revealwasm: canvas element not found", "id", canvasID)
		return nil
	}

	h := &host{
		window:    window,
		element:   el,
		container: el.Get("parentElement"),
		ctx2d:     el.Call("getContext", "2d"),
		done:      make(chan struct{}),
	}
	w, ht := h.containerSize()
	h.cv = reveal.New(w, ht, h.pixelRatio(),
		reveal.WithClass(el.Get("className").String()),
		reveal.WithOnReveal(h.dispatch),
	)
	h.blit()

	h.on(el, "mouseenter", func(js.Value) { h.cv.PointerEnter() })
	h.on(el, "mousedown", func(js.Value) { h.cv.PointerDown() })
	h.on(el, "mouseup", func(js.Value) { h.cv.PointerUp() })
	h.on(el, "mouseleave", func(js.Value) { h.cv.PointerLeave() })
	h.on(el, "mousemove", func(ev js.Value) {
		x, y := h.local(ev)
		if h.cv.PointerMove(x, y) {
			h.blit()
		}
	})
	h.on(el, "touchstart", func(js.Value) { h.cv.TouchStart() })
	h.on(el, "touchend", func(js.Value) { h.cv.TouchEnd() })
	h.on(el, "touchmove", func(ev js.Value) {
		touches := ev.Get("touches")
		if touches.Length() == 0 {
			return
		}
		x, y := h.local(touches.Index(0))
		if h.cv.TouchMove(x, y) {
			ev.Call("preventDefault")
			h.blit()
		}
	})
	h.on(window, "resize", func(js.Value) {
		w, ht := h.containerSize()
		h.cv.Resize(w, ht, h.pixelRatio())
		time.AfterFunc(reveal.DefaultResizeDebounce+10*time.Millisecond, h.blit)
	})
	h.on(window, "pagehide", func(js.Value) { h.teardown() })
	return h
}

// on registers fn as a non-passive listener so touchmove may cancel
// scrolling.
func (h *host) on(target js.Value, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, f, map[string]any{"passive": false})
	h.listeners = append(h.listeners, listener{target: target, event: event, fn: f})
}

func (h *host) teardown() {
	for _, l := range h.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	h.listeners = nil
	_ = h.cv.Close()
	close(h.done)
}

func (h *host) pixelRatio() float64 {
	if v := h.window.Get("devicePixelRatio"); v.Type() == js.TypeNumber {
		return v.Float()
	}
	return 1
}

func (h *host) containerSize() (w, ht float64) {
	rect := h.container.Call("getBoundingClientRect")
	return rect.Get("width").Float(), rect.Get("height").Float()
}

// local converts an event's client position to canvas CSS coordinates.
func (h *host) local(ev js.Value) (x, y float64) {
	rect := h.element.Call("getBoundingClientRect")
	r := reveal.Rect{
		Left:   rect.Get("left").Float(),
		Top:    rect.Get("top").Float(),
		Width:  rect.Get("width").Float(),
		Height: rect.Get("height").Float(),
	}
	return r.Local(ev.Get("clientX").Float(), ev.Get("clientY").Float())
}

func (h *host) dispatch(pct float64) {
	ev := h.window.Get("CustomEvent").New("reveal", map[string]any{"detail": pct})
	h.element.Call("dispatchEvent", ev)
}

// blit copies the overlay into the element. ImageData wants straight
// alpha, so the premultiplied snapshot is converted first.
func (h *host) blit() {
	img := h.cv.Snapshot()
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		// ImageData rejects a zero width or height.
		return
	}
	straight := image.NewNRGBA(b)
	draw.Draw(straight, b, img, b.Min, draw.Src)

	h.element.Set("width", b.Dx())
	h.element.Set("height", b.Dy())
	cssW, cssH := h.containerSize()
	style := h.element.Get("style")
	style.Set("width", strconv.FormatFloat(cssW, 'f', -1, 64)+"px")
	style.Set("height", strconv.FormatFloat(cssH, 'f', -1, 64)+"px")

	data := js.Global().Get("Uint8ClampedArray").New(len(straight.Pix))
	js.CopyBytesToJS(data, straight.Pix)
	imageData := js.Global().Get("ImageData").New(data, b.Dx(), b.Dy())
	h.ctx2d.Call("putImageData", imageData, 0, 0)
}
