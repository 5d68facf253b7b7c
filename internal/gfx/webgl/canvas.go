//go:build js && wasm

package webgl

import (
	"syscall/js"

	"shaderplay/internal/gfx"
)

// Canvas is an HTML canvas element used as gfx.Surface.
type Canvas struct {
	el js.Value
}

var _ gfx.Surface = (*Canvas)(nil)

// FindCanvas looks up the canvas element with the given id.
func FindCanvas(id string) *Canvas {
	return &Canvas{el: js.Global().Get("document").Call("getElementById", id)}
}

func (c *Canvas) Element() js.Value { return c.el }

func (c *Canvas) LogicalSize() (float64, float64) {
	return c.el.Get("clientWidth").Float(), c.el.Get("clientHeight").Float()
}

// PixelRatio is window.devicePixelRatio, or 1 when the browser has none.
func (c *Canvas) PixelRatio() float64 {
	dpr := js.Global().Get("devicePixelRatio")
	if dpr.Type() != js.TypeNumber {
		return 1
	}
	return dpr.Float()
}

func (c *Canvas) BackingSize() (int, int) {
	return c.el.Get("width").Int(), c.el.Get("height").Int()
}

func (c *Canvas) SetBackingSize(w, h int) {
	c.el.Set("width", w)
	c.el.Set("height", h)
}

// AnimationFrames schedules frames with window.requestAnimationFrame. The
// first timestamp delivered becomes the loop origin.
type AnimationFrames struct {
	pending gfx.FrameFunc
	fn      js.Func
	origin  float64
	started bool
}

var _ gfx.Scheduler = (*AnimationFrames)(nil)

func NewAnimationFrames() *AnimationFrames {
	a := &AnimationFrames{}
	a.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		now := args[0].Float()
		if !a.started {
			a.origin = now
			a.started = true
		}
		fn := a.pending
		a.pending = nil
		if fn != nil {
			fn(now - a.origin)
		}
		return nil
	})
	return a
}

func (a *AnimationFrames) RequestFrame(fn gfx.FrameFunc) {
	a.pending = fn
	js.Global().Call("requestAnimationFrame", a.fn)
}
