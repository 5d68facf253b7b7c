//go:build !js

// Package host runs the render loop in a GLFW window.
package host

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"shaderplay/internal/gfx"
	"shaderplay/internal/gfx/glcore"
	"shaderplay/internal/logging"
)

const (
	previewWidth  = 320
	previewHeight = 240
)

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// Samples enables multisampling when positive.
	Samples int
	// ExitOnInput closes the window on any key or mouse button press.
	ExitOnInput bool
	HideCursor  bool
	// ParentHWND embeds the window as a child of a native window (Windows
	// screensaver preview). Zero opens a normal window.
	ParentHWND uintptr
	Log        logging.Logger
}

// Window is a GLFW window with an OpenGL 3.3 core context. It is the
// drawing surface and display-sync scheduler of the desktop viewer, and must
// be used from the main OS thread.
type Window struct {
	win  *glfw.Window
	opts Options
	log  logging.Logger
	gl   *glcore.Context

	backingW, backingH int
	pending            gfx.FrameFunc
}

var (
	_ gfx.Surface   = (*Window)(nil)
	_ gfx.Scheduler = (*Window)(nil)
)

// Open initializes GLFW and creates the window. Any failure means no
// graphics context can be had and is reported as *gfx.ContextUnavailableError.
func Open(opts Options) (*Window, error) {
	log := opts.Log
	if log == nil {
		log = logging.NewNopLogger()
	}
	if err := glfw.Init(); err != nil {
		return nil, &gfx.ContextUnavailableError{Reason: "glfw init", Err: err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Samples > 0 {
		glfw.WindowHint(glfw.Samples, opts.Samples)
	}

	width, height := opts.Width, opts.Height
	var monitor *glfw.Monitor
	switch {
	case opts.ParentHWND != 0:
		width, height = previewWidth, previewHeight
		glfw.WindowHint(glfw.Resizable, glfw.False)
		// Shown again once embedded, to avoid a flash of a top-level window.
		glfw.WindowHint(glfw.Visible, glfw.False)
	case opts.Fullscreen:
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	win, err := glfw.CreateWindow(width, height, opts.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &gfx.ContextUnavailableError{Reason: "create window", Err: err}
	}
	if opts.ParentHWND != 0 {
		w, h := embedIntoParent(win, opts.ParentHWND, opts.Title, log)
		log.Debugf("Embedded preview into parent window %d at %dx%d", opts.ParentHWND, w, h)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{win: win, opts: opts, log: log}
	w.backingW, w.backingH = win.GetFramebufferSize()

	if opts.ExitOnInput {
		win.SetKeyCallback(func(_ *glfw.Window, _ glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
			if action == glfw.Press {
				win.SetShouldClose(true)
			}
		})
		win.SetMouseButtonCallback(func(_ *glfw.Window, _ glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
			if action == glfw.Press {
				win.SetShouldClose(true)
			}
		})
	}
	if opts.HideCursor {
		win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}
	return w, nil
}

// Context loads OpenGL for the window's context. Only the first call does
// any work.
func (w *Window) Context() (gfx.Context, error) {
	if w.gl != nil {
		return w.gl, nil
	}
	c, err := glcore.New()
	if err != nil {
		return nil, err
	}
	version, renderer := c.Version()
	w.log.Infof("OpenGL %s on %s", version, renderer)
	w.gl = c
	return c, nil
}

// Size is the window size in screen coordinates.
func (w *Window) Size() (int, int) { return w.win.GetSize() }

func (w *Window) LogicalSize() (float64, float64) {
	ww, wh := w.win.GetSize()
	return float64(ww), float64(wh)
}

// PixelRatio is the content scale where the framebuffer is larger than the
// window (macOS, Wayland), else 1 since window coordinates are pixels.
func (w *Window) PixelRatio() float64 {
	ww, _ := w.win.GetSize()
	fw, _ := w.win.GetFramebufferSize()
	if ww <= 0 || fw == ww {
		return 1
	}
	sx, _ := w.win.GetContentScale()
	return float64(sx)
}

func (w *Window) BackingSize() (int, int) { return w.backingW, w.backingH }

// SetBackingSize records the size rendered at. GLFW reallocates the default
// framebuffer itself when the window changes.
func (w *Window) SetBackingSize(width, height int) {
	w.log.Debugf("Backing store %dx%d -> %dx%d", w.backingW, w.backingH, width, height)
	w.backingW, w.backingH = width, height
}

func (w *Window) RequestFrame(fn gfx.FrameFunc) { w.pending = fn }

// Run delivers requested frames, one per buffer swap, until the window is
// closed or a frame does not re-arm itself.
func (w *Window) Run() {
	start := time.Now()
	for !w.win.ShouldClose() {
		fn := w.pending
		if fn == nil {
			return
		}
		w.pending = nil
		fn(float64(time.Since(start).Microseconds()) / 1000)

		w.win.SwapBuffers()
		glfw.PollEvents()
	}
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) String() string {
	ww, wh := w.win.GetSize()
	return fmt.Sprintf("%q %dx%d (framebuffer %dx%d)", w.opts.Title, ww, wh, w.backingW, w.backingH)
}
