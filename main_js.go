//go:build js && wasm

package main

import (
	"context"
	"html"
	"net/url"
	"syscall/js"

	"shaderplay/internal/config"
	"shaderplay/internal/gfx"
	"shaderplay/internal/gfx/webgl"
	"shaderplay/internal/logging"
	"shaderplay/internal/source"
	"shaderplay/internal/viewer"
)

const canvasID = "canvas"

// page is the document's canvas, its animation frames and its WebGL context.
type page struct {
	*webgl.Canvas
	*webgl.AnimationFrames
}

func (p page) Context() (gfx.Context, error) {
	return webgl.New(p.Element())
}

func main() {
	href := js.Global().Get("location").Get("href").String()

	// ?shader=<location> and ?debug=1 stand in for the desktop flags.
	location := source.DefaultLocation
	debug := false
	if u, err := url.Parse(href); err == nil {
		q := u.Query()
		if s := q.Get("shader"); s != "" {
			location = s
		}
		debug = q.Get("debug") == "1"
	}
	log := logging.New(config.AppName, debug)

	p := page{
		Canvas:          webgl.FindCanvas(canvasID),
		AnimationFrames: webgl.NewAnimationFrames(),
	}
	loader := &source.Loader{
		Location: location,
		Base:     href,
		Timeout:  source.DefaultTimeout,
		Log:      log,
	}
	if _, err := viewer.Start(context.Background(), p, loader, log); err != nil {
		log.Errorf("%v", err)
		showError(err)
	}

	select {}
}

// showError replaces the whole document body with the error text.
func showError(err error) {
	body := js.Global().Get("document").Get("body")
	body.Set("innerHTML", `<pre style="color: white; padding: 16px;">`+html.EscapeString(err.Error())+`</pre>`)
}
