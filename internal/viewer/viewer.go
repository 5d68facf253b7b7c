// Package viewer runs the startup sequence: acquire a graphics context,
// fetch the fragment source, build the pipeline and start the render loop.
// The first failing step ends startup and its error is returned unchanged.
package viewer

import (
	"context"

	"shaderplay/internal/gfx"
	"shaderplay/internal/logging"
)

// Host is a drawing surface that can also schedule frames and hand out its
// graphics context.
type Host interface {
	gfx.Surface
	gfx.Scheduler
	Context() (gfx.Context, error)
}

type Loader interface {
	Load(ctx context.Context) (string, error)
}

// Start returns the running loop, or the error of the step that failed:
// *gfx.ContextUnavailableError, *source.FetchError, *gfx.ShaderCompileError
// or *gfx.ProgramLinkError. Nothing is drawn after a failure.
func Start(ctx context.Context, host Host, loader Loader, log logging.Logger, overlays ...gfx.Overlay) (*gfx.Loop, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	gl, err := host.Context()
	if err != nil {
		return nil, err
	}
	log.Debugf("graphics context ready (%s)", gl.Dialect())

	src, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	p, err := gfx.Bootstrap(gl, src, log)
	if err != nil {
		return nil, err
	}

	loop := gfx.NewLoop(p, host, host, overlays...)
	loop.Start()
	log.Infof("render loop started")
	return loop, nil
}
