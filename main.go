//go:build !js

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"shaderplay/internal/config"
	"shaderplay/internal/gfx"
	"shaderplay/internal/host"
	"shaderplay/internal/logging"
	"shaderplay/internal/source"
	"shaderplay/internal/viewer"
)

func init() {
	runtime.LockOSThread() // GLFW and OpenGL calls must stay on the main thread
}

func debugFromEnv() bool {
	return os.Getenv(config.DebugEnv) == "1"
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args, os.Stderr)
	if err != nil {
		if config.IsHelp(err) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log := logging.New(config.AppName, cfg.Debug)
	log.Debugf("Mode %s, shader %s", cfg.Mode, cfg.Shader)

	if cfg.Mode == config.ModeConfig {
		runAbout(cfg, log)
		return 0
	}

	if err := runViewer(cfg, log); err != nil {
		log.Errorf("%v", err)
		// The preview pane belongs to the screensaver settings dialog; a
		// separate window there would be out of place.
		if cfg.Mode != config.ModePreview {
			showError(cfg.Title, err)
		}
		return 1
	}
	return 0
}

func runViewer(cfg config.Config, log logging.Logger) error {
	screensaver := cfg.Mode == config.ModeScreensaver
	win, err := host.Open(host.Options{
		Title:       cfg.Title,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Fullscreen:  cfg.Fullscreen,
		Samples:     cfg.Samples,
		ExitOnInput: screensaver,
		HideCursor:  screensaver,
		ParentHWND:  cfg.ParentHWND,
		Log:         log,
	})
	if err != nil {
		return err
	}
	// Closed before any error window, which brings up its own GLFW.
	defer win.Close()
	log.Debugf("Window %s", win)

	var overlays []gfx.Overlay
	if cfg.Debug {
		ctx, err := win.Context()
		if err != nil {
			return err
		}
		hud, err := host.NewHUD(win, ctx)
		if err != nil {
			log.Warnf("Debug overlay disabled: %v", err)
		} else {
			overlays = append(overlays, hud)
		}
	}

	loader := &source.Loader{
		Location: cfg.Shader,
		Timeout:  cfg.FetchTimeout.Duration,
		Log:      log,
	}
	loop, err := viewer.Start(context.Background(), win, loader, log, overlays...)
	if err != nil {
		return describe(err)
	}
	win.Run()
	log.Debugf("Rendered %d frames", loop.Frames())
	return nil
}

// describe prefixes shader errors with the failing stage so the error
// window reads on its own. Other errors already name their cause.
func describe(err error) error {
	var ce *gfx.ShaderCompileError
	if errors.As(err, &ce) {
		return fmt.Errorf("%s shader: %w", ce.Stage, err)
	}
	var le *gfx.ProgramLinkError
	if errors.As(err, &le) {
		return fmt.Errorf("link: %w", err)
	}
	return err
}
