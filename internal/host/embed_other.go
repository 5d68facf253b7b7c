//go:build !windows && !js

package host

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"shaderplay/internal/logging"
)

// embedIntoParent is only supported on Windows; elsewhere the preview opens
// as a small top-level window.
func embedIntoParent(win *glfw.Window, parent uintptr, title string, log logging.Logger) (int, int) {
	log.Warnf("Preview embedding is not supported on this platform")
	win.Show()
	return previewWidth, previewHeight
}
