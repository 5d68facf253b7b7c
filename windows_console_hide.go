//go:build windows

package main

import (
	"os"
	"syscall"

	"shaderplay/internal/config"
)

// hideConsoleWindow hides the attached console when started by the
// screensaver host, even if the binary was built without
// `-ldflags "-H windowsgui"`. The plain viewer keeps its console for logs.
func hideConsoleWindow() {
	if debugFromEnv() {
		return
	}
	if mode, _, _ := config.DetectMode(os.Args[1:]); mode == config.ModeViewer {
		return
	}

	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	user32 := syscall.NewLazyDLL("user32.dll")
	procGetConsoleWindow := kernel32.NewProc("GetConsoleWindow")
	procShowWindow := user32.NewProc("ShowWindow")

	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return
	}

	const SW_HIDE = 0
	procShowWindow.Call(hwnd, SW_HIDE)
}

func init() {
	hideConsoleWindow()
}
