//go:build darwin

package main

import (
	"os"
	"os/exec"
	"syscall"

	"shaderplay/internal/config"
)

const detachedEnvFlag = "SHADERPLAY_DETACHED"

func isCharDevice(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// There is no windowsgui subsystem flag on macOS, so screensaver modes
// started from an interactive terminal relaunch themselves detached once.
func detachFromConsoleOnMacOS() {
	if debugFromEnv() || os.Getenv(detachedEnvFlag) == "1" {
		return
	}
	if mode, _, _ := config.DetectMode(os.Args[1:]); mode == config.ModeViewer {
		return
	}
	if !isCharDevice(os.Stdin) && !isCharDevice(os.Stdout) && !isCharDevice(os.Stderr) {
		return
	}

	devNull, err := os.OpenFile("/dev/null", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer devNull.Close()

	cmd := exec.Command(os.Args[0], os.Args[1:]...)
	cmd.Env = append(os.Environ(), detachedEnvFlag+"=1")
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err == nil {
		os.Exit(0)
	}
}

func init() {
	detachFromConsoleOnMacOS()
}
