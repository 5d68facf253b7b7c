//go:build windows

package host

import (
	"syscall"
	"time"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"shaderplay/internal/logging"
)

var (
	user32            = syscall.NewLazyDLL("user32.dll")
	procFindWindow    = user32.NewProc("FindWindowW")
	procSetParent     = user32.NewProc("SetParent")
	procGetWindowLong = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLong = user32.NewProc("SetWindowLongPtrW")
	procGetClientRect = user32.NewProc("GetClientRect")
	procMoveWindow    = user32.NewProc("MoveWindow")
	procShowWindow    = user32.NewProc("ShowWindow")
)

const (
	gwlStyle     = -16
	swShow       = 5
	wsChild      = 0x40000000
	wsVisible    = 0x10000000
	wsPopup      = 0x80000000
	wsCaption    = 0x00C00000
	wsThickFrame = 0x00040000
	wsSysMenu    = 0x00080000
	wsMinMaxBox  = 0x00030000
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// findWindow returns the HWND of the top-level window titled title. GLFW
// registers the window asynchronously, so a few attempts are made.
func findWindow(title string) uintptr {
	t, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return 0
	}
	for i := 0; i < 20; i++ {
		if hwnd, _, _ := procFindWindow.Call(0, uintptr(unsafe.Pointer(t))); hwnd != 0 {
			return hwnd
		}
		time.Sleep(time.Millisecond)
	}
	return 0
}

func clientSize(hwnd uintptr) (int, int, bool) {
	var r rect
	if ok, _, _ := procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ok == 0 {
		return 0, 0, false
	}
	return int(r.Right - r.Left), int(r.Bottom - r.Top), true
}

// embedIntoParent reparents win into parent as a borderless child filling
// the parent's client area, and returns that size.
func embedIntoParent(win *glfw.Window, parent uintptr, title string, log logging.Logger) (int, int) {
	hwnd := findWindow(title)
	if hwnd == 0 {
		log.Warnf("Preview: window %q not found, not embedding", title)
		return previewWidth, previewHeight
	}

	// SetParent before WS_CHILD; the reverse order is unreliable on some hosts.
	procSetParent.Call(hwnd, parent)

	var index int32 = gwlStyle
	idx := uintptr(index) // sign-extended
	style, _, _ := procGetWindowLong.Call(hwnd, idx)
	style &^= wsPopup | wsCaption | wsThickFrame | wsSysMenu | wsMinMaxBox
	style |= wsChild | wsVisible
	procSetWindowLong.Call(hwnd, idx, style)

	// Read after the style change, which can alter the client area.
	w, h, ok := clientSize(parent)
	if !ok {
		log.Warnf("Preview: GetClientRect failed for parent %d", parent)
		w, h = previewWidth, previewHeight
	}
	procMoveWindow.Call(hwnd, 0, 0, uintptr(w), uintptr(h), 1)
	procShowWindow.Call(hwnd, swShow)
	win.SetSize(w, h)
	return w, h
}
