//go:build !js

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	errorWindowWidth  = 640
	errorWindowHeight = 320
)

// showError blocks until the user closes a window showing err as
// preformatted text.
func showError(title string, err error) {
	a := app.New()
	w := a.NewWindow(title + " - error")

	grid := widget.NewTextGridFromString(err.Error())
	closeButton := widget.NewButton("Close", func() { a.Quit() })

	w.SetContent(container.NewBorder(nil, container.NewCenter(closeButton), nil, nil,
		container.NewScroll(container.NewPadded(grid))))
	w.Resize(fyne.NewSize(errorWindowWidth, errorWindowHeight))
	w.CenterOnScreen()
	w.ShowAndRun()
}
