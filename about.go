//go:build !js

package main

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"shaderplay/internal/config"
	"shaderplay/internal/logging"
	"shaderplay/internal/source"
)

const (
	ABOUT_WINDOW_TITLE        = "About"
	PROJECT_URL               = "https://github.com/shaderplay/shaderplay"
	VISIT_WEBSITE_BUTTON_TEXT = "Visit website"
	ABOUT_TEXT                = "Renders a fragment shader over the whole window."

	TITLE_TEXT_COLOR        = "#000000"
	INFO_TEXT_COLOR         = "#0000FF"
	WINDOW_BACKGROUND_COLOR = "#D8E8F8"
	ABOUT_TEXT_FONT_SIZE    = 12

	aboutWindowWidth  = 420
	aboutWindowHeight = 260
)

// parseColor parses "#RRGGBB"; anything else is black.
func parseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	if len(hex) == 6 {
		fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func infoLines(cfg config.Config) []string {
	shader := cfg.Shader
	if name, ok := strings.CutPrefix(shader, source.BuiltinScheme); ok {
		if name == "" {
			name = source.DefaultBuiltin
		}
		shader = "built-in \"" + name + "\""
	}
	return []string{
		ABOUT_TEXT,
		"Shader: " + shader,
		"Built-in shaders: " + strings.Join(source.BuiltinNames(), ", "),
	}
}

// runAbout shows the screensaver settings dialog (/c). There is nothing to
// configure from it; settings live in flags and the TOML file.
func runAbout(cfg config.Config, log logging.Logger) {
	a := app.New()
	title := ABOUT_WINDOW_TITLE
	if log.DebugEnabled() {
		title = fmt.Sprintf("%s [mode: %s]", ABOUT_WINDOW_TITLE, cfg.Mode)
	}
	w := a.NewWindow(title)
	w.SetFixedSize(true)

	heading := canvas.NewText(cfg.Title, parseColor(TITLE_TEXT_COLOR))
	heading.Alignment = fyne.TextAlignCenter
	heading.TextStyle = fyne.TextStyle{Bold: true}
	heading.TextSize = ABOUT_TEXT_FONT_SIZE + 4

	items := []fyne.CanvasObject{container.NewCenter(heading)}
	infoColor := parseColor(INFO_TEXT_COLOR)
	for _, line := range infoLines(cfg) {
		t := canvas.NewText(line, infoColor)
		t.Alignment = fyne.TextAlignCenter
		t.TextSize = ABOUT_TEXT_FONT_SIZE
		items = append(items, container.NewCenter(t))
	}
	items = append(items, widget.NewButton(VISIT_WEBSITE_BUTTON_TEXT, func() {
		if err := openURL(PROJECT_URL); err != nil {
			log.Warnf("Error opening URL: %v", err)
		}
	}))

	background := canvas.NewRectangle(parseColor(WINDOW_BACKGROUND_COLOR))
	w.SetContent(container.NewStack(background, container.NewPadded(container.NewVBox(items...))))
	w.Resize(fyne.NewSize(aboutWindowWidth, aboutWindowHeight))
	w.CenterOnScreen()
	w.ShowAndRun()
}
