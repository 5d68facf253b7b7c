// Package config resolves viewer settings from defaults, an optional TOML
// file and command-line flags, in increasing precedence. Windows screensaver
// arguments (/s, /c, /p <HWND>) select the run mode.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"shaderplay/internal/source"
)

const (
	AppName       = "shaderplay"
	DefaultTitle  = "Shader Playground"
	DefaultWidth  = 800
	DefaultHeight = 600
	// DefaultSamples is the MSAA sample count requested for the window.
	DefaultSamples = 4

	// DebugEnv enables debug logging before flags are parsed.
	DebugEnv = "SHADERPLAY_DEBUG"
)

// Mode is how the program was started.
type Mode int

const (
	ModeViewer      Mode = iota // windowed viewer (no screensaver argument)
	ModeScreensaver             // /s: fullscreen, exits on input
	ModeConfig                  // /c: about dialog
	ModePreview                 // /p <HWND>: embedded preview
)

func (m Mode) String() string {
	switch m {
	case ModeViewer:
		return "viewer"
	case ModeScreensaver:
		return "screensaver"
	case ModeConfig:
		return "config"
	case ModePreview:
		return "preview"
	default:
		return "unknown"
	}
}

type Config struct {
	Mode       Mode    `toml:"-"`
	ParentHWND uintptr `toml:"-"`

	Shader       string   `toml:"shader"`
	Title        string   `toml:"title"`
	Width        int      `toml:"width"`
	Height       int      `toml:"height"`
	Fullscreen   bool     `toml:"fullscreen"`
	Samples      int      `toml:"samples"`
	Debug        bool     `toml:"debug"`
	FetchTimeout Duration `toml:"fetch_timeout"`
}

// Duration decodes TOML strings such as "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	return Config{
		Mode:         ModeViewer,
		Shader:       source.DefaultLocation,
		Title:        DefaultTitle,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Samples:      DefaultSamples,
		Debug:        os.Getenv(DebugEnv) == "1",
		FetchTimeout: Duration{source.DefaultTimeout},
	}
}

// LoadFile overlays the settings present in a TOML file onto c.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples must not be negative, got %d", c.Samples)
	}
	if c.FetchTimeout.Duration <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

// Parse builds the configuration for args (without the program name).
func Parse(args []string, stderr io.Writer) (Config, error) {
	mode, hwnd, rest := DetectMode(args)

	cfg := Default()
	cfg.Mode = mode
	cfg.ParentHWND = hwnd

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML settings file")
	shader := fs.String("shader", cfg.Shader, "fragment shader: file, http(s) URL, builtin:[name] or a .json export")
	title := fs.String("title", cfg.Title, "window title")
	width := fs.Int("width", cfg.Width, "window width")
	height := fs.Int("height", cfg.Height, "window height")
	fullscreen := fs.Bool("fullscreen", cfg.Fullscreen, "fullscreen on the primary monitor")
	samples := fs.Int("samples", cfg.Samples, "MSAA samples, 0 disables")
	debug := fs.Bool("debug", cfg.Debug, "debug logging and frame statistics overlay")
	timeout := fs.Duration("timeout", cfg.FetchTimeout.Duration, "shader fetch timeout")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [/s | /c | /p <HWND>] [flags]\n", AppName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(rest); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return Config{}, err
		}
	}

	shaderSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shader":
			cfg.Shader = *shader
			shaderSet = true
		case "title":
			cfg.Title = *title
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "fullscreen":
			cfg.Fullscreen = *fullscreen
		case "samples":
			cfg.Samples = *samples
		case "debug":
			cfg.Debug = *debug
		case "timeout":
			cfg.FetchTimeout = Duration{*timeout}
		}
	})

	switch mode {
	case ModeScreensaver, ModePreview:
		// Screensavers start in the system directory; without an explicit
		// shader there is no shader.glsl to find there.
		if !shaderSet && cfg.Shader == source.DefaultLocation {
			cfg.Shader = source.BuiltinScheme
		}
		if mode == ModeScreensaver {
			cfg.Fullscreen = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsHelp reports whether err asks for usage only.
func IsHelp(err error) bool { return errors.Is(err, flag.ErrHelp) }

// DetectMode extracts the screensaver mode from args and returns the
// arguments left for flag parsing. Windows passes /s to run, /c or /c:<HWND>
// to configure and /p <HWND> or /p:<HWND> to preview.
func DetectMode(args []string) (Mode, uintptr, []string) {
	mode := ModeViewer
	var hwnd uintptr
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := strings.ToLower(args[i])
		switch {
		case arg == "/s":
			mode = ModeScreensaver
		case arg == "/c" || strings.HasPrefix(arg, "/c:"):
			mode = ModeConfig
		case arg == "/p" || strings.HasPrefix(arg, "/p:"):
			mode = ModePreview
			if v, ok := strings.CutPrefix(arg, "/p:"); ok {
				hwnd = parseHWND(v)
			} else if i+1 < len(args) {
				if h := parseHWND(args[i+1]); h != 0 {
					hwnd = h
					i++
				}
			}
		default:
			rest = append(rest, args[i])
		}
	}
	return mode, hwnd, rest
}

func parseHWND(s string) uintptr {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uintptr(v)
}
