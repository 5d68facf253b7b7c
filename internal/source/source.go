// Package source fetches fragment shader source text.
//
// A location is one of:
//
//	shader.glsl               file path, or URL relative to Loader.Base
//	https://host/shader.glsl  http(s) URL
//	builtin: / builtin:solid  shader embedded in the binary
//
// Locations ending in .json are ShaderToy-style exports whose image pass is
// wrapped into a u_resolution/u_time fragment program.
package source

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"shaderplay/internal/glsl"
	"shaderplay/internal/logging"
)

// DefaultLocation is the fixed name the viewer fetches when none is given.
const DefaultLocation = "shader.glsl"

const (
	BuiltinScheme  = "builtin:"
	DefaultBuiltin = "default"
	DefaultTimeout = 10 * time.Second
)

//go:embed shaders/*.glsl
var builtinFS embed.FS

// FetchError reports that fragment source could not be retrieved.
type FetchError struct {
	Location string
	Status   int // HTTP status, 0 when the failure was not an HTTP response
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %d %s", e.Location, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("fetch %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Loader retrieves the fragment source once. It never retries.
type Loader struct {
	Location string
	// Base resolves relative locations as URLs instead of file paths.
	Base    string
	Client  *http.Client
	Timeout time.Duration
	Log     logging.Logger
}

func (l *Loader) Load(ctx context.Context) (string, error) {
	location := l.Location
	if location == "" {
		location = DefaultLocation
	}
	log := l.Log
	if log == nil {
		log = logging.NewNopLogger()
	}

	data, err := l.read(ctx, location)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return "", err
		}
		return "", &FetchError{Location: location, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FetchError{Location: location, Err: errors.New("source is not valid UTF-8")}
	}
	log.Debugf("Fetched %d bytes of fragment source from %s", len(data), location)

	if isExport(location) {
		exp, err := glsl.ParseExport(data)
		if err != nil {
			return "", &FetchError{Location: location, Err: err}
		}
		pass := exp.ImagePass()
		log.Debugf("Using pass %q of %d from shader export", pass.Name, len(exp.Passes))
		return exp.FragmentSource(), nil
	}
	return string(data), nil
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	if name, ok := strings.CutPrefix(location, BuiltinScheme); ok {
		return Builtin(name)
	}
	target, remote, err := l.resolve(location)
	if err != nil {
		return nil, err
	}
	if !remote {
		return os.ReadFile(target)
	}
	return l.get(ctx, target)
}

// resolve reports the absolute URL for remote locations, or the file path.
func (l *Loader) resolve(location string) (string, bool, error) {
	u, err := url.Parse(location)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return u.String(), true, nil
	}
	if l.Base == "" {
		return location, false, nil
	}
	base, err := url.Parse(l.Base)
	if err != nil {
		return "", false, fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", false, fmt.Errorf("parse location: %w", err)
	}
	return base.ResolveReference(ref).String(), true, nil
}

func (l *Loader) get(ctx context.Context, target string) ([]byte, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Location: target, Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func isExport(location string) bool {
	p := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.EqualFold(path.Ext(p), ".json")
}

// Builtin returns the embedded shader called name; empty selects the default.
func Builtin(name string) ([]byte, error) {
	if name == "" {
		name = DefaultBuiltin
	}
	data, err := builtinFS.ReadFile("shaders/" + name + ".glsl")
	if err != nil {
		return nil, fmt.Errorf("unknown builtin shader %q (have %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return data, nil
}

// BuiltinNames lists the embedded shaders.
func BuiltinNames() []string {
	entries, _ := builtinFS.ReadDir("shaders")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".glsl"))
	}
	sort.Strings(names)
	return names
}
