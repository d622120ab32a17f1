package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"zoo-game/internal/graphics"
)

// ErrInvalid marks settings that fail validation
var ErrInvalid = errors.New("invalid config")

// DefaultFile is looked up in the working directory at startup
const DefaultFile = "config.json"

// Window holds window creation settings
type Window struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Title      string `json:"title"`
	VSync      bool   `json:"vsync"`
	Fullscreen bool   `json:"fullscreen"`
}

// Camera holds the initial camera state
type Camera struct {
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Z          float32 `json:"z"`
	Zoom       float32 `json:"zoom"`
	Projection string  `json:"projection"`
}

// Settings is the full game configuration
type Settings struct {
	Window Window `json:"window"`
	FPS    int    `json:"fps"`
	Camera Camera `json:"camera"`
	// AssetsDir overrides the embedded assets with a directory on disk
	AssetsDir string `json:"assetsDir"`
}

// Defaults returns the settings used when no config file exists
func Defaults() Settings {
	return Settings{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Zoo Game!",
			VSync:  true,
		},
		FPS: 60,
		Camera: Camera{
			Zoom:       64,
			Projection: graphics.ProjectionLegacy.String(),
		},
	}
}

// Load reads JSON settings at path in fsys over the defaults
func Load(fsys fs.FS, path string) (Settings, error) {
	s := Defaults()
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadFile reads settings from a file on disk. A missing file yields the
// defaults and no error.
func LoadFile(path string) (Settings, error) {
	s, err := Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return s, err
}

// Validate rejects settings that would produce a degenerate camera
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, s.FPS)
	}
	if s.Camera.Zoom <= 0 {
		return fmt.Errorf("%w: camera zoom %v", ErrInvalid, s.Camera.Zoom)
	}
	if _, ok := graphics.ParseProjectionMode(s.Camera.Projection); !ok {
		return fmt.Errorf("%w: camera projection %q", ErrInvalid, s.Camera.Projection)
	}
	return nil
}

// ProjectionMode returns the configured camera projection mode
func (s Settings) ProjectionMode() graphics.ProjectionMode {
	m, _ := graphics.ParseProjectionMode(s.Camera.Projection)
	return m
}
