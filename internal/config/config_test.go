package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"zoo-game/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())
	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height)
	assert.Equal(t, "Zoo Game!", s.Window.Title)
	assert.Equal(t, 60, s.FPS)
	assert.Equal(t, float32(64), s.Camera.Zoom)
	assert.Equal(t, graphics.ProjectionLegacy, s.ProjectionMode())
}

func TestLoadOverridesDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"config.json": {Data: []byte(`{
			"window": {"width": 1280, "height": 720, "fullscreen": true},
			"camera": {"x": 2, "zoom": 32, "projection": "corrected"},
			"assetsDir": "res"
		}`)},
	}

	s, err := Load(fsys, "config.json")
	require.NoError(t, err)

	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height)
	assert.True(t, s.Window.Fullscreen)
	// fields absent from the file keep their defaults
	assert.Equal(t, "Zoo Game!", s.Window.Title)
	assert.Equal(t, 60, s.FPS)
	assert.Equal(t, float32(2), s.Camera.X)
	assert.Equal(t, float32(32), s.Camera.Zoom)
	assert.Equal(t, graphics.ProjectionCorrected, s.ProjectionMode())
	assert.Equal(t, "res", s.AssetsDir)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero width":      `{"window": {"width": 0}}`,
		"negative height": `{"window": {"height": -1}}`,
		"zero fps":        `{"fps": 0}`,
		"zero zoom":       `{"camera": {"zoom": 0}}`,
		"bad projection":  `{"camera": {"projection": "isometric"}}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"c.json": {Data: []byte(data)}}, "c.json")
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(fstest.MapFS{"c.json": {Data: []byte(`{"fps": `)}}, "c.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"fps": 30}`), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30, s.FPS)
}
