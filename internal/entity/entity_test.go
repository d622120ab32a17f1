package entity

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"io/fs"
	"log"
	"testing"
	"testing/fstest"

	"zoo-game/assets"
	"zoo-game/internal/graphics"
	"zoo-game/internal/graphics/graphicstest"
	"zoo-game/internal/graphics/model"
	"zoo-game/internal/graphics/renderer"
)

var unit = Box{Left: -0.5, Bottom: -0.5, Right: 0.5, Top: 0.5}

func TestOverlapsInclusive(t *testing.T) {
	e := New(10, 10, unit, "quad")

	cases := []struct {
		name           string
		x1, y1, x2, y2 float32
		want           bool
	}{
		{"inside", 9.8, 9.8, 10.2, 10.2, true},
		{"containing", 0, 0, 20, 20, true},
		{"touching right edge", 10.5, 10, 11, 11, true},
		{"touching top edge", 9, 10.5, 11, 12, true},
		{"left of", 8, 9, 9.4, 11, false},
		{"above", 9, 10.6, 11, 12, false},
		{"below", 9, 8, 11, 9.4, false},
	}
	for _, tc := range cases {
		if got := e.Overlaps(tc.x1, tc.y1, tc.x2, tc.y2); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCollidesUsesBothPositions(t *testing.T) {
	a := New(0, 0, unit, "quad")
	b := New(0, 5, unit, "quad")

	// b is far above a; a test mixing b's x with a's y would report a hit
	if a.Collides(b) || b.Collides(a) {
		t.Fatalf("entities 5 units apart collide")
	}

	b.SetPosition(0.9, 0.9)
	if !a.Collides(b) || !b.Collides(a) {
		t.Errorf("overlapping entities do not collide")
	}

	b.SetCollidable(false)
	if a.Collides(b) || b.Collides(a) {
		t.Errorf("non-collidable entity collides")
	}
}

func TestMove(t *testing.T) {
	e := New(1, 2, unit, "quad")
	e.Move(0.5, -1)
	if e.X() != 1.5 || e.Y() != 1 {
		t.Errorf("position = %v", e.Position())
	}
	if x1, y1, x2, y2 := e.Bounds(); x1 != 1 || y1 != 0.5 || x2 != 2 || y2 != 1.5 {
		t.Errorf("bounds = %v %v %v %v", x1, y1, x2, y2)
	}
}

func TestDraw(t *testing.T) {
	quiet := log.New(io.Discard, "", 0)
	shader, err := fs.ReadFile(assets.FS, renderer.DefaultShaderPath)
	if err != nil {
		t.Fatalf("read shader: %v", err)
	}
	var tex bytes.Buffer
	if err := png.Encode(&tex, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	fsys := fstest.MapFS{
		renderer.DefaultShaderPath: {Data: shader},
		"textures/penguin.png":     {Data: tex.Bytes()},
	}

	dev := graphicstest.NewDevice()
	r, err := renderer.New(dev, fsys, graphics.NewCamera(800, 600, 0, 0, 0, 64), renderer.WithLogger(quiet))
	if err != nil {
		t.Fatalf("renderer.New: %v", err)
	}
	if err := r.LoadTexture("penguin"); err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	models := model.NewRegistry(r, quiet)
	if _, err := models.CreateQuad("quad", 0, 0, 0); err != nil {
		t.Fatalf("CreateQuad: %v", err)
	}

	ghost := New(0, 0, unit, "ghost")
	if err := ghost.Draw(models, r, renderer.DefaultShader, "penguin"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}

	e := New(3, 4, unit, "quad")
	if err := e.Draw(models, r, renderer.DefaultShader, "missing"); !errors.Is(err, renderer.ErrUnknownTexture) {
		t.Errorf("expected ErrUnknownTexture, got %v", err)
	}
	if len(dev.Draws) != 0 {
		t.Fatalf("failed draws reached the device")
	}

	if err := e.Draw(models, r, renderer.DefaultShader, "penguin"); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(dev.Draws) != 1 {
		t.Fatalf("%d draws, want 1", len(dev.Draws))
	}
	if got, want := dev.Draws[0].Uniforms[model.ProjectionUniform], r.Projection(3, 4, 0); got != want {
		t.Errorf("projection = %v, want %v", got, want)
	}
}
