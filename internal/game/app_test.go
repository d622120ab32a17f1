package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"zoo-game/assets"
	"zoo-game/internal/graphics"
	"zoo-game/internal/graphics/graphicstest"
	"zoo-game/internal/graphics/renderer"
	"zoo-game/internal/input"
)

type fakeSurface struct {
	frames int
	swaps  int
}

func (s *fakeSurface) Update() bool {
	if s.frames == 0 {
		return false
	}
	s.frames--
	return true
}

func (s *fakeSurface) SwapBuffers() { s.swaps++ }

type recordingScreen struct {
	events  []string
	updates int
	renders int
	// ticks of key 'A' seen by each Update
	ticks []int
}

func (s *recordingScreen) Update(in *input.Manager) {
	s.updates++
	s.ticks = append(s.ticks, in.KeyTicks(65))
}

func (s *recordingScreen) Render(r *renderer.Renderer) { s.renders++ }

func (s *recordingScreen) KeyPressed(key input.Key, scancode, mods int) {
	s.events = append(s.events, fmt.Sprintf("key+%d", key))
}

func (s *recordingScreen) KeyReleased(key input.Key, scancode, mods int) {
	s.events = append(s.events, fmt.Sprintf("key-%d", key))
}

func (s *recordingScreen) ButtonPressed(button input.Button, mods int) {
	s.events = append(s.events, fmt.Sprintf("button+%d", button))
}

func (s *recordingScreen) ButtonReleased(button input.Button, mods int) {
	s.events = append(s.events, fmt.Sprintf("button-%d", button))
}

func (s *recordingScreen) MouseScrolled(x, y float64) {
	s.events = append(s.events, fmt.Sprintf("scroll %v,%v", x, y))
}

func (s *recordingScreen) CursorMoved(x, y float64) {
	s.events = append(s.events, fmt.Sprintf("move %v,%v", x, y))
}

func newTestApp(t *testing.T, frames int, logger *log.Logger) (*App, *fakeSurface, *recordingScreen, *graphicstest.Device) {
	t.Helper()
	dev := graphicstest.NewDevice()
	cam := graphics.NewCamera(800, 600, 0, 0, 0, 64)
	r, err := renderer.New(dev, assets.FS, cam, renderer.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatalf("renderer.New: %v", err)
	}
	surface := &fakeSurface{frames: frames}
	screen := &recordingScreen{}
	app := NewApp(surface, r, screen, 60, WithLogger(logger))
	app.limiter.sleep = func(time.Duration) {}
	return app, surface, screen, dev
}

func TestRunStopsWhenSurfaceCloses(t *testing.T) {
	app, surface, screen, dev := newTestApp(t, 3, log.New(io.Discard, "", 0))
	app.Run()

	if app.Frames() != 3 || surface.swaps != 3 {
		t.Errorf("frames=%d swaps=%d, want 3", app.Frames(), surface.swaps)
	}
	if screen.updates != 3 || screen.renders != 3 {
		t.Errorf("updates=%d renders=%d, want 3", screen.updates, screen.renders)
	}
	if dev.Clears != 3 {
		t.Errorf("clears=%d, want 3", dev.Clears)
	}
}

func TestRunZeroFrames(t *testing.T) {
	app, surface, screen, _ := newTestApp(t, 0, log.New(io.Discard, "", 0))
	app.Run()
	if surface.swaps != 0 || screen.updates != 0 {
		t.Errorf("closed surface still ran a frame")
	}
}

func TestKeyTicksAdvancePerFrame(t *testing.T) {
	app, _, screen, _ := newTestApp(t, 3, log.New(io.Discard, "", 0))
	app.KeyEvent(65, 30, input.Press, 0)
	app.Run()

	want := []int{1, 2, 3}
	for i, got := range screen.ticks {
		if got != want[i] {
			t.Errorf("frame %d saw %d ticks, want %d", i, got, want[i])
		}
	}
}

func TestEventsReachScreen(t *testing.T) {
	app, _, screen, _ := newTestApp(t, 0, log.New(io.Discard, "", 0))

	app.KeyEvent(65, 30, input.Press, 0)
	app.KeyEvent(65, 30, input.Repeat, 0)
	app.KeyEvent(65, 30, input.Release, 0)
	app.KeyEvent(input.KeyUnknown, 0, input.Press, 0)
	app.ButtonEvent(1, input.Press, 0)
	app.ButtonEvent(1, input.Release, 0)
	app.Scrolled(0, -1)
	app.CursorMoved(10.5, 20)

	want := "key+65|key-65|button+1|button-1|scroll 0,-1|move 10.5,20"
	if got := strings.Join(screen.events, "|"); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
	if app.Input().IsKeyDown(65) {
		t.Errorf("released key still down")
	}
}

func TestResizedIgnoresZero(t *testing.T) {
	app, _, _, dev := newTestApp(t, 0, log.New(io.Discard, "", 0))

	app.Resized(1024, 768)
	if dev.ViewportW != 1024 || dev.ViewportH != 768 {
		t.Fatalf("viewport = %dx%d", dev.ViewportW, dev.ViewportH)
	}

	app.Resized(0, 0)
	app.Resized(640, 0)
	if dev.ViewportW != 1024 || dev.ViewportH != 768 {
		t.Errorf("zero resize changed viewport to %dx%d", dev.ViewportW, dev.ViewportH)
	}
	if w, h := app.renderer.Camera().Viewport(); w != 1024 || h != 768 {
		t.Errorf("camera viewport = %dx%d", w, h)
	}
}

func TestSlowFrameLogged(t *testing.T) {
	var buf bytes.Buffer
	app, _, _, _ := newTestApp(t, 1, log.New(&buf, "", 0))

	clock := time.Unix(0, 0)
	app.limiter.now = func() time.Time {
		clock = clock.Add(20 * time.Millisecond)
		return clock
	}
	app.Run()

	if !strings.Contains(buf.String(), "Slow frame:") {
		t.Errorf("slow frame not logged: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "(screen ") {
		t.Errorf("slow frame lacks the bucket breakdown: %q", buf.String())
	}
}
