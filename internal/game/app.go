package game

import (
	"log"

	"zoo-game/internal/graphics/renderer"
	"zoo-game/internal/input"
	"zoo-game/internal/profiling"
)

// Surface is the window the game presents to
type Surface interface {
	// Update processes pending events and reports whether the game should
	// keep running.
	Update() bool
	SwapBuffers()
}

// App drives the frame loop and routes window events to the input manager
// and the active screen.
type App struct {
	surface  Surface
	renderer *renderer.Renderer
	input    *input.Manager
	screen   Screen

	limiter *FrameLimiter
	log     *log.Logger
	frames  int
}

// Option configures an App
type Option func(*App)

// WithLogger sets the logger used for frame diagnostics
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.log = l }
}

// NewApp returns an app showing screen at fps frames per second
func NewApp(surface Surface, r *renderer.Renderer, screen Screen, fps int, opts ...Option) *App {
	a := &App{
		surface:  surface,
		renderer: r,
		input:    input.NewManager(),
		screen:   screen,
		limiter:  NewFrameLimiter(fps),
		log:      log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Input returns the manager fed by window events
func (a *App) Input() *input.Manager { return a.input }

func (a *App) Screen() Screen { return a.screen }

// SetScreen makes s the screen receiving events and frames
func (a *App) SetScreen(s Screen) { a.screen = s }

// Frames returns the number of frames run so far
func (a *App) Frames() int { return a.frames }

// Run loops until the surface reports it should stop
func (a *App) Run() {
	for a.surface.Update() {
		a.tick()
	}
	a.log.Printf("Window closed after %d frames", a.frames)
}

func (a *App) tick() {
	profiling.ResetFrame()
	a.limiter.Begin()

	func() { defer profiling.Track("screen.Update")(); a.screen.Update(a.input) }()
	a.input.Update()

	func() { defer profiling.Track("renderer.Clear")(); a.renderer.Clear() }()
	func() { defer profiling.Track("screen.Render")(); a.screen.Render(a.renderer) }()
	func() { defer profiling.Track("window.SwapBuffers")(); a.surface.SwapBuffers() }()
	a.frames++

	if elapsed, target := a.limiter.Elapsed(), a.limiter.Target(); target > 0 && elapsed > target {
		a.log.Printf("Slow frame: %v (screen %v, renderer %v, window %v). Top tasks: %s",
			elapsed,
			profiling.SumWithPrefix("screen."),
			profiling.SumWithPrefix("renderer."),
			profiling.SumWithPrefix("window."),
			profiling.TopN(5))
	}
	a.limiter.Wait()
}

// KeyEvent records the key and tells the screen about presses and releases
func (a *App) KeyEvent(key input.Key, scancode int, action input.Action, mods int) {
	if key == input.KeyUnknown {
		return
	}
	a.input.HandleKey(key, action)
	switch action {
	case input.Press:
		a.screen.KeyPressed(key, scancode, mods)
	case input.Release:
		a.screen.KeyReleased(key, scancode, mods)
	}
}

// ButtonEvent records the mouse button and tells the screen
func (a *App) ButtonEvent(button input.Button, action input.Action, mods int) {
	a.input.HandleButton(button, action)
	switch action {
	case input.Press:
		a.screen.ButtonPressed(button, mods)
	case input.Release:
		a.screen.ButtonReleased(button, mods)
	}
}

func (a *App) Scrolled(x, y float64) {
	a.screen.MouseScrolled(x, y)
}

func (a *App) CursorMoved(x, y float64) {
	a.screen.CursorMoved(x, y)
}

// Resized updates the viewport. Minimized windows report a zero size,
// which would make the projection divide by zero, so those are ignored.
func (a *App) Resized(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.renderer.ResizeViewport(width, height)
}
