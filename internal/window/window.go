// Package window owns the GLFW window and forwards its events.
package window

import (
	"fmt"
	"log"

	"zoo-game/internal/config"
	"zoo-game/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// EventHandler receives window events on the main thread
type EventHandler interface {
	KeyEvent(key input.Key, scancode int, action input.Action, mods int)
	ButtonEvent(button input.Button, action input.Action, mods int)
	Scrolled(x, y float64)
	CursorMoved(x, y float64)
	Resized(width, height int)
}

// Init initializes GLFW. Call once from the main thread before New; pair
// with glfw.Terminate.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	log.Printf("GLFW %s", glfw.GetVersionString())
	return nil
}

// Window is a GLFW window with a current OpenGL 4.1 core context
type Window struct {
	handle    *glfw.Window
	handler   EventHandler
	onDestroy []func()

	width, height int
	// windowed size and position restored when leaving fullscreen
	restoreX, restoreY          int
	restoreWidth, restoreHeight int

	vsync      bool
	fullscreen bool
	destroyed  bool
}

// New creates a window centred on the primary monitor and makes its
// context current.
func New(cfg config.Window) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Visible, glfw.False)

	monitor := glfw.GetPrimaryMonitor()
	var target *glfw.Monitor
	if cfg.Fullscreen {
		target = monitor
	}

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{
		handle:        handle,
		width:         cfg.Width,
		height:        cfg.Height,
		restoreWidth:  cfg.Width,
		restoreHeight: cfg.Height,
		fullscreen:    cfg.Fullscreen,
	}
	if monitor != nil && !cfg.Fullscreen {
		mode := monitor.GetVideoMode()
		w.restoreX = (mode.Width - cfg.Width) / 2
		w.restoreY = (mode.Height - cfg.Height) / 2
		handle.SetPos(w.restoreX, w.restoreY)
	}

	handle.Show()
	handle.MakeContextCurrent()
	// on HiDPI displays the framebuffer is larger than the window
	w.width, w.height = framebufferSize(handle, cfg.Width, cfg.Height)
	glfw.SwapInterval(swapInterval(cfg.VSync))
	w.vsync = cfg.VSync

	w.installCallbacks()
	return w, nil
}

type framebufferSizer interface {
	GetFramebufferSize() (width, height int)
}

// framebufferSize returns the pixel size of fb, or the fallback while the
// framebuffer reports an empty size.
func framebufferSize(fb framebufferSizer, fallbackWidth, fallbackHeight int) (int, int) {
	width, height := fb.GetFramebufferSize()
	if width <= 0 || height <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return width, height
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

func (w *Window) installCallbacks() {
	w.handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if w.handler != nil {
			w.handler.KeyEvent(input.Key(key), scancode, input.Action(action), int(mods))
		}
	})
	w.handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if w.handler != nil {
			w.handler.ButtonEvent(input.Button(button), input.Action(action), int(mods))
		}
	})
	w.handle.SetScrollCallback(func(_ *glfw.Window, x, y float64) {
		if w.handler != nil {
			w.handler.Scrolled(x, y)
		}
	})
	w.handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.handler != nil {
			w.handler.CursorMoved(x, y)
		}
	})
	w.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.handler != nil {
			w.handler.Resized(width, height)
		}
	})
}

// SetHandler routes subsequent events to h
func (w *Window) SetHandler(h EventHandler) {
	w.handler = h
}

// OnDestroy registers fn to run just before the window is destroyed
func (w *Window) OnDestroy(fn func()) {
	w.onDestroy = append(w.onDestroy, fn)
}

// Update destroys the window and returns false once it has been asked to
// close. Otherwise it processes pending events and returns true.
func (w *Window) Update() bool {
	if w.destroyed {
		return false
	}
	if w.handle.ShouldClose() {
		// hooks run while the context is still current
		for _, fn := range w.onDestroy {
			fn()
		}
		w.handle.Destroy()
		w.destroyed = true
		return false
	}
	glfw.PollEvents()
	return true
}

// SwapBuffers presents the back buffer
func (w *Window) SwapBuffers() {
	w.handle.SwapBuffers()
}

// Close asks the window to close on the next Update
func (w *Window) Close() {
	if !w.destroyed {
		w.handle.SetShouldClose(true)
	}
}

// SetSize resizes the window, given in screen coordinates, and notifies the
// handler of the resulting framebuffer size.
func (w *Window) SetSize(width, height int) {
	w.handle.SetSize(width, height)
	w.width, w.height = framebufferSize(w.handle, width, height)
	if w.handler != nil {
		w.handler.Resized(w.width, w.height)
	}
}

// Size returns the last known framebuffer size in pixels
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// SetVsync toggles the swap interval between 1 and 0
func (w *Window) SetVsync(enabled bool) {
	if w.vsync == enabled {
		return
	}
	glfw.SwapInterval(swapInterval(enabled))
	w.vsync = enabled
}

func (w *Window) Vsync() bool {
	return w.vsync
}

// SetFullscreen moves the window onto the primary monitor at its current
// video mode, or back to its previous windowed placement.
func (w *Window) SetFullscreen(enabled bool) {
	if w.fullscreen == enabled {
		return
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		log.Printf("No primary monitor; staying windowed")
		return
	}

	if enabled {
		w.restoreX, w.restoreY = w.handle.GetPos()
		w.restoreWidth, w.restoreHeight = w.handle.GetSize()
		mode := monitor.GetVideoMode()
		w.handle.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		w.handle.SetMonitor(nil, w.restoreX, w.restoreY, w.restoreWidth, w.restoreHeight, glfw.DontCare)
	}
	w.fullscreen = enabled
	// SetMonitor resets the swap interval on some platforms
	glfw.SwapInterval(swapInterval(w.vsync))
}

func (w *Window) Fullscreen() bool {
	return w.fullscreen
}
