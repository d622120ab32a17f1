package game

import (
	"zoo-game/internal/graphics/renderer"
	"zoo-game/internal/input"
)

// Screen is the active view of the game. Only one screen receives events
// and frames at a time.
type Screen interface {
	Update(in *input.Manager)
	Render(r *renderer.Renderer)

	KeyPressed(key input.Key, scancode, mods int)
	KeyReleased(key input.Key, scancode, mods int)
	ButtonPressed(button input.Button, mods int)
	ButtonReleased(button input.Button, mods int)
	MouseScrolled(x, y float64)
	CursorMoved(x, y float64)
}
