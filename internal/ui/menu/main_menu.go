// Package menu holds the game's menu screens.
package menu

import (
	"log"

	"zoo-game/internal/entity"
	"zoo-game/internal/graphics/model"
	"zoo-game/internal/graphics/renderer"
	"zoo-game/internal/input"
)

// Prop is an entity drawn on a menu with a fixed texture
type Prop struct {
	*entity.Entity
	Texture string
}

// MainMenu is the first screen shown. It logs every input event and draws
// its props, if any.
type MainMenu struct {
	log    *log.Logger
	models *model.Registry
	props  []Prop

	// props that failed to draw, reported once
	failed map[*entity.Entity]bool
}

// NewMainMenu returns a menu logging to logger. A nil logger uses
// log.Default(). models may be nil for a menu without props.
func NewMainMenu(logger *log.Logger, models *model.Registry) *MainMenu {
	if logger == nil {
		logger = log.Default()
	}
	return &MainMenu{
		log:    logger,
		models: models,
		failed: make(map[*entity.Entity]bool),
	}
}

// AddProp draws e with texture on every frame
func (m *MainMenu) AddProp(e *entity.Entity, texture string) {
	m.props = append(m.props, Prop{Entity: e, Texture: texture})
}

func (m *MainMenu) Props() []Prop { return m.props }

func (m *MainMenu) Update(in *input.Manager) {}

func (m *MainMenu) Render(r *renderer.Renderer) {
	if m.models == nil {
		return
	}
	for _, p := range m.props {
		if err := p.Draw(m.models, r, r.CurrentShader(), p.Texture); err != nil && !m.failed[p.Entity] {
			m.failed[p.Entity] = true
			m.log.Printf("menu: %v", err)
		}
	}
}

func (m *MainMenu) KeyPressed(key input.Key, scancode, mods int) {
	m.log.Printf("key pressed:%d", key)
}

func (m *MainMenu) KeyReleased(key input.Key, scancode, mods int) {
	m.log.Printf("key released:%d", key)
}

func (m *MainMenu) ButtonPressed(button input.Button, mods int) {
	m.log.Printf("button pressed:%d", button)
}

func (m *MainMenu) ButtonReleased(button input.Button, mods int) {
	m.log.Printf("button released:%d", button)
}

func (m *MainMenu) MouseScrolled(x, y float64) {
	m.log.Printf("scrolled:%v,%v", x, y)
}

func (m *MainMenu) CursorMoved(x, y float64) {
	m.log.Printf("moved:%v,%v", x, y)
}
