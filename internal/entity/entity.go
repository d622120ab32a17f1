// Package entity holds positioned, collidable things drawn with a model.
package entity

import (
	"fmt"

	"zoo-game/internal/graphics/model"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownModel is returned when an entity's model is not registered
var ErrUnknownModel = model.ErrUnknownModel

// Box is an axis-aligned bounding box relative to an entity's position
type Box struct {
	Left, Bottom, Right, Top float32
}

// Entity is embedded by concrete game objects. It starts collidable.
type Entity struct {
	pos        mgl32.Vec2
	box        Box
	model      string
	collidable bool
}

// New returns an entity at (x, y) using the named model
func New(x, y float32, box Box, modelName string) *Entity {
	return &Entity{
		pos:        mgl32.Vec2{x, y},
		box:        box,
		model:      modelName,
		collidable: true,
	}
}

func (e *Entity) Position() mgl32.Vec2 { return e.pos }

func (e *Entity) SetPosition(x, y float32) {
	e.pos = mgl32.Vec2{x, y}
}

// Move offsets the entity's position
func (e *Entity) Move(dx, dy float32) {
	e.pos = e.pos.Add(mgl32.Vec2{dx, dy})
}

func (e *Entity) X() float32 { return e.pos.X() }
func (e *Entity) Y() float32 { return e.pos.Y() }

func (e *Entity) Box() Box { return e.box }

// Model returns the name of the model the entity is drawn with
func (e *Entity) Model() string { return e.model }

func (e *Entity) Collidable() bool { return e.collidable }

func (e *Entity) SetCollidable(collidable bool) {
	e.collidable = collidable
}

// Bounds returns the bounding box in world space
func (e *Entity) Bounds() (x1, y1, x2, y2 float32) {
	return e.box.Left + e.pos.X(), e.box.Bottom + e.pos.Y(),
		e.box.Right + e.pos.X(), e.box.Top + e.pos.Y()
}

// Overlaps reports whether the world-space rectangle (x1, y1)-(x2, y2)
// touches the entity's box. Shared edges count as overlapping.
func (e *Entity) Overlaps(x1, y1, x2, y2 float32) bool {
	ex1, ey1, ex2, ey2 := e.Bounds()
	return !(ex2 < x1 || ex1 > x2 || ey2 < y1 || ey1 > y2)
}

// Collides reports whether both entities are collidable and their boxes
// overlap.
func (e *Entity) Collides(other *Entity) bool {
	if !e.collidable || !other.collidable {
		return false
	}
	return e.Overlaps(other.Bounds())
}

// Draw renders the entity's model at its position
func (e *Entity) Draw(models *model.Registry, target model.Target, shader, texture string) error {
	m, ok := models.Get(e.model)
	if !ok {
		return fmt.Errorf("entity model %s: %w", e.model, ErrUnknownModel)
	}
	return m.Draw(target, shader, texture, e.pos.X(), e.pos.Y())
}
