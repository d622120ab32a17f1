// Package model holds immutable textured meshes drawn through a renderer.
package model

import (
	"errors"
	"fmt"
	"log"

	"zoo-game/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms a model sets on the shader it is drawn with
const (
	ProjectionUniform = "projection"
	SamplerUniform    = "sampler"
)

var (
	ErrInvalidMesh  = errors.New("invalid mesh")
	ErrUnknownModel = errors.New("unknown model")
)

// MeshStore uploads and frees mesh buffers
type MeshStore interface {
	CreateMesh(vertices, texCoords []float32, indices []uint32) graphics.Mesh
	DeleteMesh(m graphics.Mesh)
}

// Target is what a model needs from a renderer to draw itself
type Target interface {
	Projection(x, y, z float32) mgl32.Mat4
	BindTexture(name string, unit int) error
	BindShader(name string) error
	SetUniformMat4(shader, key string, m mgl32.Mat4) error
	SetUniformInt(shader, key string, v int32) error
	DrawMesh(m graphics.Mesh)
}

// Model is a GPU-resident mesh with a fixed render offset. Vertices and
// texture coordinates are 2 floats per point; indices form a triangle list.
type Model struct {
	name   string
	mesh   graphics.Mesh
	points int
	offset mgl32.Vec3
}

func (m *Model) Name() string { return m.name }

// Offset is added to the draw position of every Draw call
func (m *Model) Offset() mgl32.Vec3 { return m.offset }

// Points returns the number of vertices in the mesh
func (m *Model) Points() int { return m.points }

// IndexCount returns the number of indices drawn per call
func (m *Model) IndexCount() int { return int(m.mesh.IndexCount) }

// Draw renders the model with texture at (x, y) using shader, which is left
// bound. The texture is bound to unit 0 first, so an unknown texture fails
// before any shader state changes.
func (m *Model) Draw(target Target, shader, texture string, x, y float32) error {
	if err := target.BindTexture(texture, 0); err != nil {
		return fmt.Errorf("draw %s: %w", m.name, err)
	}
	if err := target.BindShader(shader); err != nil {
		return fmt.Errorf("draw %s: %w", m.name, err)
	}

	projection := target.Projection(x+m.offset.X(), y+m.offset.Y(), m.offset.Z())
	if err := target.SetUniformMat4(shader, ProjectionUniform, projection); err != nil {
		return fmt.Errorf("draw %s: %w", m.name, err)
	}
	if err := target.SetUniformInt(shader, SamplerUniform, 0); err != nil {
		return fmt.Errorf("draw %s: %w", m.name, err)
	}

	target.DrawMesh(m.mesh)
	return nil
}

// Validate checks that a vertex, texture coordinate and index triple forms a
// drawable triangle list.
func Validate(vertices, texCoords []float32, indices []uint32) error {
	if len(vertices) == 0 || len(vertices)%2 != 0 {
		return fmt.Errorf("%w: %d vertex floats is not a whole number of 2D points", ErrInvalidMesh, len(vertices))
	}
	if len(texCoords) != len(vertices) {
		return fmt.Errorf("%w: %d texture floats for %d vertex floats", ErrInvalidMesh, len(texCoords), len(vertices))
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidMesh, len(indices))
	}
	points := uint32(len(vertices) / 2)
	for i, idx := range indices {
		if idx >= points {
			return fmt.Errorf("%w: index %d at %d exceeds %d points", ErrInvalidMesh, idx, i, points)
		}
	}
	return nil
}

// Registry maps model names to models. The first model registered under a
// name is kept for the registry's lifetime unless released.
type Registry struct {
	store  MeshStore
	models map[string]*Model
	log    *log.Logger
}

// NewRegistry returns an empty registry uploading through store. A nil
// logger uses log.Default().
func NewRegistry(store MeshStore, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		store:  store,
		models: make(map[string]*Model),
		log:    logger,
	}
}

// Create uploads and registers a model if name is unused. If name is already
// registered the existing model is returned unchanged and the new data is
// discarded.
func (r *Registry) Create(name string, vertices, texCoords []float32, indices []uint32, offsetX, offsetY, offsetZ float32) (*Model, error) {
	if existing, ok := r.models[name]; ok {
		r.log.Printf("Model %s already registered; keeping the first definition", name)
		return existing, nil
	}
	if err := Validate(vertices, texCoords, indices); err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}

	m := &Model{
		name:   name,
		mesh:   r.store.CreateMesh(vertices, texCoords, indices),
		points: len(vertices) / 2,
		offset: mgl32.Vec3{offsetX, offsetY, offsetZ},
	}
	r.models[name] = m
	return m, nil
}

// Get returns the model registered under name
func (r *Registry) Get(name string) (*Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

func (r *Registry) Len() int { return len(r.models) }

// Release frees the named model's buffers and forgets it
func (r *Registry) Release(name string) error {
	m, ok := r.models[name]
	if !ok {
		return fmt.Errorf("release %s: %w", name, ErrUnknownModel)
	}
	r.store.DeleteMesh(m.mesh)
	delete(r.models, name)
	return nil
}

// Close releases every model
func (r *Registry) Close() {
	for name, m := range r.models {
		r.store.DeleteMesh(m.mesh)
		delete(r.models, name)
	}
}
