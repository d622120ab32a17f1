// Package graphicstest provides an in-memory graphics.Device for tests.
package graphicstest

import (
	"errors"
	"image"
	"strings"

	"zoo-game/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrCompile is returned by CreateProgram for sources containing FailCompile
var ErrCompile = errors.New("failed to compile shader: syntax error")

// FailCompile, when present in a shader source, makes CreateProgram fail
const FailCompile = "#error"

// Program is a fake linked program
type Program struct {
	Vertex   string
	Fragment string
	// Uniforms lists the active uniform names; location is the slice index.
	Uniforms []string
	Values   map[string]any
	Deleted  bool
}

// Device records every call made against it
type Device struct {
	SetupCalls int
	Clears     int
	ViewportW  int
	ViewportH  int

	Programs map[uint32]*Program
	Current  uint32

	Textures map[uint32]*image.NRGBA
	Units    [graphics.MaxTextureUnits]uint32

	Meshes map[uint32]graphics.Mesh
	Draws  []Draw

	next uint32
}

// Draw captures the state visible to one DrawMesh call
type Draw struct {
	Mesh     graphics.Mesh
	Program  uint32
	Uniforms map[string]any
	Unit0    uint32
}

func NewDevice() *Device {
	return &Device{
		Programs: make(map[uint32]*Program),
		Textures: make(map[uint32]*image.NRGBA),
		Meshes:   make(map[uint32]graphics.Mesh),
	}
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) Setup() { d.SetupCalls++ }

func (d *Device) Clear() { d.Clears++ }

func (d *Device) Viewport(width, height int) {
	d.ViewportW, d.ViewportH = width, height
}

// CreateProgram treats every `uniform <type> <name>;` line as an active uniform.
func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	if strings.Contains(vertexSrc, FailCompile) || strings.Contains(fragmentSrc, FailCompile) {
		return 0, ErrCompile
	}
	p := &Program{
		Vertex:   vertexSrc,
		Fragment: fragmentSrc,
		Values:   make(map[string]any),
	}
	p.Uniforms = append(uniformNames(vertexSrc), uniformNames(fragmentSrc)...)
	h := d.handle()
	d.Programs[h] = p
	return h, nil
}

func uniformNames(src string) []string {
	var names []string
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) == 3 && fields[0] == "uniform" {
			names = append(names, fields[2])
		}
	}
	return names
}

func (d *Device) UseProgram(program uint32) { d.Current = program }

func (d *Device) DeleteProgram(program uint32) {
	if p, ok := d.Programs[program]; ok {
		p.Deleted = true
	}
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	p, ok := d.Programs[program]
	if !ok {
		return -1
	}
	for i, u := range p.Uniforms {
		if u == name {
			return int32(i)
		}
	}
	return -1
}

func (d *Device) set(program uint32, location int32, v any) {
	p, ok := d.Programs[program]
	if !ok || location < 0 || int(location) >= len(p.Uniforms) {
		return
	}
	p.Values[p.Uniforms[location]] = v
}

func (d *Device) SetUniformInt(program uint32, location int32, v int32) {
	d.set(program, location, v)
}

func (d *Device) SetUniformFloat(program uint32, location int32, v float32) {
	d.set(program, location, v)
}

func (d *Device) SetUniformMat4(program uint32, location int32, m mgl32.Mat4) {
	d.set(program, location, m)
}

func (d *Device) CreateTexture(img *image.NRGBA) uint32 {
	h := d.handle()
	d.Textures[h] = img
	return h
}

func (d *Device) BindTexture(unit uint32, texture uint32) {
	d.Units[unit] = texture
}

func (d *Device) DeleteTexture(texture uint32) {
	delete(d.Textures, texture)
}

func (d *Device) CreateMesh(vertices, texCoords []float32, indices []uint32) graphics.Mesh {
	m := graphics.Mesh{
		VAO:        d.handle(),
		Vertices:   d.handle(),
		TexCoords:  d.handle(),
		Indices:    d.handle(),
		IndexCount: int32(len(indices)),
	}
	d.Meshes[m.VAO] = m
	return m
}

func (d *Device) DrawMesh(m graphics.Mesh) {
	values := make(map[string]any)
	if p, ok := d.Programs[d.Current]; ok {
		for k, v := range p.Values {
			values[k] = v
		}
	}
	d.Draws = append(d.Draws, Draw{Mesh: m, Program: d.Current, Uniforms: values, Unit0: d.Units[0]})
}

func (d *Device) DeleteMesh(m graphics.Mesh) {
	delete(d.Meshes, m.VAO)
}
