package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Attribute locations bound before a program is linked
const (
	VertexAttrib   = 0
	TexCoordAttrib = 1

	VertexAttribName   = "vertices"
	TexCoordAttribName = "textureCoords"
)

// MaxTextureUnits is the number of sample slots a texture can be bound to
const MaxTextureUnits = 32

// Mesh is a set of GPU buffers holding an indexed triangle list
type Mesh struct {
	VAO        uint32
	Vertices   uint32
	TexCoords  uint32
	Indices    uint32
	IndexCount int32
}

// Device is the GPU surface the renderer drives. All calls must come from the
// thread that owns the context.
type Device interface {
	// Setup applies the fixed pipeline state: black clear colour and alpha blending.
	Setup()
	Clear()
	Viewport(width, height int)

	// CreateProgram compiles, links and validates a program. The returned
	// error carries the driver's info log.
	CreateProgram(vertexSrc, fragmentSrc string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// UniformLocation returns -1 when the program has no such active uniform.
	UniformLocation(program uint32, name string) int32
	SetUniformInt(program uint32, location int32, v int32)
	SetUniformFloat(program uint32, location int32, v float32)
	SetUniformMat4(program uint32, location int32, m mgl32.Mat4)

	CreateTexture(img *image.NRGBA) uint32
	BindTexture(unit uint32, texture uint32)
	DeleteTexture(texture uint32)

	CreateMesh(vertices, texCoords []float32, indices []uint32) Mesh
	DrawMesh(m Mesh)
	DeleteMesh(m Mesh)
}
