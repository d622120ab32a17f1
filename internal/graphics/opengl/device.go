// Package opengl implements graphics.Device on an OpenGL 4.1 core context.
package opengl

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"zoo-game/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var _ graphics.Device = (*Device)(nil)

// Device issues GL calls against the context current on the calling thread
type Device struct{}

// NewDevice loads the GL function pointers. A context must be current.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	return &Device{}, nil
}

// Version returns the GL version string reported by the driver
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) Setup() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindAttribLocation(program, graphics.VertexAttrib, gl.Str(graphics.VertexAttribName+"\x00"))
	gl.BindAttribLocation(program, graphics.TexCoordAttrib, gl.Str(graphics.TexCoordAttribName+"\x00"))

	defer func() {
		gl.DetachShader(program, vertexShader)
		gl.DetachShader(program, fragmentShader)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
	}()

	gl.LinkProgram(program)
	if err := programStatus(program, gl.LINK_STATUS); err != nil {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %w", err)
	}

	// Core profiles refuse to validate without a vertex array bound.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.ValidateProgram(program)
	err = programStatus(program, gl.VALIDATE_STATUS)
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &vao)
	if err != nil {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to validate program: %w", err)
	}

	return program, nil
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) SetUniformInt(program uint32, location int32, v int32) {
	gl.ProgramUniform1i(program, location, v)
}

func (d *Device) SetUniformFloat(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

func (d *Device) SetUniformMat4(program uint32, location int32, m mgl32.Mat4) {
	gl.ProgramUniformMatrix4fv(program, location, 1, false, &m[0])
}

// CreateTexture uploads straight-alpha pixels, matching the SRC_ALPHA blend
// set up in Setup.
func (d *Device) CreateTexture(img *image.NRGBA) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	size := img.Rect.Size()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}

func (d *Device) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (d *Device) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (d *Device) CreateMesh(vertices, texCoords []float32, indices []uint32) graphics.Mesh {
	var m graphics.Mesh
	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.Vertices)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.Vertices)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(graphics.VertexAttrib, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(graphics.VertexAttrib)

	gl.GenBuffers(1, &m.TexCoords)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.TexCoords)
	gl.BufferData(gl.ARRAY_BUFFER, len(texCoords)*4, gl.Ptr(texCoords), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(graphics.TexCoordAttrib, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(graphics.TexCoordAttrib)

	// the element binding is recorded in the VAO
	gl.GenBuffers(1, &m.Indices)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.Indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	m.IndexCount = int32(len(indices))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (d *Device) DrawMesh(m graphics.Mesh) {
	gl.BindVertexArray(m.VAO)
	gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (d *Device) DeleteMesh(m graphics.Mesh) {
	buffers := []uint32{m.Vertices, m.TexCoords, m.Indices}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &m.VAO)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile %s shader: %v", shaderKind(shaderType), strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func programStatus(program uint32, pname uint32) error {
	var status int32
	gl.GetProgramiv(program, pname, &status)
	if status != gl.FALSE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return errors.New(strings.TrimRight(log, "\x00"))
}

func shaderKind(shaderType uint32) string {
	if shaderType == gl.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}
