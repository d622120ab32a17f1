package renderer

import (
	"errors"
	"io/fs"
	"log"
)

// DefaultShader is the program loaded and bound by New
const (
	DefaultShader     = "default"
	DefaultShaderPath = "shaders/default.glsl"
)

var (
	ErrUnknownShader      = errors.New("unknown shader")
	ErrUnknownTexture     = errors.New("unknown texture")
	ErrInvalidTextureUnit = errors.New("texture unit out of range")
)

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger routes renderer diagnostics to l
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// WithTextureFS resolves textures from fsys instead of the shader assets
func WithTextureFS(fsys fs.FS) Option {
	return func(r *Renderer) { r.textureFS = fsys }
}
