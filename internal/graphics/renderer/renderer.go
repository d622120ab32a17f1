package renderer

import (
	"fmt"
	"io/fs"
	"log"
	"sort"

	"zoo-game/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer owns the shader programs and textures of a GPU device and computes
// per-draw projections from its camera
type Renderer struct {
	device    graphics.Device
	assets    fs.FS
	textureFS fs.FS
	camera    *graphics.Camera
	log       *log.Logger

	shaders  map[string]uint32
	textures map[string]graphics.Texture
	current  string

	// uniform keys already reported missing, per shader
	missing map[string]map[string]struct{}
}

// New configures the device, then compiles and binds the default shader.
// Any failure here is fatal to startup.
func New(device graphics.Device, assets fs.FS, camera *graphics.Camera, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		device:   device,
		assets:   assets,
		camera:   camera,
		log:      log.Default(),
		shaders:  make(map[string]uint32),
		textures: make(map[string]graphics.Texture),
		missing:  make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.textureFS == nil {
		r.textureFS = assets
	}

	device.Setup()
	w, h := camera.Viewport()
	device.Viewport(w, h)
	r.checkCamera()

	if err := r.LoadShader(DefaultShader, DefaultShaderPath); err != nil {
		return nil, fmt.Errorf("default shader: %w", err)
	}
	if err := r.BindShader(DefaultShader); err != nil {
		return nil, err
	}

	return r, nil
}

// LoadShader reads a tagged shader file from the assets and registers it
func (r *Renderer) LoadShader(name, path string) error {
	f, err := r.assets.Open(path)
	if err != nil {
		return fmt.Errorf("could not read shader file: %w", err)
	}
	defer f.Close()

	src, err := graphics.ParseShaderSource(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return r.CreateShaderProgram(name, src.Vertex, src.Fragment)
}

// CreateShaderProgram compiles, links and validates a program and registers
// it under name, replacing and deleting any program already there.
func (r *Renderer) CreateShaderProgram(name, vertexSource, fragmentSource string) error {
	program, err := r.device.CreateProgram(vertexSource, fragmentSource)
	if err != nil {
		return fmt.Errorf("shader %q: %w", name, err)
	}
	if old, ok := r.shaders[name]; ok {
		r.device.DeleteProgram(old)
		delete(r.missing, name)
	}
	r.shaders[name] = program
	if r.current == name {
		r.device.UseProgram(program)
	}
	return nil
}

// BindShader makes the named program current
func (r *Renderer) BindShader(name string) error {
	program, ok := r.shaders[name]
	if !ok {
		return fmt.Errorf("bind %q: %w", name, ErrUnknownShader)
	}
	r.device.UseProgram(program)
	r.current = name
	return nil
}

// CurrentShader returns the name of the bound program
func (r *Renderer) CurrentShader() string {
	return r.current
}

// HasShader reports whether a program is registered under name
func (r *Renderer) HasShader(name string) bool {
	_, ok := r.shaders[name]
	return ok
}

// DeleteShader frees the named program
func (r *Renderer) DeleteShader(name string) error {
	program, ok := r.shaders[name]
	if !ok {
		return fmt.Errorf("delete %q: %w", name, ErrUnknownShader)
	}
	r.device.DeleteProgram(program)
	delete(r.shaders, name)
	delete(r.missing, name)
	if r.current == name {
		r.current = ""
	}
	return nil
}

// location resolves a uniform. ok is false when the shader has no such
// uniform, which is not an error.
func (r *Renderer) location(shader, key string) (program uint32, loc int32, ok bool, err error) {
	program, found := r.shaders[shader]
	if !found {
		return 0, -1, false, fmt.Errorf("set uniform %s.%s: %w", shader, key, ErrUnknownShader)
	}
	loc = r.device.UniformLocation(program, key)
	if loc == -1 {
		r.reportMissing(shader, key)
		return program, loc, false, nil
	}
	return program, loc, true, nil
}

func (r *Renderer) reportMissing(shader, key string) {
	keys, ok := r.missing[shader]
	if !ok {
		keys = make(map[string]struct{})
		r.missing[shader] = keys
	}
	if _, seen := keys[key]; seen {
		return
	}
	keys[key] = struct{}{}
	r.log.Printf("Shader %s has no uniform %q; ignoring", shader, key)
}

// SetUniformInt sets an int or sampler uniform on the named shader. A key
// the shader does not declare is ignored and logged once.
func (r *Renderer) SetUniformInt(shader, key string, v int32) error {
	program, loc, ok, err := r.location(shader, key)
	if ok {
		r.device.SetUniformInt(program, loc, v)
	}
	return err
}

// SetUniformFloat sets a float uniform on the named shader
func (r *Renderer) SetUniformFloat(shader, key string, v float32) error {
	program, loc, ok, err := r.location(shader, key)
	if ok {
		r.device.SetUniformFloat(program, loc, v)
	}
	return err
}

// SetUniformMat4 sets a mat4 uniform on the named shader, bound or not.
// Unknown shaders return ErrUnknownShader; unknown keys are a logged no-op.
func (r *Renderer) SetUniformMat4(shader, key string, m mgl32.Mat4) error {
	program, loc, ok, err := r.location(shader, key)
	if ok {
		r.device.SetUniformMat4(program, loc, m)
	}
	return err
}

// LoadTexture decodes the named texture asset and uploads it. A texture that
// fails to load is left unregistered. Loading a name twice is a no-op.
func (r *Renderer) LoadTexture(name string) error {
	if _, ok := r.textures[name]; ok {
		return nil
	}
	img, err := graphics.DecodeTexture(r.textureFS, name)
	if err != nil {
		r.log.Printf("Failed to load texture %s: %v", name, err)
		return err
	}

	size := img.Rect.Size()
	r.textures[name] = graphics.Texture{
		Handle: r.device.CreateTexture(img),
		Width:  size.X,
		Height: size.Y,
	}
	r.log.Printf("Loaded texture %s (%dx%d)", name, size.X, size.Y)
	return nil
}

// Texture returns the loaded texture registered under name
func (r *Renderer) Texture(name string) (graphics.Texture, bool) {
	t, ok := r.textures[name]
	return t, ok
}

// BindTexture binds a loaded texture to a sample slot in [0, 31]
func (r *Renderer) BindTexture(name string, unit int) error {
	if unit < 0 || unit >= graphics.MaxTextureUnits {
		return fmt.Errorf("bind %q to unit %d: %w", name, unit, ErrInvalidTextureUnit)
	}
	t, ok := r.textures[name]
	if !ok {
		return fmt.Errorf("bind %q: %w", name, ErrUnknownTexture)
	}
	r.device.BindTexture(uint32(unit), t.Handle)
	return nil
}

// DeleteTexture frees the named texture
func (r *Renderer) DeleteTexture(name string) error {
	t, ok := r.textures[name]
	if !ok {
		return fmt.Errorf("delete %q: %w", name, ErrUnknownTexture)
	}
	r.device.DeleteTexture(t.Handle)
	delete(r.textures, name)
	return nil
}

// Camera returns the camera instance
func (r *Renderer) Camera() *graphics.Camera {
	return r.camera
}

// ResizeViewport updates the camera's viewport and the device viewport
func (r *Renderer) ResizeViewport(width, height int) {
	r.camera.ResizeViewport(width, height)
	r.device.Viewport(width, height)
	r.checkCamera()
}

// checkCamera warns when the camera would produce Inf or NaN projections
func (r *Renderer) checkCamera() {
	if !r.camera.Valid() {
		w, h := r.camera.Viewport()
		r.log.Printf("Degenerate camera: zoom %v, viewport %dx%d; projections will not be finite", r.camera.Zoom(), w, h)
	}
}

// Projection returns the transform for an object drawn at (x, y, z)
func (r *Renderer) Projection(x, y, z float32) mgl32.Mat4 {
	return r.camera.Projection(x, y, z)
}

// Clear clears the frame
func (r *Renderer) Clear() {
	r.device.Clear()
}

func (r *Renderer) CreateMesh(vertices, texCoords []float32, indices []uint32) graphics.Mesh {
	return r.device.CreateMesh(vertices, texCoords, indices)
}

func (r *Renderer) DrawMesh(m graphics.Mesh) {
	r.device.DrawMesh(m)
}

func (r *Renderer) DeleteMesh(m graphics.Mesh) {
	r.device.DeleteMesh(m)
}

// Close frees every texture and program
func (r *Renderer) Close() {
	for _, name := range sortedKeys(r.textures) {
		r.device.DeleteTexture(r.textures[name].Handle)
	}
	for _, name := range sortedKeys(r.shaders) {
		r.device.DeleteProgram(r.shaders[name])
	}
	r.textures = make(map[string]graphics.Texture)
	r.shaders = make(map[string]uint32)
	r.missing = make(map[string]map[string]struct{})
	r.current = ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
