package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionMode selects how draw offsets feed the translation terms.
type ProjectionMode int

const (
	// ProjectionLegacy feeds offsetZ into the X translation, as the first
	// release of the renderer did. Scenes authored against it rely on it.
	ProjectionLegacy ProjectionMode = iota
	// ProjectionCorrected feeds offsetX into the X translation.
	ProjectionCorrected
)

// ParseProjectionMode maps a config value to a ProjectionMode.
func ParseProjectionMode(s string) (ProjectionMode, bool) {
	switch s {
	case "", "legacy":
		return ProjectionLegacy, true
	case "corrected":
		return ProjectionCorrected, true
	}
	return ProjectionLegacy, false
}

func (m ProjectionMode) String() string {
	if m == ProjectionCorrected {
		return "corrected"
	}
	return "legacy"
}

// Camera holds the 2D camera state and derives per-draw projections
type Camera struct {
	position mgl32.Vec3
	zoom     float32
	width    int
	height   int
	mode     ProjectionMode
}

// CameraOption configures a Camera at construction
type CameraOption func(*Camera)

// WithProjectionMode sets how offsets map onto translation terms
func WithProjectionMode(m ProjectionMode) CameraOption {
	return func(c *Camera) { c.mode = m }
}

// NewCamera returns a camera at (x, y, z) for a width x height viewport.
// Zoom is the number of pixels per world unit.
func NewCamera(width, height int, x, y, z, zoom float32, opts ...CameraOption) *Camera {
	c := &Camera{
		position: mgl32.Vec3{x, y, z},
		zoom:     zoom,
		width:    width,
		height:   height,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResizeViewport stores new viewport dimensions. Zero dimensions make the
// projection degenerate; callers must not pass them.
func (c *Camera) ResizeViewport(width, height int) {
	c.width = width
	c.height = height
}

// MoveCamera translates the camera on the x and y axes. dz is accepted for
// call-site symmetry and is not applied.
func (c *Camera) MoveCamera(dx, dy, dz float32) {
	c.position[0] += dx
	c.position[1] += dy
}

// SetPosition moves the camera to (x, y, z)
func (c *Camera) SetPosition(x, y, z float32) {
	c.position = mgl32.Vec3{x, y, z}
}

// SetZoom changes pixels per world unit; it also sets the depth scale
func (c *Camera) SetZoom(zoom float32) {
	c.zoom = zoom
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }

func (c *Camera) Zoom() float32 { return c.zoom }

func (c *Camera) Viewport() (width, height int) { return c.width, c.height }

func (c *Camera) Mode() ProjectionMode { return c.mode }

// Valid reports whether Projection yields finite terms.
func (c *Camera) Valid() bool {
	return c.zoom > 0 && c.width > 0 && c.height > 0 &&
		!math.IsInf(float64(c.zoom), 0) && !math.IsNaN(float64(c.zoom))
}

// Projection returns the transform for an object drawn at the given offset.
// The result is a fresh value; it does not alias camera state.
func (c *Camera) Projection(offsetX, offsetY, offsetZ float32) mgl32.Mat4 {
	w := float32(c.width)
	h := float32(c.height)
	z := c.zoom

	xOffset := offsetZ
	if c.mode == ProjectionCorrected {
		xOffset = offsetX
	}

	// column-major: m[12..14] hold the translation
	return mgl32.Mat4{
		2 * z / w, 0, 0, 0,
		0, 2 * z / h, 0, 0,
		0, 0, -z, 0,
		2 * (z*c.position.X() + xOffset) / w,
		2 * (z*c.position.Y() + offsetY) / h,
		-(z*c.position.Z() + offsetZ),
		1,
	}
}
