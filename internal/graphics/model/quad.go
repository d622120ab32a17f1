package model

// Quad geometry: a unit square centred on the origin, two triangles
var (
	QuadVertices = []float32{
		-0.5, 0.5,
		0.5, 0.5,
		0.5, -0.5,
		-0.5, -0.5,
	}
	QuadTexCoords = []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
	QuadIndices = []uint32{
		0, 1, 2,
		2, 3, 0,
	}
)

// CreateQuad registers a unit quad under name
func (r *Registry) CreateQuad(name string, offsetX, offsetY, offsetZ float32) (*Model, error) {
	return r.Create(name, QuadVertices, QuadTexCoords, QuadIndices, offsetX, offsetY, offsetZ)
}
