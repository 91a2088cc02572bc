package model

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Model is a fully built indexed mesh: welded vertices, a triangle index
// buffer, a non-empty material table and, for procedural shapes, an optional
// analytic sphere. The sphere is metadata only; geometry always lives in the
// vertex and index buffers.
type Model struct {
	vertices  []Vertex
	indices   []uint32
	materials []Material
	sphere    *Sphere
}

func newModel(vertices []Vertex, indices []uint32, materials []Material, sphere *Sphere) *Model {
	return &Model{
		vertices:  vertices,
		indices:   indices,
		materials: materials,
		sphere:    sphere,
	}
}

// Vertices returns the vertex buffer. Callers must not modify it.
func (m *Model) Vertices() []Vertex { return m.vertices }

// Indices returns the triangle index buffer. Callers must not modify it.
func (m *Model) Indices() []uint32 { return m.indices }

// Materials returns the material table. Callers must not modify it.
func (m *Model) Materials() []Material { return m.materials }

// NumberOfVertices returns len(Vertices()).
func (m *Model) NumberOfVertices() int { return len(m.vertices) }

// NumberOfIndices returns len(Indices()).
func (m *Model) NumberOfIndices() int { return len(m.indices) }

// NumberOfMaterials returns len(Materials()).
func (m *Model) NumberOfMaterials() int { return len(m.materials) }

// Sphere returns the analytic sphere, if the model carries one.
func (m *Model) Sphere() (Sphere, bool) {
	if m.sphere == nil {
		return Sphere{}, false
	}
	return *m.sphere, true
}

// Transform applies t to every vertex in place: positions as points (w=1),
// normals by the inverse-transpose of t as directions (w=0) so non-uniform
// scales keep them perpendicular to the surface. Normals are not renormalized.
// The analytic sphere, if any, is left as built.
func (m *Model) Transform(t mgl32.Mat4) {
	it := t.Inv().Transpose()

	for i := range m.vertices {
		v := &m.vertices[i]
		v.Position = t.Mul4x1(v.Position.Vec4(1)).Vec3()
		v.Normal = it.Mul4x1(v.Normal.Vec4(0)).Vec3()
	}
}

// SetMaterial replaces the model's only material. It fails with
// ErrInvalidOperation, leaving the model untouched, when the model has more
// than one material.
func (m *Model) SetMaterial(material Material) error {
	if len(m.materials) != 1 {
		return fmt.Errorf("%w: cannot change material on a multi-material model (%d materials)",
			ErrInvalidOperation, len(m.materials))
	}
	m.materials[0] = material
	return nil
}

// Bounds returns the box around all vertex positions. An empty model has a
// zero box.
func (m *Model) Bounds() AABB {
	if len(m.vertices) == 0 {
		return AABB{}
	}
	b := AABB{Min: m.vertices[0].Position, Max: m.vertices[0].Position}
	for i := 1; i < len(m.vertices); i++ {
		b.Extend(m.vertices[i].Position)
	}
	return b
}

// Clone returns a deep copy that can be transformed independently.
func (m *Model) Clone() *Model {
	c := newModel(
		slices.Clone(m.vertices),
		slices.Clone(m.indices),
		slices.Clone(m.materials),
		nil,
	)
	if m.sphere != nil {
		s := *m.sphere
		c.sphere = &s
	}
	return c
}

// Validate checks the buffer invariants: whole triangles, indices inside the
// vertex buffer, a non-empty material table and material indices inside it.
func (m *Model) Validate() error {
	if len(m.materials) == 0 {
		return fmt.Errorf("%w: empty material table", ErrMaterialOutOfRange)
	}
	if len(m.indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrNotTriangulated, len(m.indices))
	}
	for i, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return fmt.Errorf("%w: index %d = %d (have %d vertices)", ErrIndexOutOfRange, i, idx, len(m.vertices))
		}
	}
	for i := range m.vertices {
		mi := m.vertices[i].MaterialIndex
		if mi < 0 || int(mi) >= len(m.materials) {
			return fmt.Errorf("%w: vertex %d material %d (have %d)", ErrMaterialOutOfRange, i, mi, len(m.materials))
		}
	}
	return nil
}
