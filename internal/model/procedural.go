package model

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshweld/pkg/geometry"
)

// NewProcedural wraps generated geometry without welding: the generator already
// emits unique points. Each point becomes one vertex offset by center, bound to
// the single material. shape, when non-nil, is attached as the analytic sphere.
func NewProcedural(src *geometry.Mesh, center mgl32.Vec3, material Material, shape *Sphere) *Model {
	n := src.VertexCount()
	hasTexCoords := len(src.TexCoords) >= 2*n

	vertices := make([]Vertex, n)
	for i := range vertices {
		vertices[i] = Vertex{
			Position: vec3At(src.Positions, i).Add(center),
			Normal:   vec3At(src.Normals, i),
		}
		if hasTexCoords {
			vertices[i].TexCoord = vec2At(src.TexCoords, i)
		}
	}

	var sphere *Sphere
	if shape != nil {
		s := *shape
		sphere = &s
	}

	return newModel(vertices, slices.Clone(src.Indices), []Material{material}, sphere)
}

// CreateSphere builds an icosphere model. With analytic set, the model also
// carries the exact sphere for intersection tests.
func CreateSphere(center mgl32.Vec3, radius float32, subdivision int, material Material, analytic bool) *Model {
	var shape *Sphere
	if analytic {
		shape = &Sphere{Center: center, Radius: radius}
	}
	return NewProcedural(geometry.NewIcosphere(radius, subdivision), center, material, shape)
}
