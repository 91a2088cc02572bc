// Package geometry generates analytic shapes as flat attribute arrays.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh holds generated geometry as parallel flat arrays.
// Every point is unique; triangles index into the point arrays.
type Mesh struct {
	Positions []float32 // x, y, z per point
	Normals   []float32 // x, y, z per point
	TexCoords []float32 // u, v per point
	Indices   []uint32  // 3 per triangle
}

// VertexCount returns the number of generated points.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// icosahedron faces, after Andreas Kahler's icosphere construction.
var icosahedronFaces = [20][3]uint32{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

func icosahedronDirections() []mgl32.Vec3 {
	t := float32((1 + math.Sqrt(5)) / 2)
	dirs := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range dirs {
		dirs[i] = dirs[i].Normalize()
	}
	return dirs
}

// NewIcosphere builds a sphere of the given radius centered at the origin by
// splitting each icosahedron face into four, subdivision times. Edge midpoints
// are shared between neighbouring faces, so the result has 10*4^n+2 points and
// 20*4^n triangles. Negative subdivision is treated as zero.
func NewIcosphere(radius float32, subdivision int) *Mesh {
	dirs := icosahedronDirections()
	faces := icosahedronFaces[:]

	for level := 0; level < subdivision; level++ {
		midpoints := make(map[[2]uint32]uint32, len(faces)*3/2)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{a, b}
			if b < a {
				key = [2]uint32{b, a}
			}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			idx := uint32(len(dirs))
			dirs = append(dirs, dirs[a].Add(dirs[b]).Normalize())
			midpoints[key] = idx
			return idx
		}

		next := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], ab, ca},
				[3]uint32{f[1], bc, ab},
				[3]uint32{f[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		faces = next
	}

	mesh := &Mesh{
		Positions: make([]float32, 0, len(dirs)*3),
		Normals:   make([]float32, 0, len(dirs)*3),
		TexCoords: make([]float32, 0, len(dirs)*2),
		Indices:   make([]uint32, 0, len(faces)*3),
	}

	for _, d := range dirs {
		p := d.Mul(radius)
		u, v := sphericalUV(d)
		mesh.Positions = append(mesh.Positions, p.X(), p.Y(), p.Z())
		mesh.Normals = append(mesh.Normals, d.X(), d.Y(), d.Z())
		mesh.TexCoords = append(mesh.TexCoords, u, v)
	}
	for _, f := range faces {
		mesh.Indices = append(mesh.Indices, f[0], f[1], f[2])
	}

	return mesh
}

// sphericalUV maps a unit direction to equirectangular texture coordinates.
func sphericalUV(d mgl32.Vec3) (u, v float32) {
	u = 0.5 + float32(math.Atan2(float64(d.Z()), float64(d.X())))/(2*math.Pi)
	v = 0.5 - float32(math.Asin(float64(mgl32.Clamp(d.Y(), -1, 1))))/math.Pi
	return u, v
}
