// Package model builds render-ready indexed meshes from polygon-soup files and
// procedural generators, welding corners with identical attributes.
package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one welded mesh vertex.
type Vertex struct {
	Position      mgl32.Vec3
	Normal        mgl32.Vec3
	TexCoord      mgl32.Vec2
	MaterialIndex int32
}

// VertexKey is the raw bit pattern of a vertex's attribute tuple.
// Two vertices are the same vertex iff their keys are equal; there is no
// tolerance, so -0 and +0 are distinct and identical NaNs weld.
type VertexKey [9]uint32

// Key returns the vertex identity.
func (v Vertex) Key() VertexKey {
	return VertexKey{
		math.Float32bits(v.Position[0]),
		math.Float32bits(v.Position[1]),
		math.Float32bits(v.Position[2]),
		math.Float32bits(v.Normal[0]),
		math.Float32bits(v.Normal[1]),
		math.Float32bits(v.Normal[2]),
		math.Float32bits(v.TexCoord[0]),
		math.Float32bits(v.TexCoord[1]),
		uint32(v.MaterialIndex),
	}
}

// Hash folds per-field hashes in the order position, normal, texcoord,
// material index. Equal keys always hash equal.
func (v Vertex) Hash() uint64 {
	k := v.Key()
	return combine(hashWords(k[0:3]),
		combine(hashWords(k[3:6]),
			combine(hashWords(k[6:8]),
				mix64(uint64(k[8])))))
}

func hashWords(words []uint32) uint64 {
	var h uint64
	for _, w := range words {
		h = combine(h, mix64(uint64(w)))
	}
	return h
}

// combine is the 64-bit boost::hash_combine step.
func combine(h0, h1 uint64) uint64 {
	return h0 ^ (h1 + 0x9e3779b97f4a7c15 + (h0 << 6) + (h0 >> 2))
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
