package model

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshweld/pkg/formats"
)

func parseOBJ(t *testing.T, src string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ(strings.NewReader(src), nil)
	require.NoError(t, err)
	return obj
}

func TestAssemble_Cube(t *testing.T) {
	obj := parseOBJ(t, plainCube())
	require.Equal(t, 8, obj.VertexCount())

	vertices, indices, err := Assemble(obj)
	require.NoError(t, err)

	assert.Len(t, vertices, 24)
	assert.Len(t, indices, 36)
	for i, idx := range indices {
		assert.Less(t, int(idx), 24, "index %d", i)
	}
}

func TestAssemble_SharedCornersWeld(t *testing.T) {
	// Two triangles of a flat quad sharing the diagonal corners.
	obj := parseOBJ(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
f 1//1 3//1 4//1
`)

	vertices, indices, err := Assemble(obj)
	require.NoError(t, err)

	assert.Len(t, vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices)
}

func TestAssemble_TexCoordFlip(t *testing.T) {
	obj := parseOBJ(t, `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vt 0.25 0.125
vt 1 0
vt 0 1
f 1/1/1 2/2/1 3/3/1
`)

	vertices, _, err := Assemble(obj)
	require.NoError(t, err)
	require.Len(t, vertices, 3)

	assert.Equal(t, mgl32.Vec2{0.25, 0.875}, vertices[0].TexCoord)
	assert.Equal(t, mgl32.Vec2{1, 1}, vertices[1].TexCoord)
	assert.Equal(t, mgl32.Vec2{0, 0}, vertices[2].TexCoord)
}

func TestAssemble_NoTexCoords(t *testing.T) {
	obj := parseOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n")

	vertices, _, err := Assemble(obj)
	require.NoError(t, err)
	for _, v := range vertices {
		assert.Equal(t, mgl32.Vec2{}, v.TexCoord)
	}
}

func TestAssemble_MaterialCounterSpansShapes(t *testing.T) {
	obj := &formats.OBJ{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1},
		Materials: []formats.Material{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		Shapes: []formats.OBJShape{
			{
				Name:        "first",
				Indices:     tri(0, 1, 2),
				MaterialIDs: []int{2},
			},
			{
				Name:        "second",
				Indices:     append(tri(0, 1, 2), tri(2, 1, 0)...),
				MaterialIDs: []int{-1, 1},
			},
		},
	}

	vertices, indices, err := Assemble(obj)
	require.NoError(t, err)
	require.Len(t, indices, 9)

	want := []int32{2, 2, 2, 0, 0, 0, 1, 1, 1}
	for i, idx := range indices {
		assert.Equal(t, want[i], vertices[idx].MaterialIndex, "corner %d", i)
	}
	// Same positions under three different materials stay distinct.
	assert.Len(t, vertices, 9)
}

func TestAssemble_Errors(t *testing.T) {
	base := func() *formats.OBJ {
		return &formats.OBJ{
			Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Normals:   []float32{0, 0, 1},
			Shapes:    []formats.OBJShape{{Indices: tri(0, 1, 2), MaterialIDs: []int{-1}}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(o *formats.OBJ)
		wantErr error
	}{
		{"missing normal", func(o *formats.OBJ) { o.Shapes[0].Indices[1].Normal = -1 }, ErrMissingNormals},
		{"position range", func(o *formats.OBJ) { o.Shapes[0].Indices[2].Vertex = 3 }, ErrIndexOutOfRange},
		{"normal range", func(o *formats.OBJ) { o.Shapes[0].Indices[0].Normal = 1 }, ErrIndexOutOfRange},
		{"texcoord range", func(o *formats.OBJ) { o.Shapes[0].Indices[0].TexCoord = 0 }, ErrIndexOutOfRange},
		{"partial triangle", func(o *formats.OBJ) { o.Shapes[0].Indices = o.Shapes[0].Indices[:2] }, ErrNotTriangulated},
		{"material count", func(o *formats.OBJ) { o.Shapes[0].MaterialIDs = nil }, ErrNotTriangulated},
		{"material range", func(o *formats.OBJ) { o.Shapes[0].MaterialIDs[0] = 1 }, ErrMaterialOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := base()
			tt.mutate(obj)
			_, _, err := Assemble(obj)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

// TestAssemble_DedupProperty checks on random soups that exactly one vertex
// exists per distinct attribute tuple and every index resolves to its corner.
func TestAssemble_DedupProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		obj := randomSoup(rng)

		vertices, indices, err := Assemble(obj)
		require.NoError(t, err)
		require.Zero(t, len(indices)%3)

		distinct := make(map[VertexKey]struct{})
		c := 0
		for s := range obj.Shapes {
			shape := &obj.Shapes[s]
			for i, idx := range shape.Indices {
				want := Vertex{
					Position:      vec3At(obj.Positions, idx.Vertex),
					Normal:        vec3At(obj.Normals, idx.Normal),
					MaterialIndex: int32(max(0, shape.MaterialIDs[i/3])),
				}
				tc := vec2At(obj.TexCoords, idx.TexCoord)
				want.TexCoord = mgl32.Vec2{tc[0], 1 - tc[1]}

				distinct[want.Key()] = struct{}{}
				require.Equal(t, want.Key(), vertices[indices[c]].Key(), "trial %d corner %d", trial, c)
				c++
			}
		}

		assert.Len(t, vertices, len(distinct), "trial %d", trial)

		seen := make(map[VertexKey]int)
		for i, v := range vertices {
			if prev, ok := seen[v.Key()]; ok {
				t.Fatalf("trial %d: vertices %d and %d are equal", trial, prev, i)
			}
			seen[v.Key()] = i
		}
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	obj := randomSoup(rand.New(rand.NewSource(99)))

	v1, i1, err := Assemble(obj)
	require.NoError(t, err)
	v2, i2, err := Assemble(obj)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, i1, i2)
}

func tri(a, b, c int) []formats.OBJIndex {
	return []formats.OBJIndex{
		{Vertex: a, Normal: 0, TexCoord: -1},
		{Vertex: b, Normal: 0, TexCoord: -1},
		{Vertex: c, Normal: 0, TexCoord: -1},
	}
}

// randomSoup draws corners from small attribute pools so that many collide.
func randomSoup(rng *rand.Rand) *formats.OBJ {
	obj := &formats.OBJ{
		Materials: []formats.Material{{Name: "a"}, {Name: "b"}},
	}
	for i := 0; i < 6; i++ {
		obj.Positions = append(obj.Positions, float32(rng.Intn(3)), float32(rng.Intn(3)), float32(rng.Intn(3)))
	}
	for i := 0; i < 3; i++ {
		obj.Normals = append(obj.Normals, float32(rng.Intn(2)), 1, 0)
	}
	for i := 0; i < 3; i++ {
		obj.TexCoords = append(obj.TexCoords, float32(rng.Intn(2))/2, float32(rng.Intn(2))/4)
	}

	for s := 0; s < 1+rng.Intn(3); s++ {
		var shape formats.OBJShape
		for f := 0; f < 1+rng.Intn(12); f++ {
			for k := 0; k < 3; k++ {
				shape.Indices = append(shape.Indices, formats.OBJIndex{
					Vertex:   rng.Intn(6),
					Normal:   rng.Intn(3),
					TexCoord: rng.Intn(3),
				})
			}
			shape.MaterialIDs = append(shape.MaterialIDs, rng.Intn(3)-1)
		}
		obj.Shapes = append(obj.Shapes, shape)
	}
	return obj
}
