package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshweld/pkg/formats"
)

// Assemble walks every shape's face corners, welds identical corners and
// returns the unique vertices with the triangle index stream.
//
// Input must be triangulated: each shape carries 3 corners and one material id
// per triangle. Material ids are looked up through a face counter that runs
// across all shapes; negative ids bind the default material (index 0).
// Texture V is flipped (v' = 1 - v); corners without texcoords get zero.
func Assemble(obj *formats.OBJ) ([]Vertex, []uint32, error) {
	if err := validateOBJ(obj); err != nil {
		return nil, nil, err
	}

	corners := 0
	for i := range obj.Shapes {
		corners += len(obj.Shapes[i].Indices)
	}

	materialIDs := make([]int, 0, corners/3)
	for i := range obj.Shapes {
		materialIDs = append(materialIDs, obj.Shapes[i].MaterialIDs...)
	}

	pool := NewPool(obj.VertexCount())
	indices := make([]uint32, 0, corners)
	hasTexCoords := len(obj.TexCoords) > 0
	faceID := 0

	for i := range obj.Shapes {
		for _, idx := range obj.Shapes[i].Indices {
			v := Vertex{
				Position: vec3At(obj.Positions, idx.Vertex),
				Normal:   vec3At(obj.Normals, idx.Normal),
			}

			if hasTexCoords && idx.TexCoord >= 0 {
				tc := vec2At(obj.TexCoords, idx.TexCoord)
				v.TexCoord = mgl32.Vec2{tc[0], 1 - tc[1]}
			}

			v.MaterialIndex = int32(max(0, materialIDs[faceID/3]))
			faceID++

			indices = append(indices, pool.Intern(v))
		}
	}

	return pool.Vertices(), indices, nil
}

// validateOBJ rejects input the assembler cannot index safely, before any
// vertex is interned.
func validateOBJ(obj *formats.OBJ) error {
	positions := len(obj.Positions) / 3
	normals := len(obj.Normals) / 3
	texCoords := len(obj.TexCoords) / 2
	materials := max(1, len(obj.Materials))

	for s := range obj.Shapes {
		shape := &obj.Shapes[s]
		if len(shape.Indices)%3 != 0 || len(shape.MaterialIDs) != len(shape.Indices)/3 {
			return fmt.Errorf("%w: shape %q has %d corners and %d material ids",
				ErrNotTriangulated, shape.Name, len(shape.Indices), len(shape.MaterialIDs))
		}

		for c, idx := range shape.Indices {
			if idx.Vertex < 0 || idx.Vertex >= positions {
				return fmt.Errorf("%w: shape %q corner %d position %d (have %d)",
					ErrIndexOutOfRange, shape.Name, c, idx.Vertex, positions)
			}
			if idx.Normal < 0 {
				return fmt.Errorf("%w: shape %q corner %d", ErrMissingNormals, shape.Name, c)
			}
			if idx.Normal >= normals {
				return fmt.Errorf("%w: shape %q corner %d normal %d (have %d)",
					ErrIndexOutOfRange, shape.Name, c, idx.Normal, normals)
			}
			if idx.TexCoord >= texCoords {
				return fmt.Errorf("%w: shape %q corner %d texcoord %d (have %d)",
					ErrIndexOutOfRange, shape.Name, c, idx.TexCoord, texCoords)
			}
		}

		for f, id := range shape.MaterialIDs {
			if id >= materials {
				return fmt.Errorf("%w: shape %q face %d material %d (have %d)",
					ErrMaterialOutOfRange, shape.Name, f, id, materials)
			}
		}
	}
	return nil
}

func vec3At(a []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{a[3*i], a[3*i+1], a[3*i+2]}
}

func vec2At(a []float32, i int) mgl32.Vec2 {
	return mgl32.Vec2{a[2*i], a[2*i+1]}
}
