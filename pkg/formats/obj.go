// Wavefront OBJ loading on top of the g3n OBJ decoder.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/g3n/engine/loader/obj"
)

// OBJ format errors.
var (
	ErrMalformedOBJ       = errors.New("malformed OBJ data")
	ErrInvalidOBJIndex    = errors.New("invalid OBJ face index")
	ErrOBJIndexOutOfRange = errors.New("OBJ face index out of range")
)

// OBJIndex references the attributes of one face corner.
// Indices are zero-based; -1 means the attribute is absent.
type OBJIndex struct {
	Vertex   int
	Normal   int
	TexCoord int
}

// OBJShape is a named group of triangles.
type OBJShape struct {
	Name        string
	Indices     []OBJIndex // 3 corners per triangle
	MaterialIDs []int      // One per triangle, -1 when no material is bound
}

// TriangleCount returns the number of triangles in the shape.
func (s *OBJShape) TriangleCount() int {
	return len(s.Indices) / 3
}

// OBJ represents a parsed Wavefront OBJ file.
type OBJ struct {
	Positions []float32 // x, y, z per vertex
	Normals   []float32 // x, y, z per normal
	TexCoords []float32 // u, v per texcoord (may be empty)
	Shapes    []OBJShape
	Materials []Material // Sorted by name
	Warnings  []string   // Non-fatal anomalies
}

// VertexCount returns the number of raw positions.
func (o *OBJ) VertexCount() int {
	return len(o.Positions) / 3
}

// Warning joins all parse warnings into one message.
func (o *OBJ) Warning() string {
	return strings.Join(o.Warnings, "\n")
}

// MaterialReader opens a material library referenced by mtllib.
type MaterialReader interface {
	OpenMaterials(name string) (io.ReadCloser, error)
}

// MaterialDir opens material libraries from a directory on disk.
type MaterialDir string

// OpenMaterials opens name relative to the directory.
func (d MaterialDir) OpenMaterials(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), name))
}

// LoadOBJ parses the OBJ file at path. Material libraries are resolved against
// materialDir, or the file's own directory when materialDir is empty.
func LoadOBJ(path, materialDir string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if materialDir == "" {
		materialDir = filepath.Dir(path)
	}
	return ParseOBJ(f, MaterialDir(materialDir))
}

// ParseOBJ parses OBJ data. Polygons are fan-triangulated so every shape holds
// whole triangles. materials may be nil, in which case mtllib statements only
// produce warnings. A material library that cannot be opened is a warning too.
func ParseOBJ(r io.Reader, materials MaterialReader) (*OBJ, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// The decoder reads the OBJ before the material library, so the library
	// name is only known after a first pass.
	dec, err := decode(data, strings.NewReader(""))
	if err != nil {
		return nil, err
	}

	var warnings []string
	if dec.Matlib != "" {
		mtl, err := openMaterials(materials, dec.Matlib)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("material library %q: %v", dec.Matlib, err))
		} else {
			dec, err = decode(data, mtl)
			mtl.Close()
			if err != nil {
				return nil, err
			}
		}
	}

	out, err := convertOBJ(dec)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, dec.Warnings...)
	out.Warnings = append(warnings, out.Warnings...)
	return out, nil
}

func openMaterials(materials MaterialReader, name string) (io.ReadCloser, error) {
	if materials == nil {
		return nil, errors.New("no material reader")
	}
	return materials.OpenMaterials(name)
}

// objPreamble opens a default object so faces before the first "o" statement
// have somewhere to go. Empty objects are dropped during conversion.
const objPreamble = "o default\n"

func decode(data []byte, mtl io.Reader) (*obj.Decoder, error) {
	src := io.MultiReader(strings.NewReader(objPreamble), bytes.NewReader(data))
	dec, err := obj.DecodeReader(src, mtl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
	}
	return dec, nil
}

// convertOBJ maps decoder output onto OBJ, fan-triangulating faces and binding
// each triangle to its material's position in the name-sorted table.
func convertOBJ(dec *obj.Decoder) (*OBJ, error) {
	out := &OBJ{
		Positions: []float32(dec.Vertices),
		Normals:   []float32(dec.Normals),
		TexCoords: []float32(dec.Uvs),
		Materials: convertMaterials(dec.Materials),
	}

	materialIDs := make(map[string]int, len(out.Materials))
	for i, m := range out.Materials {
		materialIDs[m.Name] = i
	}

	positions := len(out.Positions) / 3
	normals := len(out.Normals) / 3
	texCoords := len(out.TexCoords) / 2
	unknown := make(map[string]bool)

	for _, o := range dec.Objects {
		shape := OBJShape{Name: o.Name}
		for f, face := range o.Faces {
			if len(face.Vertices) < 3 {
				out.Warnings = append(out.Warnings, fmt.Sprintf("object %q face %d has %d corners, skipped", o.Name, f, len(face.Vertices)))
				continue
			}

			id, ok := materialIDs[face.Material]
			if !ok {
				id = -1
				if face.Material != "" && !unknown[face.Material] {
					unknown[face.Material] = true
					out.Warnings = append(out.Warnings, fmt.Sprintf("unknown material %q", face.Material))
				}
			}

			corners := make([]OBJIndex, len(face.Vertices))
			for c := range face.Vertices {
				corner := OBJIndex{
					Vertex:   attrIndex(face.Vertices, c),
					Normal:   attrIndex(face.Normals, c),
					TexCoord: attrIndex(face.Uvs, c),
				}
				if corner.Vertex < 0 {
					return nil, fmt.Errorf("%w: object %q face %d corner %d has no position", ErrInvalidOBJIndex, o.Name, f, c)
				}
				if corner.Vertex >= positions || corner.Normal >= normals || corner.TexCoord >= texCoords {
					return nil, fmt.Errorf("%w: object %q face %d corner %d %+v", ErrOBJIndexOutOfRange, o.Name, f, c, corner)
				}
				corners[c] = corner
			}

			// Fan around the first corner.
			for c := 1; c+1 < len(corners); c++ {
				shape.Indices = append(shape.Indices, corners[0], corners[c], corners[c+1])
				shape.MaterialIDs = append(shape.MaterialIDs, id)
			}
		}
		if len(shape.Indices) > 0 {
			out.Shapes = append(out.Shapes, shape)
		}
	}

	return out, nil
}

// attrIndex returns corner c of a face attribute list, or -1 when the corner
// has no such attribute. The decoder marks absent attributes with an
// out-of-band index.
func attrIndex(indices []int, c int) int {
	if c >= len(indices) {
		return -1
	}
	i := indices[c]
	if i < 0 || int64(i) >= math.MaxUint32 {
		return -1
	}
	return i
}

// sortedMaterialNames returns the keys of a decoder material table in order.
func sortedMaterialNames(materials map[string]*obj.Material) []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
