// Package export writes welded models back out as triangle meshes.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshweld/internal/model"
)

// Triangles expands the indexed mesh of m into one triangle per index triple.
func Triangles(m *model.Model) []*sdf.Triangle3 {
	vertices := m.Vertices()
	indices := m.Indices()

	triangles := make([]*sdf.Triangle3, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		triangles = append(triangles, &sdf.Triangle3{
			toVec(vertices[indices[i]].Position),
			toVec(vertices[indices[i+1]].Position),
			toVec(vertices[indices[i+2]].Position),
		})
	}
	return triangles
}

func toVec(p mgl32.Vec3) v3.Vec {
	return v3.Vec{X: float64(p.X()), Y: float64(p.Y()), Z: float64(p.Z())}
}

// WriteSTL writes m as a binary STL file.
func WriteSTL(path string, m *model.Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	if err := render.SaveSTL(path, Triangles(m)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteOBJ writes m as a Wavefront OBJ file with one v/vn/vt per welded
// vertex, plus a material library next to it (same base name, .mtl) holding
// one Kd entry per material. Texture V is flipped back and triangles are
// grouped into usemtl runs, so reloading the file reproduces the welded
// vertex set and material indices. Only diffuse colors survive the trip.
func WriteOBJ(path string, m *model.Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}

	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if err := writeFile(mtlPath, func(w *bufio.Writer) { writeMTL(w, m) }); err != nil {
		return err
	}
	return writeFile(path, func(w *bufio.Writer) { writeOBJ(w, m, filepath.Base(mtlPath)) })
}

// materialName keeps the name order equal to the table order.
func materialName(i int) string {
	return fmt.Sprintf("material_%04d", i)
}

func writeMTL(w *bufio.Writer, m *model.Model) {
	for i, mat := range m.Materials() {
		fmt.Fprintf(w, "newmtl %s\n", materialName(i))
		fmt.Fprintf(w, "Kd %g %g %g\n\n", mat.Diffuse.X(), mat.Diffuse.Y(), mat.Diffuse.Z())
	}
}

func writeOBJ(w *bufio.Writer, m *model.Model, mtlName string) {
	fmt.Fprintf(w, "mtllib %s\n", mtlName)

	vertices := m.Vertices()
	for _, v := range vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.Position.X(), v.Position.Y(), v.Position.Z())
	}
	for _, v := range vertices {
		fmt.Fprintf(w, "vn %g %g %g\n", v.Normal.X(), v.Normal.Y(), v.Normal.Z())
	}
	for _, v := range vertices {
		fmt.Fprintf(w, "vt %g %g\n", v.TexCoord.X(), 1-v.TexCoord.Y())
	}

	current := int32(-1)
	indices := m.Indices()
	for i := 0; i+2 < len(indices); i += 3 {
		// All corners of a welded triangle share one material.
		if mi := vertices[indices[i]].MaterialIndex; mi != current {
			current = mi
			fmt.Fprintf(w, "usemtl %s\n", materialName(int(mi)))
		}
		a, b, c := indices[i]+1, indices[i+1]+1, indices[i+2]+1
		fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
}

func writeFile(path string, write func(w *bufio.Writer)) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	write(w)
	return w.Flush()
}
