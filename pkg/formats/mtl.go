// MTL material libraries.
package formats

import (
	"io"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/g3n/engine/math32"
)

// Material is a parsed MTL material record.
type Material struct {
	Name           string
	Ambient        [3]float32 // Ka
	Diffuse        [3]float32 // Kd
	Specular       [3]float32 // Ks
	Emission       [3]float32 // Ke
	Shininess      float32    // Ns
	IOR            float32    // Ni
	Dissolve       float32    // d (1 = opaque)
	Illum          int
	DiffuseTexture string // map_Kd, as the decoder reports it
}

// ParseMTL parses an MTL material library on its own. Materials come back
// sorted by name.
func ParseMTL(r io.Reader) ([]Material, error) {
	dec, err := decode(nil, r)
	if err != nil {
		return nil, err
	}
	return convertMaterials(dec.Materials), nil
}

func convertMaterials(src map[string]*obj.Material) []Material {
	if len(src) == 0 {
		return nil
	}
	materials := make([]Material, 0, len(src))
	for _, name := range sortedMaterialNames(src) {
		m := src[name]
		materials = append(materials, Material{
			Name:           name,
			Ambient:        rgb(m.Ambient),
			Diffuse:        rgb(m.Diffuse),
			Specular:       rgb(m.Specular),
			Emission:       rgb(m.Emissive),
			Shininess:      m.Shininess,
			IOR:            m.Refraction,
			Dissolve:       m.Opacity,
			Illum:          m.Illum,
			DiffuseTexture: strings.TrimSpace(m.MapKd),
		})
	}
	return materials
}

func rgb(c math32.Color) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
