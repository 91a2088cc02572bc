package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshweld/pkg/formats"
)

// MaterialKind selects the scattering model a renderer applies.
type MaterialKind uint32

const (
	MaterialLambertian   MaterialKind = 0
	MaterialMetallic     MaterialKind = 1
	MaterialDielectric   MaterialKind = 2
	MaterialIsotropic    MaterialKind = 3
	MaterialDiffuseLight MaterialKind = 4
)

// String returns a human-readable material kind.
func (k MaterialKind) String() string {
	switch k {
	case MaterialLambertian:
		return "Lambertian"
	case MaterialMetallic:
		return "Metallic"
	case MaterialDielectric:
		return "Dielectric"
	case MaterialIsotropic:
		return "Isotropic"
	case MaterialDiffuseLight:
		return "DiffuseLight"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(k))
	}
}

// Material is an entry in a model's material table.
type Material struct {
	Diffuse         mgl32.Vec4
	Kind            MaterialKind
	Fuzziness       float32 // Metallic only
	RefractionIndex float32 // Dielectric only
}

// defaultDiffuse is the flat gray used when a file defines no materials.
var defaultDiffuse = mgl32.Vec4{0.7, 0.7, 0.7, 1.0}

// DefaultMaterial returns the fallback material.
func DefaultMaterial() Material {
	return Material{Diffuse: defaultDiffuse, Kind: MaterialLambertian}
}

// Lambertian returns a diffuse material.
func Lambertian(diffuse mgl32.Vec3) Material {
	return Material{Diffuse: diffuse.Vec4(1), Kind: MaterialLambertian}
}

// Metallic returns a reflective material; fuzziness 0 is a perfect mirror.
func Metallic(diffuse mgl32.Vec3, fuzziness float32) Material {
	return Material{Diffuse: diffuse.Vec4(1), Kind: MaterialMetallic, Fuzziness: fuzziness}
}

// Dielectric returns a clear refractive material.
func Dielectric(refractionIndex float32) Material {
	return Material{Diffuse: mgl32.Vec4{0.7, 0.7, 1, 1}, Kind: MaterialDielectric, RefractionIndex: refractionIndex}
}

// Isotropic returns a participating-medium material.
func Isotropic(diffuse mgl32.Vec3) Material {
	return Material{Diffuse: diffuse.Vec4(1), Kind: MaterialIsotropic}
}

// DiffuseLight returns an emissive material.
func DiffuseLight(diffuse mgl32.Vec3) Material {
	return Material{Diffuse: diffuse.Vec4(1), Kind: MaterialDiffuseLight}
}

// ResolveMaterials converts parsed material records, keeping only the diffuse
// color with alpha forced to 1. Values are not validated or clamped. An empty
// source yields exactly one DefaultMaterial.
func ResolveMaterials(src []formats.Material) []Material {
	if len(src) == 0 {
		return []Material{DefaultMaterial()}
	}

	materials := make([]Material, 0, len(src))
	for _, m := range src {
		materials = append(materials, Lambertian(mgl32.Vec3(m.Diffuse)))
	}
	return materials
}
