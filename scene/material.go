package scene

import "github.com/reikx/ascia/types"

type MaterialKind uint8

const (
	// Flat materials ignore lighting.
	FlatMaterial MaterialKind = iota

	// Lambert materials sum diffuse contributions from all lights.
	LambertMaterial

	// Like LambertMaterial but each light is shadow tested first.
	LambertWithShadowMaterial
)

func (k MaterialKind) String() string {
	switch k {
	case FlatMaterial:
		return "flat"
	case LambertMaterial:
		return "lambert"
	case LambertWithShadowMaterial:
		return "lambert-with-shadow"
	}
	return "unknown"
}

// Defines a surface material.
type Material struct {
	// The type of the material.
	Kind MaterialKind

	// Diffuse color.
	Color types.ColorRGB

	// When super-sampling, sub-samples that hit a material with a higher
	// priority discard all lower priority sub-samples of the same pixel.
	Priority uint32
}

// Create a flat material.
func Flat(color types.ColorRGB, priority uint32) Material {
	return Material{Kind: FlatMaterial, Color: color, Priority: priority}
}

// Create a lambert material.
func Lambert(color types.ColorRGB, priority uint32) Material {
	return Material{Kind: LambertMaterial, Color: color, Priority: priority}
}

// Create a lambert material that receives hard shadows.
func LambertWithShadow(color types.ColorRGB, priority uint32) Material {
	return Material{Kind: LambertWithShadowMaterial, Color: color, Priority: priority}
}
