package scene

import (
	"github.com/chewxy/math32"
	"github.com/reikx/ascia/types"
)

// Defines a triangle.
type Polygon[S Space] struct {
	Vertices [3]types.Vec3

	Material Material
}

// Create new triangle.
func NewPolygon[S Space](v1, v2, v3 types.Vec3, material Material) Polygon[S] {
	return Polygon[S]{
		Vertices: [3]types.Vec3{v1, v2, v3},
		Material: material,
	}
}

// Get the (non-normalized) polygon normal (v2-v1) x (v3-v1).
func (p Polygon[S]) Normal() types.Vec3 {
	return p.Vertices[1].Sub(p.Vertices[0]).Cross(p.Vertices[2].Sub(p.Vertices[0]))
}

// Get the polygon bounding box.
func (p Polygon[S]) AABB() types.AABB {
	return types.AABBFromPoints3(p.Vertices[0], p.Vertices[1], p.Vertices[2])
}

type ParticleMode uint8

const (
	// The particle is hit by rays passing within Threshold units of its
	// position.
	SphereParticle ParticleMode = iota

	// The particle is hit by rays whose direction is within Threshold
	// radians of the direction from the ray origin to the particle. This
	// keeps the on-screen particle size constant regardless of distance.
	ArgParticle
)

func (m ParticleMode) String() string {
	if m == ArgParticle {
		return "arg"
	}
	return "sphere"
}

// A point-like particle rendered as a single glyph.
type Particle[S Space] struct {
	Position types.Vec3

	// Not used for rendering.
	Velocity types.Vec3

	// The glyph displayed when the particle is hit.
	Char rune

	// Radius for SphereParticle, half angle in radians for ArgParticle.
	Threshold float32
	Mode      ParticleMode

	Material Material
}

// Get the particle bounding box. Arg particles grow with their distance to
// the viewer so the box depends on the camera position.
func (p Particle[S]) AABB(cameraPos types.Vec3) types.AABB {
	if p.Mode == ArgParticle {
		r := p.Position.Sub(cameraPos).Len() * math32.Tan(p.Threshold)
		return types.AABBCube(p.Position, r)
	}
	return types.AABBCube(p.Position, p.Threshold)
}

// Generate a square of the given size lying on the local YZ plane and facing
// the X axis.
func Square(size float32, material Material) []Polygon[Local] {
	p := size * 0.5
	return []Polygon[Local]{
		NewPolygon[Local](types.Vec3{0, p, -p}, types.Vec3{0, -p, -p}, types.Vec3{0, p, p}, material),
		NewPolygon[Local](types.Vec3{0, -p, p}, types.Vec3{0, p, p}, types.Vec3{0, -p, -p}, material),
	}
}

// Generate an axis-aligned cube centered at the local origin.
func Cube(size float32, material Material) []Polygon[Local] {
	p := size * 0.5
	quad := func(a, b, c, d types.Vec3) []Polygon[Local] {
		return []Polygon[Local]{
			NewPolygon[Local](a, b, c, material),
			NewPolygon[Local](d, c, b, material),
		}
	}

	polygons := make([]Polygon[Local], 0, 12)
	polygons = append(polygons, quad(types.Vec3{-p, p, -p}, types.Vec3{-p, -p, -p}, types.Vec3{-p, p, p}, types.Vec3{-p, -p, p})...)
	polygons = append(polygons, quad(types.Vec3{p, p, p}, types.Vec3{p, -p, p}, types.Vec3{p, p, -p}, types.Vec3{p, -p, -p})...)
	polygons = append(polygons, quad(types.Vec3{-p, -p, p}, types.Vec3{-p, -p, -p}, types.Vec3{p, -p, p}, types.Vec3{p, -p, -p})...)
	polygons = append(polygons, quad(types.Vec3{-p, p, -p}, types.Vec3{-p, p, p}, types.Vec3{p, p, -p}, types.Vec3{p, p, p})...)
	polygons = append(polygons, quad(types.Vec3{p, p, -p}, types.Vec3{p, -p, -p}, types.Vec3{-p, p, -p}, types.Vec3{-p, -p, -p})...)
	polygons = append(polygons, quad(types.Vec3{-p, p, p}, types.Vec3{-p, -p, p}, types.Vec3{p, p, p}, types.Vec3{p, -p, p})...)
	return polygons
}
