package tracer

import (
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/types"
)

// A half-line starting at Origin. Direction does not need to be normalized;
// intersection depths are always reported in world units.
type Ray struct {
	Origin    types.Vec3
	Direction types.Vec3
}

// Get the point at parameter t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// The common part of every intersection.
type Hit struct {
	// World space intersection point.
	Position types.Vec3

	// The ray that produced the hit.
	Ray Ray

	// Distance from the ray origin. Always > 0.
	Depth float32
}

// Distance returns the hit depth. It allows generic code to order hits.
func (h Hit) Distance() float32 {
	return h.Depth
}

// Param returns the ray parameter of the hit so that Position equals
// Ray.At(Param()).
func (h Hit) Param() float32 {
	l := h.Ray.Direction.Len()
	if l == 0 {
		return 0
	}
	return h.Depth / l
}

// The Intersection constraint is satisfied by all hit types.
type Intersection interface {
	PolygonHit | ParticleHit
	Distance() float32
}

// A ray-triangle intersection.
type PolygonHit struct {
	Hit

	// Stable index of the polygon in the projected slice.
	Index   int
	Polygon *scene.Polygon[scene.Global]

	// Unit length face normal.
	Normal types.Vec3

	// Barycentric coordinates of the hit relative to v2 and v3.
	UV types.Vec2
}

// A ray-particle intersection.
type ParticleHit struct {
	Hit

	// Stable index of the particle in the projected slice.
	Index    int
	Particle *scene.Particle[scene.Global]
}
