package tracer

import (
	"github.com/chewxy/math32"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/types"
)

// Widen slab exits by this factor so that rounding never makes a box test
// stricter than the primitive tests run on its contents.
const slabTolerance float32 = 1 + 1e-5

// Intersect a ray with a triangle.
//
// The triangle vertices relative to the ray origin form the columns of M. If
// the ray hits the triangle then d = M*w for some w with non-negative
// components; normalizing w so that its components sum to 1 yields the
// barycentric coordinates of the hit and the scale factor is the ray
// parameter. Degenerate triangles and triangles coplanar with the ray origin
// make M singular and are reported as a miss.
func IntersectPolygon(ray Ray, index int, polygon *scene.Polygon[scene.Global]) (PolygonHit, bool) {
	v1, v2, v3 := polygon.Vertices[0], polygon.Vertices[1], polygon.Vertices[2]
	m := types.Mat3FromCols(v1.Sub(ray.Origin), v2.Sub(ray.Origin), v3.Sub(ray.Origin))
	inv, ok := m.Inverse()
	if !ok {
		return PolygonHit{}, false
	}

	w := inv.MulVec(ray.Direction)
	psy := 1.0 / (w[0] + w[1] + w[2])
	if math32.IsInf(psy, 0) || math32.IsNaN(psy) || psy <= 0 {
		return PolygonHit{}, false
	}

	w = w.Mul(psy)
	for _, c := range w {
		if c < 0 || c > 1 {
			return PolygonHit{}, false
		}
	}

	depth := psy * ray.Direction.Len()
	if !(depth > 0) {
		return PolygonHit{}, false
	}

	return PolygonHit{
		Hit: Hit{
			Position: v1.Add(v2.Sub(v1).Mul(w[1])).Add(v3.Sub(v1).Mul(w[2])),
			Ray:      ray,
			Depth:    depth,
		},
		Index:   index,
		Polygon: polygon,
		Normal:  polygon.Normal().Normalize(),
		UV:      types.Vec2{w[1], w[2]},
	}, true
}

// Intersect a ray with a particle. The reported position and depth belong to
// the point of the ray closest to the particle center.
func IntersectParticle(ray Ray, index int, particle *scene.Particle[scene.Global]) (ParticleHit, bool) {
	dd := ray.Direction.Dot(ray.Direction)
	if dd == 0 {
		return ParticleHit{}, false
	}

	toParticle := particle.Position.Sub(ray.Origin)
	t := toParticle.Dot(ray.Direction) / dd
	if !(t > 0) {
		return ParticleHit{}, false
	}

	closest := ray.At(t)
	switch particle.Mode {
	case scene.ArgParticle:
		if ray.Direction.Angle(toParticle) >= particle.Threshold {
			return ParticleHit{}, false
		}
	default:
		if closest.Sub(particle.Position).Len() >= particle.Threshold {
			return ParticleHit{}, false
		}
	}

	return ParticleHit{
		Hit: Hit{
			Position: closest,
			Ray:      ray,
			Depth:    t * math32.Sqrt(dd),
		},
		Index:    index,
		Particle: particle,
	}, true
}

// Intersect a ray with a box using the slab method. The returned depth is the
// distance to the box entry point or, when the ray starts inside the box, to
// the exit point. Boxes entirely behind the origin are missed.
func IntersectAABB(ray Ray, box types.AABB) (float32, bool) {
	l := ray.Direction.Len()
	if l == 0 {
		return 0, false
	}

	tNear := math32.Inf(-1)
	tFar := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := ray.Origin[axis], ray.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}

		invD := 1.0 / d
		t0 := (box.Min[axis] - o) * invD
		t1 := (box.Max[axis] - o) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		t1 *= slabTolerance

		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return 0, false
		}
	}

	if tFar <= 0 {
		return 0, false
	}

	if tNear > 0 {
		return tNear * l, true
	}
	return tFar * l, true
}
