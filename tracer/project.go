package tracer

import "github.com/reikx/ascia/scene"

// The Target interface is implemented by anything a ray can be projected on.
//
// Project returns the nearest intersection that exclude does not reject. A
// nil exclude rejects nothing.
type Target[H Intersection] interface {
	Project(ray Ray, exclude func(*H) bool) (H, bool)
}

// A flat list of world space polygons scanned linearly.
type Polygons []scene.Polygon[scene.Global]

func (ps Polygons) Project(ray Ray, exclude func(*PolygonHit) bool) (PolygonHit, bool) {
	return ProjectPolygons(ray, ps, exclude)
}

// A flat list of world space particles scanned linearly.
type Particles []scene.Particle[scene.Global]

func (ps Particles) Project(ray Ray, exclude func(*ParticleHit) bool) (ParticleHit, bool) {
	return ProjectParticles(ray, ps, exclude)
}

// Find the nearest polygon hit. Hit indices refer to positions in polygons.
func ProjectPolygons(ray Ray, polygons []scene.Polygon[scene.Global], exclude func(*PolygonHit) bool) (PolygonHit, bool) {
	var (
		best  PolygonHit
		found bool
	)
	for i := range polygons {
		hit, ok := IntersectPolygon(ray, i, &polygons[i])
		if !ok || (exclude != nil && exclude(&hit)) {
			continue
		}
		if !found || hit.Depth < best.Depth {
			best, found = hit, true
		}
	}
	return best, found
}

// Find the nearest particle hit. Hit indices refer to positions in particles.
func ProjectParticles(ray Ray, particles []scene.Particle[scene.Global], exclude func(*ParticleHit) bool) (ParticleHit, bool) {
	var (
		best  ParticleHit
		found bool
	)
	for i := range particles {
		hit, ok := IntersectParticle(ray, i, &particles[i])
		if !ok || (exclude != nil && exclude(&hit)) {
			continue
		}
		if !found || hit.Depth < best.Depth {
			best, found = hit, true
		}
	}
	return best, found
}
