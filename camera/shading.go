package camera

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/tracer"
	"github.com/reikx/ascia/types"
)

// shader resolves the color and priority of ray hits for a single frame.
type shader struct {
	// The flattened node carrying the camera.
	eye *scene.Node[scene.Global]

	lights []scene.LightSource

	// Polygons tested by shadow rays. Hit indices must match the indices
	// of the polygons being shaded.
	occluders tracer.Target[tracer.PolygonHit]
}

func (s *shader) shadePolygon(hit *tracer.PolygonHit) (types.ColorRGB, uint32) {
	mat := hit.Polygon.Material
	switch mat.Kind {
	case scene.LambertMaterial:
		return s.lambert(hit, false), mat.Priority
	case scene.LambertWithShadowMaterial:
		return s.lambert(hit, true), mat.Priority
	default:
		return mat.Color, mat.Priority
	}
}

// Only flat particles can be shaded since particles have no surface normal.
func (s *shader) shadeParticle(hit *tracer.ParticleHit) (types.ColorRGB, uint32, error) {
	mat := hit.Particle.Material
	if mat.Kind != scene.FlatMaterial {
		return types.ColorRGB{}, 0, fmt.Errorf("%w: particle %d uses %s", ErrUnsupportedMaterial, hit.Index, mat.Kind)
	}
	return mat.Color, mat.Priority, nil
}

// Sum the diffuse contribution of every light that lies on the same side of
// the surface as the camera.
func (s *shader) lambert(hit *tracer.PolygonHit, shadows bool) types.ColorRGB {
	var (
		mat    = hit.Polygon.Material
		p      = hit.Position
		n      = hit.Normal
		facing = n.Dot(s.eye.Position.Sub(p))
		result types.ColorRGB
	)

	for _, light := range s.lights {
		co := light.Node.Position.Sub(p).Normalize().Dot(n)
		if co*facing <= 0 {
			continue
		}
		if shadows && s.occluded(hit, light.Node.Position) {
			continue
		}
		incoming := light.Light.Ray(light.Node, p)
		result = result.Add(mat.Color.Mul(incoming).Scale(math32.Abs(co)))
	}

	return result
}

// Check whether any other polygon lies strictly between the hit point and
// the light.
func (s *shader) occluded(hit *tracer.PolygonHit, lightPos types.Vec3) bool {
	ray := tracer.Ray{Origin: hit.Position, Direction: lightPos.Sub(hit.Position)}
	_, blocked := s.occluders.Project(ray, func(h *tracer.PolygonHit) bool {
		return h.Index == hit.Index || h.Param() >= 1
	})
	return blocked
}
