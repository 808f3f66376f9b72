package tracer

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/types"
)

const testEpsilon float32 = 1e-3

func triangle(v1, v2, v3 types.Vec3) scene.Polygon[scene.Global] {
	return scene.NewPolygon[scene.Global](v1, v2, v3, scene.Flat(types.ColorRGB{R: 1}, 0))
}

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= testEpsilon
}

func TestIntersectPolygon(t *testing.T) {
	tri := triangle(types.Vec3{5, 0, 0}, types.Vec3{5, 1, 0}, types.Vec3{5, 0, 1})

	type spec struct {
		origin   types.Vec3
		dir      types.Vec3
		expHit   bool
		expDepth float32
	}
	specs := []spec{
		// front hit
		{types.Vec3{}, types.Vec3{1, 0.05, 0.05}, true, 5 * math32.Sqrt(1.005)},
		// unnormalized direction reports the same depth
		{types.Vec3{}, types.Vec3{10, 0.5, 0.5}, true, 5 * math32.Sqrt(1.005)},
		// triangle behind the origin
		{types.Vec3{}, types.Vec3{-1, 0.05, 0.05}, false, 0},
		// passes outside the triangle
		{types.Vec3{}, types.Vec3{1, 0.3, 0.3}, false, 0},
		// ray parallel to the triangle plane
		{types.Vec3{}, types.Vec3{0, 1, 0}, false, 0},
		// origin on the triangle plane
		{types.Vec3{5, 3, 3}, types.Vec3{0, -1, -1}, false, 0},
	}

	for index, s := range specs {
		hit, ok := IntersectPolygon(Ray{Origin: s.origin, Direction: s.dir}, 7, &tri)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, ok)
		}
		if !ok {
			continue
		}
		if !approx(hit.Depth, s.expDepth) {
			t.Fatalf("[spec %d] expected depth %f; got %f", index, s.expDepth, hit.Depth)
		}
		if hit.Index != 7 || hit.Polygon != &tri {
			t.Fatalf("[spec %d] expected hit to reference the polygon", index)
		}
		if !hit.Position.ApproxEqual(types.Vec3{5, 0.25, 0.25}, testEpsilon) {
			t.Fatalf("[spec %d] expected hit position (5, 0.25, 0.25); got %v", index, hit.Position)
		}
		if !approx(hit.UV[0], 0.25) || !approx(hit.UV[1], 0.25) {
			t.Fatalf("[spec %d] expected uv (0.25, 0.25); got %v", index, hit.UV)
		}
		if !hit.Normal.ApproxEqual(types.Vec3{1, 0, 0}, testEpsilon) {
			t.Fatalf("[spec %d] expected normal (1, 0, 0); got %v", index, hit.Normal)
		}
	}
}

func TestIntersectDegeneratePolygon(t *testing.T) {
	tri := triangle(types.Vec3{5, 0, 0}, types.Vec3{5, 1, 1}, types.Vec3{5, 2, 2})
	if _, ok := IntersectPolygon(Ray{Direction: types.Vec3{1, 0.5, 0.5}}, 0, &tri); ok {
		t.Fatal("expected degenerate triangle to be missed")
	}
}

func TestIntersectPolygonRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	randVec := func(scale float32) types.Vec3 {
		return types.Vec3{
			(rng.Float32()*2 - 1) * scale,
			(rng.Float32()*2 - 1) * scale,
			(rng.Float32()*2 - 1) * scale,
		}
	}

	for i := 0; i < 200; i++ {
		tri := triangle(randVec(10), randVec(10), randVec(10))
		// Keep clear of the edges where rounding decides the outcome.
		u, v := 0.05+0.4*rng.Float32(), 0.05+0.4*rng.Float32()
		v1, v2, v3 := tri.Vertices[0], tri.Vertices[1], tri.Vertices[2]
		target := v1.Add(v2.Sub(v1).Mul(u)).Add(v3.Sub(v1).Mul(v))

		// Step back along the normal so the origin is never coplanar.
		origin := target.Add(tri.Normal().Normalize().Mul(5)).Add(randVec(1))
		hit, ok := IntersectPolygon(Ray{Origin: origin, Direction: target.Sub(origin)}, i, &tri)
		if !ok {
			t.Fatalf("[spec %d] expected ray towards %v to hit the triangle", i, target)
		}
		if !hit.Position.ApproxEqual(target, 1e-2) {
			t.Fatalf("[spec %d] expected hit position %v; got %v", i, target, hit.Position)
		}
		if !approx(hit.Param(), 1) {
			t.Fatalf("[spec %d] expected ray parameter 1; got %f", i, hit.Param())
		}
	}
}

func TestIntersectParticle(t *testing.T) {
	sphere := scene.Particle[scene.Global]{Position: types.Vec3{10, 0, 0}, Threshold: 0.5, Mode: scene.SphereParticle}
	arg := scene.Particle[scene.Global]{Position: types.Vec3{100, 0, 0}, Threshold: 0.01, Mode: scene.ArgParticle}

	type spec struct {
		particle *scene.Particle[scene.Global]
		dir      types.Vec3
		expHit   bool
	}
	specs := []spec{
		{&sphere, types.Vec3{1, 0, 0}, true},
		{&sphere, types.Vec3{1, 0.04, 0}, true},
		{&sphere, types.Vec3{1, 0.06, 0}, false},
		{&sphere, types.Vec3{-1, 0, 0}, false},
		{&arg, types.Vec3{1, 0.005, 0}, true},
		{&arg, types.Vec3{1, 0, 0.02}, false},
		{&arg, types.Vec3{-1, 0, 0}, false},
	}

	for index, s := range specs {
		_, ok := IntersectParticle(Ray{Direction: s.dir}, 0, s.particle)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, ok)
		}
	}

	large := scene.Particle[scene.Global]{Position: types.Vec3{10, 0, 0}, Threshold: 1.5}
	hit, ok := IntersectParticle(Ray{Origin: types.Vec3{0, 1, 0}, Direction: types.Vec3{2, 0, 0}}, 3, &large)
	if !ok {
		t.Fatal("expected grazing ray to hit the sphere particle")
	}
	if !approx(hit.Depth, 10) || !hit.Position.ApproxEqual(types.Vec3{10, 1, 0}, testEpsilon) {
		t.Fatalf("expected closest point (10, 1, 0) at depth 10; got %v at %f", hit.Position, hit.Depth)
	}
	if hit.Index != 3 || hit.Particle != &large {
		t.Fatal("expected hit to reference the particle")
	}
}

func TestIntersectAABB(t *testing.T) {
	box := types.AABB{Min: types.Vec3{1, 1, 1}, Max: types.Vec3{2, 2, 2}}
	flat := types.AABB{Min: types.Vec3{5, 0, 0}, Max: types.Vec3{5, 1, 1}}

	type spec struct {
		box      types.AABB
		origin   types.Vec3
		dir      types.Vec3
		expHit   bool
		expDepth float32
	}
	specs := []spec{
		{box, types.Vec3{}, types.Vec3{1.5, 1.5, 1.5}, true, math32.Sqrt(3)},
		{box, types.Vec3{1.5, 1.5, 1.5}, types.Vec3{1, 0, 0}, true, 0.5},
		{box, types.Vec3{3, 3, 3}, types.Vec3{1, 1, 1}, false, 0},
		{box, types.Vec3{}, types.Vec3{1, 0, 0}, false, 0},
		{box, types.Vec3{}, types.Vec3{}, false, 0},
		{flat, types.Vec3{}, types.Vec3{1, 0.05, 0.05}, true, 5 * math32.Sqrt(1.005)},
	}

	for index, s := range specs {
		depth, ok := IntersectAABB(Ray{Origin: s.origin, Direction: s.dir}, s.box)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, ok)
		}
		if ok && !approx(depth, s.expDepth) {
			t.Fatalf("[spec %d] expected depth %f; got %f", index, s.expDepth, depth)
		}
	}
}

func TestProjectPolygons(t *testing.T) {
	polygons := Polygons{
		triangle(types.Vec3{5, -1, -1}, types.Vec3{5, 2, -1}, types.Vec3{5, -1, 2}),
		triangle(types.Vec3{3, -1, -1}, types.Vec3{3, 2, -1}, types.Vec3{3, -1, 2}),
		triangle(types.Vec3{-3, -1, -1}, types.Vec3{-3, 2, -1}, types.Vec3{-3, -1, 2}),
	}
	ray := Ray{Direction: types.Vec3{1, 0, 0}}

	var target Target[PolygonHit] = polygons
	hit, ok := target.Project(ray, nil)
	if !ok || hit.Index != 1 || !approx(hit.Depth, 3) {
		t.Fatalf("expected nearest polygon 1 at depth 3; got %d at %f (hit: %t)", hit.Index, hit.Depth, ok)
	}

	hit, ok = target.Project(ray, func(h *PolygonHit) bool { return h.Index == 1 })
	if !ok || hit.Index != 0 {
		t.Fatalf("expected excluded polygon to be skipped; got %d (hit: %t)", hit.Index, ok)
	}

	if _, ok = target.Project(ray, func(*PolygonHit) bool { return true }); ok {
		t.Fatal("expected no hit when every candidate is excluded")
	}

	if _, ok = ProjectPolygons(ray, nil, nil); ok {
		t.Fatal("expected no hit on an empty polygon list")
	}
}

func TestProjectParticles(t *testing.T) {
	particles := Particles{
		{Position: types.Vec3{8, 0, 0}, Threshold: 0.5},
		{Position: types.Vec3{4, 0, 0}, Threshold: 0.5},
		{Position: types.Vec3{4, 5, 0}, Threshold: 0.5},
	}
	ray := Ray{Direction: types.Vec3{1, 0, 0}}

	hit, ok := particles.Project(ray, nil)
	if !ok || hit.Index != 1 {
		t.Fatalf("expected nearest particle 1; got %d (hit: %t)", hit.Index, ok)
	}

	claimed := map[int]bool{1: true}
	hit, ok = ProjectParticles(ray, particles, func(h *ParticleHit) bool { return claimed[h.Index] })
	if !ok || hit.Index != 0 || hit.Particle != &particles[0] {
		t.Fatalf("expected claimed particle to be skipped; got %d (hit: %t)", hit.Index, ok)
	}
}

func TestPoolTrace(t *testing.T) {
	const frameH = 23
	pool := NewPool(4, NaiveScheduler())
	if len(pool.Tracers()) != 4 {
		t.Fatalf("expected 4 tracers; got %d", len(pool.Tracers()))
	}

	for frame := 0; frame < 3; frame++ {
		visits := make([]int, frameH)
		err := pool.Trace(frameH, func(req BlockRequest) error {
			for y := req.BlockY; y < req.BlockY+req.BlockH; y++ {
				visits[y]++
			}
			return nil
		})
		if err != nil {
			t.Fatalf("[frame %d] unexpected error: %v", frame, err)
		}
		for y, count := range visits {
			if count != 1 {
				t.Fatalf("[frame %d] expected row %d to be traced once; got %d", frame, y, count)
			}
		}
	}

	errBlock := errors.New("block failed")
	err := NewPool(2, nil).Trace(frameH, func(req BlockRequest) error {
		if req.BlockY == 0 {
			return errBlock
		}
		return nil
	})
	if !errors.Is(err, errBlock) {
		t.Fatalf("expected block error to propagate; got %v", err)
	}
}
