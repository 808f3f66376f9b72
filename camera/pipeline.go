package camera

import (
	"github.com/chewxy/math32"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/tracer"
	"github.com/reikx/ascia/types"
)

// Everything rays are cast against during one frame.
type frameTargets struct {
	polygons  tracer.Target[tracer.PolygonHit]
	particles tracer.Target[tracer.ParticleHit]

	// Number of particles behind the particle target.
	particleCount int
}

// A particle claimed by a pixel together with its shaded color.
type particleClaim struct {
	hit   tracer.ParticleHit
	color types.ColorRGB
	ok    bool
}

// pipeline implements the frame loop shared by all cameras.
type pipeline struct {
	opts Options
	pool *tracer.Pool
}

func newPipeline(opts Options) (*pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &pipeline{
		opts: opts,
		pool: tracer.NewPool(opts.Workers, tracer.PerfectScheduler()),
	}, nil
}

// Get the tracers used for the polygon pass. Their statistics describe the
// last rendered frame.
func (p *pipeline) Tracers() []tracer.Tracer {
	return p.pool.Tracers()
}

// frame holds the per-frame state of a render call.
type frame struct {
	*pipeline

	eye           *scene.Node[scene.Global]
	width, height int
	tanH, tanV    float32
	targets       frameTargets
	shader        shader

	// Particle claims indexed by y*width+x.
	claims []particleClaim
	out    types.Frame
}

func (p *pipeline) render(eye, root *scene.Node[scene.Global], width, height int, targets frameTargets) (types.Frame, error) {
	if width <= 0 || height <= 0 {
		return types.Frame{}, nil
	}

	f := &frame{
		pipeline: p,
		eye:      eye,
		width:    width,
		height:   height,
		tanH:     math32.Tan(p.opts.AngleOfView[0] * 0.5),
		tanV:     math32.Tan(p.opts.AngleOfView[1] * 0.5),
		targets:  targets,
		shader: shader{
			eye:       eye,
			lights:    scene.Lights(root),
			occluders: targets.polygons,
		},
		claims: make([]particleClaim, width*height),
		out:    types.NewFrame(width, height),
	}

	if err := f.claimParticles(); err != nil {
		return nil, err
	}

	if err := p.pool.Trace(uint32(height), f.traceRows); err != nil {
		return nil, err
	}

	return f.out, nil
}

// Build the primary ray for sub-sample (sx, sy) of the sampling grid. In the
// camera frame +X points forward, +Y up and +Z left.
func (f *frame) ray(sx, sy int) tracer.Ray {
	s := f.opts.SamplingSize
	dir := types.Vec3{
		1,
		f.tanV * (1 - 2*float32(sy)/float32(f.height*s)),
		f.tanH * (1 - 2*float32(sx)/float32(f.width*s)),
	}
	return tracer.Ray{
		Origin:    f.eye.Position,
		Direction: f.eye.Direction.Rotate(dir),
	}
}

// Cast one particle ray per pixel. Pixels are visited column by column and
// a particle is claimed by the first pixel that hits it; later pixels see
// through it. The visiting order decides the outcome so this pass is never
// split across workers.
func (f *frame) claimParticles() error {
	if f.targets.particleCount == 0 {
		return nil
	}

	counters := make([]uint32, f.targets.particleCount)
	exclude := func(h *tracer.ParticleHit) bool {
		return counters[h.Index] > 0
	}

	s := f.opts.SamplingSize
	for x := 0; x < f.width; x++ {
		for y := 0; y < f.height; y++ {
			hit, ok := f.targets.particles.Project(f.ray(x*s, y*s), exclude)
			if !ok {
				continue
			}
			counters[hit.Index]++

			color, _, err := f.shader.shadeParticle(&hit)
			if err != nil {
				return err
			}
			f.claims[y*f.width+x] = particleClaim{hit: hit, color: color, ok: true}
		}
	}
	return nil
}

func (f *frame) traceRows(req tracer.BlockRequest) error {
	for y := int(req.BlockY); y < int(req.BlockY+req.BlockH); y++ {
		for x := 0; x < f.width; x++ {
			if f.opts.SamplingSize == 3 {
				f.out[y][x] = f.supersample(x, y)
			} else {
				f.out[y][x] = f.sample(x, y)
			}
		}
	}
	return nil
}

// Resolve a pixel from a single ray.
func (f *frame) sample(x, y int) types.Cell {
	cell := types.BackgroundCell
	depth := math32.Inf(1)

	if hit, ok := f.targets.polygons.Project(f.ray(x, y), nil); ok {
		color, _ := f.shader.shadePolygon(&hit)
		cell = types.Cell{Char: '#', Color: color.RGB8()}
		depth = hit.Depth
	}

	if claim := f.claims[y*f.width+x]; claim.ok && claim.hit.Depth < depth {
		cell = types.Cell{Char: claim.hit.Particle.Char, Color: claim.color.RGB8()}
	}
	return cell
}

// Resolve a pixel from the 8 outer rays of a 3x3 grid. Only hits sharing the
// highest material priority contribute to the glyph pattern and the averaged
// color.
func (f *frame) supersample(x, y int) types.Cell {
	var (
		pattern     uint8
		count       int
		maxPriority uint32
		sum         types.ColorRGB

		firstDepth = math32.Inf(1)
	)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == 1 && j == 1 {
				continue
			}
			pattern <<= 1

			hit, ok := f.targets.polygons.Project(f.ray(x*3+j, y*3+i), nil)
			if !ok {
				continue
			}
			if i == 0 && j == 0 {
				firstDepth = hit.Depth
			}

			color, priority := f.shader.shadePolygon(&hit)
			if priority < maxPriority {
				continue
			}
			if maxPriority < priority {
				maxPriority = priority
				pattern, count, sum = 0, 0, types.ColorRGB{}
			}
			sum = sum.Add(color)
			pattern |= 1
			count++
		}
	}

	cell := types.Cell{Char: Glyph3x3(pattern)}
	if count > 0 {
		cell.Color = sum.Scale(1 / float32(count)).RGB8()
	}

	if claim := f.claims[y*f.width+x]; claim.ok && claim.hit.Depth < firstDepth {
		cell = types.Cell{Char: claim.hit.Particle.Char, Color: claim.color.RGB8()}
	}
	return cell
}
