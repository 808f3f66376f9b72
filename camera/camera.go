package camera

import (
	"fmt"

	"github.com/reikx/ascia/log"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/tracer"
	"github.com/reikx/ascia/tracer/bvh"
	"github.com/reikx/ascia/types"
)

var logger = log.New("camera")

// SimpleCamera tests every ray against every primitive in the scene.
//
// A camera keeps scheduling feedback between frames so Render must not be
// called concurrently on the same instance.
type SimpleCamera struct {
	*pipeline
}

// Create a camera that scans primitive lists linearly.
func NewSimpleCamera(opts Options) (*SimpleCamera, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}
	return &SimpleCamera{pipeline: p}, nil
}

func (c *SimpleCamera) Name() string {
	return fmt.Sprintf("simple %dx", c.opts.SamplingSize)
}

// Get the camera options.
func (c *SimpleCamera) Options() Options {
	return c.opts
}

func (c *SimpleCamera) Render(self, root *scene.Node[scene.Global], width, height int) (types.Frame, error) {
	polygons := root.CollectPolygons()
	particles := root.CollectParticles()

	return c.render(self, root, width, height, frameTargets{
		polygons:      tracer.Polygons(polygons),
		particles:     tracer.Particles(particles),
		particleCount: len(particles),
	})
}

// BVHCamera rebuilds a polygon and a particle BVH on every frame and casts
// rays against them.
type BVHCamera struct {
	*pipeline
}

// Create a camera that accelerates ray casting with per-frame BVHs.
func NewBVHCamera(opts Options) (*BVHCamera, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}
	return &BVHCamera{pipeline: p}, nil
}

func (c *BVHCamera) Name() string {
	return fmt.Sprintf("simple bvh %dx", c.opts.SamplingSize)
}

// Get the camera options.
func (c *BVHCamera) Options() Options {
	return c.opts
}

func (c *BVHCamera) Render(self, root *scene.Node[scene.Global], width, height int) (types.Frame, error) {
	polygons := root.CollectPolygons()
	particles := root.CollectParticles()

	return c.render(self, root, width, height, frameTargets{
		polygons:      bvh.ForPolygons(polygons),
		particles:     bvh.ForParticles(particles, self.Position),
		particleCount: len(particles),
	})
}

// Render the scene through the camera attached to node.
func RenderNode(node, root *scene.Node[scene.Global], width, height int) (types.Frame, error) {
	if node == nil || node.Attribute == nil {
		return nil, ErrNotACamera
	}
	cam, ok := node.Attribute.Camera()
	if !ok || cam == nil {
		return nil, fmt.Errorf("%w: %q holds %s", ErrNotACamera, node.Tag, node.Attribute.Kind())
	}
	return cam.Render(node, root, width, height)
}
