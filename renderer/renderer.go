package renderer

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/reikx/ascia/camera"
	"github.com/reikx/ascia/log"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/tracer"
	"github.com/reikx/ascia/types"
)

type Status uint8

const (
	Waiting Status = iota
	Updating
	Flattening
	Rendering
)

func (s Status) String() string {
	switch s {
	case Updating:
		return "updating"
	case Flattening:
		return "flattening"
	case Rendering:
		return "rendering"
	}
	return "waiting"
}

// A hook invoked before each frame is flattened. Elapsed is the time since
// the previous frame started or zero for the first frame.
type UpdateFunc func(root *scene.Node[scene.Local], elapsed time.Duration) error

// Cameras that expose their tracers get per-tracer statistics.
type tracerProvider interface {
	Tracers() []tracer.Tracer
}

// Engine owns a Local scene tree and turns it into frames. Each call to Render
// runs the update hooks, flattens the tree and renders it through the active
// camera.
type Engine struct {
	logger log.Logger

	mu         sync.Mutex
	status     Status
	root       *scene.Node[scene.Local]
	options    Options
	hooks      []UpdateFunc
	lastRender time.Time
	frame      uint64
	stats      FrameStats
}

// Create a new engine for the scene rooted at root.
func New(root *scene.Node[scene.Local], opts Options) (*Engine, error) {
	if root == nil {
		return nil, ErrSceneNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidFrameSize, opts.FrameW, opts.FrameH)
	}

	return &Engine{
		logger:  log.New("renderer"),
		root:    root,
		options: opts,
	}, nil
}

// Get the scene root. Changes to the tree must not overlap with Render.
func (e *Engine) Root() *scene.Node[scene.Local] {
	return e.root
}

// Get the engine status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Register a hook that runs before every frame.
func (e *Engine) OnUpdate(fn UpdateFunc) {
	e.mu.Lock()
	e.hooks = append(e.hooks, fn)
	e.mu.Unlock()
}

// Select the node whose camera renders the following frames.
func (e *Engine) SetCamera(path ...string) {
	e.mu.Lock()
	e.options.CameraPath = append([]string(nil), path...)
	e.mu.Unlock()
	e.logger.Infof("switched to camera %q", strings.Join(path, "/"))
}

// Change the frame dimensions for the following frames.
func (e *Engine) Resize(frameW, frameH uint32) error {
	if frameW == 0 || frameH == 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidFrameSize, frameW, frameH)
	}
	e.mu.Lock()
	e.options.FrameW, e.options.FrameH = frameW, frameH
	e.mu.Unlock()
	return nil
}

// Get the statistics of the last rendered frame.
func (e *Engine) Stats() FrameStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}

// Render the next frame. Calling Render while another call is in progress
// fails with ErrBusy.
func (e *Engine) Render() (types.Frame, error) {
	e.mu.Lock()
	if e.status != Waiting {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.status = Updating
	opts := e.options
	hooks := e.hooks
	var elapsed time.Duration
	now := time.Now()
	if !e.lastRender.IsZero() {
		elapsed = now.Sub(e.lastRender)
	}
	e.lastRender = now
	e.mu.Unlock()
	defer e.setStatus(Waiting)

	var stats FrameStats

	start := time.Now()
	for _, hook := range hooks {
		if err := hook(e.root, elapsed); err != nil {
			return nil, fmt.Errorf("renderer: update hook failed: %w", err)
		}
	}
	stats.UpdateTime = time.Since(start)

	e.setStatus(Flattening)
	start = time.Now()
	global := scene.Flatten(e.root)
	stats.FlattenTime = time.Since(start)

	node, err := findCamera(global, opts.CameraPath)
	if err != nil {
		return nil, err
	}
	cam, _ := node.Attribute.Camera()

	e.setStatus(Rendering)
	start = time.Now()
	frame, err := camera.RenderNode(node, global, int(opts.FrameW), int(opts.FrameH))
	if err != nil {
		return nil, err
	}
	stats.RenderTime = time.Since(start)

	stats.Camera = cam.Name()
	stats.Nodes = global.Len()
	stats.Polygons = len(global.CollectPolygons())
	stats.Particles = len(global.CollectParticles())
	stats.Lights = len(scene.Lights(global))
	if tp, ok := cam.(tracerProvider); ok {
		stats.Tracers = tracerStats(tp.Tracers(), opts.FrameH)
	}

	e.mu.Lock()
	e.frame++
	stats.Frame = e.frame
	e.stats = stats
	e.mu.Unlock()

	e.logger.Debugf(
		"frame %d: update %d us, flatten %d us, render %d ms",
		stats.Frame,
		stats.UpdateTime.Microseconds(),
		stats.FlattenTime.Microseconds(),
		stats.RenderTime.Milliseconds(),
	)
	return frame, nil
}

// Locate the node carrying the camera selected by path.
func findCamera(root *scene.Node[scene.Global], path []string) (*scene.Node[scene.Global], error) {
	if len(path) == 0 {
		node := root.FindAttribute(scene.CameraAttribute)
		if node == nil {
			return nil, ErrCameraNotDefined
		}
		return node, nil
	}

	node := root.Find(path...)
	if node == nil {
		return nil, fmt.Errorf("%w: no node at %q", ErrCameraNotDefined, strings.Join(path, "/"))
	}
	if node.Attribute == nil || node.Attribute.Kind() != scene.CameraAttribute {
		return nil, fmt.Errorf("%w: %w", ErrCameraNotDefined, camera.ErrNotACamera)
	}
	return node, nil
}

func tracerStats(tracers []tracer.Tracer, frameH uint32) []TracerStat {
	out := make([]TracerStat, 0, len(tracers))
	for _, tr := range tracers {
		st := tr.Stats()
		stat := TracerStat{
			Id:         tr.Id(),
			BlockH:     st.BlockH,
			RenderTime: st.RenderTime,
		}
		if frameH > 0 {
			stat.FramePercent = 100 * float32(st.BlockH) / float32(frameH)
		}
		out = append(out, stat)
	}
	return out
}

// IsRecoverable reports whether err leaves the engine usable for another
// frame once the scene or camera selection has been fixed.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrCameraNotDefined) || errors.Is(err, ErrBusy)
}
