package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/reikx/ascia/camera"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/types"
)

func newCamera(t *testing.T, workers int) scene.Camera {
	t.Helper()
	opts := camera.DefaultOptions()
	opts.Workers = workers
	cam, err := camera.New(camera.SimpleKind, opts)
	if err != nil {
		t.Fatalf("unexpected error creating camera: %v", err)
	}
	return cam
}

func testScene(t *testing.T) *scene.Node[scene.Local] {
	root := scene.NewNode[scene.Local]("root")

	wall := scene.NewNode[scene.Local]("wall")
	wall.Position = types.Vec3{5, 0, 0}
	wall.Polygons = scene.Square(40, scene.Flat(types.ColorRGB{G: 1}, 0))
	root.AddChild(wall)

	light := scene.NewNode[scene.Local]("light")
	light.SetAttribute(scene.NewLightAttribute(scene.DefaultPointLight()))
	root.AddChild(light)

	rig := scene.NewNode[scene.Local]("rig")
	eye := scene.NewNode[scene.Local]("eye")
	eye.SetAttribute(scene.NewCameraAttribute(newCamera(t, 2)))
	rig.AddChild(eye)
	root.AddChild(rig)

	return root
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, Options{FrameW: 1, FrameH: 1}); !errors.Is(err, ErrSceneNotDefined) {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err := New(scene.NewNode[scene.Local]("root"), Options{FrameW: 0, FrameH: 1}); !errors.Is(err, ErrInvalidFrameSize) {
		t.Fatalf("expected ErrInvalidFrameSize; got %v", err)
	}
}

func TestRenderWithoutCamera(t *testing.T) {
	root := scene.NewNode[scene.Local]("root")
	e, err := New(root, Options{FrameW: 4, FrameH: 2})
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Render()
	if !errors.Is(err, ErrCameraNotDefined) {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}
	if !IsRecoverable(err) {
		t.Fatal("expected a missing camera to be recoverable")
	}
	if e.Status() != Waiting {
		t.Fatalf("expected engine to return to waiting; got %s", e.Status())
	}

	// Attaching a camera fixes the scene.
	eye := scene.NewNode[scene.Local]("eye")
	eye.SetAttribute(scene.NewCameraAttribute(newCamera(t, 1)))
	root.AddChild(eye)
	if _, err = e.Render(); err != nil {
		t.Fatalf("unexpected error after adding a camera: %v", err)
	}
}

func TestCameraLookup(t *testing.T) {
	root := testScene(t)

	type spec struct {
		path   []string
		expErr error
	}
	specs := []spec{
		{nil, nil},
		{[]string{"rig", "eye"}, nil},
		{[]string{"rig", "missing"}, ErrCameraNotDefined},
		{[]string{"light"}, camera.ErrNotACamera},
		{[]string{"wall"}, ErrCameraNotDefined},
	}

	for index, s := range specs {
		e, err := New(root, Options{FrameW: 3, FrameH: 2, CameraPath: s.path})
		if err != nil {
			t.Fatal(err)
		}
		frame, err := e.Render()
		if s.expErr != nil {
			if !errors.Is(err, s.expErr) {
				t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if frame.Width() != 3 || frame.Height() != 2 {
			t.Fatalf("[spec %d] expected a 3x2 frame; got %dx%d", index, frame.Width(), frame.Height())
		}
		if frame[0][0].Char != '#' {
			t.Fatalf("[spec %d] expected the wall to be visible; got %q", index, frame[0][0].Char)
		}
	}
}

func TestRenderStats(t *testing.T) {
	e, err := New(testScene(t), Options{FrameW: 6, FrameH: 5})
	if err != nil {
		t.Fatal(err)
	}

	var (
		calls    int
		elapsed  []time.Duration
		sawFrame bool
	)
	e.OnUpdate(func(root *scene.Node[scene.Local], dt time.Duration) error {
		calls++
		elapsed = append(elapsed, dt)
		root.Find("wall").Translate(types.Vec3{0.1, 0, 0})
		sawFrame = e.Status() == Updating
		return nil
	})

	for i := 0; i < 2; i++ {
		if _, err = e.Render(); err != nil {
			t.Fatalf("[frame %d] unexpected error: %v", i, err)
		}
	}

	if calls != 2 || elapsed[0] != 0 {
		t.Fatalf("expected 2 hook calls with zero initial elapsed time; got %d calls, %v", calls, elapsed)
	}
	if !sawFrame {
		t.Fatal("expected hooks to run while the engine is updating")
	}
	if pos := e.Root().Find("wall").Position; pos[0] < 5.19 || pos[0] > 5.21 {
		t.Fatalf("expected hooks to move the wall to x=5.2; got %v", pos)
	}

	stats := e.Stats()
	if stats.Frame != 2 {
		t.Fatalf("expected frame counter 2; got %d", stats.Frame)
	}
	if stats.Camera != "simple 1x" {
		t.Fatalf("expected camera name %q; got %q", "simple 1x", stats.Camera)
	}
	if stats.Nodes != 5 || stats.Polygons != 2 || stats.Particles != 0 || stats.Lights != 1 {
		t.Fatalf("unexpected scene stats: %+v", stats)
	}

	if len(stats.Tracers) != 2 {
		t.Fatalf("expected 2 tracer stats; got %d", len(stats.Tracers))
	}
	var rows uint32
	var percent float32
	for _, tr := range stats.Tracers {
		rows += tr.BlockH
		percent += tr.FramePercent
	}
	if rows != 5 || percent < 99.9 || percent > 100.1 {
		t.Fatalf("expected tracer blocks to cover the frame; got %d rows (%f%%)", rows, percent)
	}
}

func TestHookErrorAborts(t *testing.T) {
	e, err := New(testScene(t), Options{FrameW: 2, FrameH: 2})
	if err != nil {
		t.Fatal(err)
	}

	errHook := errors.New("hook failed")
	e.OnUpdate(func(*scene.Node[scene.Local], time.Duration) error { return errHook })
	if _, err = e.Render(); !errors.Is(err, errHook) {
		t.Fatalf("expected hook error; got %v", err)
	}
	if e.Stats().Frame != 0 {
		t.Fatal("expected a failed frame not to be counted")
	}
}

func TestReentrantRender(t *testing.T) {
	e, err := New(testScene(t), Options{FrameW: 2, FrameH: 2})
	if err != nil {
		t.Fatal(err)
	}

	var nestedErr error
	e.OnUpdate(func(*scene.Node[scene.Local], time.Duration) error {
		_, nestedErr = e.Render()
		return nil
	})
	if _, err = e.Render(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(nestedErr, ErrBusy) {
		t.Fatalf("expected nested render to fail with ErrBusy; got %v", nestedErr)
	}
}

func TestSwitchCameraAndResize(t *testing.T) {
	root := testScene(t)
	back := scene.NewNode[scene.Local]("back")
	back.Direction = types.QuatFromAxisAngle(types.Vec3{0, 1, 0}, 3.14159)
	back.SetAttribute(scene.NewCameraAttribute(newCamera(t, 1)))
	root.AddChild(back)

	e, err := New(root, Options{FrameW: 2, FrameH: 2, CameraPath: []string{"rig", "eye"}})
	if err != nil {
		t.Fatal(err)
	}
	frame, err := e.Render()
	if err != nil || frame[0][0].Char != '#' {
		t.Fatalf("expected the front camera to see the wall; got %v", err)
	}

	e.SetCamera("back")
	if err = e.Resize(3, 1); err != nil {
		t.Fatal(err)
	}
	frame, err = e.Render()
	if err != nil {
		t.Fatal(err)
	}
	if frame.Width() != 3 || frame.Height() != 1 || frame[0][0].Char != ' ' {
		t.Fatalf("expected an empty 3x1 frame from the back camera; got %q", frame.String())
	}

	if err = e.Resize(0, 1); !errors.Is(err, ErrInvalidFrameSize) {
		t.Fatalf("expected ErrInvalidFrameSize; got %v", err)
	}
}
