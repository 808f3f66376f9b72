package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/chewxy/math32"
	"github.com/reikx/ascia/renderer"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/scene/reader"
	"github.com/reikx/ascia/types"
)

// Radians per second for spinning models.
const spinSpeed float32 = math32.Pi / 4

type demoScene func(cam scene.Camera) (*scene.Node[scene.Local], renderer.UpdateFunc)

var demoScenes = map[string]demoScene{
	"cube":      cubeScene,
	"shadow":    shadowScene,
	"particles": particleScene,
}

// List the demo scene names.
func sceneNames() []string {
	names := make([]string, 0, len(demoScenes))
	for name := range demoScenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build the demo scene called name viewed through cam. Names ending in .obj
// are loaded as wavefront models from a path or URL.
func buildScene(name string, cam scene.Camera) (*scene.Node[scene.Local], renderer.UpdateFunc, error) {
	if name == "" {
		name = "cube"
	}
	if strings.HasSuffix(strings.ToLower(name), ".obj") {
		model, err := reader.ReadModel(name)
		if err != nil {
			return nil, nil, err
		}
		root, update := modelScene(model, cam)
		return root, update, nil
	}
	build, ok := demoScenes[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown scene %q; available scenes: %s", name, strings.Join(sceneNames(), ", "))
	}
	root, update := build(cam)
	return root, update, nil
}

// Attach an eye at the origin looking along +X.
func addEye(root *scene.Node[scene.Local], cam scene.Camera) {
	eye := scene.NewNode[scene.Local]("eye")
	eye.SetAttribute(scene.NewCameraAttribute(cam))
	root.AddChild(eye)
}

func addLight(root *scene.Node[scene.Local], tag string, pos types.Vec3, light scene.PointLight) {
	node := scene.NewNode[scene.Local](tag)
	node.Position = pos
	node.SetAttribute(scene.NewLightAttribute(light))
	root.AddChild(node)
}

// Rotate the node at path around axis by spinSpeed radians per second.
func spin(path []string, axis types.Vec3) renderer.UpdateFunc {
	return func(root *scene.Node[scene.Local], elapsed time.Duration) error {
		node := root.Find(path...)
		if node == nil {
			return fmt.Errorf("spin: no node at %q", strings.Join(path, "/"))
		}
		node.Rotate(axis, spinSpeed*float32(elapsed.Seconds()))
		return nil
	}
}

// A lit cube tilted towards the viewer.
func cubeScene(cam scene.Camera) (*scene.Node[scene.Local], renderer.UpdateFunc) {
	root := scene.NewNode[scene.Local]("root")
	addEye(root, cam)
	addLight(root, "light", types.Vec3{0, 4, 3}, scene.DefaultPointLight())

	model := scene.NewNode[scene.Local]("model")
	model.Position = types.Vec3{6, 0, 0}
	model.Direction = types.QuatFromAxisAngle(types.Vec3{1, 0, 1}.Normalize(), math32.Pi/6)
	model.Polygons = scene.Cube(2.5, scene.Lambert(types.ColorRGB{R: 0.9, G: 0.6, B: 0.2}, 0))
	root.AddChild(model)

	return root, spin([]string{"model"}, types.Vec3{0, 1, 0})
}

// A cube hovering over a floor that receives its shadow.
func shadowScene(cam scene.Camera) (*scene.Node[scene.Local], renderer.UpdateFunc) {
	root := scene.NewNode[scene.Local]("root")
	addEye(root, cam)
	addLight(root, "light", types.Vec3{7, 6, 0}, scene.DefaultPointLight())

	floor := scene.NewNode[scene.Local]("floor")
	floor.Position = types.Vec3{7, -2, 0}
	floor.Direction = types.QuatFromAxisAngle(types.Vec3{0, 0, 1}, -math32.Pi/2)
	floor.Polygons = scene.Square(12, scene.LambertWithShadow(types.ColorRGB{R: 0.7, G: 0.7, B: 0.7}, 0))
	root.AddChild(floor)

	model := scene.NewNode[scene.Local]("model")
	model.Position = types.Vec3{7, 0.5, 0}
	model.Polygons = scene.Cube(2, scene.LambertWithShadow(types.ColorRGB{R: 0.2, G: 0.5, B: 1}, 1))
	root.AddChild(model)

	return root, spin([]string{"model"}, types.Vec3{0, 1, 0})
}

// A ring of particles around a flat backdrop. The update hook moves each
// particle by its velocity and spins the ring.
func particleScene(cam scene.Camera) (*scene.Node[scene.Local], renderer.UpdateFunc) {
	root := scene.NewNode[scene.Local]("root")
	addEye(root, cam)

	backdrop := scene.NewNode[scene.Local]("backdrop")
	backdrop.Position = types.Vec3{12, 0, 0}
	backdrop.Polygons = scene.Square(10, scene.Flat(types.ColorRGB{R: 0.1, G: 0.1, B: 0.3}, 0))
	root.AddChild(backdrop)

	ring := scene.NewNode[scene.Local]("ring")
	ring.Position = types.Vec3{8, 0, 0}
	const count = 12
	glyphs := []rune("*+o")
	for i := 0; i < count; i++ {
		angle := 2 * math32.Pi * float32(i) / count
		p := scene.Particle[scene.Local]{
			Position:  types.Vec3{0, 2 * math32.Sin(angle), 2 * math32.Cos(angle)},
			Velocity:  types.Vec3{-0.1, 0, 0},
			Char:      glyphs[i%len(glyphs)],
			Threshold: 0.25,
			Mode:      scene.SphereParticle,
			Material:  scene.Flat(types.ColorRGB{R: 1, G: 1, B: float32(i) / count}, 0),
		}
		if i%2 == 1 {
			p.Mode = scene.ArgParticle
			p.Threshold = 0.03
		}
		ring.Particles = append(ring.Particles, p)
	}
	root.AddChild(ring)

	spinRing := spin([]string{"ring"}, types.Vec3{1, 0, 0})
	return root, func(root *scene.Node[scene.Local], elapsed time.Duration) error {
		ring := root.Find("ring")
		if ring == nil {
			return fmt.Errorf("particles: no ring node")
		}
		dt := float32(elapsed.Seconds())
		for i := range ring.Particles {
			p := &ring.Particles[i]
			p.Position = p.Position.Add(p.Velocity.Mul(dt))
		}
		return spinRing(root, elapsed)
	}
}

// Frame a loaded model in front of the eye and spin it around its center. A
// light is added above the eye unless the model brings its own.
func modelScene(model *scene.Node[scene.Local], cam scene.Camera) (*scene.Node[scene.Local], renderer.UpdateFunc) {
	polygons := scene.Flatten(model).CollectPolygons()
	box := polygons[0].AABB()
	for _, poly := range polygons[1:] {
		box = box.Union(poly.AABB())
	}
	radius := math32.Max(box.Max.Sub(box.Min).Len()*0.5, 1e-3)

	// Fit the bounding sphere inside the default vertical angle of view.
	dist := radius/math32.Sin(math32.Pi/8) + radius*0.1

	root := scene.NewNode[scene.Local]("root")
	addEye(root, cam)
	if len(scene.Lights(scene.Flatten(model))) == 0 {
		addLight(root, "light", types.Vec3{0, 2 * radius, radius}, scene.DefaultPointLight())
	}

	pivot := scene.NewNode[scene.Local]("model")
	pivot.Position = types.Vec3{dist, 0, 0}
	model.Position = box.Center().Neg()
	pivot.AddChild(model)
	root.AddChild(pivot)

	return root, spin([]string{"model"}, types.Vec3{0, 1, 0})
}
