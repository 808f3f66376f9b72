package camera

import (
	"fmt"

	"github.com/reikx/ascia/scene"
)

type Kind string

const (
	SimpleKind Kind = "simple"
	BVHKind    Kind = "bvh"
)

// Create a camera of the given kind.
func New(kind Kind, opts Options) (scene.Camera, error) {
	var (
		cam scene.Camera
		err error
	)
	switch kind {
	case SimpleKind:
		cam, err = NewSimpleCamera(opts)
	case BVHKind:
		cam, err = NewBVHCamera(opts)
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownPreset, kind)
	}
	if err != nil {
		return nil, err
	}
	return cam, nil
}

type preset struct {
	name     string
	kind     Kind
	sampling int
}

var presets = []preset{
	{"simple 1x", SimpleKind, 1},
	{"simple bvh 1x", BVHKind, 1},
	{"simple 3x", SimpleKind, 3},
	{"simple bvh 3x", BVHKind, 3},
}

// List the names of the available camera presets.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}

// Create a camera from a named preset. The preset overrides the sampling
// size; all other options are taken from opts.
func NewPreset(name string, opts Options) (scene.Camera, error) {
	for _, p := range presets {
		if p.name != name {
			continue
		}
		opts.SamplingSize = p.sampling
		logger.Infof("creating %q camera with %d worker(s)", name, opts.Workers)
		return New(p.kind, opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
