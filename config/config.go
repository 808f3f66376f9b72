package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
	"github.com/reikx/ascia/camera"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Frame struct {
	// Frame size in character cells. Zero selects the terminal size.
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Camera struct {
	// Either "simple" or "bvh".
	Kind string `toml:"kind"`

	Sampling int `toml:"sampling"`

	// Angle of view in radians.
	HAngle float32 `toml:"h_angle"`
	VAngle float32 `toml:"v_angle"`

	// Polygon tracing goroutines. Zero selects one per CPU.
	Workers int `toml:"workers"`
}

type Render struct {
	// Number of frames to render. Zero renders until interrupted.
	Frames int `toml:"frames"`

	// Target frame rate for animated output.
	FPS int `toml:"fps"`
}

// Config holds the render settings that can be read from a TOML file.
type Config struct {
	Frame  Frame  `toml:"frame"`
	Camera Camera `toml:"camera"`
	Render Render `toml:"render"`
}

// Get the default configuration.
func Default() Config {
	return Config{
		Camera: Camera{
			Kind:     string(camera.BVHKind),
			Sampling: 1,
			HAngle:   math32.Pi / 3,
			VAngle:   math32.Pi / 4,
			Workers:  0,
		},
		Render: Render{
			Frames: 1,
			FPS:    30,
		},
	}
}

// Load a configuration file. Settings missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode a TOML configuration on top of the defaults and validate it.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strictErr.String())
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Check the configuration for values that cannot be rendered.
func (c Config) Validate() error {
	if c.Frame.Width < 0 || c.Frame.Height < 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, c.Frame.Width, c.Frame.Height)
	}

	switch camera.Kind(c.Camera.Kind) {
	case camera.SimpleKind, camera.BVHKind:
	default:
		return fmt.Errorf("%w: unknown camera kind %q", ErrInvalidConfig, c.Camera.Kind)
	}

	if c.Camera.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Camera.Workers)
	}

	if err := c.CameraOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Render.Frames < 0 {
		return fmt.Errorf("%w: negative frame count %d", ErrInvalidConfig, c.Render.Frames)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive; got %d", ErrInvalidConfig, c.Render.FPS)
	}
	return nil
}

// Get the camera options described by the configuration.
func (c Config) CameraOptions() camera.Options {
	workers := c.Camera.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return camera.Options{
		AngleOfView:  [2]float32{c.Camera.HAngle, c.Camera.VAngle},
		SamplingSize: c.Camera.Sampling,
		Workers:      workers,
	}
}
