package camera

import (
	"fmt"

	"github.com/chewxy/math32"
)

type Options struct {
	// Horizontal and vertical angle of view in radians.
	AngleOfView [2]float32

	// Rays per pixel side. 1 casts a single ray through each pixel while
	// 3 casts the 8 outer rays of a 3x3 grid and picks a glyph matching the
	// hit pattern.
	SamplingSize int

	// Number of goroutines tracing polygon rows.
	Workers int
}

// Get the default camera options.
func DefaultOptions() Options {
	return Options{
		AngleOfView:  [2]float32{math32.Pi / 3, math32.Pi / 4},
		SamplingSize: 1,
		Workers:      1,
	}
}

// Check the options for values the camera cannot render with.
func (o Options) Validate() error {
	if o.SamplingSize != 1 && o.SamplingSize != 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampling, o.SamplingSize)
	}
	for _, angle := range o.AngleOfView {
		if !(angle > 0 && angle < math32.Pi) {
			return fmt.Errorf("%w: got %v", ErrInvalidAngleOfView, o.AngleOfView)
		}
	}
	return nil
}
