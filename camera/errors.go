package camera

import "errors"

var (
	ErrInvalidSampling     = errors.New("camera: sampling size must be 1 or 3")
	ErrInvalidAngleOfView  = errors.New("camera: angle of view must be in (0, pi)")
	ErrUnsupportedMaterial = errors.New("camera: material is not supported for particles")
	ErrNotACamera          = errors.New("camera: node does not carry a camera")
	ErrUnknownPreset       = errors.New("camera: unknown preset")
)
