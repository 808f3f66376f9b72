package renderer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInvalidFrameSize = errors.New("renderer: frame dimensions must be positive")
	ErrBusy             = errors.New("renderer: a frame is already being rendered")
)
