package renderer

type Options struct {
	// Frame dims in character cells.
	FrameW uint32
	FrameH uint32

	// Tag path from the scene root to the node carrying the active camera.
	// When empty the first camera found in a depth-first walk is used.
	CameraPath []string
}
