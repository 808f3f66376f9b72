package renderer

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// Sequence number of the frame, starting at 1.
	Frame uint64

	// Name of the camera that rendered the frame.
	Camera string

	// Scene contents after flattening.
	Nodes     int
	Polygons  int
	Particles int
	Lights    int

	// Individual tracer stats. Empty for cameras that do not expose their
	// tracers.
	Tracers []TracerStat

	// Time spent in update hooks, flattening and the camera.
	UpdateTime  time.Duration
	FlattenTime time.Duration
	RenderTime  time.Duration
}
