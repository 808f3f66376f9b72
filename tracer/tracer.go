package tracer

import (
	"fmt"
	"time"
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32
}

// A function that traces all rows of a block.
type BlockFunc func(req BlockRequest) error

// Tracer statistics.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering this block
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracers computation speed estimate compared to a
	// baseline (cpu) implementation.
	SpeedEstimate() float32

	// Trace a block and record its statistics.
	Trace(req BlockRequest, fn BlockFunc) error

	// Retrieve last frame statistics.
	Stats() *Stats
}

// A tracer that runs blocks on the calling goroutine.
type cpuTracer struct {
	id    string
	stats Stats
}

// Create a cpu tracer.
func NewCPUTracer(id string) Tracer {
	return &cpuTracer{id: id}
}

func (tr *cpuTracer) Id() string {
	return tr.id
}

func (tr *cpuTracer) SpeedEstimate() float32 {
	return 1.0
}

func (tr *cpuTracer) Trace(req BlockRequest, fn BlockFunc) error {
	start := time.Now()
	if err := fn(req); err != nil {
		return fmt.Errorf("tracer %s: %w", tr.id, err)
	}
	tr.stats = Stats{
		BlockH:     req.BlockH,
		RenderTime: time.Since(start),
	}
	return nil
}

func (tr *cpuTracer) Stats() *Stats {
	return &tr.stats
}
