package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign to the pool
	// of tracers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each tracer
	// in the input list. The assigned heights always add up to frameH.
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The naive scheduler splits the frame according to the tracer speed estimates.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	return scheduleBySpeed(make([]uint32, len(tracers)), tracers, frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into blocks of variable height and assign to the pool
// of tracers using feedback collected from previous frames.
//
// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for tracer w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(tracers) || !hasTimings(tracers) {
		sch.blockAssignment = scheduleBySpeed(make([]uint32, len(tracers)), tracers, frameH)
		return sch.blockAssignment
	}

	// Use last frame statistics
	var total float64
	for _, tr := range tracers {
		stats := tr.Stats()
		total += float64(stats.BlockH) / float64(stats.RenderTime)
	}

	scaler := float64(frameH) / total
	for idx, tr := range tracers {
		stats := tr.Stats()
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(float64(stats.BlockH)/float64(stats.RenderTime)*scaler)))
	}

	return fitRows(sch.blockAssignment, frameH)
}

// Distribute rows proportionally to each tracer's speed estimate.
func scheduleBySpeed(blockAssignment []uint32, tracers []Tracer, frameH uint32) []uint32 {
	var total float64
	for _, tr := range tracers {
		total += float64(tr.SpeedEstimate())
	}
	scaler := float64(frameH) / total

	for idx, tr := range tracers {
		blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(float64(tr.SpeedEstimate())*scaler)))
	}

	return fitRows(blockAssignment, frameH)
}

// Adjust an assignment so its rows add up to frameH. Missing rows go to the
// first tracer; excess rows are taken from the last tracers.
func fitRows(blockAssignment []uint32, frameH uint32) []uint32 {
	if len(blockAssignment) == 0 {
		return blockAssignment
	}

	var scheduledRows uint32
	for _, rows := range blockAssignment {
		scheduledRows += rows
	}

	if scheduledRows <= frameH {
		blockAssignment[0] += frameH - scheduledRows
		return blockAssignment
	}

	excess := scheduledRows - frameH
	for idx := len(blockAssignment) - 1; idx >= 0 && excess > 0; idx-- {
		take := min(excess, blockAssignment[idx])
		blockAssignment[idx] -= take
		excess -= take
	}
	return blockAssignment
}

// Check that every tracer has rendered a non-empty block before.
func hasTimings(tracers []Tracer) bool {
	for _, tr := range tracers {
		stats := tr.Stats()
		if stats.BlockH == 0 || stats.RenderTime <= 0 {
			return false
		}
	}
	return true
}
