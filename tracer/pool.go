package tracer

import (
	"fmt"
	"time"

	"github.com/reikx/ascia/log"
	"golang.org/x/sync/errgroup"
)

// Pool splits frames into row blocks and traces them concurrently, one
// goroutine per tracer.
type Pool struct {
	logger    log.Logger
	tracers   []Tracer
	scheduler BlockScheduler
}

// Create a pool with the given number of cpu tracers. A nil scheduler
// selects the perfect scheduler.
func NewPool(workers int, scheduler BlockScheduler) *Pool {
	if workers < 1 {
		workers = 1
	}
	if scheduler == nil {
		scheduler = PerfectScheduler()
	}

	tracers := make([]Tracer, workers)
	for i := range tracers {
		tracers[i] = NewCPUTracer(fmt.Sprintf("cpu-%d", i))
	}

	return &Pool{
		logger:    log.New("tracer pool"),
		tracers:   tracers,
		scheduler: scheduler,
	}
}

// Get the pool tracers.
func (p *Pool) Tracers() []Tracer {
	return p.tracers
}

// Trace all rows in [0, frameH). Blocks are disjoint so fn may write to
// per-row output without synchronization. The first error cancels nothing
// but is returned once all blocks complete.
func (p *Pool) Trace(frameH uint32, fn BlockFunc) error {
	start := time.Now()
	blockAssignment := p.scheduler.Schedule(p.tracers, frameH)

	var (
		g      errgroup.Group
		blockY uint32
	)
	for idx, tr := range p.tracers {
		req := BlockRequest{BlockY: blockY, BlockH: blockAssignment[idx]}
		blockY += req.BlockH
		g.Go(func() error {
			return tr.Trace(req, fn)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	p.logger.Debugf("traced %d rows with %d tracer(s) in %d ms", frameH, len(p.tracers), time.Since(start).Milliseconds())
	return nil
}
