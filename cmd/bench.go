package cmd

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/reikx/ascia/camera"
	"github.com/reikx/ascia/renderer"
	"github.com/urfave/cli"
)

// The timings of one camera preset.
type benchResult struct {
	Preset string

	// Mean time spent in each stage over all frames.
	Flatten time.Duration
	Render  time.Duration

	Stats renderer.FrameStats
}

// Render a demo scene with every camera preset and print a timing table.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	workers := ctx.Int("workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results, err := runBenchmark(
		ctx.Args().First(),
		ctx.Int("width"),
		ctx.Int("height"),
		workers,
		ctx.Int("frames"),
	)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writeBenchTable(&buf, results)
	logger.Noticef("benchmark results\n%s", buf.String())
	return nil
}

// Render frames frames of sceneName with each camera preset.
func runBenchmark(sceneName string, frameW, frameH, workers, frames int) ([]benchResult, error) {
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", renderer.ErrInvalidFrameSize, frameW, frameH)
	}
	if frames < 1 {
		frames = 1
	}

	opts := camera.DefaultOptions()
	opts.Workers = workers

	results := make([]benchResult, 0, len(camera.PresetNames()))
	for _, name := range camera.PresetNames() {
		cam, err := camera.NewPreset(name, opts)
		if err != nil {
			return nil, err
		}

		root, _, err := buildScene(sceneName, cam)
		if err != nil {
			return nil, err
		}

		engine, err := renderer.New(root, renderer.Options{FrameW: uint32(frameW), FrameH: uint32(frameH)})
		if err != nil {
			return nil, err
		}

		res := benchResult{Preset: name}
		for i := 0; i < frames; i++ {
			if _, err = engine.Render(); err != nil {
				return nil, fmt.Errorf("preset %q: %w", name, err)
			}
			stats := engine.Stats()
			res.Flatten += stats.FlattenTime
			res.Render += stats.RenderTime
		}
		res.Flatten /= time.Duration(frames)
		res.Render /= time.Duration(frames)
		res.Stats = engine.Stats()

		logger.Infof("preset %q: %s per frame", name, res.Render)
		results = append(results, res)
	}
	return results, nil
}

func writeBenchTable(w io.Writer, results []benchResult) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Camera", "Polygons", "Particles", "Tracers", "Flatten time", "Render time"})
	for _, res := range results {
		table.Append([]string{
			res.Preset,
			fmt.Sprintf("%d", res.Stats.Polygons),
			fmt.Sprintf("%d", res.Stats.Particles),
			fmt.Sprintf("%d", len(res.Stats.Tracers)),
			res.Flatten.String(),
			res.Render.String(),
		})
	}
	table.Render()
}
