package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/reikx/ascia/camera"
	"github.com/reikx/ascia/config"
	"github.com/reikx/ascia/renderer"
	"github.com/reikx/ascia/viewport"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

// Frame size used when stdout is not a terminal.
const (
	fallbackFrameW = 80
	fallbackFrameH = 24
)

var errNotATerminal = errors.New("stdout is not a terminal")

// Render a demo scene to the terminal.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	cam, err := camera.New(camera.Kind(cfg.Camera.Kind), cfg.CameraOptions())
	if err != nil {
		return err
	}

	root, update, err := buildScene(ctx.Args().First(), cam)
	if err != nil {
		return err
	}

	frameW, frameH := frameSize(cfg.Frame, stdoutSize)
	engine, err := renderer.New(root, renderer.Options{FrameW: frameW, FrameH: frameH})
	if err != nil {
		return err
	}
	engine.OnUpdate(update)
	logger.Infof("rendering %dx%d frames with %q", frameW, frameH, cam.Name())

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	vp := viewport.New(ctx.App.Writer)
	defer vp.Close()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Render.FPS))
	defer ticker.Stop()

loop:
	for n := 0; cfg.Render.Frames == 0 || n < cfg.Render.Frames; n++ {
		if n > 0 {
			select {
			case <-sigCtx.Done():
				break loop
			case <-ticker.C:
			}
		}

		frame, err := engine.Render()
		if err != nil {
			return err
		}
		if err = vp.Display(frame); err != nil {
			return err
		}
	}

	displayFrameStats(engine.Stats())
	return nil
}

// Build the configuration from the optional config file and the command
// flags. Flags take precedence over file settings.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if ctx.IsSet("width") {
		cfg.Frame.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Frame.Height = ctx.Int("height")
	}
	if ctx.IsSet("camera") {
		cfg.Camera.Kind = ctx.String("camera")
	}
	if ctx.IsSet("sampling") {
		cfg.Camera.Sampling = ctx.Int("sampling")
	}
	if ctx.IsSet("workers") {
		cfg.Camera.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("frames") {
		cfg.Render.Frames = ctx.Int("frames")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Get the size of the terminal attached to stdout.
func stdoutSize() (int, int, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, errNotATerminal
	}
	return term.GetSize(fd)
}

// Resolve the frame size. Zero dimensions are taken from the terminal,
// keeping the last row free for the cursor.
func frameSize(frame config.Frame, termSize func() (int, int, error)) (uint32, uint32) {
	w, h := frame.Width, frame.Height
	if w > 0 && h > 0 {
		return uint32(w), uint32(h)
	}

	tw, th, err := termSize()
	if err != nil || tw <= 0 || th <= 1 {
		logger.Debugf("using fallback frame size: %v", err)
		tw, th = fallbackFrameW, fallbackFrameH+1
	}
	if w <= 0 {
		w = tw
	}
	if h <= 0 {
		h = th - 1
	}
	return uint32(w), uint32(h)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef(
		"frame %d statistics (%s, %d nodes, %d polygons, %d particles, %d lights, update %s, flatten %s)\n%s",
		stats.Frame,
		stats.Camera,
		stats.Nodes,
		stats.Polygons,
		stats.Particles,
		stats.Lights,
		stats.UpdateTime,
		stats.FlattenTime,
		buf.String(),
	)
}
