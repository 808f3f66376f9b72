package main

import (
	"fmt"
	"os"

	"github.com/reikx/ascia/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	configFlag := cli.StringFlag{
		Name:  "config, c",
		Usage: "load settings from a TOML file",
	}
	workersFlag := cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "polygon tracing goroutines; 0 uses one per CPU",
	}

	app := cli.NewApp()
	app.Name = "ascia"
	app.Usage = "render 3D scenes as colored text using ray tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "notice",
			Usage: "log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a demo scene to the terminal",
			Description: `
Render one of the built-in demo scenes (cube, shadow, particles) or a
wavefront .obj model (local path or http(s) URL) to the terminal while
spinning it. The frame size defaults to the terminal size.

Settings are read from the config file when one is given; flags override
file settings. With --frames 0 frames are rendered until interrupted.`,
			ArgsUsage: "[scene | model.obj]",
			Flags: []cli.Flag{
				configFlag,
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width in characters; 0 uses the terminal width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height in characters; 0 uses the terminal height",
				},
				cli.StringFlag{
					Name:  "camera",
					Value: "bvh",
					Usage: "camera kind (simple or bvh)",
				},
				cli.IntFlag{
					Name:  "sampling",
					Value: 1,
					Usage: "rays per pixel along each axis (1 or 3)",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "number of frames to render; 0 renders until interrupted",
				},
				workersFlag,
			},
			Action: cmd.RenderScene,
		},
		{
			Name:      "bench",
			Usage:     "time a demo scene with every camera preset",
			ArgsUsage: "[scene]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 160,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 48,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 3,
					Usage: "frames rendered per camera",
				},
				workersFlag,
			},
			Action: cmd.Bench,
		},
		{
			Name:   "list-cameras",
			Usage:  "list available camera presets and demo scenes",
			Action: cmd.ListCameras,
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration as TOML",
			Flags:  []cli.Flag{configFlag},
			Action: cmd.ShowConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
