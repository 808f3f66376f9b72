package cmd

import (
	"bytes"
	"fmt"

	"github.com/reikx/ascia/camera"
	"github.com/urfave/cli"
)

// List available camera presets and demo scenes.
func ListCameras(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	names := camera.PresetNames()
	buf.WriteString(fmt.Sprintf("\nAvailable camera presets (%d):\n\n", len(names)))
	for idx, name := range names {
		buf.WriteString(fmt.Sprintf("  [%02d] %s\n", idx, name))
	}

	scenes := sceneNames()
	buf.WriteString(fmt.Sprintf("\nAvailable demo scenes (%d):\n\n", len(scenes)))
	for idx, name := range scenes {
		buf.WriteString(fmt.Sprintf("  [%02d] %s\n", idx, name))
	}

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
