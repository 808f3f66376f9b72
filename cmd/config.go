package cmd

import (
	"github.com/reikx/ascia/config"
	"github.com/urfave/cli"
)

// Print the effective configuration as TOML. Without a config file this
// prints the defaults which can be used as a starting point.
func ShowConfig(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	return cfg.Encode(ctx.App.Writer)
}
