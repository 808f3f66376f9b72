package cmd

import (
	"os"

	"github.com/reikx/ascia/log"
	"github.com/urfave/cli"
)

var logger = log.New("ascia")

// Route logs to stderr so they never interleave with frames on stdout and
// apply the global verbosity flags. -v and -vv override --log-level.
func setupLogging(ctx *cli.Context) {
	log.SetSink(os.Stderr)

	level, err := log.ParseLevel(ctx.GlobalString("log-level"))
	if err != nil {
		logger.Warningf("%v; using notice", err)
	}
	log.SetLevel(level)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
