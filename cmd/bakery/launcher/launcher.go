package launcher

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/bakerynet/go-bakery/flags"
)

var app = flags.NewApp()

func init() {
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)
	app.Commands = []cli.Command{
		rightsCommand,
	}
	app.Before = func(c *cli.Context) error {
		cfg := MakeAllConfigs(c)
		return InitLogging(cfg.Logging)
	}
}

// Launch parses the CLI arguments and dispatches to the selected command.
func Launch(args []string) error {
	return app.Run(args)
}
