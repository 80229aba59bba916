package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags covers network selection and fakenet sizing.
func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network to use (main|test|fake)",
			Value: "main",
		},
		cli.IntFlag{
			Name:  "fakenet.validators",
			Usage: "Number of deterministic delegates on a fake network",
			Value: 3,
		},
	}
}
