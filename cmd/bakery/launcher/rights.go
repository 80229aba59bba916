package launcher

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/bakerynet/go-bakery/baking"
	"github.com/bakerynet/go-bakery/integration"
	"github.com/bakerynet/go-bakery/inter"
)

var rightsCommand = cli.Command{
	Name:  "rights",
	Usage: "Print a fakenet delegate's baking priorities at a level",
	Description: `Scans the priority sequence of the given level on a deterministic fake
network and lists every priority owned by the chosen delegate. Useful for
inspecting how stake translates into baking slots before pointing a baker at
a real rights oracle.`,
	Flags: []cli.Flag{
		cli.Uint64Flag{
			Name:  "level",
			Usage: "Chain level to inspect",
			Value: 1,
		},
		cli.IntFlag{
			Name:  "delegate",
			Usage: "Fakenet delegate id (1-based)",
			Value: 1,
		},
		cli.UintFlag{
			Name:  "max-priority",
			Usage: "Exclusive upper bound of the priority scan",
			Value: 64,
		},
	},
	Action: printRights,
}

func printRights(c *cli.Context) error {
	cfg := MakeAllConfigs(c)
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	delegate := c.Int("delegate")
	if delegate < 1 || delegate > cfg.FakeValidators {
		return fmt.Errorf("delegate id %d out of range 1..%d", delegate, cfg.FakeValidators)
	}

	oracle, pubs := integration.FakeNet(cfg.FakeValidators)
	pub := pubs[delegate-1]
	level := inter.Level{
		Height:        idx.Block(c.Uint64("level")),
		Cycle:         idx.Epoch(c.Uint64("level") / uint64(rules.Cycles.Length)),
		CyclePosition: uint32(c.Uint64("level") % uint64(rules.Cycles.Length)),
	}

	maxPriority := uint32(c.Uint("max-priority"))
	matches, err := baking.FirstMatchingIndices(oracle, pub.Address(), level, maxPriority)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"delegate": pub.Address().Hex(),
		"level":    level.Height,
		"scanned":  maxPriority,
	}).Info("baking rights computed")

	if len(matches) == 0 {
		fmt.Fprintf(app.Writer, "delegate %s owns no priority below %d at level %d\n",
			pub.Address().Hex(), maxPriority, level.Height)
		return nil
	}
	for _, priority := range matches {
		fmt.Fprintf(app.Writer, "level %d priority %d -> %s\n", level.Height, priority, pub.Address().Hex())
	}
	return nil
}
