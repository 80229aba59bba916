package launcher

import (
	"fmt"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/bakerynet/go-bakery/bakery"
)

// Config aggregates everything the launcher needs to run a command.
type Config struct {
	DataDir        string
	Network        string
	FakeValidators int
	Logging        LoggingConfig
}

// LoggingConfig controls the process-wide logrus setup.
type LoggingConfig struct {
	Verbosity int    // logrus level (0=panic .. 6=trace)
	Format    string // "text" or "json"
	Color     bool
	SentryDSN string // empty disables Sentry reporting
}

// MakeAllConfigs merges defaults with CLI flag overrides.
func MakeAllConfigs(c *cli.Context) Config {
	cfg := DefaultConfig()

	if c.GlobalIsSet("datadir") {
		cfg.DataDir = c.GlobalString("datadir")
	}
	if c.GlobalIsSet("network") {
		cfg.Network = c.GlobalString("network")
	}
	if c.GlobalIsSet("fakenet.validators") {
		cfg.FakeValidators = c.GlobalInt("fakenet.validators")
	}
	if c.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = c.GlobalInt("log.verbosity")
	}
	if c.GlobalIsSet("log.format") {
		cfg.Logging.Format = c.GlobalString("log.format")
	}
	if c.GlobalIsSet("log.color") {
		cfg.Logging.Color = c.GlobalBool("log.color")
	}
	if c.GlobalIsSet("sentry.dsn") {
		cfg.Logging.SentryDSN = c.GlobalString("sentry.dsn")
	}
	return cfg
}

// Rules resolves the network rules selected by the config.
func (cfg Config) Rules() (bakery.Rules, error) {
	switch cfg.Network {
	case "main":
		return bakery.MainNetRules(), nil
	case "test":
		return bakery.TestNetRules(), nil
	case "fake":
		return bakery.FakeNetRules(), nil
	default:
		return bakery.Rules{}, fmt.Errorf("unknown network %q", cfg.Network)
	}
}

// InitLogging applies the logging config to the process-wide logrus logger,
// attaching a Sentry hook when a DSN is configured.
func InitLogging(cfg LoggingConfig) error {
	logrus.SetLevel(logrus.Level(cfg.Verbosity))

	switch cfg.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.Color})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewAsyncSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return err
		}
		logrus.AddHook(hook)
	}
	return nil
}
