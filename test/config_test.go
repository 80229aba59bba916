package test

import (
	"testing"

	"gopkg.in/urfave/cli.v1"

	"github.com/bakerynet/go-bakery/cmd/bakery/launcher"
	"github.com/bakerynet/go-bakery/flags"
)

// runConfigFromArgs feeds synthetic CLI arguments through the launcher's
// config aggregation and returns the result.
func runConfigFromArgs(t *testing.T, args []string) launcher.Config {
	t.Helper()

	app := cli.NewApp()
	app.HideHelp = true
	app.HideVersion = true
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)

	var got launcher.Config
	app.Action = func(c *cli.Context) error {
		got = launcher.MakeAllConfigs(c)
		return nil
	}

	if err := app.Run(append([]string{"bakery"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return got
}

// TestMakeAllConfigs_defaults verifies the baseline config when no flags are
// given.
func TestMakeAllConfigs_defaults(t *testing.T) {
	got := runConfigFromArgs(t, nil)
	want := launcher.DefaultConfig()

	if got != want {
		t.Errorf("defaults: got %+v, want %+v", got, want)
	}
}

// TestMakeAllConfigs_flagOverrides verifies that each declared flag
// overrides its corresponding config field.
func TestMakeAllConfigs_flagOverrides(t *testing.T) {
	got := runConfigFromArgs(t, []string{
		"--datadir", "/tmp/bakery-test",
		"--network", "fake",
		"--fakenet.validators", "7",
		"--log.verbosity", "6",
		"--log.format", "json",
		"--log.color",
		"--sentry.dsn", "https://key@sentry.example/1",
	})

	if got.DataDir != "/tmp/bakery-test" {
		t.Errorf("DataDir = %q", got.DataDir)
	}
	if got.Network != "fake" {
		t.Errorf("Network = %q", got.Network)
	}
	if got.FakeValidators != 7 {
		t.Errorf("FakeValidators = %d", got.FakeValidators)
	}
	if got.Logging.Verbosity != 6 {
		t.Errorf("Logging.Verbosity = %d", got.Logging.Verbosity)
	}
	if got.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q", got.Logging.Format)
	}
	if !got.Logging.Color {
		t.Error("Logging.Color = false, want true")
	}
	if got.Logging.SentryDSN != "https://key@sentry.example/1" {
		t.Errorf("Logging.SentryDSN = %q", got.Logging.SentryDSN)
	}
}

// TestConfigRules verifies network name resolution, including the unknown
// network failure.
func TestConfigRules(t *testing.T) {
	for _, network := range []string{"main", "test", "fake"} {
		cfg := launcher.DefaultConfig()
		cfg.Network = network
		rules, err := cfg.Rules()
		if err != nil {
			t.Fatalf("Rules(%q): %v", network, err)
		}
		if rules.Name != network {
			t.Errorf("Rules(%q).Name = %q", network, rules.Name)
		}
	}

	cfg := launcher.DefaultConfig()
	cfg.Network = "moonnet"
	if _, err := cfg.Rules(); err == nil {
		t.Error("Rules(moonnet) succeeded, want error")
	}
}
