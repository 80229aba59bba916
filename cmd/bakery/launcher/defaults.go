package launcher

// DefaultConfig returns the baseline configuration used before CLI flags
// override it.
func DefaultConfig() Config {
	return Config{
		DataDir:        "~/.bakery",
		Network:        "main",
		FakeValidators: 3,
		Logging: LoggingConfig{
			Verbosity: 4, // info
			Format:    "text",
			Color:     false,
			SentryDSN: "",
		},
	}
}
