package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Output orders for the account report.
const (
	OutputOrderClient  = "client"
	OutputOrderArrival = "arrival"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Report
	OutputOrder string `env:"OUTPUT_ORDER" envDefault:"client"`

	// Metrics (empty disables the dump)
	MetricsFile string `env:"METRICS_FILE" envDefault:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.OutputOrder {
	case OutputOrderClient, OutputOrderArrival:
	default:
		return fmt.Errorf("invalid OUTPUT_ORDER %q: want %q or %q", c.OutputOrder, OutputOrderClient, OutputOrderArrival)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q: want debug, info, warn, error or disabled", c.LogLevel)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want json or console", c.LogFormat)
	}

	return nil
}
