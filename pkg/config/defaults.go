package config

import "os"

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "Local"

// Environment variable names.
const (
	EnvTimezone = "SHUTTLECTL_TIMEZONE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timezone: DefaultTimezone,
		Gaps: GapsConfig{
			GroupBy: []string{"counter"},
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if tz := os.Getenv(EnvTimezone); tz != "" {
		c.Timezone = tz
	}
}
