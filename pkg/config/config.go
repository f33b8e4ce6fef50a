package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/trailops/shuttlectl/pkg/dst"
	"github.com/trailops/shuttlectl/pkg/gaps"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and resolves the time zone.
func Validate(cfg *Config) error {
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: unknown zone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	if cfg.DST.Direction != "" {
		if _, err := dst.ParseDirection(cfg.DST.Direction); err != nil {
			return fmt.Errorf("dst.direction: %w", err)
		}
	}

	for i, f := range cfg.Gaps.GroupBy {
		if _, err := gaps.ParseGroupField(f); err != nil {
			return fmt.Errorf("gaps.group_by[%d]: %w", i, err)
		}
	}

	return nil
}
