// Package config provides configuration loading and validation for
// shuttlectl batch jobs.
package config

import "time"

// Config is the top-level shuttlectl configuration, usually loaded from a
// .shuttlectl.yaml file so batch jobs can pin site-local settings.
type Config struct {
	// Timezone is the IANA zone name the record timestamps are
	// interpreted in, or "Local".
	Timezone string `yaml:"timezone"`

	// Extract configures the extraction pipeline.
	Extract ExtractConfig `yaml:"extract"`

	// DST configures DST correction defaults.
	DST DSTConfig `yaml:"dst"`

	// Gaps configures missing-hour detection defaults.
	Gaps GapsConfig `yaml:"gaps"`

	// location is resolved from Timezone during validation.
	location *time.Location
}

// ExtractConfig configures the extraction pipeline.
type ExtractConfig struct {
	// Recursive enables recursive *.txt discovery under folder inputs.
	Recursive bool `yaml:"recursive"`
}

// DSTConfig configures DST correction defaults.
type DSTConfig struct {
	// Direction is the default transition direction (begin or end).
	// Empty means the command line must supply one.
	Direction string `yaml:"direction"`

	// SkipNoChange controls the no-change gate. Nil means the default
	// (true): skip files with no record exactly at the transition.
	SkipNoChange *bool `yaml:"skip_no_change"`

	// OutputDir overrides the dst_corrected subfolder beside each input.
	OutputDir string `yaml:"output_dir"`
}

// SkipNoChangeOrDefault resolves the tri-state skip_no_change setting.
func (c *DSTConfig) SkipNoChangeOrDefault() bool {
	if c.SkipNoChange == nil {
		return true
	}
	return *c.SkipNoChange
}

// GapsConfig configures missing-hour detection defaults.
type GapsConfig struct {
	// GroupBy lists the grouping attributes (counter, serial).
	GroupBy []string `yaml:"group_by"`

	// Fill copies grouping attributes into synthesized missing rows.
	Fill bool `yaml:"fill"`
}

// Location returns the resolved time zone. Only valid after Validate.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}
