// Package output provides formatting and output generation for extraction
// and missing-hour reports.
package output

import (
	"time"

	"github.com/trailops/shuttlectl/pkg/gaps"
	"github.com/trailops/shuttlectl/pkg/shuttle"
)

// Report is the complete output of an extraction or gap-detection run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Headers is the deduplicated device header table.
	Headers []shuttle.HeaderRecord `json:"headers,omitempty"`

	// Counts is the count observation table, augmented with flagged
	// missing-hour rows when gap detection ran.
	Counts []shuttle.CountRecord `json:"counts,omitempty"`

	// Gaps holds per-group missing-hour summaries when gap detection ran.
	Gaps []gaps.GroupSummary `json:"gaps,omitempty"`

	// Warnings lists informational notices from the run.
	Warnings []string `json:"warnings,omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Files is the number of ShuttleFiles parsed.
	Files int `json:"files"`

	// CountRows is the number of rows in the counts table.
	CountRows int `json:"count_rows"`

	// HeaderRows is the number of distinct counters.
	HeaderRows int `json:"header_rows"`

	// MissingHours is the total number of flagged missing-hour rows.
	MissingHours int `json:"missing_hours"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Source is the input file or folder.
	Source string `json:"source"`

	// Timezone is the zone the timestamps were interpreted in.
	Timezone string `json:"timezone"`

	// StartTime is when the run began.
	StartTime time.Time `json:"start_time"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// NewExtractReport builds a report from an aggregated extraction.
func NewExtractReport(ex *shuttle.Extract, source, timezone string, started time.Time) *Report {
	return &Report{
		Summary: Summary{
			Files:      len(ex.Files),
			CountRows:  len(ex.Counts),
			HeaderRows: len(ex.Headers),
		},
		Headers: ex.Headers,
		Counts:  ex.Counts,
		Metadata: Metadata{
			Source:    source,
			Timezone:  timezone,
			StartTime: started,
			Duration:  time.Since(started),
		},
	}
}

// NewGapReport builds a report from an extraction plus its gap-detection
// result. The counts table is the augmented dataset.
func NewGapReport(ex *shuttle.Extract, res *gaps.Result, source, timezone string, started time.Time) *Report {
	return &Report{
		Summary: Summary{
			Files:        len(ex.Files),
			CountRows:    len(res.Records),
			HeaderRows:   len(ex.Headers),
			MissingHours: res.TotalMissing(),
		},
		Headers:  ex.Headers,
		Counts:   res.Records,
		Gaps:     res.Summaries,
		Warnings: res.Warnings,
		Metadata: Metadata{
			Source:    source,
			Timezone:  timezone,
			StartTime: started,
			Duration:  time.Since(started),
		},
	}
}

// HasMissingHours returns true when gap detection flagged at least one hour.
func (r *Report) HasMissingHours() bool {
	return r.Summary.MissingHours > 0
}
