package dst

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/trailops/shuttlectl/pkg/shuttle"
)

// DefaultOutputDirName is the subfolder created beside the input files.
const DefaultOutputDirName = "dst_corrected"

// outputSuffix is appended to the input filename stem.
const outputSuffix = "_DST_Corrected"

// FileError pairs a failed input file with its error. File failures are
// isolated: the rest of the batch still processes.
type FileError struct {
	Path string
	Err  error
}

// Result reports what a correction run did.
type Result struct {
	// Written maps each corrected input file to its output path.
	Written map[string]string

	// Skipped lists inputs skipped by the no-change gate, in order.
	Skipped []string

	// Failed lists inputs that could not be read or written.
	Failed []FileError
}

// Option configures a Corrector.
type Option func(*Corrector)

// WithOutputDir writes corrected files to dir instead of a dst_corrected
// subfolder beside each input file.
func WithOutputDir(dir string) Option {
	return func(c *Corrector) {
		c.outputDir = dir
	}
}

// WithSkipNoChange controls the no-change gate (default on): a file with no
// record exactly at the transition instant is skipped rather than rewritten.
func WithSkipNoChange(skip bool) Option {
	return func(c *Corrector) {
		c.skipNoChange = skip
	}
}

// Corrector shifts record timestamps across one DST transition, rewriting
// each input file into a corrected copy. Metadata lines pass through
// byte-for-byte; only record lines are re-serialized.
type Corrector struct {
	direction  Direction
	transition time.Time

	skipNoChange bool
	outputDir    string
}

// NewCorrector creates a corrector for the given year and direction.
func NewCorrector(year int, dir Direction, opts ...Option) (*Corrector, error) {
	transition, err := TransitionInstant(year, dir)
	if err != nil {
		return nil, err
	}

	c := &Corrector{
		direction:    dir,
		transition:   transition,
		skipNoChange: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Transition returns the transition instant the corrector shifts around.
func (c *Corrector) Transition() time.Time {
	return c.transition
}

// Run corrects every ShuttleFile under path (a single file or a folder of
// *.txt files). Discovery errors are fatal; per-file read or write errors are
// recorded in the result and do not abort sibling files.
func (c *Corrector) Run(path string) (*Result, error) {
	files, err := shuttle.Discover(path, false)
	if err != nil {
		return nil, err
	}

	result := &Result{Written: make(map[string]string)}
	for _, f := range files {
		out, skipped, err := c.correctFile(f)
		switch {
		case err != nil:
			result.Failed = append(result.Failed, FileError{Path: f, Err: err})
		case skipped:
			result.Skipped = append(result.Skipped, f)
		default:
			result.Written[f] = out
		}
	}

	return result, nil
}

// correctFile rewrites one file. Returns skipped=true when the no-change gate
// found no record exactly at the transition instant.
func (c *Corrector) correctFile(path string) (string, bool, error) {
	lines, err := readLines(path)
	if err != nil {
		return "", false, err
	}

	// Gate on an exact-equality match before touching anything. A file
	// whose records jump over the transition minute without sampling it
	// exactly counts as no-change and is skipped.
	if c.skipNoChange && !c.spansTransition(lines) {
		return "", true, nil
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = c.correctLine(line)
	}

	outPath := c.outputPath(path)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return "", false, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(strings.Join(out, "\n")+"\n"), 0o600); err != nil {
		return "", false, fmt.Errorf("writing %s: %w", outPath, err)
	}

	return outPath, false, nil
}

// spansTransition reports whether any record timestamp equals the transition
// instant exactly.
func (c *Corrector) spansTransition(lines []string) bool {
	for _, line := range lines {
		if ts, ok := c.recordTimestamp(line); ok && ts.Equal(c.transition) {
			return true
		}
	}
	return false
}

// correctLine re-serializes a record line with its timestamp shifted when at
// or after the transition. Metadata lines, and record lines whose timestamp
// cannot be parsed, pass through unchanged.
func (c *Corrector) correctLine(line string) string {
	ts, ok := c.recordTimestamp(line)
	if !ok {
		return line
	}

	if !ts.Before(c.transition) {
		ts = ts.Add(c.direction.Shift())
	}

	fields := shuttle.ExtractRecord(line)
	return ts.Format(shuttle.RecordTimestampLayout) + "," + fields.Count1Raw + "," + fields.Count2Raw
}

// recordTimestamp parses the timestamp of a record line. Timestamps are
// interpreted as naive wall-clock values in UTC, matching TransitionInstant.
func (c *Corrector) recordTimestamp(line string) (time.Time, bool) {
	if shuttle.Classify(line) != shuttle.KindRecord {
		return time.Time{}, false
	}
	fields := shuttle.ExtractRecord(line)
	ts, err := time.ParseInLocation(shuttle.RecordTimestampLayout, fields.DatetimeRaw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// outputPath derives the corrected filename for one input file.
func (c *Corrector) outputPath(path string) string {
	dir := c.outputDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(path), DefaultOutputDirName)
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+outputSuffix+".txt")
}

// readLines reads a whole file as a line slice, preserving blank lines.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
