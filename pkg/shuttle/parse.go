package shuttle

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// Extract is the aggregated result of parsing one or more ShuttleFiles:
// every count record in file-then-line order, and one header per distinct
// counter name (first occurrence wins).
type Extract struct {
	Counts  []CountRecord
	Headers []HeaderRecord

	// Files lists the source files in processing order.
	Files []string
}

// FileExtract is the parse result of a single file.
type FileExtract struct {
	// Source is the parsed file path.
	Source string

	// Lines is the full classified line sequence, blank lines included,
	// preserving line-position alignment for diagnostics.
	Lines []ClassifiedLine

	// Counts holds one record per record line, in file order.
	Counts []CountRecord

	// Headers holds one record per distinct counter name seen among the
	// file's record lines, in first-occurrence order.
	Headers []HeaderRecord
}

// Option configures parsing.
type Option func(*parseOptions)

type parseOptions struct {
	loc       *time.Location
	recursive bool
}

// WithLocation sets the time zone the record and header timestamps are
// interpreted in. Defaults to the system local zone.
func WithLocation(loc *time.Location) Option {
	return func(o *parseOptions) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithRecursive enables recursive *.txt discovery under a directory input.
func WithRecursive(recursive bool) Option {
	return func(o *parseOptions) {
		o.recursive = recursive
	}
}

// Parse runs the full extraction pipeline over a file or folder: discovery,
// per-file classification and forward-fill, then aggregation. Counts are
// concatenated preserving per-file then within-file order; headers are
// deduplicated by counter name, first occurrence in file-processing order
// winning. Later duplicates are discarded, not merged.
func Parse(path string, opts ...Option) (*Extract, error) {
	o := parseOptions{loc: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	files, err := Discover(path, o.recursive)
	if err != nil {
		return nil, err
	}

	ex := &Extract{Files: files}
	seenCounters := make(map[string]bool)

	for _, f := range files {
		fe, err := ParseFile(f, o.loc)
		if err != nil {
			return nil, err
		}

		ex.Counts = append(ex.Counts, fe.Counts...)
		for _, h := range fe.Headers {
			if seenCounters[h.Counter] {
				continue
			}
			seenCounters[h.Counter] = true
			ex.Headers = append(ex.Headers, h)
		}
	}

	return ex, nil
}

// ParseFile parses one ShuttleFile: classifies every line, extracts record
// and metadata fields, forward-fills metadata from the top of the file, and
// derives the count and header records. Malformed fields become missing
// values; no line causes a failure.
func ParseFile(path string, loc *time.Location) (*FileExtract, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if loc == nil {
		loc = time.Local
	}

	fe := &FileExtract{Source: path}
	var fill fillState
	seenCounters := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		content := scanner.Text()
		kind := Classify(content)

		cl := ClassifiedLine{
			RawLine: RawLine{Content: content, Num: lineNum, Source: path},
			Kind:    kind,
			Meta:    fill.observe(kind, content),
		}

		if kind == KindRecord {
			cl.Record = ExtractRecord(content)
			rec := newCountRecord(cl, loc)
			fe.Counts = append(fe.Counts, rec)

			if rec.Counter != "" && !seenCounters[rec.Counter] {
				seenCounters[rec.Counter] = true
				fe.Headers = append(fe.Headers, newHeaderRecord(cl.Meta, path, loc))
			}
		}

		fe.Lines = append(fe.Lines, cl)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return fe, nil
}

// newCountRecord derives a count record from a classified record line.
func newCountRecord(cl ClassifiedLine, loc *time.Location) CountRecord {
	rec := CountRecord{
		Counter:   cl.Meta.Counter,
		Serial:    cl.Meta.Serial,
		TimeOfDay: cl.Record.TimeRaw,
		Count1:    parseCount(cl.Record.Count1Raw),
		Count2:    parseCount(cl.Record.Count2Raw),
		Source:    cl.Source,
		LineNum:   cl.Num,
	}
	rec.Timestamp = parseTimestamp(cl.Record.DatetimeRaw, RecordTimestampLayout, loc)
	rec.Date = parseTimestamp(cl.Record.DateRaw, RecordDateLayout, loc)
	return rec
}

// newHeaderRecord derives a header record from the metadata in effect at the
// first record line of a counter.
func newHeaderRecord(m MetaFields, source string, loc *time.Location) HeaderRecord {
	return HeaderRecord{
		Counter:      m.Counter,
		Mode:         m.Mode,
		Serial:       m.Serial,
		Volt:         m.Volt,
		DownloadTime: parseTimestamp(m.DownloadTime, HeaderTimestampLayout, loc),
		StartTime:    parseTimestamp(m.StartTime, HeaderTimestampLayout, loc),
		DockTime:     parseTimestamp(m.DockTime, HeaderTimestampLayout, loc),
		Source:       source,
	}
}

// parseTimestamp parses a raw timestamp column in the given zone. Malformed
// or absent text yields the zero time, not an error.
func parseTimestamp(raw, layout string, loc *time.Location) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
