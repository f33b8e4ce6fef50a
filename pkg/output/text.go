package output

import (
	"context"
	"fmt"
	"io"
	"time"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "shuttlectl: %d file(s), %d count rows, %d counters, %d missing hours\n",
		report.Summary.Files,
		report.Summary.CountRows,
		report.Summary.HeaderRows,
		report.Summary.MissingHours)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== ShuttleFile Extraction Report ===")
	fmt.Fprintln(w)

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
	}

	f.formatHeaders(report, w)
	f.formatGaps(report, w)
	f.formatCounts(report, w)

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d file(s), %d count rows, %d counters, %d missing hours\n",
		report.Summary.Files,
		report.Summary.CountRows,
		report.Summary.HeaderRows,
		report.Summary.MissingHours)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Source: %s (timezone %s)\n", report.Metadata.Source, report.Metadata.Timezone)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatHeaders(report *Report, w io.Writer) {
	if len(report.Headers) == 0 {
		return
	}

	fmt.Fprintf(w, "Counters: %d\n", len(report.Headers))
	for _, h := range report.Headers {
		fmt.Fprintf(w, "  - %s (serial %s, mode %s, batt %s)\n",
			h.Counter, orDash(h.Serial), orDash(h.Mode), orDash(h.Volt))
		if f.opts.Verbose {
			fmt.Fprintf(w, "      start %s, download %s, dock %s\n",
				formatTime(h.StartTime), formatTime(h.DownloadTime), formatTime(h.DockTime))
		}
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatGaps(report *Report, w io.Writer) {
	if len(report.Gaps) == 0 {
		return
	}

	fmt.Fprintln(w, "Missing hours by group:")
	for _, g := range report.Gaps {
		fmt.Fprintf(w, "  [%s] %d missing, %d observed (%s to %s)\n",
			g.Key, g.Missing, g.Observed, formatTime(g.Start), formatTime(g.End))
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatCounts(report *Report, w io.Writer) {
	if !f.opts.Verbose || len(report.Counts) == 0 {
		return
	}

	fmt.Fprintf(w, "Count rows: %d\n", len(report.Counts))
	for _, rec := range report.Counts {
		flag := ""
		if rec.IsMissing {
			flag = "  MISSING"
		}
		fmt.Fprintf(w, "  %s  %s  count1=%s count2=%s%s\n",
			formatTime(rec.Timestamp), orDash(rec.Counter),
			formatCount(rec.Count1), formatCount(rec.Count2), flag)
	}
	fmt.Fprintln(w)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func formatCount(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
