package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/trailops/shuttlectl/pkg/gaps"
	"github.com/trailops/shuttlectl/pkg/shuttle"
)

func sampleExtract() *shuttle.Extract {
	n := 42
	return &shuttle.Extract{
		Files: []string{"north.txt"},
		Counts: []shuttle.CountRecord{
			{
				Counter:   "North Trailhead",
				Serial:    "S01234",
				Timestamp: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
				Date:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
				TimeOfDay: "10:00",
				Count1:    &n,
			},
			{
				Counter:   "North Trailhead",
				Serial:    "S01234",
				Timestamp: time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC),
				TimeOfDay: "11:00",
				IsMissing: true,
			},
		},
		Headers: []shuttle.HeaderRecord{
			{
				Counter:      "North Trailhead",
				Mode:         "Hourly",
				Serial:       "S01234",
				Volt:         "3.61V",
				DownloadTime: time.Date(2024, 6, 15, 18, 30, 5, 0, time.UTC),
			},
		},
	}
}

func TestTextFormatter(t *testing.T) {
	ex := sampleExtract()
	report := NewExtractReport(ex, "north.txt", "UTC", time.Now())

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"North Trailhead", "S01234", "1 file(s)", "2 count rows", "1 counters"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	report := NewExtractReport(sampleExtract(), "north.txt", "UTC", time.Now())

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if lines := strings.Count(buf.String(), "\n"); lines != 1 {
		t.Errorf("Quiet output has %d lines, want 1:\n%s", lines, buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	ex := sampleExtract()
	res := &gaps.Result{
		Records:   ex.Counts,
		Summaries: []gaps.GroupSummary{{Key: "North Trailhead", Missing: 1, Observed: 1}},
	}
	report := NewGapReport(ex, res, "north.txt", "UTC", time.Now())

	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("No summary object in %v", decoded)
	}
	if summary["missing_hours"] != float64(1) {
		t.Errorf("missing_hours = %v, want 1", summary["missing_hours"])
	}

	if !report.HasMissingHours() {
		t.Error("HasMissingHours() = false, want true")
	}
}

func TestWriteCounts(t *testing.T) {
	ex := sampleExtract()

	var buf bytes.Buffer
	if err := WriteCounts(&buf, ex.Counts); err != nil {
		t.Fatalf("WriteCounts() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "counter" || rows[0][5] != "count1" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}
	if rows[1][5] != "42" {
		t.Errorf("count1 = %q, want 42", rows[1][5])
	}
	// Missing count stays an empty cell, not a zero.
	if rows[2][5] != "" {
		t.Errorf("Missing count1 = %q, want empty", rows[2][5])
	}
	if rows[2][7] != "true" {
		t.Errorf("is_missing = %q, want true", rows[2][7])
	}
}

func TestWriteHeaders(t *testing.T) {
	ex := sampleExtract()

	var buf bytes.Buffer
	if err := WriteHeaders(&buf, ex.Headers); err != nil {
		t.Fatalf("WriteHeaders() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Got %d rows, want header + 1", len(rows))
	}
	if rows[1][0] != "North Trailhead" || rows[1][4] != "2024-06-15 18:30:05" {
		t.Errorf("Unexpected header row: %v", rows[1])
	}
	// Zero times stay empty cells.
	if rows[1][5] != "" {
		t.Errorf("start_time = %q, want empty", rows[1][5])
	}
}
