package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/trailops/shuttlectl/pkg/shuttle"
)

// csvTimeLayout is the timestamp format used in CSV exports.
const csvTimeLayout = "2006-01-02 15:04:05"

// WriteCounts writes the counts table as CSV. Missing counts are written as
// empty cells, keeping "no reading" distinct from an explicit zero.
func WriteCounts(w io.Writer, records []shuttle.CountRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"counter", "serial", "timestamp", "date", "time_of_day", "count1", "count2", "is_missing"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing counts header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Counter,
			rec.Serial,
			csvTime(rec.Timestamp, csvTimeLayout),
			csvTime(rec.Date, "2006-01-02"),
			rec.TimeOfDay,
			csvCount(rec.Count1),
			csvCount(rec.Count2),
			fmt.Sprintf("%t", rec.IsMissing),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing count row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteHeaders writes the device header table as CSV.
func WriteHeaders(w io.Writer, headers []shuttle.HeaderRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"counter", "mode", "serial", "volt", "download_time", "start_time", "dock_time"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for _, h := range headers {
		row := []string{
			h.Counter,
			h.Mode,
			h.Serial,
			h.Volt,
			csvTime(h.DownloadTime, csvTimeLayout),
			csvTime(h.StartTime, csvTimeLayout),
			csvTime(h.DockTime, csvTimeLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing header row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func csvCount(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
