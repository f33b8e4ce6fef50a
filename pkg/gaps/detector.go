// Package gaps reconstructs the expected hourly timestamp grid of a count
// dataset and flags the hours no record was observed for.
package gaps

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/trailops/shuttlectl/pkg/shuttle"
)

// GroupField names a record attribute the detector can group by.
type GroupField string

const (
	// GroupCounter groups records by counter (site) name.
	GroupCounter GroupField = "counter"

	// GroupSerial groups records by device serial number.
	GroupSerial GroupField = "serial"
)

// ParseGroupField validates a grouping attribute name.
func ParseGroupField(s string) (GroupField, error) {
	switch GroupField(s) {
	case GroupCounter, GroupSerial:
		return GroupField(s), nil
	default:
		return "", fmt.Errorf("unknown group field %q (use counter or serial)", s)
	}
}

// GroupSummary reports one group's missing-hour count. Informational only;
// the augmented dataset is the contract.
type GroupSummary struct {
	// Key identifies the group (joined group field values).
	Key string `json:"key"`

	// Observed is the number of records with a parseable timestamp.
	Observed int `json:"observed"`

	// Missing is the number of synthesized missing-hour rows.
	Missing int `json:"missing"`

	// Start and End bound the group's hourly grid.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Result is the output of missing-hour detection.
type Result struct {
	// Records is the augmented dataset: observed rows plus one flagged row
	// per missing hour, sorted by timestamp within each group. Groups
	// appear in first-observation order.
	Records []shuttle.CountRecord `json:"records"`

	// Summaries reports missing-hour counts per group.
	Summaries []GroupSummary `json:"summaries"`

	// Warnings lists informational notices, such as running ungrouped
	// over what may be several devices.
	Warnings []string `json:"warnings,omitempty"`
}

// TotalMissing returns the number of synthesized rows across all groups.
func (r *Result) TotalMissing() int {
	total := 0
	for _, s := range r.Summaries {
		total += s.Missing
	}
	return total
}

// Option configures a Detector.
type Option func(*Detector)

// WithGroupBy sets the grouping attributes. Without grouping all records form
// one implicit group and a warning is emitted.
func WithGroupBy(fields ...GroupField) Option {
	return func(d *Detector) {
		d.groupBy = fields
	}
}

// WithFill copies the grouping attributes into synthesized rows. The count
// fields stay missing either way: absence of a reading is not a zero reading.
func WithFill(fill bool) Option {
	return func(d *Detector) {
		d.fill = fill
	}
}

// Detector finds hours absent from each group's expected hourly grid.
type Detector struct {
	groupBy []GroupField
	fill    bool
}

// New creates a detector.
func New(opts ...Option) *Detector {
	d := &Detector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// group accumulates one group's records during detection.
type group struct {
	key      string
	counter  string
	serial   string
	records  []shuttle.CountRecord
	observed map[int64]bool // unix seconds of observed timestamps
}

// Detect builds each group's closed [min, max] hourly grid, subtracts the
// observed timestamps, and merges one flagged row per missing hour back into
// the dataset. Records without a parseable timestamp are carried through
// untouched but excluded from the grid.
func (d *Detector) Detect(records []shuttle.CountRecord) *Result {
	result := &Result{}

	if len(d.groupBy) == 0 {
		result.Warnings = append(result.Warnings,
			"no grouping attributes set; treating all records as one device, which is unreliable across multiple devices")
	}

	groups := make(map[string]*group)
	var order []string

	for _, rec := range records {
		key := d.groupKey(rec)
		g := groups[key]
		if g == nil {
			g = &group{
				key:      key,
				counter:  rec.Counter,
				serial:   rec.Serial,
				observed: make(map[int64]bool),
			}
			groups[key] = g
			order = append(order, key)
		}
		g.records = append(g.records, rec)
		if !rec.Timestamp.IsZero() {
			g.observed[rec.Timestamp.Unix()] = true
		}
	}

	for _, key := range order {
		g := groups[key]
		summary := d.detectGroup(g)
		result.Summaries = append(result.Summaries, summary)

		sort.SliceStable(g.records, func(i, j int) bool {
			return g.records[i].Timestamp.Before(g.records[j].Timestamp)
		})
		result.Records = append(result.Records, g.records...)
	}

	return result
}

// detectGroup appends a flagged row per missing grid hour to the group and
// returns its summary.
func (d *Detector) detectGroup(g *group) GroupSummary {
	summary := GroupSummary{Key: g.key, Observed: len(g.observed)}

	var start, end time.Time
	for _, rec := range g.records {
		if rec.Timestamp.IsZero() {
			continue
		}
		if start.IsZero() || rec.Timestamp.Before(start) {
			start = rec.Timestamp
		}
		if end.IsZero() || rec.Timestamp.After(end) {
			end = rec.Timestamp
		}
	}
	if start.IsZero() {
		return summary
	}
	summary.Start = start
	summary.End = end

	for t := start; !t.After(end); t = t.Add(time.Hour) {
		if g.observed[t.Unix()] {
			continue
		}
		g.records = append(g.records, d.missingRow(g, t))
		summary.Missing++
	}

	return summary
}

// missingRow synthesizes the flagged row for one absent hour.
func (d *Detector) missingRow(g *group, t time.Time) shuttle.CountRecord {
	rec := shuttle.CountRecord{
		Timestamp: t,
		Date:      time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		TimeOfDay: t.Format("15:04"),
		IsMissing: true,
	}
	if d.fill {
		rec.Counter = g.counter
		rec.Serial = g.serial
	}
	return rec
}

// groupKey joins the grouping attribute values of one record.
func (d *Detector) groupKey(rec shuttle.CountRecord) string {
	if len(d.groupBy) == 0 {
		return "all"
	}
	parts := make([]string, len(d.groupBy))
	for i, f := range d.groupBy {
		switch f {
		case GroupSerial:
			parts[i] = rec.Serial
		default:
			parts[i] = rec.Counter
		}
	}
	return strings.Join(parts, "/")
}
