// Package shuttle parses the fixed-width text logs produced by trail-counter
// hardware and its download dock ("ShuttleFiles"). A ShuttleFile interleaves
// timestamped count records with device and session metadata lines; this
// package classifies lines, extracts their fixed-offset fields, and
// forward-fills metadata so every count record carries the device identity of
// the file section it belongs to.
package shuttle

import "time"

// LineKind classifies a single ShuttleFile line.
type LineKind int

const (
	// KindRecord is a count observation line (first character is a digit).
	KindRecord LineKind = iota

	// KindSerialMeta carries the device serial number.
	KindSerialMeta

	// KindCounterMeta carries the counter (site) name.
	KindCounterMeta

	// KindModeMeta carries the counting mode.
	KindModeMeta

	// KindVoltMeta carries the battery voltage.
	KindVoltMeta

	// KindDownloadTimeMeta carries the dock download time.
	KindDownloadTimeMeta

	// KindStartTimeMeta carries the session start time.
	KindStartTimeMeta

	// KindDockTimeMeta carries the dock clock time.
	KindDockTimeMeta

	// KindOtherMeta is any other non-record line, including blank lines.
	KindOtherMeta
)

// String returns the line kind name for diagnostics.
func (k LineKind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindSerialMeta:
		return "serial"
	case KindCounterMeta:
		return "counter"
	case KindModeMeta:
		return "mode"
	case KindVoltMeta:
		return "volt"
	case KindDownloadTimeMeta:
		return "download-time"
	case KindStartTimeMeta:
		return "start-time"
	case KindDockTimeMeta:
		return "dock-time"
	case KindOtherMeta:
		return "other"
	default:
		return "unknown"
	}
}

// RawLine is one line of a source file.
type RawLine struct {
	// Content is the raw line text without the trailing newline.
	Content string

	// Num is the 1-based line number in the source file.
	Num int

	// Source is the file path this line came from.
	Source string
}

// RecordFields holds the raw column slices of one record line.
// An empty string means the line was too short to carry that field.
type RecordFields struct {
	// DateRaw is columns 1-8 (YY-MM-DD).
	DateRaw string

	// TimeRaw is columns 10-14 (HH:MM).
	TimeRaw string

	// DatetimeRaw is columns 1-14 (YY-MM-DD,HH:MM).
	DatetimeRaw string

	// Count1Raw is columns 16-20.
	Count1Raw string

	// Count2Raw is columns 22-26.
	Count2Raw string
}

// MetaFields holds the device/session metadata attributes. An empty string
// means the attribute has not been observed yet.
type MetaFields struct {
	Serial       string
	Counter      string
	Mode         string
	Volt         string
	DownloadTime string
	StartTime    string
	DockTime     string
}

// merge returns m with every attribute that o carries overridden by o's value.
func (m MetaFields) merge(o MetaFields) MetaFields {
	if o.Serial != "" {
		m.Serial = o.Serial
	}
	if o.Counter != "" {
		m.Counter = o.Counter
	}
	if o.Mode != "" {
		m.Mode = o.Mode
	}
	if o.Volt != "" {
		m.Volt = o.Volt
	}
	if o.DownloadTime != "" {
		m.DownloadTime = o.DownloadTime
	}
	if o.StartTime != "" {
		m.StartTime = o.StartTime
	}
	if o.DockTime != "" {
		m.DockTime = o.DockTime
	}
	return m
}

// ClassifiedLine is a raw line plus its classification, extracted record
// fields (record lines only), and the forward-filled metadata in effect at
// this line.
type ClassifiedLine struct {
	RawLine

	// Kind is the line classification.
	Kind LineKind

	// Record holds the raw record fields. Only populated for KindRecord.
	Record RecordFields

	// Meta is the forward-filled metadata as of this line.
	Meta MetaFields
}

// CountRecord is one timestamped count observation with the metadata of its
// file section attached.
type CountRecord struct {
	// Counter is the counter (site) name in effect at the record line.
	Counter string `json:"counter"`

	// Serial is the device serial number in effect at the record line.
	Serial string `json:"serial"`

	// Timestamp is the observation time parsed from the combined
	// date-time columns. Zero when the columns could not be parsed.
	Timestamp time.Time `json:"timestamp"`

	// Date is the observation calendar date. Zero when unparseable.
	Date time.Time `json:"date"`

	// TimeOfDay is the raw HH:MM column text.
	TimeOfDay string `json:"time_of_day"`

	// Count1 and Count2 are the two count channels. Nil means the value
	// was absent or not numeric; absence of a reading is distinct from a
	// zero reading.
	Count1 *int `json:"count1"`
	Count2 *int `json:"count2"`

	// Source is the file the record came from.
	Source string `json:"source,omitempty"`

	// LineNum is the 1-based line number in Source.
	LineNum int `json:"line_num,omitempty"`

	// IsMissing marks rows synthesized by missing-hour detection rather
	// than observed in a file.
	IsMissing bool `json:"is_missing"`
}

// HeaderRecord describes one counter device: the metadata in effect at the
// first record line observed for that counter name.
type HeaderRecord struct {
	Counter string `json:"counter"`
	Mode    string `json:"mode"`
	Serial  string `json:"serial"`
	Volt    string `json:"volt"`

	// DownloadTime, StartTime and DockTime are parsed from the dock
	// metadata lines. Zero when absent or unparseable.
	DownloadTime time.Time `json:"download_time"`
	StartTime    time.Time `json:"start_time"`
	DockTime     time.Time `json:"dock_time"`

	// Source is the file the header was first observed in.
	Source string `json:"source,omitempty"`
}

// Timestamp layouts used across ShuttleFiles.
const (
	// RecordTimestampLayout is the record line date-time format.
	RecordTimestampLayout = "06-01-02,15:04"

	// RecordDateLayout is the record line date format.
	RecordDateLayout = "06-01-02"

	// HeaderTimestampLayout is the dock metadata date-time format.
	HeaderTimestampLayout = "06-01-02 15:04:05"
)
