package shuttle

import (
	"strconv"
	"strings"
)

// Fixed 1-based inclusive column ranges of a record line.
const (
	dateStart, dateEnd         = 1, 8
	timeStart, timeEnd         = 10, 14
	datetimeStart, datetimeEnd = 1, 14
	count1Start, count1End     = 16, 20
	count2Start, count2End     = 22, 26
)

// 1-based value columns of the metadata directives.
const (
	metaValueCol     = 20 // counter, mode, volt
	dockTimeValueCol = 24 // =TIME, =START
	dockClockCol     = 29 // =DOCK
	serialLen        = 6  // serial is the last 6 characters of its line
)

// columns returns the 1-based inclusive column range [start, end] of a line,
// or "" when the line is too short to span it.
func columns(line string, start, end int) string {
	if len(line) < end {
		return ""
	}
	return line[start-1 : end]
}

// columnsFrom returns everything from 1-based column start to end of line,
// or "" when the line is shorter than start.
func columnsFrom(line string, start int) string {
	if len(line) < start {
		return ""
	}
	return line[start-1:]
}

// ExtractRecord slices the fixed record columns out of one record line.
// A line shorter than a field's columns yields an empty value for that field,
// never an error.
func ExtractRecord(content string) RecordFields {
	return RecordFields{
		DateRaw:     columns(content, dateStart, dateEnd),
		TimeRaw:     columns(content, timeStart, timeEnd),
		DatetimeRaw: columns(content, datetimeStart, datetimeEnd),
		Count1Raw:   columns(content, count1Start, count1End),
		Count2Raw:   columns(content, count2Start, count2End),
	}
}

// ExtractMeta returns the metadata attribute carried by one classified line.
// A line carries at most its own attribute; all other attributes stay empty.
func ExtractMeta(kind LineKind, content string) MetaFields {
	var m MetaFields
	switch kind {
	case KindSerialMeta:
		if len(content) >= serialLen {
			m.Serial = strings.TrimSpace(content[len(content)-serialLen:])
		}
	case KindCounterMeta:
		m.Counter = strings.TrimSpace(columnsFrom(content, metaValueCol))
	case KindModeMeta:
		m.Mode = strings.TrimSpace(columnsFrom(content, metaValueCol))
	case KindVoltMeta:
		m.Volt = strings.TrimSpace(columnsFrom(content, metaValueCol))
	case KindDownloadTimeMeta:
		m.DownloadTime = strings.TrimSpace(columnsFrom(content, dockTimeValueCol))
	case KindStartTimeMeta:
		m.StartTime = strings.TrimSpace(columnsFrom(content, dockTimeValueCol))
	case KindDockTimeMeta:
		m.DockTime = strings.TrimSpace(columnsFrom(content, dockClockCol))
	}
	return m
}

// parseCount converts a raw count column to a number. Blank or non-numeric
// text yields nil, distinct from an explicit zero reading.
func parseCount(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
