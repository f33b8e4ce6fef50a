package shuttle

import "strings"

// Literal column-1 prefixes of the recognized metadata directives.
const (
	prefixSerial       = "  *Serial Number"
	prefixCounter      = "  *Counter"
	prefixMode         = "  *Mode"
	prefixVolt         = "  *Batt"
	prefixDownloadTime = "=TIME"
	prefixStartTime    = "=START"
	prefixDockTime     = "=DOCK"
)

// Classify labels one line. A line is a record iff its first character is a
// decimal digit; otherwise it is matched against the metadata prefixes in
// order. Classification is independent per line, with no lookback.
func Classify(content string) LineKind {
	if len(content) > 0 && content[0] >= '0' && content[0] <= '9' {
		return KindRecord
	}

	switch {
	case strings.HasPrefix(content, prefixSerial):
		return KindSerialMeta
	case strings.HasPrefix(content, prefixCounter):
		return KindCounterMeta
	case strings.HasPrefix(content, prefixMode):
		return KindModeMeta
	case strings.HasPrefix(content, prefixVolt):
		return KindVoltMeta
	case strings.HasPrefix(content, prefixStartTime):
		return KindStartTimeMeta
	case strings.HasPrefix(content, prefixDockTime):
		return KindDockTimeMeta
	case strings.HasPrefix(content, prefixDownloadTime):
		return KindDownloadTimeMeta
	default:
		return KindOtherMeta
	}
}
