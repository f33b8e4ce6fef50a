package shuttle

import (
	"bufio"
	"fmt"
	"os"
)

// DefaultSniffLines is the number of lines Sniff samples from a file.
const DefaultSniffLines = 100

// SniffResult summarizes how much of a sampled file looks like ShuttleFile
// content. Used to warn before running a full extraction over a file that is
// probably some other format.
type SniffResult struct {
	// SampledLines is the number of lines examined.
	SampledLines int

	// RecordLines is how many sampled lines classified as records.
	RecordLines int

	// MetaLines is how many classified as a recognized metadata directive.
	MetaLines int

	// OtherLines is how many were blank or unrecognized.
	OtherLines int
}

// Confidence returns the fraction of sampled lines that are records or
// recognized metadata, 0.0 to 1.0.
func (r *SniffResult) Confidence() float64 {
	if r.SampledLines == 0 {
		return 0
	}
	return float64(r.RecordLines+r.MetaLines) / float64(r.SampledLines)
}

// Sniff samples up to sampleSize lines from the head of a file and counts how
// many classify as ShuttleFile content. A sampleSize of 0 or less uses
// DefaultSniffLines.
func Sniff(path string, sampleSize int) (*SniffResult, error) {
	if sampleSize <= 0 {
		sampleSize = DefaultSniffLines
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	result := &SniffResult{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() && result.SampledLines < sampleSize {
		result.SampledLines++
		switch Classify(scanner.Text()) {
		case KindRecord:
			result.RecordLines++
		case KindOtherMeta:
			result.OtherLines++
		default:
			result.MetaLines++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return result, nil
}
