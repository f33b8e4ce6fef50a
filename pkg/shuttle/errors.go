package shuttle

import "errors"

// Sentinel errors for path resolution. Wrapped with the offending path via
// fmt.Errorf("%w: ..."); test with errors.Is.
var (
	// ErrInvalidPath means the input path is neither an existing file nor
	// an existing directory.
	ErrInvalidPath = errors.New("path is neither a file nor a directory")

	// ErrNoInputFound means a directory search matched zero ShuttleFiles.
	ErrNoInputFound = errors.New("no input files found")
)
