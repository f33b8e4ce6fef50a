package shuttle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover resolves a path to the ordered list of ShuttleFiles to process.
// A file path is returned as-is. A directory is searched for *.txt files
// (case-insensitive extension match), directly within the directory unless
// recursive is set. Results are sorted for deterministic processing order.
func Discover(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isShuttleFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", path, err)
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", path, err)
		}
		for _, e := range entries {
			if !e.IsDir() && isShuttleFile(e.Name()) {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no *.txt files in %s", ErrNoInputFound, path)
	}

	sort.Strings(files)
	return files, nil
}

func isShuttleFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}
