package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/trailops/shuttlectl/pkg/config"
	"github.com/trailops/shuttlectl/pkg/output"
	"github.com/trailops/shuttlectl/pkg/shuttle"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ExtractOptions holds command-line options for the extract command.
type ExtractOptions struct {
	Config    string
	Timezone  string
	Output    string
	CSVDir    string
	Recursive bool
	Verbose   bool
	Quiet     bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <file-or-folder>",
		Short: "Parse ShuttleFiles into count and header tables",
		Long: `Parse one ShuttleFile, or every *.txt file in a folder, into two tables:

  counts   One row per timestamped count observation, carrying the device
           metadata of the file section it belongs to.
  header   One row per distinct counter name (first occurrence wins).

Malformed fields become missing values rather than errors; a missing count
is distinct from a zero count.

Exit codes:
  0 - Extraction succeeded
  2 - Invalid path, no input files, or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (.shuttlectl.yaml)")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", "", "Time zone for record timestamps (default from config, else local)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.CSVDir, "csv-dir", "", "Also write counts.csv and header.csv to this directory")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "Search folders recursively")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Dump every count row, not just summaries")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, loc, err := loadRunConfig(ctx, opts.Config, opts.Timezone)
	if err != nil {
		return err
	}

	recursive := opts.Recursive || cfg.Extract.Recursive

	started := time.Now()
	ex, err := shuttle.Parse(path, shuttle.WithLocation(loc), shuttle.WithRecursive(recursive))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	report := output.NewExtractReport(ex, path, cfg.Timezone, started)

	formatter, err := createFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.CSVDir != "" {
		if err := writeCSVTables(opts.CSVDir, ex); err != nil {
			return err
		}
	}

	return nil
}

// writeCSVTables exports the two tables beside each other in dir.
func writeCSVTables(dir string, ex *shuttle.Extract) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating CSV directory: %w", err)
	}

	countsPath := filepath.Join(dir, "counts.csv")
	cf, err := os.Create(countsPath) // #nosec G304 -- user-provided output dir is expected
	if err != nil {
		return fmt.Errorf("creating %s: %w", countsPath, err)
	}
	defer cf.Close()
	if err := output.WriteCounts(cf, ex.Counts); err != nil {
		return err
	}

	headerPath := filepath.Join(dir, "header.csv")
	hf, err := os.Create(headerPath) // #nosec G304 -- user-provided output dir is expected
	if err != nil {
		return fmt.Errorf("creating %s: %w", headerPath, err)
	}
	defer hf.Close()
	return output.WriteHeaders(hf, ex.Headers)
}

// createFormatter resolves an output format name.
func createFormatter(name string, opts output.FormatOptions) (output.Formatter, error) {
	switch name {
	case "text":
		return output.NewTextFormatter(opts), nil
	case "json":
		return output.NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
}

// loadRunConfig loads the optional config file and resolves the effective
// time zone, letting a --timezone flag override the file.
func loadRunConfig(ctx context.Context, configPath, timezone string) (*config.Config, *time.Location, error) {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(ctx, configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		if err := config.Validate(cfg); err != nil {
			return nil, nil, err
		}
	}

	if timezone != "" {
		cfg.Timezone = timezone
		if err := config.Validate(cfg); err != nil {
			return nil, nil, err
		}
	}

	return cfg, cfg.Location(), nil
}
