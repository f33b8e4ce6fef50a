package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/trailops/shuttlectl/pkg/config"
	"github.com/trailops/shuttlectl/pkg/dst"
)

// DSTFixOptions holds command-line options for the dstfix command.
type DSTFixOptions struct {
	Config       string
	Direction    string
	Year         int
	SkipNoChange bool
	OutputDir    string
	Quiet        bool
}

// NewDSTFixCommand creates the dstfix command.
func NewDSTFixCommand() *cobra.Command {
	opts := &DSTFixOptions{}

	cmd := &cobra.Command{
		Use:   "dstfix <file-or-folder>",
		Short: "Shift record timestamps across a DST transition",
		Long: `Rewrite ShuttleFiles so record timestamps account for a daylight-saving
transition the hardware clock did not track.

Every record at or after the transition instant (02:00 on the transition
date) is shifted +1 hour for --direction begin, -1 hour for --direction end.
Metadata lines pass through byte-for-byte. Corrected copies are written as
<name>_DST_Corrected.txt in a dst_corrected subfolder beside the input
unless --output-dir is given.

By default a file with no record exactly at the transition instant is
skipped; this is informational, not an error. Disable with
--skip-no-change=false to rewrite every file.

Exit codes:
  0 - Files corrected (or skipped by the no-change gate)
  2 - Invalid path, bad direction/year, or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDSTFix(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (.shuttlectl.yaml)")
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "", "Transition direction (begin|end)")
	cmd.Flags().IntVarP(&opts.Year, "year", "y", 0, "4-digit transition year (required)")
	cmd.Flags().BoolVar(&opts.SkipNoChange, "skip-no-change", true, "Skip files with no record exactly at the transition instant")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Write corrected files to this directory")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no per-file messages")

	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func runDSTFix(args []string, opts *DSTFixOptions) error {
	path := args[0]

	// Fold in config-file defaults for flags left at their zero value.
	if opts.Config != "" {
		cfg, err := config.Load(context.Background(), opts.Config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if opts.Direction == "" {
			opts.Direction = cfg.DST.Direction
		}
		if opts.OutputDir == "" {
			opts.OutputDir = cfg.DST.OutputDir
		}
		if cfg.DST.SkipNoChange != nil {
			opts.SkipNoChange = *cfg.DST.SkipNoChange
		}
	}

	direction, err := dst.ParseDirection(opts.Direction)
	if err != nil {
		return err
	}
	if opts.Year < 1000 || opts.Year > 9999 {
		return fmt.Errorf("year must be a 4-digit year, got %d", opts.Year)
	}

	var correctorOpts []dst.Option
	correctorOpts = append(correctorOpts, dst.WithSkipNoChange(opts.SkipNoChange))
	if opts.OutputDir != "" {
		correctorOpts = append(correctorOpts, dst.WithOutputDir(opts.OutputDir))
	}

	corrector, err := dst.NewCorrector(opts.Year, direction, correctorOpts...)
	if err != nil {
		return err
	}

	result, err := corrector.Run(path)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		printDSTResult(corrector, result)
	}

	fmt.Printf("dstfix: %d corrected, %d skipped, %d failed (transition %s)\n",
		len(result.Written), len(result.Skipped), len(result.Failed),
		corrector.Transition().Format("2006-01-02 15:04"))

	return nil
}

func printDSTResult(corrector *dst.Corrector, result *dst.Result) {
	inputs := make([]string, 0, len(result.Written))
	for in := range result.Written {
		inputs = append(inputs, in)
	}
	sort.Strings(inputs)

	for _, in := range inputs {
		fmt.Printf("Corrected: %s -> %s\n", in, result.Written[in])
	}
	for _, skipped := range result.Skipped {
		fmt.Printf("Skipped (no record at %s): %s\n",
			corrector.Transition().Format("2006-01-02 15:04"), skipped)
	}
	// Failures are warnings: sibling files already processed.
	for _, failed := range result.Failed {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", failed.Path, failed.Err)
	}
}
