package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trailops/shuttlectl/pkg/gaps"
	"github.com/trailops/shuttlectl/pkg/output"
	"github.com/trailops/shuttlectl/pkg/shuttle"
	"github.com/trailops/shuttlectl/pkg/webhook"
)

// GapsOptions holds command-line options for the gaps command.
type GapsOptions struct {
	Config    string
	Timezone  string
	Output    string
	GroupBy   []string
	Fill      bool
	Recursive bool
	Verbose   bool
	Quiet     bool

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// NewGapsCommand creates the gaps command.
func NewGapsCommand() *cobra.Command {
	opts := &GapsOptions{}

	cmd := &cobra.Command{
		Use:   "gaps <file-or-folder>",
		Short: "Flag hours missing from each device's hourly grid",
		Long: `Parse ShuttleFiles, then reconstruct each group's expected hourly
timestamp grid between its earliest and latest observation and flag every
hour with no record.

Each missing hour becomes a row with is_missing=true and a missing count;
a missing reading is never reported as zero. With --fill the grouping
attributes are copied into the synthesized rows. Per-group missing-hour
totals are reported on stderr.

Exit codes:
  0 - No missing hours
  1 - Missing hours detected
  2 - Invalid path, no input files, or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGaps(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (.shuttlectl.yaml)")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", "", "Time zone for record timestamps")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringSliceVarP(&opts.GroupBy, "group-by", "g", nil, "Grouping attributes (counter, serial); repeatable")
	cmd.Flags().BoolVar(&opts.Fill, "fill", false, "Copy grouping attributes into synthesized rows")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "Search folders recursively")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Dump every row, observed and missing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Post the report to this webhook endpoint")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")

	return cmd
}

func runGaps(cmd *cobra.Command, args []string, opts *GapsOptions) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, loc, err := loadRunConfig(ctx, opts.Config, opts.Timezone)
	if err != nil {
		return err
	}

	groupNames := opts.GroupBy
	if len(groupNames) == 0 && !cmd.Flags().Changed("group-by") {
		groupNames = cfg.Gaps.GroupBy
	}
	groupBy := make([]gaps.GroupField, 0, len(groupNames))
	for _, name := range groupNames {
		field, err := gaps.ParseGroupField(name)
		if err != nil {
			return err
		}
		groupBy = append(groupBy, field)
	}

	fill := opts.Fill || cfg.Gaps.Fill

	started := time.Now()
	ex, err := shuttle.Parse(path, shuttle.WithLocation(loc), shuttle.WithRecursive(opts.Recursive || cfg.Extract.Recursive))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	detector := gaps.New(gaps.WithGroupBy(groupBy...), gaps.WithFill(fill))
	result := detector.Detect(ex.Counts)

	report := output.NewGapReport(ex, result, path, cfg.Timezone, started)

	// Informational side channel: per-group summaries and warnings.
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	for _, s := range result.Summaries {
		fmt.Fprintf(os.Stderr, "Group %s: %d missing hour(s)\n", s.Key, s.Missing)
	}

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

	// Send webhook (errors logged but don't fail detection)
	if opts.WebhookURL != "" {
		sendGapWebhook(ctx, opts, report)
	}

	if report.HasMissingHours() {
		ExitCode = 1
	}

	return nil
}

// sendGapWebhook posts the report to the configured endpoint.
func sendGapWebhook(ctx context.Context, opts *GapsOptions, report *output.Report) {
	client := webhook.NewClient()
	resp := client.Send(ctx, report, webhook.SendOptions{
		URL:   opts.WebhookURL,
		Token: opts.WebhookToken,
	})

	if resp.Success() {
		fmt.Fprintf(os.Stderr, "Webhook: sent (%d, %s)\n", resp.StatusCode, resp.Duration)
	} else {
		fmt.Fprintf(os.Stderr, "Webhook: failed (%v)\n", resp.Error)
	}
}
