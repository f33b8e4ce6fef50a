// Package cli provides the command-line interface for shuttlectl.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trailops/shuttlectl/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shuttlectl",
		Short: "Extract and repair trail-counter ShuttleFiles",
		Long: `shuttlectl processes the fixed-width text logs ("ShuttleFiles") produced
by trail-counter hardware and its download dock.

It provides:
  - extract   Parse files into count and device-header tables
  - dstfix    Shift record timestamps across a DST transition
  - gaps      Flag hours missing from each device's hourly grid
  - inspect   Diagnose a single file line by line

The hardware clock tracks neither time zones nor daylight-saving time;
shuttlectl applies those corrections after download.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewExtractCommand())
	rootCmd.AddCommand(commands.NewDSTFixCommand())
	rootCmd.AddCommand(commands.NewGapsCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
