package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trailops/shuttlectl/pkg/shuttle"
)

// InspectOptions holds options for the inspect command
type InspectOptions struct {
	Timezone string
	Lines    int
	Verbose  bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Diagnose a single ShuttleFile line by line",
		Long: `Diagnose a single ShuttleFile.

This command checks the file for common problems:
- File existence, readability, and non-emptiness
- Whether the content looks like ShuttleFile format at all
- Record timestamp parseability
- Presence of counter and serial metadata before the first record

Example:
  shuttlectl inspect download.txt
  shuttlectl inspect -v download.txt  # per-line classification dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Timezone, "timezone", "", "Time zone for record timestamps")
	cmd.Flags().IntVar(&opts.Lines, "lines", 20, "Lines to show in the verbose per-line dump")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show the per-line classification dump")

	return cmd
}

func runInspect(path string, opts *InspectOptions) error {
	results := []DiagnosticResult{}

	// 1. Check file existence and readability
	result := checkFileExists(path)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(results, opts)
		return nil
	}

	// 2. Sniff the format
	sniff, result := checkFormat(path)
	results = append(results, result)
	if sniff == nil {
		printDiagnostics(results, opts)
		return nil
	}

	// 3. Full parse checks
	loc := time.Local
	if opts.Timezone != "" {
		parsed, err := time.LoadLocation(opts.Timezone)
		if err != nil {
			return fmt.Errorf("unknown timezone %q: %w", opts.Timezone, err)
		}
		loc = parsed
	}

	fe, err := shuttle.ParseFile(path, loc)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:   "Parse",
			Status:  "error",
			Message: fmt.Sprintf("Cannot parse file: %v", err),
		})
		printDiagnostics(results, opts)
		return nil
	}

	results = append(results, checkRecords(fe)...)
	results = append(results, checkMetadata(fe)...)

	printDiagnostics(results, opts)

	if opts.Verbose {
		printLineDump(fe, opts.Lines)
	}

	return nil
}

func checkFileExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Input File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("File not found: %s", path)
		result.Suggests = []string{"Check the file path is correct"}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{"Pass a single ShuttleFile; use 'extract' for folders"}
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "File is empty"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkFormat(path string) (*shuttle.SniffResult, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Format",
	}

	sniff, err := shuttle.Sniff(path, shuttle.DefaultSniffLines)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read file: %v", err)
		return nil, result
	}

	confidence := sniff.Confidence()
	switch {
	case sniff.RecordLines == 0:
		result.Status = "error"
		result.Message = "No record lines in sample"
		result.Suggests = []string{
			"Record lines start with a digit (YY-MM-DD,HH:MM,count1,count2)",
			"Check this is a ShuttleFile and not some other export",
		}
	case confidence < 0.5:
		result.Status = "warning"
		result.Message = fmt.Sprintf("Only %.0f%% of sampled lines look like ShuttleFile content", confidence*100)
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d record, %d metadata, %d other line(s) in sample",
			sniff.RecordLines, sniff.MetaLines, sniff.OtherLines)
	}

	return sniff, result
}

func checkRecords(fe *shuttle.FileExtract) []DiagnosticResult {
	result := DiagnosticResult{
		Check: "Record Timestamps",
	}

	unparsed := 0
	var firstBad *shuttle.CountRecord
	for i := range fe.Counts {
		if fe.Counts[i].Timestamp.IsZero() {
			unparsed++
			if firstBad == nil {
				firstBad = &fe.Counts[i]
			}
		}
	}

	switch {
	case len(fe.Counts) == 0:
		result.Status = "warning"
		result.Message = "File contains no count records"
	case unparsed == 0:
		result.Status = "ok"
		result.Message = fmt.Sprintf("All %d record timestamps parse", len(fe.Counts))
	default:
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d of %d record timestamps do not parse", unparsed, len(fe.Counts))
		result.Details = []string{
			fmt.Sprintf("First unparseable record at line %d", firstBad.LineNum),
		}
		result.Suggests = []string{
			"Record timestamps must be YY-MM-DD,HH:MM in columns 1-14",
		}
	}

	return []DiagnosticResult{result}
}

func checkMetadata(fe *shuttle.FileExtract) []DiagnosticResult {
	results := []DiagnosticResult{}

	missingCounter := 0
	missingSerial := 0
	for _, rec := range fe.Counts {
		if rec.Counter == "" {
			missingCounter++
		}
		if rec.Serial == "" {
			missingSerial++
		}
	}

	result := DiagnosticResult{Check: "Device Metadata"}
	switch {
	case len(fe.Counts) == 0:
		result.Status = "ok"
		result.Message = "No records to attribute"
	case missingCounter == 0 && missingSerial == 0:
		result.Status = "ok"
		result.Message = fmt.Sprintf("Every record carries a counter and serial (%d counter(s))", len(fe.Headers))
	default:
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d record(s) without counter, %d without serial", missingCounter, missingSerial)
		result.Suggests = []string{
			"Metadata lines must appear above the records they describe; forward-fill never looks backwards",
		}
	}
	results = append(results, result)

	return results
}

func printDiagnostics(results []DiagnosticResult, opts *InspectOptions) {
	fmt.Println("=== ShuttleFile Diagnostics ===")
	fmt.Println()

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Printf("[%s] %s\n", icon, r.Check)
		fmt.Printf("    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Printf("      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Printf("      Hint: %s\n", s)
		}

		fmt.Println()
	}

	// Summary
	fmt.Println("---")
	fmt.Printf("Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Println("\nFix the errors above before running extraction.")
	} else if warnCount > 0 {
		fmt.Println("\nFile is usable but has warnings.")
	} else {
		fmt.Println("\nFile looks good!")
	}
}

func printLineDump(fe *shuttle.FileExtract, limit int) {
	fmt.Println()
	fmt.Printf("First %d line(s):\n", limit)
	for i, line := range fe.Lines {
		if i >= limit {
			break
		}
		fmt.Printf("%4d %-14s counter=%s serial=%s %s\n",
			line.Num, line.Kind, orDash(line.Meta.Counter), orDash(line.Meta.Serial),
			truncate(line.Content, 60))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
