package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bardo-engine/storyvault/internal/audit"
	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logOperation string
	logJSON      bool
	logOneline   bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit to last N entries")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (init, seal, open, decrypt, verify)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	StoriesCmd.AddCommand(logCmd)
}

func resetLogCommandState() {
	logLimit = 0
	logOperation = ""
	logJSON = false
	logOneline = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log of storyvault operations",
	Long: `Shows the history of operations recorded in .storyvault/audit.jsonl.

Examples:
  storyvault stories log                    # View full log
  storyvault stories log -n 10              # Last 10 entries
  storyvault stories log --operation seal   # Filter by operation
  storyvault stories log --json             # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Limit:     logLimit,
		Operation: logOperation,
	})
	if err != nil {
		if errors.Is(err, kerrors.ErrProjectNotInitialized) {
			fmt.Println(notInitializedMessage())
			return nil
		}
		return Logger.ErrorfAndReturn("Failed to read audit log: %v", err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if logOneline {
		for _, e := range result.Entries {
			fmt.Printf("%s %s %s %s\n", formatLogTime(e.Timestamp, "2006-01-02"), e.User, e.Operation, formatLogDetails(e))
		}
		return nil
	}

	for _, e := range result.Entries {
		fmt.Printf("%-19s  %-20s  %-8s  %s\n", formatLogTime(e.Timestamp, "2006-01-02 15:04:05"), e.User, e.Operation, formatLogDetails(e))
	}
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// formatLogTime renders an audit timestamp, falling back to the raw value.
func formatLogTime(ts, layout string) string {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format(layout)
}

func formatLogDetails(e audit.Entry) string {
	var parts []string

	switch e.Operation {
	case "init":
		parts = append(parts, e.ProjectName)
	case "seal", "open":
		parts = append(parts, e.Story)
		if e.OutputPath != "" {
			parts = append(parts, "-> "+e.OutputPath)
		}
	case "verify":
		parts = append(parts, fmt.Sprintf("%d stories, %d failed", e.StoriesCount, e.FailedCount))
	}

	if e.KeySource != "" {
		parts = append(parts, "key="+e.KeySource)
	}

	return strings.Join(parts, " ")
}
