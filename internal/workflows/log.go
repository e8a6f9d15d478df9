package workflows

import (
	"context"

	"github.com/bardo-engine/storyvault/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of most recent entries to return. 0 means no limit.
	Limit int

	// Operation filters entries by operation name.
	Operation string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := loadProject(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, err
	}

	return &LogResult{
		Entries:                  audit.Filter(entries, opts.Operation, opts.Limit),
		TotalEntriesBeforeFilter: len(entries),
	}, nil
}
