package workflows

import (
	"context"

	"github.com/bardo-engine/storyvault/internal/configs"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Pattern filters story IDs with a glob. Empty lists everything.
	Pattern string
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	StoryIDs      []string
	ResourcesPath string
}

// List enumerates sealed stories in the resources directory.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if err := loadProject(); err != nil {
		return nil, err
	}

	store := projectStore()

	var (
		ids []string
		err error
	)
	if opts.Pattern != "" {
		ids, err = store.Match(opts.Pattern)
	} else {
		ids, err = store.List()
	}
	if err != nil {
		return nil, err
	}

	return &ListResult{
		StoryIDs:      ids,
		ResourcesPath: configs.ProjectVaultSettings.ResourcesPath,
	}, nil
}
