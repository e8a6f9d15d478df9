package workflows

import (
	"context"

	"github.com/bardo-engine/storyvault/internal/configs"
	"github.com/bardo-engine/storyvault/internal/keys"
)

// StatusResult describes the current project and the active key.
type StatusResult struct {
	Settings       configs.ProjectSettings
	KeySource      string
	KeyFingerprint string
	StoryCount     int
}

// Status reports project settings and which key is in effect, identified
// by fingerprint only.
func Status(ctx context.Context) (*StatusResult, error) {
	if err := loadProject(); err != nil {
		return nil, err
	}

	key, source, err := resolveKey()
	if err != nil {
		return nil, err
	}

	ids, err := projectStore().List()
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		Settings:       *configs.ProjectVaultSettings,
		KeySource:      source,
		KeyFingerprint: keys.Fingerprint(key),
		StoryCount:     len(ids),
	}, nil
}
