package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bardo-engine/storyvault/internal/audit"
)

// OpenOptions configures the open workflow.
type OpenOptions struct {
	// StoryID names the sealed story, without the .enc extension.
	StoryID string

	// OutputPath, if set, receives the plaintext instead of the caller.
	OutputPath string
}

// OpenResult contains the outcome of an open operation.
type OpenResult struct {
	StoryID    string
	SourcePath string
	Plaintext  string
	OutputPath string
	KeySource  string
}

// Open decrypts the sealed story <resources>/<StoryID>.enc.
//
// Returns ErrProjectNotInitialized outside a project, ErrStoryNotFound or
// ErrInvalidStoryID from the resource store, and the envelope errors
// (ErrEncoding, ErrMalformed, ErrAuthenticationFailed) unchanged.
func Open(ctx context.Context, opts OpenOptions) (*OpenResult, error) {
	if err := loadProject(); err != nil {
		return nil, err
	}

	store := projectStore()
	envelopeText, err := store.Read(opts.StoryID)
	if err != nil {
		return nil, err
	}

	d, source, err := newDecryptor()
	if err != nil {
		return nil, err
	}

	plaintext, err := d.Decrypt(envelopeText)
	if err != nil {
		return nil, fmt.Errorf("opening story %s: %w", opts.StoryID, err)
	}

	result := &OpenResult{
		StoryID:    opts.StoryID,
		SourcePath: store.Path(opts.StoryID),
		Plaintext:  plaintext,
		KeySource:  source,
	}

	if opts.OutputPath != "" {
		if err := writePlaintext(opts.OutputPath, plaintext); err != nil {
			return nil, err
		}
		result.OutputPath = opts.OutputPath
	}

	entry := audit.LogWithUser("open")
	entry.Story = opts.StoryID
	entry.OutputPath = opts.OutputPath
	entry.KeySource = source
	audit.Log(entry)

	return result, nil
}

func writePlaintext(path, plaintext string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	// #nosec G306 -- The decrypted story is meant to be read by the user.
	if err := os.WriteFile(path, []byte(plaintext), 0644); err != nil {
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}

	return nil
}
