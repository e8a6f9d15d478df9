package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/bardo-engine/storyvault/internal/audit"
	"github.com/bardo-engine/storyvault/internal/configs"
	"github.com/bardo-engine/storyvault/internal/envelope"
	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/resources"
)

// StoryConfigFileName is written next to the stories directory after sealing.
const StoryConfigFileName = "story-config.json"

// buildTimeFormat matches JavaScript's Date.prototype.toISOString.
const buildTimeFormat = "2006-01-02T15:04:05.000Z"

// SealOptions configures the seal workflow.
type SealOptions struct {
	// StoryID names <stories>/<StoryID>.json.
	StoryID string

	// Title is recorded in story-config.json; empty is written as null.
	Title string

	// DryRun reports what would happen without touching the filesystem.
	DryRun bool

	// KeepExisting skips removing previously sealed stories.
	KeepExisting bool
}

// StoryConfig is the build manifest the game frontend reads.
type StoryConfig struct {
	StoryID   string  `json:"storyId"`
	Title     *string `json:"title"`
	Encrypted bool    `json:"encrypted"`
	BuildTime string  `json:"buildTime"`
	BuildID   string  `json:"buildId"`
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	StoryID      string
	SourcePath   string
	OutputPath   string
	ConfigPath   string
	CleanedFiles []string
	BOMStripped  bool
	Config       StoryConfig
	KeySource    string
	DryRun       bool
}

// StoryNotFoundError reports a missing story source and the ones available.
type StoryNotFoundError struct {
	StoryID   string
	Path      string
	Available []string
}

func (e *StoryNotFoundError) Error() string {
	return fmt.Sprintf("story source not found: %s", e.Path)
}

func (e *StoryNotFoundError) Unwrap() error {
	return kerrors.ErrStoryNotFound
}

// Seal encrypts <stories>/<StoryID>.json into <resources>/<StoryID>.enc.
//
// A leading UTF-8 BOM is stripped first. Unless KeepExisting is set, every
// previously sealed story is removed so a build ships exactly one story.
// story-config.json is written next to the stories directory.
//
// Returns a *StoryNotFoundError (matching ErrStoryNotFound) when the
// source does not exist.
func Seal(ctx context.Context, opts SealOptions) (*SealResult, error) {
	if err := loadProject(); err != nil {
		return nil, err
	}

	if err := resources.ValidateID(opts.StoryID); err != nil {
		return nil, err
	}

	settings := configs.ProjectVaultSettings
	sourcePath := filepath.Join(settings.StoriesPath, opts.StoryID+".json")

	raw, err := os.ReadFile(sourcePath)
	if errors.Is(err, fs.ErrNotExist) {
		available, listErr := listSources(settings.StoriesPath)
		if listErr != nil {
			return nil, listErr
		}
		return nil, &StoryNotFoundError{StoryID: opts.StoryID, Path: sourcePath, Available: available}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read story file at %s: %w", sourcePath, err)
	}

	content := string(raw)
	plaintext := envelope.StripBOM(content)

	store := projectStore()
	result := &SealResult{
		StoryID:     opts.StoryID,
		SourcePath:  sourcePath,
		OutputPath:  store.Path(opts.StoryID),
		ConfigPath:  storyConfigPath(settings.StoriesPath),
		BOMStripped: len(plaintext) != len(content),
		DryRun:      opts.DryRun,
		Config: StoryConfig{
			StoryID:   opts.StoryID,
			Encrypted: true,
			BuildTime: time.Now().UTC().Format(buildTimeFormat),
			BuildID:   uuid.New().String(),
		},
	}
	if opts.Title != "" {
		title := opts.Title
		result.Config.Title = &title
	}

	key, source, err := resolveKey()
	if err != nil {
		return nil, err
	}
	result.KeySource = source

	if opts.DryRun {
		if !opts.KeepExisting {
			ids, err := store.List()
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				result.CleanedFiles = append(result.CleanedFiles, store.Path(id))
			}
		}
		return result, nil
	}

	sealer, err := envelope.NewSealer(key)
	if err != nil {
		return nil, err
	}

	sealed, err := sealer.Seal(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	if !opts.KeepExisting {
		removed, err := store.Clean()
		if err != nil {
			return nil, err
		}
		result.CleanedFiles = removed
	}

	if _, err := store.Write(opts.StoryID, sealed); err != nil {
		return nil, err
	}

	if err := writeStoryConfig(result.ConfigPath, result.Config); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("seal")
	entry.Story = opts.StoryID
	entry.Files = append([]string{result.OutputPath}, result.CleanedFiles...)
	entry.KeySource = source
	audit.Log(entry)

	return result, nil
}

// storyConfigPath puts the manifest in the parent of the stories directory.
func storyConfigPath(storiesPath string) string {
	return filepath.Join(filepath.Dir(storiesPath), StoryConfigFileName)
}

func writeStoryConfig(path string, config StoryConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode story config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	// #nosec G306 -- The manifest is bundled with the public frontend.
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}

	return nil
}

// listSources returns the IDs of story sources (*.json) in dir, sorted.
func listSources(dir string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list stories in %s: %w", dir, err)
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(m, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
