package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bardo-engine/storyvault/internal/audit"
	"github.com/bardo-engine/storyvault/internal/configs"
	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/utils"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// ProjectName defaults to the working directory name.
	ProjectName string

	// ResourcesDir and StoriesDir default to configs.DefaultResourcesDir
	// and configs.DefaultStoriesDir.
	ResourcesDir string
	StoriesDir   string

	// KeyFile optionally names a file holding the key, relative to the project.
	KeyFile string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	ProjectPath string
	ConfigPath  string
	Config      *configs.ProjectConfig
}

// Init creates .storyvault/config.toml in the working directory.
//
// Returns ErrProjectAlreadyInitialized if the working directory, or any
// parent, already holds a .storyvault directory.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	existing, err := utils.FindProjectRoot(configs.DirName)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProjectAlreadyInitialized, existing)
	}

	name := opts.ProjectName
	if name == "" {
		name = filepath.Base(wd)
	}

	config := configs.NewProjectConfig(name)
	if opts.ResourcesDir != "" {
		config.Paths.Resources = opts.ResourcesDir
	}
	if opts.StoriesDir != "" {
		config.Paths.Stories = opts.StoriesDir
	}
	config.Key.File = opts.KeyFile

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := configs.SaveProjectConfig(wd, config); err != nil {
		return nil, err
	}

	if err := configs.InitProjectSettingsAt(wd); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("init")
	entry.ProjectName = config.Project.Name
	entry.ProjectUUID = config.Project.UUID
	audit.Log(entry)

	return &InitResult{
		ProjectPath: wd,
		ConfigPath:  configs.ConfigPath(wd),
		Config:      config,
	}, nil
}
