package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
)

const (
	// DirName is the directory that marks a project root.
	DirName = ".storyvault"

	// ConfigFileName is the project config file inside DirName.
	ConfigFileName = "config.toml"

	// DefaultResourcesDir holds sealed .enc files, relative to the project root.
	DefaultResourcesDir = "src-tauri/resources"

	// DefaultStoriesDir holds plaintext story .json sources, relative to the project root.
	DefaultStoriesDir = "src/stories"
)

type ProjectConfig struct {
	Project Project   `toml:"project"`
	Paths   Paths     `toml:"paths"`
	Key     KeyConfig `toml:"key"`
}

type Project struct {
	UUID string `toml:"project_uuid"`
	Name string `toml:"name"`
}

type Paths struct {
	Resources string `toml:"resources"`
	Stories   string `toml:"stories"`
}

type KeyConfig struct {
	File string `toml:"file,omitempty"`
}

// NewProjectConfig returns a config with a fresh UUID and default paths.
func NewProjectConfig(name string) *ProjectConfig {
	return &ProjectConfig{
		Project: Project{
			UUID: GenerateProjectUUID(),
			Name: name,
		},
		Paths: Paths{
			Resources: DefaultResourcesDir,
			Stories:   DefaultStoriesDir,
		},
	}
}

// GenerateProjectUUID generates a new UUID for the project.
func GenerateProjectUUID() string {
	return uuid.New().String()
}

// ConfigPath returns the config file path for a project root.
func ConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, DirName, ConfigFileName)
}

// LoadProjectConfig loads the config of the current project.
// Note: Caller should ensure InitProjectSettings is called before calling this function.
func LoadProjectConfig() (*ProjectConfig, error) {
	if ProjectVaultSettings.ProjectPath == "" {
		return nil, kerrors.ErrProjectNotInitialized
	}
	return LoadProjectConfigAt(ProjectVaultSettings.ProjectPath)
}

// LoadProjectConfigAt loads the config of the project rooted at projectRoot.
// A missing config file yields defaults named after the directory.
func LoadProjectConfigAt(projectRoot string) (*ProjectConfig, error) {
	configPath := ConfigPath(projectRoot)

	config := &ProjectConfig{
		Project: Project{Name: filepath.Base(projectRoot)},
		Paths: Paths{
			Resources: DefaultResourcesDir,
			Stories:   DefaultStoriesDir,
		},
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidProjectConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveProjectConfig writes config to the project rooted at projectRoot.
func SaveProjectConfig(projectRoot string, config *ProjectConfig) error {
	if err := SaveTOML(ConfigPath(projectRoot), config); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}
	return nil
}

// Validate reports a config that cannot locate its resources.
func (c *ProjectConfig) Validate() error {
	if strings.TrimSpace(c.Paths.Resources) == "" {
		return fmt.Errorf("%w: paths.resources must not be empty", kerrors.ErrInvalidProjectConfig)
	}
	if strings.TrimSpace(c.Paths.Stories) == "" {
		return fmt.Errorf("%w: paths.stories must not be empty", kerrors.ErrInvalidProjectConfig)
	}
	return nil
}

// ResolvePath joins p onto projectRoot unless p is already absolute.
// An empty p stays empty.
func ResolvePath(projectRoot, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectRoot, p)
}
