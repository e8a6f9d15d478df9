package configs

import (
	"fmt"
	"path/filepath"

	"github.com/bardo-engine/storyvault/internal/utils"
)

type UserSettings struct {
	Username string
}

type ProjectSettings struct {
	ProjectUUID   string
	ProjectName   string
	ProjectPath   string
	ResourcesPath string
	StoriesPath   string
	AuditLogPath  string
	KeyFile       string
}

var (
	UserVaultSettings    *UserSettings
	ProjectVaultSettings *ProjectSettings
)

func init() {
	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	UserVaultSettings = &UserSettings{
		Username: username,
	}
	ProjectVaultSettings = &ProjectSettings{}
}

// InitProjectSettings locates the project root from the working directory
// and loads its config. Outside a project it leaves ProjectPath empty and
// returns nil so callers can report ErrProjectNotInitialized themselves.
func InitProjectSettings() error {
	projectPath, err := utils.FindProjectRoot(DirName)
	if err != nil {
		return fmt.Errorf("error getting project root: %w", err)
	}

	if projectPath == "" {
		ProjectVaultSettings = &ProjectSettings{}
		return nil
	}

	return InitProjectSettingsAt(projectPath)
}

// InitProjectSettingsAt loads settings for the project rooted at projectPath.
func InitProjectSettingsAt(projectPath string) error {
	config, err := LoadProjectConfigAt(projectPath)
	if err != nil {
		return err
	}

	ProjectVaultSettings = &ProjectSettings{
		ProjectUUID:   config.Project.UUID,
		ProjectName:   config.Project.Name,
		ProjectPath:   projectPath,
		ResourcesPath: ResolvePath(projectPath, config.Paths.Resources),
		StoriesPath:   ResolvePath(projectPath, config.Paths.Stories),
		AuditLogPath:  filepath.Join(projectPath, DirName, "audit.jsonl"),
		KeyFile:       ResolvePath(projectPath, config.Key.File),
	}

	return nil
}

// ResetProjectSettings clears the loaded project settings.
func ResetProjectSettings() {
	ProjectVaultSettings = &ProjectSettings{}
}
