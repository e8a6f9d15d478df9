package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/ui"
	"github.com/bardo-engine/storyvault/internal/workflows"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

// configShowOutput is the JSON shape of config show. The key itself is
// never printed; the fingerprint identifies it.
type configShowOutput struct {
	ProjectName    string `json:"project_name"`
	ProjectUUID    string `json:"project_uuid"`
	ProjectPath    string `json:"project_path"`
	ResourcesPath  string `json:"resources_path"`
	StoriesPath    string `json:"stories_path"`
	KeyFile        string `json:"key_file,omitempty"`
	KeySource      string `json:"key_source"`
	KeyFingerprint string `json:"key_fingerprint"`
	StoryCount     int    `json:"story_count"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display project configuration and the active key",
	Long: `Displays the storyvault project configuration from .storyvault/config.toml
and which key is in effect (STORYVAULT_KEY, the configured key file, or the
built-in key), identified by fingerprint.

Examples:
  storyvault config show
  storyvault config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		status, err := workflows.Status(context.Background())
		if err != nil {
			if errors.Is(err, kerrors.ErrProjectNotInitialized) {
				if configShowJSON {
					fmt.Println("{\"error\": \"not in a project directory\"}")
					return nil
				}
				fmt.Println(notInitializedMessage())
				return nil
			}
			return ConfigLogger.ErrorfAndReturn("Failed to load project configuration: %v", err)
		}

		s := status.Settings
		ConfigLogger.Infof("Project config loaded (name: %s, UUID: %s)", s.ProjectName, s.ProjectUUID)

		if configShowJSON {
			output, err := json.MarshalIndent(configShowOutput{
				ProjectName:    s.ProjectName,
				ProjectUUID:    s.ProjectUUID,
				ProjectPath:    s.ProjectPath,
				ResourcesPath:  s.ResourcesPath,
				StoriesPath:    s.StoriesPath,
				KeyFile:        s.KeyFile,
				KeySource:      status.KeySource,
				KeyFingerprint: status.KeyFingerprint,
				StoryCount:     status.StoryCount,
			}, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(ui.Info.Sprint("Project Configuration") + " (.storyvault/config.toml):")
		fmt.Println()
		fmt.Printf("  %-12s %s\n", "Name:", ui.Success.Sprint(s.ProjectName))
		fmt.Printf("  %-12s %s\n", "Project ID:", ui.Warning.Sprint(s.ProjectUUID))
		fmt.Printf("  %-12s %s\n", "Path:", ui.Path.Sprint(s.ProjectPath))
		fmt.Printf("  %-12s %s\n", "Resources:", ui.Path.Sprint(s.ResourcesPath))
		fmt.Printf("  %-12s %s\n", "Stories:", ui.Path.Sprint(s.StoriesPath))
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Key:"))
		fmt.Printf("  %-12s %s\n", "Source:", status.KeySource)
		if s.KeyFile != "" {
			fmt.Printf("  %-12s %s\n", "File:", ui.Path.Sprint(s.KeyFile))
		}
		fmt.Printf("  %-12s %s\n", "Fingerprint:", ui.Code.Sprint(status.KeyFingerprint))
		fmt.Println()
		fmt.Printf("%d sealed %s\n", status.StoryCount, pluralize(status.StoryCount, "story", "stories"))
		return nil
	},
}
