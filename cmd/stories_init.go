package cmd

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/ui"
	"github.com/bardo-engine/storyvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	initProjectName  string
	initResourcesDir string
	initStoriesDir   string
	initKeyFile      string
)

func init() {
	initCmd.Flags().StringVarP(&initProjectName, "name", "n", "", "project name (defaults to the directory name)")
	initCmd.Flags().StringVar(&initResourcesDir, "resources", "", "directory for sealed .enc resources")
	initCmd.Flags().StringVar(&initStoriesDir, "stories", "", "directory holding story sources")
	initCmd.Flags().StringVar(&initKeyFile, "key-file", "", "file holding the encryption key")
	StoriesCmd.AddCommand(initCmd)
}

func resetInitCommandState() {
	initProjectName = ""
	initResourcesDir = ""
	initStoriesDir = ""
	initKeyFile = ""
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes storyvault in the current directory",
	Long: `Creates .storyvault/config.toml in the current directory.

Paths are stored relative to the project root. Without flags, sealed stories
go to src-tauri/resources and sources are read from src/stories.

Examples:
  storyvault stories init
  storyvault stories init --name bardo --resources assets/enc --stories story`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing storyvault...", verbose)
		defer cleanup()

		result, err := workflows.Init(context.Background(), workflows.InitOptions{
			ProjectName:  initProjectName,
			ResourcesDir: initResourcesDir,
			StoriesDir:   initStoriesDir,
			KeyFile:      initKeyFile,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrProjectAlreadyInitialized) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " storyvault has already been initialized\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("storyvault config show") + " to inspect it"
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to initialize project: %v", err)
		}

		Logger.Infof("Created %s", result.ConfigPath)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Initialized storyvault project " + ui.Story.Sprint(result.Config.Project.Name) + "\n" +
			fmt.Sprintf("  Resources: %s\n", ui.Path.Sprint(result.Config.Paths.Resources)) +
			fmt.Sprintf("  Stories:   %s\n", ui.Path.Sprint(result.Config.Paths.Stories)) +
			ui.Info.Sprint("→") + " Seal a story with " + ui.Code.Sprint("storyvault stories seal <story-id>")
		return nil
	},
}
