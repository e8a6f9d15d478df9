package cmd

import (
	logger "github.com/bardo-engine/storyvault/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	StoriesCmd = &cobra.Command{
		Use:   "stories",
		Short: "Seal, open, list and verify sealed stories",
		Long: `Provides initialization, sealing, opening, listing, verification and
audit logging of encrypted story resources.

Examples:
  # Set up storyvault in the current directory
  storyvault stories init

  # Seal src/stories/serruchin.json into src-tauri/resources/serruchin.enc
  storyvault stories seal serruchin --title "Serruchín"

  # Print a sealed story
  storyvault stories open serruchin

  # Check that every sealed story opens with the active key
  storyvault stories verify`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing stories command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	StoriesCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	StoriesCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// GetStoriesCmd returns the StoriesCmd for testing.
func GetStoriesCmd() *cobra.Command {
	return StoriesCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetInitCommandState()
	resetSealCommandState()
	resetOpenCommandState()
	resetDecryptCommandState()
	resetListCommandState()
	resetVerifyCommandState()
	resetLogCommandState()
	resetCobraFlagState(StoriesCmd)
}

// resetCobraFlagState clears the Changed marker on every flag in the tree
// so one test's flags do not leak into the next.
func resetCobraFlagState(root *cobra.Command) {
	reset := func(flag *pflag.Flag) { flag.Changed = false }
	root.PersistentFlags().VisitAll(reset)
	root.Flags().VisitAll(reset)
	for _, c := range root.Commands() {
		resetCobraFlagState(c)
	}
}
