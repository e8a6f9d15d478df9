package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/ui"
	"github.com/bardo-engine/storyvault/internal/utils"
	"github.com/bardo-engine/storyvault/internal/workflows"

	"github.com/spf13/cobra"
)

var openOutputPath string

func init() {
	openCmd.Flags().StringVarP(&openOutputPath, "output", "o", "", "write the plaintext to this file instead of stdout")
	StoriesCmd.AddCommand(openCmd)
}

func resetOpenCommandState() {
	openOutputPath = ""
}

var openCmd = &cobra.Command{
	Use:   "open <story-id>",
	Short: "Decrypts a sealed story",
	Long: `Decrypts <resources>/<story-id>.enc with the active key.

The plaintext is printed to stdout unless --output is given.

Examples:
  storyvault stories open serruchin
  storyvault stories open serruchin --output /tmp/serruchin.json
  storyvault stories open serruchin | jq .inkVersion`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID := args[0]
		Logger.Infof("Starting open command for %s", storyID)
		spinner, cleanup := startSpinner("Opening story...", verbose)
		defer cleanup()

		result, err := workflows.Open(context.Background(), workflows.OpenOptions{
			StoryID:    storyID,
			OutputPath: openOutputPath,
		})
		if err != nil {
			spinner.FinalMSG = formatOpenError(storyID, err)
			if isOpenUnexpectedError(err) {
				return reported(err)
			}
			return nil
		}

		Logger.Debugf("Opened %s with key from %s", result.SourcePath, result.KeySource)

		if result.OutputPath != "" {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Opened " + ui.Story.Sprint(result.StoryID) +
				" into " + ui.Path.Sprint(result.OutputPath)
			return nil
		}

		// Stop the spinner before the story reaches stdout.
		cleanup()
		printPlaintext(result.Plaintext)
		return nil
	},
}

// printPlaintext writes a story to stdout, adding a trailing newline only
// when a person is reading it so piped output stays byte-exact.
func printPlaintext(plaintext string) {
	fmt.Print(plaintext)
	if utils.IsStdoutTerminal() && !strings.HasSuffix(plaintext, "\n") {
		fmt.Println()
	}
}

func formatOpenError(storyID string, err error) string {
	switch {
	case errors.Is(err, kerrors.ErrProjectNotInitialized):
		return notInitializedMessage()

	case errors.Is(err, kerrors.ErrStoryNotFound):
		return ui.Error.Sprint("✗") + " Story " + ui.Story.Sprint(storyID) + " has not been sealed\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("storyvault stories list") + " to see sealed stories"

	case errors.Is(err, kerrors.ErrInvalidStoryID):
		return ui.Error.Sprint("✗") + " " + ui.Story.Sprint(storyID) + " is not a valid story id"

	default:
		return formatEnvelopeError(storyID, err)
	}
}

func isOpenUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrProjectNotInitialized) &&
		!errors.Is(err, kerrors.ErrStoryNotFound) &&
		!errors.Is(err, kerrors.ErrInvalidStoryID)
}
