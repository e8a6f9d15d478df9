package cmd

import (
	"context"
	"errors"
	"strings"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/ui"
	"github.com/bardo-engine/storyvault/internal/utils"
	"github.com/bardo-engine/storyvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	sealTitle        string
	sealDryRun       bool
	sealKeepExisting bool
)

func init() {
	sealCmd.Flags().StringVarP(&sealTitle, "title", "t", "", "title recorded in story-config.json")
	sealCmd.Flags().BoolVar(&sealDryRun, "dry-run", false, "preview what would be sealed without writing files")
	sealCmd.Flags().BoolVar(&sealKeepExisting, "keep", false, "keep previously sealed stories")
	StoriesCmd.AddCommand(sealCmd)
}

func resetSealCommandState() {
	sealTitle = ""
	sealDryRun = false
	sealKeepExisting = false
}

var sealCmd = &cobra.Command{
	Use:   "seal <story-id>",
	Short: "Encrypts a story source into a sealed resource",
	Long: `Encrypts <stories>/<story-id>.json into <resources>/<story-id>.enc and
writes story-config.json for the game frontend.

A leading byte order mark is removed before encryption. Previously sealed
stories are removed so a build ships a single story; use --keep to retain them.

Examples:
  storyvault stories seal serruchin --title "Serruchín"
  storyvault stories seal serruchin --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storyID := args[0]
		Logger.Infof("Starting seal command for %s", storyID)
		spinner, cleanup := startSpinner("Sealing story...", verbose)
		defer cleanup()

		result, err := workflows.Seal(context.Background(), workflows.SealOptions{
			StoryID:      storyID,
			Title:        sealTitle,
			DryRun:       sealDryRun,
			KeepExisting: sealKeepExisting,
		})
		if err != nil {
			spinner.FinalMSG = formatSealError(storyID, err)
			if isSealUnexpectedError(err) {
				return reported(err)
			}
			return nil
		}

		Logger.Debugf("Key source: %s", result.KeySource)
		if result.BOMStripped {
			Logger.Infof("Removed byte order mark from %s", result.SourcePath)
		}

		if result.DryRun {
			spinner.FinalMSG = formatSealDryRun(result)
			return nil
		}

		msg := ui.Success.Sprint("✓") + " Sealed " + ui.Story.Sprint(result.StoryID) + " into " + ui.Path.Sprint(result.OutputPath)
		if len(result.CleanedFiles) > 0 {
			msg += "\n  Removed previous resources:" + strings.TrimSuffix(utils.FormatPaths(result.CleanedFiles), "\n")
		}
		msg += "\n  Manifest: " + ui.Path.Sprint(result.ConfigPath)
		spinner.FinalMSG = msg
		return nil
	},
}

func formatSealDryRun(result *workflows.SealResult) string {
	var b strings.Builder
	b.WriteString(ui.Warning.Sprint("[dry-run]") + " Would seal " + ui.Story.Sprint(result.StoryID) + "\n")
	b.WriteString("  Source:   " + ui.Path.Sprint(result.SourcePath) + "\n")
	b.WriteString("  Output:   " + ui.Path.Sprint(result.OutputPath) + "\n")
	b.WriteString("  Manifest: " + ui.Path.Sprint(result.ConfigPath) + "\n")
	if len(result.CleanedFiles) > 0 {
		b.WriteString("  Would remove:" + utils.FormatPaths(result.CleanedFiles))
	}
	b.WriteString(ui.Info.Sprint("→") + " No changes made. Run without --dry-run to seal")
	return b.String()
}

func formatSealError(storyID string, err error) string {
	var notFound *workflows.StoryNotFoundError

	switch {
	case errors.Is(err, kerrors.ErrProjectNotInitialized):
		return notInitializedMessage()

	case errors.As(err, &notFound):
		msg := ui.Error.Sprint("✗") + " Story source " + ui.Path.Sprint(notFound.Path) + " does not exist"
		if len(notFound.Available) > 0 {
			msg += "\n" + ui.Info.Sprint("→") + " Available stories: " + strings.Join(notFound.Available, ", ")
		} else {
			msg += "\n" + ui.Info.Sprint("→") + " No story sources were found"
		}
		return msg

	case errors.Is(err, kerrors.ErrInvalidStoryID):
		return ui.Error.Sprint("✗") + " " + ui.Story.Sprint(storyID) + " is not a valid story id"

	case errors.Is(err, kerrors.ErrInvalidKeyLength), errors.Is(err, kerrors.ErrKeyFileNotFound), errors.Is(err, kerrors.ErrCipherInit):
		return ui.Error.Sprint("✗") + " The configured key is unusable\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to seal " + ui.Story.Sprint(storyID) + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

func isSealUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrProjectNotInitialized) &&
		!errors.Is(err, kerrors.ErrStoryNotFound) &&
		!errors.Is(err, kerrors.ErrInvalidStoryID)
}
