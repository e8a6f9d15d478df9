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

var verifyWorkers int

func init() {
	verifyCmd.Flags().IntVarP(&verifyWorkers, "workers", "w", 0, "number of stories decrypted concurrently (0 uses all CPUs)")
	StoriesCmd.AddCommand(verifyCmd)
}

func resetVerifyCommandState() {
	verifyWorkers = 0
}

var verifyCmd = &cobra.Command{
	Use:   "verify [story-id|pattern]...",
	Short: "Checks that sealed stories decrypt with the active key",
	Long: `Decrypts every sealed story, or the named ones, and reports which fail.

Arguments may be story ids or glob patterns. The command exits non-zero when
any story fails, which makes it suitable as a release check.

Examples:
  storyvault stories verify
  storyvault stories verify serruchin 'ch*'
  storyvault stories verify --workers 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting verify command")
		spinner, cleanup := startSpinner("Verifying stories...", verbose)
		defer cleanup()

		result, err := workflows.Verify(context.Background(), workflows.VerifyOptions{
			StoryIDs: args,
			Workers:  verifyWorkers,
		})
		if err != nil {
			spinner.FinalMSG = formatVerifyError(err)
			if isVerifyUnexpectedError(err) {
				return reported(err)
			}
			return nil
		}

		Logger.Debugf("Verified %d stories with key from %s", len(result.Stories), result.KeySource)
		spinner.FinalMSG = formatVerifyResult(result)

		if result.Failed > 0 {
			return reported(fmt.Errorf("%d of %d stories failed verification", result.Failed, len(result.Stories)))
		}
		return nil
	},
}

func formatVerifyResult(result *workflows.VerifyResult) string {
	msg := ""
	for _, s := range result.Stories {
		if s.OK {
			msg += ui.Success.Sprint("✓") + " " + ui.Story.Sprint(s.StoryID) + " " + ui.Muted.Sprintf("%d bytes", s.Bytes) + "\n"
			continue
		}
		msg += ui.Error.Sprint("✗") + " " + ui.Story.Sprint(s.StoryID) + ": " + describeKind(s.Kind) + "\n"
		Logger.Debugf("%s: %s", s.StoryID, s.Error)
	}

	msg += "\n"
	if result.Failed == 0 {
		msg += ui.Success.Sprintf("All %d %s verified", result.Passed, pluralize(result.Passed, "story", "stories"))
	} else {
		msg += ui.Error.Sprintf("%d passed, %d failed", result.Passed, result.Failed)
	}
	return msg
}

func describeKind(kind string) string {
	switch kind {
	case workflows.KindAuthenticationFailed:
		return "authentication failed (tampered or sealed with another key)"
	case workflows.KindMalformed:
		return "envelope too short"
	case workflows.KindEncoding:
		return "invalid encoding"
	case workflows.KindCipherInit:
		return "key rejected by cipher"
	case workflows.KindNotFound:
		return "not sealed"
	case workflows.KindInvalid:
		return "invalid story id"
	default:
		return "unreadable"
	}
}

func formatVerifyError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrProjectNotInitialized):
		return notInitializedMessage()

	case errors.Is(err, kerrors.ErrNoStoriesFound):
		return ui.Warning.Sprint("⚠") + " No sealed stories matched\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("storyvault stories list") + " to see sealed stories"

	default:
		return formatEnvelopeError("", err)
	}
}

func isVerifyUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrProjectNotInitialized) &&
		!errors.Is(err, kerrors.ErrNoStoriesFound)
}
