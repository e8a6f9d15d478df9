package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a cleanup function. The cleanup may be called early
// (e.g. before printing a story) and again by defer; only the first call acts.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if quiet {
				log.SetOutput(os.Stdout)
			}

			finalMsg := ""
			if s.FinalMSG != "" {
				finalMsg = ui.EnsureNewline(s.FinalMSG)
				// Clear FinalMSG so s.Stop() doesn't print it.
				s.FinalMSG = ""
			}

			if quiet {
				s.Stop()
			}

			// Print final message to stdout (for tests to capture).
			if finalMsg != "" {
				fmt.Print(finalMsg)
			}
		})
	}

	return s, cleanup
}

// notInitializedMessage is shared by every project-scoped command.
func notInitializedMessage() string {
	return ui.Error.Sprint("✗") + " storyvault has not been initialized\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("storyvault stories init") + " first"
}

// formatEnvelopeError explains a decryption failure for storyID.
func formatEnvelopeError(storyID string, err error) string {
	subject := "the envelope"
	if storyID != "" {
		subject = ui.Story.Sprint(storyID)
	}

	switch {
	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return ui.Error.Sprint("✗") + " Failed to open " + subject + ": authentication failed\n" +
			ui.Info.Sprint("→") + " The resource was modified or sealed with a different key. Check " +
			ui.Code.Sprint("storyvault config show") + " for the active key"

	case errors.Is(err, kerrors.ErrMalformed):
		return ui.Error.Sprint("✗") + " Failed to open " + subject + ": the envelope is too short to be a sealed story"

	case errors.Is(err, kerrors.ErrEncoding):
		return ui.Error.Sprint("✗") + " Failed to open " + subject + ": " + err.Error()

	case errors.Is(err, kerrors.ErrCipherInit), errors.Is(err, kerrors.ErrInvalidKeyLength), errors.Is(err, kerrors.ErrKeyFileNotFound):
		return ui.Error.Sprint("✗") + " The configured key is unusable\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to open " + subject + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

// reportedError marks an error whose message has already been shown to the
// user, so main only needs to set the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
