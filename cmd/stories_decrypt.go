package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bardo-engine/storyvault/internal/utils"
	"github.com/bardo-engine/storyvault/internal/workflows"

	"github.com/spf13/cobra"
)

var decryptInputPath string

func init() {
	decryptCmd.Flags().StringVarP(&decryptInputPath, "in", "i", "", "read the envelope from this file instead of stdin")
	StoriesCmd.AddCommand(decryptCmd)
}

func resetDecryptCommandState() {
	decryptInputPath = ""
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypts a raw envelope from stdin or a file",
	Long: `Decrypts a base64 envelope that is not part of a project's resources.

The envelope is read from stdin, or from --in. Inside a project the project's
key file is used; elsewhere STORYVAULT_KEY or the built-in key applies.

Examples:
  cat serruchin.enc | storyvault stories decrypt
  storyvault stories decrypt --in serruchin.enc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		var (
			data []byte
			err  error
		)
		if decryptInputPath != "" {
			Logger.Debugf("Reading envelope from %s", decryptInputPath)
			data, err = os.ReadFile(decryptInputPath)
		} else {
			Logger.Debugf("Reading envelope from stdin")
			data, err = utils.ReadStdin()
		}
		if err != nil {
			return fmt.Errorf("failed to read envelope: %w", err)
		}

		result, err := workflows.Decrypt(context.Background(), workflows.DecryptOptions{
			Envelope: string(data),
		})
		if err != nil {
			fmt.Println(formatEnvelopeError("", err))
			return reported(err)
		}

		Logger.Debugf("Decrypted with key from %s", result.KeySource)
		printPlaintext(result.Plaintext)
		return nil
	},
}
