package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/bardo-engine/storyvault/cmd"
	"github.com/bardo-engine/storyvault/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "storyvault",
	Short: "storyvault - seal and open encrypted story resources.",
	Long: `storyvault packs story files into AES-256-GCM encrypted resources for
distribution with a game build, and opens them again at runtime or for inspection.

Available Commands:
  stories    Seal, open, list and verify sealed stories
  config     Inspect project configuration

Run 'storyvault help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("storyvault", "small", "cyan", true)
		banner.Print()
		cmd.Println()
		cmd.Println("Welcome to storyvault! Run " + ui.Code.Sprint("storyvault --help") + " to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.StoriesCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("Error: ")+err.Error())
		}
		os.Exit(1)
	}
}
