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

var listQuiet bool

func init() {
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "print story ids only")
	StoriesCmd.AddCommand(listCmd)
}

func resetListCommandState() {
	listQuiet = false
}

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "Lists sealed stories",
	Long: `Lists the stories sealed in the project's resources directory.

An optional glob pattern filters the ids.

Examples:
  storyvault stories list
  storyvault stories list 'ch*'
  storyvault stories list --quiet`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		opts := workflows.ListOptions{}
		if len(args) == 1 {
			opts.Pattern = args[0]
		}

		result, err := workflows.List(context.Background(), opts)
		if err != nil {
			if errors.Is(err, kerrors.ErrProjectNotInitialized) {
				fmt.Println(notInitializedMessage())
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to list stories: %v", err)
		}

		if listQuiet {
			for _, id := range result.StoryIDs {
				fmt.Println(id)
			}
			return nil
		}

		if len(result.StoryIDs) == 0 {
			fmt.Println(ui.Warning.Sprint("⚠") + " No sealed stories in " + ui.Path.Sprint(result.ResourcesPath))
			return nil
		}

		fmt.Printf("Sealed stories in %s:\n", ui.Path.Sprint(result.ResourcesPath))
		for _, id := range result.StoryIDs {
			fmt.Println("  " + ui.Story.Sprint(id))
		}
		fmt.Println()
		fmt.Printf("%d %s\n", len(result.StoryIDs), pluralize(len(result.StoryIDs), "story", "stories"))
		return nil
	},
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
