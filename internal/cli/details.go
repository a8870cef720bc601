package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details <recipe name> <ingredient>...",
	Short: "Generate recipe details with AI",
	Long: `Asks the details relay to describe a recipe: cuisine, timings, servings,
difficulty, step-by-step instructions, equipment and chef's tips.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	details, err := detailsClient.GenerateDetails(cmd.Context(), name, args[1:])
	if err != nil {
		return fmt.Errorf("failed to generate recipe details: %w", err)
	}

	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal details: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
