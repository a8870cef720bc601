package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartchef/smartchef/internal/picker"
)

var (
	ingredientsFilter string
	ingredientsJSON   bool
)

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "List the ingredient catalog",
	Args:  cobra.NoArgs,
	RunE:  runIngredients,
}

func init() {
	ingredientsCmd.Flags().StringVarP(&ingredientsFilter, "filter", "f", "", "only show ingredients containing this text")
	ingredientsCmd.Flags().BoolVar(&ingredientsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(ingredientsCmd)
}

func runIngredients(cmd *cobra.Command, _ []string) error {
	items, err := backendClient.GetIngredients(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	if ingredientsFilter != "" {
		items = picker.Filter(items, nil, ingredientsFilter)
	}

	out := cmd.OutOrStdout()
	if ingredientsJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal ingredients: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	for _, item := range items {
		fmt.Fprintln(out, item)
	}
	return nil
}
