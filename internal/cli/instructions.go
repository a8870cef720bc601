package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var instructionsCmd = &cobra.Command{
	Use:   "instructions <recipe id> <recipe name> <ingredient>...",
	Short: "Generate cooking instructions for a recipe",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runInstructions,
}

func init() {
	rootCmd.AddCommand(instructionsCmd)
}

func runInstructions(cmd *cobra.Command, args []string) error {
	steps, err := backendClient.GenerateInstructions(cmd.Context(), args[0], args[1], args[2:])
	if err != nil {
		return fmt.Errorf("failed to generate instructions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(steps) == 0 {
		fmt.Fprintln(out, "No instructions returned.")
		return nil
	}
	for i, step := range steps {
		fmt.Fprintf(out, "%d. %s\n", i+1, step)
	}
	return nil
}
