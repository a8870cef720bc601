package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartchef/smartchef/internal/tui"
)

var noProbe bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal UI.

Controls:
  type     - Filter ingredients
  ↑/↓      - Move through suggestions or results
  Enter    - Add ingredient / find recipes / open recipe
  Tab      - Find recipes
  g        - Generate instructions for the open recipe
  n, Esc   - New search / back
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip the backend warm-up indicator")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	err := tui.Run(cmd.Context(), tui.Options{
		Backend:      backendClient,
		Details:      detailsClient,
		Logger:       log,
		DisableProbe: noProbe,
	})
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
