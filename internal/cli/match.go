package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smartchef/smartchef/internal/discovery"
	"github.com/smartchef/smartchef/internal/notify"
	"github.com/smartchef/smartchef/internal/types"
	"github.com/smartchef/smartchef/internal/view"
)

var (
	matchJSON bool
	matchOpen int
)

var matchCmd = &cobra.Command{
	Use:   "match [ingredient...]",
	Short: "Find recipes for a set of ingredients",
	Long: `Ranks recipes by how well they match the given ingredients.
Results are shown in the order the backend returns them.

With --open N the Nth result is opened and its details are generated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output results as JSON")
	matchCmd.Flags().IntVar(&matchOpen, "open", 0, "open the Nth result (1-based) and show its details")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	rec := &notify.Recorder{}
	page := discovery.NewPage(backendClient, detailsClient, rec)
	for _, arg := range args {
		page.AddIngredient(arg)
	}

	if !page.Search(cmd.Context()) {
		return notificationError(rec)
	}
	snap := page.Snapshot()
	out := cmd.OutOrStdout()

	if matchJSON {
		data, err := json.MarshalIndent(snap.Results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printResults(out, snap.Results, snap.SearchedWith)
	}

	if matchOpen == 0 {
		return nil
	}
	if matchOpen < 0 || matchOpen > len(snap.Results) {
		return fmt.Errorf("--open %d: only %d results", matchOpen, len(snap.Results))
	}

	ticket, ok := page.OpenRecipe(snap.Results[matchOpen-1].ID)
	if ok {
		page.ApplyDetail(page.RunDetail(cmd.Context(), ticket))
	}
	for _, n := range rec.All() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", n.Title, n.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, view.DefaultStyles().Detail(page.Snapshot().Detail, 72))
	return nil
}

func printResults(out io.Writer, results []types.RecipeMatch, searchedWith []string) {
	fmt.Fprintln(out, view.ResultsHeading(len(results)))
	fmt.Fprintln(out, view.BasedOn(searchedWith))
	fmt.Fprintln(out)

	if len(results) == 0 {
		fmt.Fprintln(out, view.EmptyTitle)
		fmt.Fprintln(out, view.EmptyHint)
		return
	}
	for i := range results {
		r := &results[i]
		fmt.Fprintf(out, "  [%d] %s  %s  %s\n", i+1, r.DisplayTitle(), view.BadgeText(r.EffectiveRelevance()), view.Counter(r))
		if missing := view.MissingSummary(r.MissingIngredients); missing != "" {
			fmt.Fprintf(out, "      Missing: %s\n", missing)
		}
	}
}

// notificationError turns the last recorded failure notification into an error.
func notificationError(rec *notify.Recorder) error {
	all := rec.All()
	if len(all) == 0 {
		return errors.New("request failed")
	}
	n := all[len(all)-1]
	return fmt.Errorf("%s: %s", n.Title, n.Description)
}
