package view

import (
	"fmt"
	"strings"

	"github.com/smartchef/smartchef/internal/types"
)

const (
	EmptyTitle = "No recipes found with these ingredients."
	EmptyHint  = "Try adding more ingredients or removing some."
)

// ResultsHeading is "Found N Recipe" or "Found N Recipes".
func ResultsHeading(n int) string {
	noun := "Recipes"
	if n == 1 {
		noun = "Recipe"
	}
	return fmt.Sprintf("Found %d %s", n, noun)
}

// BasedOn lists the ingredients the results were computed for
func BasedOn(ingredients []string) string {
	return "Based on: " + strings.Join(ingredients, ", ")
}

// Results renders the heading and every card, or the empty state.
func (s *Styles) Results(results []types.RecipeMatch, searchedWith []string, cursor, width int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(ResultsHeading(len(results))))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(BasedOn(searchedWith)))
	b.WriteString("\n\n")

	if len(results) == 0 {
		b.WriteString(s.Normal.Render(EmptyTitle))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(EmptyHint))
		return b.String()
	}

	for i, r := range results {
		b.WriteString(s.Card(r, width, i == cursor))
		b.WriteString("\n")
	}
	return b.String()
}
