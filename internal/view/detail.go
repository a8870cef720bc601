package view

import (
	"fmt"
	"strings"

	"github.com/smartchef/smartchef/internal/detail"
	"github.com/smartchef/smartchef/internal/types"
)

const (
	GeneratingDetailsText = "Generating recipe details with AI..."
	NoInstructionsText    = `No instructions yet. Click "Generate Instructions" to create them with AI.`
	GeneratingText        = "Generating..."
)

// MetaLine is "Prep Xm • Cook Ym" followed by difficulty, cuisine and servings
// when present.
func MetaLine(r *types.RecipeMatch) string {
	parts := []string{fmt.Sprintf("Prep: %dm • Cook: %dm", deref(r.PrepTime), deref(r.CookTime))}
	if r.Difficulty != "" {
		parts = append(parts, r.Difficulty)
	}
	if r.Cuisine != "" {
		parts = append(parts, r.Cuisine)
	}
	if r.Servings != nil && *r.Servings > 0 {
		parts = append(parts, fmt.Sprintf("Serves %d", *r.Servings))
	}
	return strings.Join(parts, "  ")
}

// IngredientLine marks an ingredient as on hand or not.
func IngredientLine(ingredient string, has []string) (string, bool) {
	if detail.IngredientMatched(ingredient, has) {
		return "✓ " + ingredient, true
	}
	return "✗ " + ingredient, false
}

// Detail renders the open recipe.
func (s *Styles) Detail(v detail.View, width int) string {
	r := v.Recipe
	var b strings.Builder

	b.WriteString(s.Title.Render(r.DisplayTitle()))
	b.WriteString("\n\n")

	b.WriteString(s.Heading.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		line, ok := IngredientLine(ing, r.HasIngredients)
		if ok {
			b.WriteString(s.Success.Render(line))
		} else {
			b.WriteString(s.Muted.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.Hydrating {
		b.WriteString(s.Muted.Render(GeneratingDetailsText))
		return b.String()
	}

	if r.Description != "" {
		b.WriteString(s.Normal.Width(max(width, 20)).Render(r.Description))
		b.WriteString("\n\n")
		b.WriteString(s.Normal.Render(MetaLine(&r)))
		b.WriteString("  ")
		b.WriteString(s.Badge(r.EffectiveRelevance()))
		b.WriteString("\n\n")
	}

	if len(r.Equipment) > 0 {
		b.WriteString(s.Heading.Render("Equipment Needed"))
		b.WriteString("\n")
		chips := make([]string, len(r.Equipment))
		for i, e := range r.Equipment {
			chips[i] = s.Chip.Render(e)
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n\n")
	}

	b.WriteString(s.Heading.Render("Instructions"))
	b.WriteString("\n")
	if r.HasInstructions() {
		for i, step := range r.Instructions {
			fmt.Fprintf(&b, "%s %s\n", s.Title.Render(fmt.Sprintf("%d.", i+1)), s.Normal.Render(step))
		}
	} else if v.GeneratingInstructions {
		b.WriteString(s.Muted.Render(GeneratingText))
		b.WriteString("\n")
	} else {
		b.WriteString(s.Muted.Render(NoInstructionsText))
		b.WriteString("\n")
	}

	if len(r.ChefTips) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Heading.Render("Chef's Tips"))
		b.WriteString("\n")
		for _, tip := range r.ChefTips {
			b.WriteString("💡 ")
			b.WriteString(s.Normal.Render(tip))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
