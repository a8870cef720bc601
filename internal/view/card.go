package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartchef/smartchef/internal/types"
)

// HighMatchThreshold is the relevance at which the badge switches to the high tier
const HighMatchThreshold = 80

// maxMissingShown is how many missing ingredients a card lists before "+N"
const maxMissingShown = 3

// Tier is the badge styling tier
type Tier int

const (
	TierNormal Tier = iota
	TierHigh
)

// BadgePercent clamps a relevance value to 0..100 and rounds it.
func BadgePercent(relevance float64) int {
	if math.IsNaN(relevance) {
		return 0
	}
	pct := int(math.Round(relevance))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// BadgeTier returns the tier for a clamped percentage
func BadgeTier(pct int) Tier {
	if pct >= HighMatchThreshold {
		return TierHigh
	}
	return TierNormal
}

// BadgeText is the badge label, e.g. "87% Relevance".
func BadgeText(relevance float64) string {
	return fmt.Sprintf("%d%% Relevance", BadgePercent(relevance))
}

// Badge renders the relevance badge in its tier style.
func (s *Styles) Badge(relevance float64) string {
	text := BadgeText(relevance)
	if BadgeTier(BadgePercent(relevance)) == TierHigh {
		return s.BadgeHigh.Render(text)
	}
	return s.BadgeLow.Render(text)
}

// BarFill returns how many of width cells a percentage fills.
func BarFill(pct, width int) int {
	if width <= 0 {
		return 0
	}
	pct = max(0, min(100, pct))
	return int(math.Round(float64(pct) * float64(width) / 100))
}

// ProgressBar renders a proportional bar of the given width.
func (s *Styles) ProgressBar(pct, width int) string {
	filled := BarFill(pct, width)
	return s.BarFilled.Render(strings.Repeat("█", filled)) +
		s.BarEmpty.Render(strings.Repeat("░", width-filled))
}

// Counter returns "has/total".
func Counter(r *types.RecipeMatch) string {
	return fmt.Sprintf("%d/%d", len(r.HasIngredients), len(r.Ingredients))
}

// MissingSummary lists the first three missing ingredients and a "+N"
// remainder. It is empty when nothing is missing.
func MissingSummary(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	shown := missing[:min(len(missing), maxMissingShown)]
	out := strings.Join(shown, ", ")
	if extra := len(missing) - maxMissingShown; extra > 0 {
		out += fmt.Sprintf(" +%d", extra)
	}
	return out
}

// Card renders one result card. focused selects the highlighted border.
func (s *Styles) Card(r types.RecipeMatch, width int, focused bool) string {
	barWidth := max(width-12, 10)

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.Heading.Render(r.DisplayTitle()), "  ", s.Badge(r.EffectiveRelevance())),
		s.ProgressBar(r.EffectiveMatchPercent(), barWidth) + " " + s.Muted.Render(Counter(&r)),
	}
	if missing := MissingSummary(r.MissingIngredients); missing != "" {
		lines = append(lines, s.Title.Render("Missing: ")+s.Normal.Render(missing))
	}

	box := s.CardBox
	if focused {
		box = s.FocusBox
	}
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(strings.Join(lines, "\n"))
}
