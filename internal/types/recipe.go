package types

import (
	"encoding/json"
	"math"
)

// Difficulty levels the relay asks the model to choose from
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Recipe is the recipe record as served by the backend. Every field other than
// ID, Title and Ingredients may be absent.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Name         string   `json:"name,omitempty"`
	Note         string   `json:"note,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions,omitempty"`
	PrepTime     *int     `json:"prepTime,omitempty"`
	CookTime     *int     `json:"cookTime,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty"`
	Description  string   `json:"description,omitempty"`
	Servings     *int     `json:"servings,omitempty"`
	Equipment    []string `json:"equipment,omitempty"`
	ChefTips     []string `json:"chef_tips,omitempty"`
}

// RecipeMatch is a backend-ranked recipe annotated with match metrics
type RecipeMatch struct {
	Recipe
	HasIngredients     []string `json:"hasIngredients,omitempty"`
	MissingIngredients []string `json:"missingIngredients,omitempty"`
	MatchPercentage    *float64 `json:"matchPercentage,omitempty"`
	RelevanceScore     *float64 `json:"relevanceScore,omitempty"`
	MatchedCount       *int     `json:"matchedCount,omitempty"`
	TotalIngredients   *int     `json:"totalIngredients,omitempty"`
}

// UnmarshalJSON decodes a backend record, accepting a numeric id and
// instructions sent as a single string.
func (r *RecipeMatch) UnmarshalJSON(data []byte) error {
	type plain RecipeMatch
	aux := struct {
		*plain
		ID           FlexString     `json:"id"`
		Instructions IngredientList `json:"instructions"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = string(aux.ID)
	r.Instructions = []string(aux.Instructions)
	return nil
}

// DisplayTitle returns the title, falling back to the legacy name field.
func (r *RecipeMatch) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// EffectiveMatchPercent is the server match percentage when present, otherwise
// the share of the recipe's ingredients the server marked as on hand.
func (r *RecipeMatch) EffectiveMatchPercent() int {
	if r.MatchPercentage != nil {
		return int(math.Round(*r.MatchPercentage))
	}
	total := len(r.Ingredients)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(r.HasIngredients)) / float64(total) * 100))
}

// EffectiveRelevance is the relevance score when present, else the match percent.
func (r *RecipeMatch) EffectiveRelevance() float64 {
	if r.RelevanceScore != nil {
		return *r.RelevanceScore
	}
	return float64(r.EffectiveMatchPercent())
}

// HasInstructions reports whether at least one instruction step is present.
func (r *RecipeMatch) HasInstructions() bool {
	return len(r.Instructions) > 0
}

// NeedsHydration reports whether the detail view should ask the relay for content.
func (r *RecipeMatch) NeedsHydration() bool {
	return r.Description == "" || !r.HasInstructions()
}

// Clone returns a deep copy so overlays never alias the result list.
func (r RecipeMatch) Clone() RecipeMatch {
	out := r
	out.Ingredients = cloneStrings(r.Ingredients)
	out.Instructions = cloneStrings(r.Instructions)
	out.Equipment = cloneStrings(r.Equipment)
	out.ChefTips = cloneStrings(r.ChefTips)
	out.HasIngredients = cloneStrings(r.HasIngredients)
	out.MissingIngredients = cloneStrings(r.MissingIngredients)
	out.PrepTime = cloneInt(r.PrepTime)
	out.CookTime = cloneInt(r.CookTime)
	out.Servings = cloneInt(r.Servings)
	out.MatchedCount = cloneInt(r.MatchedCount)
	out.TotalIngredients = cloneInt(r.TotalIngredients)
	if r.MatchPercentage != nil {
		v := *r.MatchPercentage
		out.MatchPercentage = &v
	}
	if r.RelevanceScore != nil {
		v := *r.RelevanceScore
		out.RelevanceScore = &v
	}
	return out
}

// Merge returns a copy of r with generated details laid over it. Servings always
// come from the details; cuisine, timings and difficulty keep the base value when
// the details leave them empty.
func (r RecipeMatch) Merge(d *RecipeDetails) RecipeMatch {
	out := r.Clone()
	if d == nil {
		return out
	}
	out.Description = d.Description
	if d.Cuisine != "" {
		out.Cuisine = d.Cuisine
	}
	if d.PrepTimeMinutes > 0 {
		out.PrepTime = d.PrepTimeMinutes.Ptr()
	}
	if d.CookTimeMinutes > 0 {
		out.CookTime = d.CookTimeMinutes.Ptr()
	}
	out.Servings = d.Servings.Ptr()
	if d.Difficulty != "" {
		out.Difficulty = d.Difficulty
	}
	out.Instructions = nonNil(d.Instructions)
	out.Equipment = nonNil(d.Equipment)
	out.ChefTips = nonNil(d.ChefTips)
	return out
}

// WithInstructions returns a copy of r carrying the given instruction steps.
func (r RecipeMatch) WithInstructions(steps []string) RecipeMatch {
	out := r.Clone()
	out.Instructions = nonNil(steps)
	return out
}

// RecipeDetails is the generated content returned by the relay.
type RecipeDetails struct {
	Description     string   `json:"description"`
	Cuisine         string   `json:"cuisine"`
	PrepTimeMinutes FlexInt  `json:"prep_time_minutes"`
	CookTimeMinutes FlexInt  `json:"cook_time_minutes"`
	Servings        FlexInt  `json:"servings"`
	Difficulty      string   `json:"difficulty"`
	Instructions    []string `json:"instructions"`
	Equipment       []string `json:"equipment"`
	ChefTips        []string `json:"chef_tips"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt(in *int) *int {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return cloneStrings(in)
}
