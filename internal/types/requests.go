package types

// IngredientsResponse is the backend's ingredient catalog
type IngredientsResponse struct {
	Ingredients []string `json:"ingredients"`
}

// MatchRequest asks the backend to rank recipes for the selected ingredients
type MatchRequest struct {
	Ingredients []string `json:"ingredients"`
}

// MatchResponse carries ranked recipes, already sorted by the backend
type MatchResponse struct {
	Matches []RecipeMatch `json:"matches"`
}

// GenerateInstructionsRequest asks the backend for cooking steps
type GenerateInstructionsRequest struct {
	RecipeID    string   `json:"recipe_id"`
	RecipeName  string   `json:"recipe_name"`
	Ingredients []string `json:"ingredients"`
}

// GenerateInstructionsResponse carries generated cooking steps
type GenerateInstructionsResponse struct {
	Instructions []string `json:"instructions"`
}

// RecipeDetailsRequest is the relay input
type RecipeDetailsRequest struct {
	RecipeName  string         `json:"recipeName"`
	Ingredients IngredientList `json:"ingredients"`
}

// ErrorResponse is the JSON error body used by the relay
type ErrorResponse struct {
	Error string `json:"error"`
}
