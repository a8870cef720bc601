package service

import (
	"context"
	"encoding/json"

	"github.com/smartchef/smartchef/internal/types"
)

// BackendAPI is the remote recipe backend as seen by the client.
type BackendAPI interface {
	GetIngredients(ctx context.Context) ([]string, error)
	MatchRecipes(ctx context.Context, ingredients []string) ([]types.RecipeMatch, error)
	GenerateInstructions(ctx context.Context, recipeID, recipeName string, ingredients []string) ([]string, error)
	Ping(ctx context.Context) error
}

// DetailsGenerator produces AI recipe details through the relay.
type DetailsGenerator interface {
	GenerateDetails(ctx context.Context, recipeName string, ingredients []string) (*types.RecipeDetails, error)
}

// LLMServiceInterface is the relay's view of the chat-completion gateway.
type LLMServiceInterface interface {
	GenerateRecipeDetails(ctx context.Context, recipeName string, ingredients types.IngredientList) (json.RawMessage, error)
}

// DetailsCache stores generated details keyed by recipe name and ingredients.
type DetailsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
