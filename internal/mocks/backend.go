package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/smartchef/smartchef/internal/types"
)

// MockBackend is a mock implementation of the recipe backend client
type MockBackend struct {
	mock.Mock
}

// GetIngredients mocks the GetIngredients method
func (m *MockBackend) GetIngredients(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MatchRecipes mocks the MatchRecipes method
func (m *MockBackend) MatchRecipes(ctx context.Context, ingredients []string) ([]types.RecipeMatch, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeMatch), args.Error(1)
}

// GenerateInstructions mocks the GenerateInstructions method
func (m *MockBackend) GenerateInstructions(ctx context.Context, recipeID, recipeName string, ingredients []string) ([]string, error) {
	args := m.Called(ctx, recipeID, recipeName, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Ping mocks the Ping method
func (m *MockBackend) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDetailsGenerator is a mock implementation of the relay details client
type MockDetailsGenerator struct {
	mock.Mock
}

// GenerateDetails mocks the GenerateDetails method
func (m *MockDetailsGenerator) GenerateDetails(ctx context.Context, recipeName string, ingredients []string) (*types.RecipeDetails, error) {
	args := m.Called(ctx, recipeName, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetails), args.Error(1)
}
