package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/smartchef/smartchef/internal/types"
)

// MockLLMService is a mock implementation of the relay LLM service
type MockLLMService struct {
	mock.Mock
}

// GenerateRecipeDetails mocks the GenerateRecipeDetails method
func (m *MockLLMService) GenerateRecipeDetails(ctx context.Context, recipeName string, ingredients types.IngredientList) (json.RawMessage, error) {
	args := m.Called(ctx, recipeName, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockDetailsCache is a mock implementation of the details cache
type MockDetailsCache struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockDetailsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

// Set mocks the Set method
func (m *MockDetailsCache) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
