package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smartchef/smartchef/internal/types"
)

// DefaultDetailsTimeout bounds one relay round trip including generation.
const DefaultDetailsTimeout = 60 * time.Second

// DetailsClient calls the relay's generate-recipe-details endpoint.
type DetailsClient struct {
	url    string
	apiKey string
	client *http.Client
	logger *zap.Logger
}

// NewDetailsClient creates a client for the relay endpoint at url. apiKey is sent
// both as a bearer token and as the apikey header when set.
func NewDetailsClient(url, apiKey string, opts ...ClientOption) *DetailsClient {
	o := buildOptions(DefaultDetailsTimeout, opts)
	return &DetailsClient{
		url:    url,
		apiKey: apiKey,
		client: o.httpClient,
		logger: o.logger,
	}
}

// GenerateDetails asks the relay for generated details of one recipe
func (c *DetailsClient) GenerateDetails(ctx context.Context, recipeName string, ingredients []string) (*types.RecipeDetails, error) {
	if c.url == "" {
		return nil, errors.New("relay URL not configured")
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	data, err := json.Marshal(types.RecipeDetailsRequest{
		RecipeName:  recipeName,
		Ingredients: types.IngredientList(ingredients),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe details: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp types.ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		c.logger.Warn("relay request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("error", errResp.Error))
		return nil, &StatusError{
			Op:         "failed to generate recipe details",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    errResp.Error,
		}
	}

	var details types.RecipeDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to decode recipe details: %w", err)
	}
	return &details, nil
}
