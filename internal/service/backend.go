package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smartchef/smartchef/internal/types"
)

// DefaultBackendTimeout covers a cold start of the hosted backend.
const DefaultBackendTimeout = 90 * time.Second

// BackendClient talks to the recipe backend. It never retries; callers decide.
type BackendClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// ClientOption configures the HTTP clients in this package
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *zap.Logger
	timeout    time.Duration
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithTimeout overrides the default request timeout. Ignored with WithHTTPClient.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.timeout = d }
}

// WithLogger sets the logger used for request failures
func WithLogger(l *zap.Logger) ClientOption {
	return func(o *clientOptions) { o.logger = l }
}

func buildOptions(timeout time.Duration, opts []ClientOption) clientOptions {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout > 0 {
		timeout = o.timeout
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: timeout}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// NewBackendClient creates a client for the backend rooted at baseURL
func NewBackendClient(baseURL string, opts ...ClientOption) *BackendClient {
	o := buildOptions(DefaultBackendTimeout, opts)
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  o.httpClient,
		logger:  o.logger,
	}
}

// GetIngredients fetches the ingredient catalog
func (c *BackendClient) GetIngredients(ctx context.Context) ([]string, error) {
	var resp types.IngredientsResponse
	if err := c.do(ctx, http.MethodGet, "/api/ingredients", nil, &resp, "failed to fetch ingredients"); err != nil {
		return nil, err
	}
	if resp.Ingredients == nil {
		return []string{}, nil
	}
	return resp.Ingredients, nil
}

// MatchRecipes asks the backend to rank recipes by TF-IDF relevance. The result
// order is the server's.
func (c *BackendClient) MatchRecipes(ctx context.Context, ingredients []string) ([]types.RecipeMatch, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	var resp types.MatchResponse
	req := types.MatchRequest{Ingredients: ingredients}
	if err := c.do(ctx, http.MethodPost, "/api/recipes/match?sort=tfidf", req, &resp, "failed to match recipes"); err != nil {
		return nil, err
	}
	if resp.Matches == nil {
		return []types.RecipeMatch{}, nil
	}
	return resp.Matches, nil
}

// GenerateInstructions asks the backend for cooking steps for one recipe
func (c *BackendClient) GenerateInstructions(ctx context.Context, recipeID, recipeName string, ingredients []string) ([]string, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	req := types.GenerateInstructionsRequest{
		RecipeID:    recipeID,
		RecipeName:  recipeName,
		Ingredients: ingredients,
	}
	var resp types.GenerateInstructionsResponse
	if err := c.do(ctx, http.MethodPost, "/api/generate-instructions", req, &resp, "failed to generate instructions"); err != nil {
		return nil, err
	}
	return resp.Instructions, nil
}

// Ping checks that the backend answers. Any 2xx from the ingredient
// catalog counts as awake.
func (c *BackendClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ingredients", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "backend not ready", StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

func (c *BackendClient) do(ctx context.Context, method, path string, body, out any, op string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
