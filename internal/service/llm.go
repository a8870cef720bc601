package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smartchef/smartchef/config"
	"github.com/smartchef/smartchef/internal/metrics"
	"github.com/smartchef/smartchef/internal/types"
)

const systemPrompt = "You are a professional chef assistant. Generate accurate, detailed recipe information in JSON format only."

const detailsPromptTemplate = `Generate detailed recipe information for "%s" using these ingredients: %s.

Return a JSON object with:
- description (2-3 sentences about the dish)
- cuisine (the type of cuisine, e.g., Italian, Indian, American)
- prep_time_minutes (realistic prep time as a number)
- cook_time_minutes (realistic cook time as a number)
- servings (number of servings as a number)
- difficulty (one of: Easy, Medium, Hard)
- instructions (array of detailed step-by-step cooking instructions, 5-8 steps)
- equipment (array of kitchen equipment needed, like "Pan", "Knife", "Bowl")
- chef_tips (array of 2-3 helpful cooking tips)

Important:
- Use US customary measurements (cups, tbsp, tsp, oz, lb)
- Instructions must be detailed and suitable for both beginners and experienced cooks
- Times should be realistic
- Return ONLY valid JSON, no markdown or extra text`

// maxLoggedBody caps how much of a failed gateway reply ends up in the logs
const maxLoggedBody = 512

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the chat-completion gateway
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService handles interactions with the chat-completion gateway
type LLMService struct {
	apiKey  string
	apiURL  string
	model   string
	client  *http.Client
	cache   DetailsCache
	metrics *metrics.MetricsCollector
	logger  *zap.Logger
}

// NewLLMService creates a new LLMService instance. cache and collector may be nil.
func NewLLMService(cfg *config.Config, cache DetailsCache, collector *metrics.MetricsCollector, logger *zap.Logger) *LLMService {
	if logger == nil {
		logger = zap.NewNop()
	}
	apiURL := cfg.GatewayURL
	if apiURL == "" {
		apiURL = config.DefaultGatewayURL
	}
	model := cfg.GatewayModel
	if model == "" {
		model = config.DefaultGatewayModel
	}
	timeout := cfg.GatewayTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &LLMService{
		apiKey:  cfg.GatewayAPIKey,
		apiURL:  apiURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
		metrics: collector,
		logger:  logger,
	}
}

// BuildPrompt renders the user prompt for one recipe
func BuildPrompt(recipeName string, ingredients types.IngredientList) string {
	return fmt.Sprintf(detailsPromptTemplate, recipeName, ingredients.Join())
}

// CacheKey identifies a details reply by recipe name and ingredient list.
func CacheKey(recipeName string, ingredients types.IngredientList) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(recipeName)) + "\n" + ingredients.Join()))
	return hex.EncodeToString(sum[:])
}

// GenerateRecipeDetails asks the gateway for recipe details and returns the
// cleaned JSON value as the model produced it.
func (s *LLMService) GenerateRecipeDetails(ctx context.Context, recipeName string, ingredients types.IngredientList) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	key := CacheKey(recipeName, ingredients)
	if cached, ok := s.cachedDetails(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	content, err := s.complete(ctx, BuildPrompt(recipeName, ingredients))
	s.metrics.GatewayRequest(outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(CleanContent(content))); err != nil {
		s.logger.Warn("unparseable recipe details", zap.String("recipe", recipeName), zap.Error(err))
		return nil, fmt.Errorf("failed to parse recipe details: %w", err)
	}
	details := json.RawMessage(buf.Bytes())

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, details); err != nil {
			s.logger.Warn("failed to cache recipe details", zap.Error(err))
		}
	}
	return details, nil
}

func (s *LLMService) cachedDetails(ctx context.Context, key string) (json.RawMessage, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("details cache lookup failed", zap.Error(err))
		return nil, false
	}
	s.metrics.CacheLookup(ok)
	if !ok {
		return nil, false
	}
	return json.RawMessage(data), true
}

// complete sends one prompt and returns the raw message content.
func (s *LLMService) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("gateway request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), maxLoggedBody)))
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", ErrRateLimited
		case http.StatusPaymentRequired:
			return "", ErrPaymentRequired
		}
		return "", &StatusError{Op: "AI Gateway error", StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var result completionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", ErrNoContent
	}

	return result.Choices[0].Message.Content, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, ErrPaymentRequired):
		return metrics.OutcomePaymentRequired
	}
	return metrics.OutcomeError
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
