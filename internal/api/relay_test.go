package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/smartchef/internal/mocks"
	"github.com/smartchef/smartchef/internal/service"
	"github.com/smartchef/smartchef/internal/types"
)

func setupRelay(llm service.LLMServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewRelayHandler(llm, nil).RegisterRoutes(router)
	return router
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestGenerateRecipeDetails_Success(t *testing.T) {
	llm := new(mocks.MockLLMService)
	llm.On("GenerateRecipeDetails", mock.Anything, "Soup", types.IngredientList{"carrot", "onion"}).
		Return(json.RawMessage(`{"description":"Warm","servings":2}`), nil)

	router := setupRelay(llm)
	for _, path := range []string{"/generate-recipe-details", "/functions/v1/generate-recipe-details"} {
		w := post(router, path, `{"recipeName":"Soup","ingredients":["carrot","onion"]}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"description":"Warm","servings":2}`, w.Body.String())
	}
	llm.AssertNumberOfCalls(t, "GenerateRecipeDetails", 2)
}

func TestGenerateRecipeDetails_StringIngredients(t *testing.T) {
	llm := new(mocks.MockLLMService)
	llm.On("GenerateRecipeDetails", mock.Anything, "Soup", types.IngredientList{"carrot, onion"}).
		Return(json.RawMessage(`{}`), nil)

	w := post(setupRelay(llm), "/generate-recipe-details", `{"recipeName":"Soup","ingredients":"carrot, onion"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	llm.AssertExpectations(t)
}

func TestGenerateRecipeDetails_MissingInput(t *testing.T) {
	llm := new(mocks.MockLLMService)
	router := setupRelay(llm)

	for _, body := range []string{
		`{"ingredients":["carrot"]}`,
		`{"recipeName":"","ingredients":["carrot"]}`,
		`{"recipeName":"Soup"}`,
		`{"recipeName":"Soup","ingredients":""}`,
		`{"recipeName":"Soup","ingredients":null}`,
	} {
		w := post(router, "/generate-recipe-details", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, MsgMissingInput, errorBody(t, w), body)
	}
	llm.AssertNotCalled(t, "GenerateRecipeDetails", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateRecipeDetails_EmptyArrayIsPresent(t *testing.T) {
	llm := new(mocks.MockLLMService)
	llm.On("GenerateRecipeDetails", mock.Anything, "Soup", types.IngredientList{}).
		Return(json.RawMessage(`{}`), nil)

	w := post(setupRelay(llm), "/generate-recipe-details", `{"recipeName":"Soup","ingredients":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateRecipeDetails_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"rate limited", service.ErrRateLimited, http.StatusTooManyRequests, MsgRateLimited},
		{"payment", service.ErrPaymentRequired, http.StatusPaymentRequired, MsgPaymentRequired},
		{"no content", service.ErrNoContent, http.StatusInternalServerError, "no content in AI response"},
		{"missing key", service.ErrMissingAPIKey, http.StatusInternalServerError, "GATEWAY_API_KEY not configured"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := new(mocks.MockLLMService)
			llm.On("GenerateRecipeDetails", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := post(setupRelay(llm), "/generate-recipe-details", `{"recipeName":"Soup","ingredients":["carrot"]}`)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, errorBody(t, w))
		})
	}
}

func TestGenerateRecipeDetails_MalformedBody(t *testing.T) {
	llm := new(mocks.MockLLMService)
	w := post(setupRelay(llm), "/generate-recipe-details", `{not json`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, errorBody(t, w))
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", NewHealthHandler(nil).HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
