package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/internal/service"
	"github.com/smartchef/smartchef/internal/types"
)

// Relay error messages
const (
	MsgMissingInput    = "Recipe name and ingredients are required"
	MsgRateLimited     = "Rate limit exceeded. Please try again later."
	MsgPaymentRequired = "Payment required. Please add credits to your workspace."
)

// RelayHandler serves the generate-recipe-details endpoint
type RelayHandler struct {
	llm    service.LLMServiceInterface
	logger *zap.Logger
}

// NewRelayHandler creates a new RelayHandler instance
func NewRelayHandler(llm service.LLMServiceInterface, logger *zap.Logger) *RelayHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelayHandler{llm: llm, logger: logger}
}

// RegisterRoutes registers the relay under its bare path and the functions/v1 path
func (h *RelayHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/generate-recipe-details", h.GenerateRecipeDetails)
	router.POST("/functions/v1/generate-recipe-details", h.GenerateRecipeDetails)
}

// GenerateRecipeDetails forwards one recipe to the gateway and returns the parsed reply
func (h *RelayHandler) GenerateRecipeDetails(c *gin.Context) {
	var req types.RecipeDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	if req.RecipeName == "" || req.Ingredients == nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: MsgMissingInput})
		return
	}

	details, err := h.llm.GenerateRecipeDetails(c.Request.Context(), req.RecipeName, req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			h.fail(c, http.StatusTooManyRequests, MsgRateLimited, err)
		case errors.Is(err, service.ErrPaymentRequired):
			h.fail(c, http.StatusPaymentRequired, MsgPaymentRequired, err)
		default:
			h.fail(c, http.StatusInternalServerError, err.Error(), err)
		}
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *RelayHandler) fail(c *gin.Context, status int, message string, err error) {
	_ = c.Error(err)
	h.logger.Error("error generating recipe details",
		zap.Int("status", status),
		zap.Error(err))
	c.JSON(status, types.ErrorResponse{Error: message})
}
