package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/response"
	"github.com/devbyteai/BetStack-sub001/internal/usecases"
)

type callbackService interface {
	Process(ctx context.Context, payload *usecases.CallbackPayload) error
}

// CallbackHandler receives asynchronous settlement callbacks from payment
// providers.
type CallbackHandler struct {
	callbackUsecase callbackService
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(callbackUsecase *usecases.CallbackUsecase) *CallbackHandler {
	return &CallbackHandler{callbackUsecase: callbackUsecase}
}

// HandleProviderCallback settles a pending transaction from a provider
// notification. Replays of already-settled transactions return 200 so the
// provider stops retrying.
// POST /api/v1/callbacks/:provider
func (h *CallbackHandler) HandleProviderCallback(c *gin.Context) {
	var payload usecases.CallbackPayload

	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	payload.Provider = c.Param("provider")

	if err := h.callbackUsecase.Process(c.Request.Context(), &payload); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}
