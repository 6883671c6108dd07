package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/middleware"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/response"
	"github.com/devbyteai/BetStack-sub001/internal/usecases"
)

type paymentService interface {
	Deposit(ctx context.Context, userID uuid.UUID, amount, provider, phone string) (*entities.Transaction, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount, provider, phone, pin string) (*entities.Transaction, error)
}

// PaymentHandler handles deposit and withdrawal endpoints
type PaymentHandler struct {
	paymentUsecase paymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// Deposit initiates a deposit through a mobile money provider
// POST /api/v1/payments/deposit
func (h *PaymentHandler) Deposit(c *gin.Context) {
	var input struct {
		Amount   string `json:"amount" binding:"required"`
		Provider string `json:"provider" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.paymentUsecase.Deposit(c.Request.Context(), userID, input.Amount, input.Provider, input.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":     "Deposit initiated",
		"transaction": tx,
	})
}

// Withdraw initiates a withdrawal. The stake leaves the wallet immediately;
// a failed provider payout is refunded by the callback path.
// POST /api/v1/payments/withdraw
func (h *PaymentHandler) Withdraw(c *gin.Context) {
	var input struct {
		Amount   string `json:"amount" binding:"required"`
		Provider string `json:"provider" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Pin      string `json:"pin" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.paymentUsecase.Withdraw(c.Request.Context(), userID, input.Amount, input.Provider, input.Phone, input.Pin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":     "Withdrawal initiated",
		"transaction": tx,
	})
}
