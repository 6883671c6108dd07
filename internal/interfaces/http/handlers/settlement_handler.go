package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/response"
	"github.com/devbyteai/BetStack-sub001/internal/usecases"
)

type settlementService interface {
	DebitStake(ctx context.Context, userID uuid.UUID, amount, source string) (uuid.UUID, error)
	CreditWin(ctx context.Context, userID uuid.UUID, amount string) (uuid.UUID, error)
	CreditCashout(ctx context.Context, userID uuid.UUID, amount string) (uuid.UUID, error)
	AccrueWagering(ctx context.Context, userID uuid.UUID, stake string) error
}

// SettlementHandler exposes the internal settlement contract consumed by the
// bet engine. These routes sit behind the service role, not end users.
type SettlementHandler struct {
	bettingUsecase settlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(bettingUsecase *usecases.BettingUsecase) *SettlementHandler {
	return &SettlementHandler{bettingUsecase: bettingUsecase}
}

type settlementInput struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Amount string    `json:"amount" binding:"required"`
	Source string    `json:"source"`
}

// DebitStake debits a stake from the main or bonus balance
// POST /internal/v1/settlement/stake
func (h *SettlementHandler) DebitStake(c *gin.Context) {
	var input settlementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if input.Source == "" {
		input.Source = usecases.StakeSourceMain
	}

	txID, err := h.bettingUsecase.DebitStake(c.Request.Context(), input.UserID, input.Amount, input.Source)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Stakes from the main balance count toward active bonus wagering.
	if input.Source == usecases.StakeSourceMain {
		if err := h.bettingUsecase.AccrueWagering(c.Request.Context(), input.UserID, input.Amount); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Success(c, http.StatusCreated, gin.H{"transactionId": txID})
}

// CreditWin credits a settled win
// POST /internal/v1/settlement/win
func (h *SettlementHandler) CreditWin(c *gin.Context) {
	var input settlementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	txID, err := h.bettingUsecase.CreditWin(c.Request.Context(), input.UserID, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transactionId": txID})
}

// CreditCashout credits an early cashout
// POST /internal/v1/settlement/cashout
func (h *SettlementHandler) CreditCashout(c *gin.Context) {
	var input settlementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	txID, err := h.bettingUsecase.CreditCashout(c.Request.Context(), input.UserID, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transactionId": txID})
}
