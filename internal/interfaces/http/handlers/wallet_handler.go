package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/middleware"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/response"
	"github.com/devbyteai/BetStack-sub001/internal/usecases"
	"github.com/devbyteai/BetStack-sub001/pkg/utils"
)

type walletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetHistory(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetBalance returns the current user's wallet balances
// GET /api/v1/wallet/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	wallet, err := h.walletUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"balance":      wallet.Balance,
		"bonusBalance": wallet.BonusBalance,
		"currency":     wallet.Currency,
	})
}

// GetHistory lists the current user's ledger entries, newest first
// GET /api/v1/wallet/transactions
func (h *WalletHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := entities.TransactionFilter{
		Type:   entities.TransactionType(c.Query("type")),
		Status: entities.TransactionStatus(c.Query("status")),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}

	transactions, meta, err := h.walletUsecase.GetHistory(c.Request.Context(), userID, filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	if transactions == nil {
		transactions = []*entities.Transaction{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": transactions,
		"meta":         meta,
	})
}
