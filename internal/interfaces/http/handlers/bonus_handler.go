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

type bonusService interface {
	ListBonuses(ctx context.Context) ([]*entities.Bonus, error)
	ListUserBonuses(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error)
	Claim(ctx context.Context, userID, bonusID uuid.UUID) (*entities.UserBonus, error)
	Withdraw(ctx context.Context, userID, userBonusID uuid.UUID) (*entities.Transaction, error)
}

// BonusHandler handles bonus catalog and claim endpoints
type BonusHandler struct {
	bonusUsecase bonusService
}

// NewBonusHandler creates a new bonus handler
func NewBonusHandler(bonusUsecase *usecases.BonusUsecase) *BonusHandler {
	return &BonusHandler{bonusUsecase: bonusUsecase}
}

// ListBonuses lists active catalog bonuses
// GET /api/v1/bonuses
func (h *BonusHandler) ListBonuses(c *gin.Context) {
	bonuses, err := h.bonusUsecase.ListBonuses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if bonuses == nil {
		bonuses = []*entities.Bonus{}
	}

	response.Success(c, http.StatusOK, gin.H{"bonuses": bonuses})
}

// ListUserBonuses lists the current user's claims
// GET /api/v1/bonuses/mine
func (h *BonusHandler) ListUserBonuses(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	claims, err := h.bonusUsecase.ListUserBonuses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if claims == nil {
		claims = []*entities.UserBonus{}
	}

	response.Success(c, http.StatusOK, gin.H{"userBonuses": claims})
}

// Claim claims a catalog bonus and credits the bonus balance
// POST /api/v1/bonuses/:id/claim
func (h *BonusHandler) Claim(c *gin.Context) {
	bonusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid bonus ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	claim, err := h.bonusUsecase.Claim(c.Request.Context(), userID, bonusID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":   "Bonus claimed",
		"userBonus": claim,
	})
}

// Withdraw releases a completed bonus into the main balance
// POST /api/v1/bonuses/claims/:id/withdraw
func (h *BonusHandler) Withdraw(c *gin.Context) {
	userBonusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user bonus ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	tx, err := h.bonusUsecase.Withdraw(c.Request.Context(), userID, userBonusID)
	if err != nil {
		response.Error(c, err)
		return
	}

	body := gin.H{"message": "Bonus released"}
	if tx != nil {
		body["transaction"] = tx
	}
	response.Success(c, http.StatusOK, body)
}
