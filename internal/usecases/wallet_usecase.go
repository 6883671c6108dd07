package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/devbyteai/BetStack-sub001/internal/domain/repositories"
	"github.com/devbyteai/BetStack-sub001/pkg/utils"
)

// WalletUsecase serves read paths: balance display and ledger history.
type WalletUsecase struct {
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	currency        string
}

// NewWalletUsecase creates a new wallet usecase.
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	currency string,
) *WalletUsecase {
	return &WalletUsecase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		currency:        currency,
	}
}

// GetBalance returns the user's wallet, lazily creating a zero wallet on
// first touch. Display read, no lock.
func (u *WalletUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return u.walletRepo.GetOrCreate(ctx, userID, u.currency)
}

// GetHistory returns the user's ledger rows, newest first.
func (u *WalletUsecase) GetHistory(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)

	txs, total, err := u.transactionRepo.ListByUser(ctx, userID, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	return txs, utils.CalculateMeta(total, params.Page, params.Limit), nil
}
