package usecases_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/usecases"
	"github.com/devbyteai/BetStack-sub001/pkg/logger"
)

type callbackFixture struct {
	walletRepo *MockWalletRepository
	txRepo     *MockTransactionRepository
	uow        *MockUnitOfWork
	publisher  *RecordingPublisher
	uc         *usecases.CallbackUsecase
}

func newCallbackFixture() *callbackFixture {
	logger.Init("development")
	f := &callbackFixture{
		walletRepo: new(MockWalletRepository),
		txRepo:     new(MockTransactionRepository),
		uow:        new(MockUnitOfWork),
		publisher:  &RecordingPublisher{},
	}
	f.uc = usecases.NewCallbackUsecase(f.walletRepo, f.txRepo, f.uow, f.publisher)
	return f
}

func pendingDeposit(userID, walletID uuid.UUID) *entities.Transaction {
	return &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		WalletID:      walletID,
		Type:          entities.TransactionTypeDeposit,
		Amount:        "50.00",
		BalanceBefore: "100.00",
		BalanceAfter:  "100.00",
		Status:        entities.TransactionStatusPending,
		ExternalRef:   null.StringFrom("ref-1"),
	}
}

func TestCallbackUsecase_DepositSuccess_CreditsWallet(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	tx := pendingDeposit(userID, walletID)
	wallet := &entities.Wallet{ID: walletID, UserID: userID, Balance: "100.00", BonusBalance: "0.00"}

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	f.txRepo.On("GetByID", ctx, tx.ID).Return(tx, nil).Once()
	f.walletRepo.On("GetByUserID", ctx, userID).Return(wallet, nil).Once()
	f.walletRepo.On("UpdateBalances", ctx, walletID, "150.00", "0.00").Return(nil).Once()
	f.txRepo.On("Update", ctx, tx).Return(true, nil).Once()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{
		TransactionID: tx.ID,
		Status:        usecases.CallbackStatusSuccess,
		Metadata:      map[string]interface{}{"providerRef": "MP-99"},
	})
	require.NoError(t, err)

	assert.Equal(t, entities.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, "100.00", tx.BalanceBefore)
	assert.Equal(t, "150.00", tx.BalanceAfter)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(tx.Metadata.String), &meta))
	assert.Equal(t, "MP-99", meta["providerRef"])

	assert.Len(t, f.publisher.Published(), 1)
	f.walletRepo.AssertExpectations(t)
}

func TestCallbackUsecase_Replay_IsNoop(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()
	tx := pendingDeposit(uuid.New(), uuid.New())
	tx.Status = entities.TransactionStatusCompleted

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	f.txRepo.On("GetByID", ctx, tx.ID).Return(tx, nil).Once()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{
		TransactionID: tx.ID,
		Status:        usecases.CallbackStatusSuccess,
	})
	require.NoError(t, err)

	assert.Empty(t, f.publisher.Published())
	f.walletRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	f.txRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCallbackUsecase_WithdrawalFailure_Refunds(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	tx := &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		WalletID:      walletID,
		Type:          entities.TransactionTypeWithdrawal,
		Amount:        "-40.00",
		BalanceBefore: "100.00",
		BalanceAfter:  "60.00",
		Status:        entities.TransactionStatusPending,
	}
	wallet := &entities.Wallet{ID: walletID, UserID: userID, Balance: "60.00", BonusBalance: "5.00"}

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	f.txRepo.On("GetByID", ctx, tx.ID).Return(tx, nil).Once()
	f.walletRepo.On("GetByUserID", ctx, userID).Return(wallet, nil).Once()
	f.walletRepo.On("UpdateBalances", ctx, walletID, "100.00", "5.00").Return(nil).Once()
	f.txRepo.On("Update", ctx, tx).Return(true, nil).Once()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{
		TransactionID: tx.ID,
		Status:        usecases.CallbackStatusFailed,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionStatusFailed, tx.Status)
	f.walletRepo.AssertExpectations(t)
}

func TestCallbackUsecase_WithdrawalSuccess_StatusOnly(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()
	tx := &entities.Transaction{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Type:   entities.TransactionTypeWithdrawal,
		Amount: "-40.00",
		Status: entities.TransactionStatusPending,
	}

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	f.txRepo.On("GetByID", ctx, tx.ID).Return(tx, nil).Once()
	f.txRepo.On("Update", ctx, tx).Return(true, nil).Once()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{
		TransactionID: tx.ID,
		Status:        usecases.CallbackStatusSuccess,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionStatusCompleted, tx.Status)
	f.walletRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestCallbackUsecase_DepositFailure_StatusOnly(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()
	tx := pendingDeposit(uuid.New(), uuid.New())

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	f.txRepo.On("GetByID", ctx, tx.ID).Return(tx, nil).Once()
	f.txRepo.On("Update", ctx, tx).Return(true, nil).Once()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{
		TransactionID: tx.ID,
		Status:        usecases.CallbackStatusFailed,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionStatusFailed, tx.Status)
	f.walletRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestCallbackUsecase_ResolveByExternalRef(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()
	tx := pendingDeposit(uuid.New(), uuid.New())

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	f.txRepo.On("GetByExternalRef", ctx, "ref-1").Return(tx, nil).Once()
	f.txRepo.On("Update", ctx, tx).Return(true, nil).Once()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{
		ExternalRef: "ref-1",
		Status:      usecases.CallbackStatusFailed,
	})
	require.NoError(t, err)
	f.txRepo.AssertExpectations(t)
}

func TestCallbackUsecase_InvalidPayload(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{Status: "unknown"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	err = f.uc.Process(ctx, &usecases.CallbackPayload{Status: usecases.CallbackStatusSuccess})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestCallbackUsecase_LostUpdateRace_NoPublish(t *testing.T) {
	f := newCallbackFixture()
	ctx := context.Background()
	tx := pendingDeposit(uuid.New(), uuid.New())

	f.uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("WithLock", ctx).Return(ctx).Once()
	f.txRepo.On("GetByID", ctx, tx.ID).Return(tx, nil).Once()
	f.txRepo.On("Update", ctx, tx).Return(false, nil).Once()

	err := f.uc.Process(ctx, &usecases.CallbackPayload{
		TransactionID: tx.ID,
		Status:        usecases.CallbackStatusFailed,
	})
	require.NoError(t, err)
	assert.Empty(t, f.publisher.Published())
}
