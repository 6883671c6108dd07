package usecases

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/pkg/money"
)

func testWallet() *entities.Wallet {
	return &entities.Wallet{ID: uuid.New(), UserID: uuid.New(), Balance: "100.00", BonusBalance: "50.00"}
}

func TestBalanceHelpers(t *testing.T) {
	w := testWallet()

	before, after, err := creditBalance(w, money.MustParse("25.50"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", before)
	assert.Equal(t, "125.50", after)
	assert.Equal(t, "125.50", w.Balance)

	before, after, err = debitBalance(w, money.MustParse("125.50"))
	require.NoError(t, err)
	assert.Equal(t, "125.50", before)
	assert.Equal(t, "0.00", after)

	_, _, err = debitBalance(w, money.MustParse("0.01"))
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
	assert.Equal(t, "0.00", w.Balance, "failed debit must not mutate")
}

func TestBonusBalanceHelpers(t *testing.T) {
	w := testWallet()

	_, after, err := creditBonusBalance(w, money.MustParse("10.00"))
	require.NoError(t, err)
	assert.Equal(t, "60.00", after)

	_, _, err = debitBonusBalance(w, money.MustParse("100.00"))
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientBonus)

	require.NoError(t, moveBonusToMain(w, money.MustParse("60.00")))
	assert.Equal(t, "0.00", w.BonusBalance)
	assert.Equal(t, "160.00", w.Balance)

	err = moveBonusToMain(w, money.MustParse("0.01"))
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientBonus)
}

func TestNewLedgerEntry_RecomputesBalanceAfter(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()

	entry, err := newLedgerEntry(userID, walletID, entities.TransactionTypeWin, money.MustParse("30.00"), "70.00", entities.TransactionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "30.00", entry.Amount)
	assert.Equal(t, "70.00", entry.BalanceBefore)
	assert.Equal(t, "100.00", entry.BalanceAfter)
	assert.NotEqual(t, uuid.Nil, entry.ID)

	debit, err := newLedgerEntry(userID, walletID, entities.TransactionTypeBet, money.MustParse("30.00").Neg(), "70.00", entities.TransactionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "-30.00", debit.Amount)
	assert.Equal(t, "40.00", debit.BalanceAfter)

	_, err = newLedgerEntry(userID, walletID, entities.TransactionTypeWin, money.MustParse("1.00"), "garbage", entities.TransactionStatusCompleted)
	assert.Error(t, err)
}

func TestMergeMetadata(t *testing.T) {
	merged, err := mergeMetadata(null.String{}, map[string]interface{}{"a": "1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1"}`, merged.String)

	merged, err = mergeMetadata(merged, map[string]interface{}{"b": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1","b":2}`, merged.String)

	// Existing keys survive; empty patches change nothing.
	unchanged, err := mergeMetadata(merged, nil)
	require.NoError(t, err)
	assert.Equal(t, merged, unchanged)

	_, err = mergeMetadata(null.StringFrom("{broken"), map[string]interface{}{"a": 1})
	assert.Error(t, err)
}
