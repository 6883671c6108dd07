package usecases

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/pkg/money"
)

// Balance mutation helpers. They operate on the in-memory wallet entity; the
// caller persists the result with UpdateBalances inside the same lock scope
// and pairs every mutation with exactly one ledger row.

func creditBalance(w *entities.Wallet, amount money.Amount) (before, after string, err error) {
	cur, err := money.Parse(w.Balance)
	if err != nil {
		return "", "", err
	}
	before = cur.String()
	next := cur.Add(amount)
	w.Balance = next.String()
	return before, w.Balance, nil
}

func debitBalance(w *entities.Wallet, amount money.Amount) (before, after string, err error) {
	cur, err := money.Parse(w.Balance)
	if err != nil {
		return "", "", err
	}
	if cur.LessThan(amount) {
		return "", "", domainerrors.ErrInsufficientFunds
	}
	before = cur.String()
	next := cur.Sub(amount)
	w.Balance = next.String()
	return before, w.Balance, nil
}

func creditBonusBalance(w *entities.Wallet, amount money.Amount) (before, after string, err error) {
	cur, err := money.Parse(w.BonusBalance)
	if err != nil {
		return "", "", err
	}
	before = cur.String()
	next := cur.Add(amount)
	w.BonusBalance = next.String()
	return before, w.BonusBalance, nil
}

func debitBonusBalance(w *entities.Wallet, amount money.Amount) (before, after string, err error) {
	cur, err := money.Parse(w.BonusBalance)
	if err != nil {
		return "", "", err
	}
	if cur.LessThan(amount) {
		return "", "", domainerrors.ErrInsufficientBonus
	}
	before = cur.String()
	next := cur.Sub(amount)
	w.BonusBalance = next.String()
	return before, w.BonusBalance, nil
}

// moveBonusToMain moves amount from bonus balance into main balance. Both
// mutations happen on the entity; the caller persists them in one write.
func moveBonusToMain(w *entities.Wallet, amount money.Amount) error {
	if _, _, err := debitBonusBalance(w, amount); err != nil {
		return err
	}
	_, _, err := creditBalance(w, amount)
	return err
}

// newLedgerEntry builds a transaction row. balance_after must equal
// balance_before + amount; the helper recomputes it rather than trusting the
// caller.
func newLedgerEntry(userID, walletID uuid.UUID, txType entities.TransactionType, amount money.Amount, balanceBefore string, status entities.TransactionStatus) (*entities.Transaction, error) {
	before, err := money.Parse(balanceBefore)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		WalletID:      walletID,
		Type:          txType,
		Amount:        amount.String(),
		BalanceBefore: before.String(),
		BalanceAfter:  before.Add(amount).String(),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// mergeMetadata merges patch into the transaction's JSON metadata without
// removing existing keys.
func mergeMetadata(existing null.String, patch map[string]interface{}) (null.String, error) {
	if len(patch) == 0 {
		return existing, nil
	}

	merged := map[string]interface{}{}
	if existing.Valid && existing.String != "" {
		if err := json.Unmarshal([]byte(existing.String), &merged); err != nil {
			return existing, err
		}
	}
	for k, v := range patch {
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return existing, err
	}
	return null.StringFrom(string(data)), nil
}
