package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit         TransactionType = "deposit"
	TransactionTypeWithdrawal      TransactionType = "withdrawal"
	TransactionTypeBet             TransactionType = "bet"
	TransactionTypeWin             TransactionType = "win"
	TransactionTypeBonus           TransactionType = "bonus"
	TransactionTypeBonusWithdrawal TransactionType = "bonus_withdrawal"
	TransactionTypeCashout         TransactionType = "cashout"
)

// TransactionStatus is the lifecycle state of a ledger entry. A transaction
// moves pending -> completed or pending -> failed exactly once; cancelled is
// reachable only from pending through explicit cancellation.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is one append-mostly ledger row. Amount is a signed 2-decimal
// string (debits negative). BalanceBefore/BalanceAfter snapshot the wallet
// balance under the same lock that mutated it, so
// BalanceAfter == BalanceBefore + Amount holds at write time.
type Transaction struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"userId"`
	WalletID        uuid.UUID         `json:"walletId"`
	Type            TransactionType   `json:"type"`
	Amount          string            `json:"amount"`
	BalanceBefore   string            `json:"balanceBefore"`
	BalanceAfter    string            `json:"balanceAfter"`
	Status          TransactionStatus `json:"status"`
	PaymentProvider null.String       `json:"paymentProvider,omitempty"`
	ExternalRef     null.String       `json:"externalRef,omitempty"`
	Metadata        null.String       `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// IsTerminal reports whether the transaction already reached a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status != TransactionStatusPending
}

// TransactionFilter narrows ledger history queries.
type TransactionFilter struct {
	Type   TransactionType
	Status TransactionStatus
	From   *time.Time
	To     *time.Time
}
