package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit     TransactionKind = "Deposit"
	KindWithdraw    TransactionKind = "Withdraw"
	KindTransferOut TransactionKind = "Transfer Out"
	KindTransferIn  TransactionKind = "Transfer In"
)

// Credits reports whether the kind adds to the balance.
func (k TransactionKind) Credits() bool {
	return k == KindDeposit || k == KindTransferIn
}

// Transaction is one immutable record of a balance-affecting event.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Signed returns the amount with the sign it contributes to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind.Credits() {
		return t.Amount
	}
	return t.Amount.Neg()
}
