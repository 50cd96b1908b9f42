package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventCustomerCreated EventKind = "customer_created"
	EventDeposit         EventKind = "deposit"
	EventWithdraw        EventKind = "withdraw"
	EventTransfer        EventKind = "transfer"
)

// LedgerEvent is emitted after a ledger mutation has been applied.
type LedgerEvent struct {
	ID               uuid.UUID       `json:"id"`
	Kind             EventKind       `json:"kind"`
	Customer         string          `json:"customer"`
	AccountID        int64           `json:"account_id"`
	Counterparty     string          `json:"counterparty,omitempty"`
	CounterAccountID int64           `json:"counter_account_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	OccurredAt       time.Time       `json:"occurred_at"`
}
