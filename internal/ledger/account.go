package ledger

import (
	"sync"
	"time"

	"github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account owns a balance and the log of transactions that produced it.
// The balance always equals the signed sum of the log.
type Account struct {
	id int64

	mu      sync.Mutex
	balance decimal.Decimal
	history []models.Transaction
	limit   int
}

func newAccount(id int64, limit int) *Account {
	return &Account{
		id:      id,
		balance: decimal.Zero,
		limit:   limit,
	}
}

func (a *Account) ID() int64 {
	return a.id
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// History returns a copy of the log in insertion order.
func (a *Account) History() []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.historyLocked()
}

func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fullLocked() {
		return a.balance, ErrHistoryFull
	}

	a.balance = a.balance.Add(amount)
	a.record(models.KindDeposit, amount, time.Now())

	return a.balance, nil
}

func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return a.balance, ErrInsufficientFunds
	}
	if a.fullLocked() {
		return a.balance, ErrHistoryFull
	}

	a.balance = a.balance.Sub(amount)
	a.record(models.KindWithdraw, amount, time.Now())

	return a.balance, nil
}

// Transfer moves amount to other. Both accounts are locked in ascending id
// order, so no observer sees one side change without the other.
// Only the sender's balance limits the transfer.
func (a *Account) Transfer(other *Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}
	if a == other {
		return decimal.Zero, ErrSameAccount
	}

	first, second := a, other
	if other.id < a.id {
		first, second = other, a
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return a.balance, ErrInsufficientFunds
	}
	if a.fullLocked() || other.fullLocked() {
		return a.balance, ErrHistoryFull
	}

	now := time.Now()
	a.balance = a.balance.Sub(amount)
	other.balance = other.balance.Add(amount)
	a.record(models.KindTransferOut, amount, now)
	other.record(models.KindTransferIn, amount, now)

	return a.balance, nil
}

// validAmount accepts positive amounts in whole cents.
func validAmount(amount decimal.Decimal) bool {
	return amount.Sign() > 0 && amount.Equal(amount.Truncate(2))
}

func (a *Account) snapshot() (decimal.Decimal, []models.Transaction) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance, a.historyLocked()
}

func (a *Account) historyLocked() []models.Transaction {
	out := make([]models.Transaction, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Account) fullLocked() bool {
	return a.limit > 0 && len(a.history) >= a.limit
}

func (a *Account) record(kind models.TransactionKind, amount decimal.Decimal, at time.Time) {
	a.history = append(a.history, models.Transaction{
		ID:        uuid.New(),
		Kind:      kind,
		Amount:    amount,
		CreatedAt: at,
	})
}
