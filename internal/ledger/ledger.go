package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/IlyasAtabaev731/retail-ledger/internal/config"
	"github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPublisher receives an event after every applied mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event models.LedgerEvent) error
}

// Ledger is the customer directory. It resolves name and password to an
// account before delegating to it, and is safe for concurrent use.
type Ledger struct {
	log       *slog.Logger
	hasher    Hasher
	publisher EventPublisher
	ids       *Sequence

	maxCustomers int
	historyLimit int

	mu        sync.RWMutex
	customers map[string]*Customer
	order     []*Customer

	dummyOnce sync.Once
	dummyHash []byte
}

func New(log *slog.Logger, cfg config.Ledger, hasher Hasher, publisher EventPublisher) *Ledger {
	return &Ledger{
		log:          log,
		hasher:       hasher,
		publisher:    publisher,
		ids:          NewSequence(cfg.AccountIDBase),
		maxCustomers: cfg.MaxCustomers,
		historyLimit: cfg.HistoryLimit,
		customers:    make(map[string]*Customer),
	}
}

// CreateCustomer registers name with a fresh account and returns its id.
func (l *Ledger) CreateCustomer(ctx context.Context, name, password string) (int64, error) {
	const op = "ledger.CreateCustomer"

	log := l.log.With(slog.String("op", op), slog.String("customer", name))

	if name == "" || password == "" {
		return 0, ErrInvalidCustomer
	}

	l.mu.RLock()
	err := l.admissibleLocked(name)
	l.mu.RUnlock()
	if err != nil {
		log.Debug("customer rejected", "error", err)
		return 0, err
	}

	hash, err := l.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return 0, err
	}

	l.mu.Lock()
	if err := l.admissibleLocked(name); err != nil {
		l.mu.Unlock()
		log.Debug("customer rejected", "error", err)
		return 0, err
	}
	c := &Customer{
		name:    name,
		hash:    hash,
		hasher:  l.hasher,
		account: newAccount(l.ids.Next(), l.historyLimit),
	}
	l.customers[name] = c
	l.order = append(l.order, c)
	l.mu.Unlock()

	log.Info("customer created", slog.Int64("account_id", c.account.ID()))

	l.publish(ctx, models.LedgerEvent{
		Kind:      models.EventCustomerCreated,
		Customer:  name,
		AccountID: c.account.ID(),
		Amount:    decimal.Zero,
	})

	return c.account.ID(), nil
}

func (l *Ledger) Deposit(ctx context.Context, name string, amount decimal.Decimal, password string) (decimal.Decimal, error) {
	const op = "ledger.Deposit"

	log := l.log.With(slog.String("op", op), slog.String("customer", name))

	c, err := l.authenticate(name, password)
	if err != nil {
		log.Debug("deposit rejected", "error", err)
		return decimal.Zero, err
	}

	balance, err := c.account.Deposit(amount)
	if err != nil {
		log.Debug("deposit rejected", "error", err)
		return decimal.Zero, err
	}

	log.Info("deposit", slog.String("amount", amount.String()))

	l.publish(ctx, models.LedgerEvent{
		Kind:      models.EventDeposit,
		Customer:  name,
		AccountID: c.account.ID(),
		Amount:    amount,
	})

	return balance, nil
}

func (l *Ledger) Withdraw(ctx context.Context, name string, amount decimal.Decimal, password string) (decimal.Decimal, error) {
	const op = "ledger.Withdraw"

	log := l.log.With(slog.String("op", op), slog.String("customer", name))

	c, err := l.authenticate(name, password)
	if err != nil {
		log.Debug("withdraw rejected", "error", err)
		return decimal.Zero, err
	}

	balance, err := c.account.Withdraw(amount)
	if err != nil {
		log.Debug("withdraw rejected", "error", err)
		return decimal.Zero, err
	}

	log.Info("withdraw", slog.String("amount", amount.String()))

	l.publish(ctx, models.LedgerEvent{
		Kind:      models.EventWithdraw,
		Customer:  name,
		AccountID: c.account.ID(),
		Amount:    amount,
	})

	return balance, nil
}

// Transfer pushes amount from the sender to the receiver. Only the sender
// authenticates; the receiver is resolved after that so unauthenticated
// callers cannot probe for names.
func (l *Ledger) Transfer(ctx context.Context, from, password, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	const op = "ledger.Transfer"

	log := l.log.With(slog.String("op", op), slog.String("from", from), slog.String("to", to))

	sender, err := l.authenticate(from, password)
	if err != nil {
		log.Debug("transfer rejected", "error", err)
		return decimal.Zero, err
	}

	receiver, ok := l.lookup(to)
	if !ok {
		log.Debug("transfer rejected", "error", ErrCustomerNotFound)
		return decimal.Zero, ErrCustomerNotFound
	}

	balance, err := sender.account.Transfer(receiver.account, amount)
	if err != nil {
		log.Debug("transfer rejected", "error", err)
		return decimal.Zero, err
	}

	log.Info("transfer", slog.String("amount", amount.String()))

	l.publish(ctx, models.LedgerEvent{
		Kind:             models.EventTransfer,
		Customer:         from,
		AccountID:        sender.account.ID(),
		Counterparty:     to,
		CounterAccountID: receiver.account.ID(),
		Amount:           amount,
	})

	return balance, nil
}

// View authenticates and returns the customer's statement.
func (l *Ledger) View(ctx context.Context, name, password string) (models.Statement, error) {
	c, err := l.authenticate(name, password)
	if err != nil {
		l.log.Debug("view rejected", slog.String("customer", name), "error", err)
		return models.Statement{}, err
	}

	return c.Statement(), nil
}

// StatementOf returns the statement of an already authenticated customer,
// e.g. one identified by a signed session token.
func (l *Ledger) StatementOf(ctx context.Context, name string) (models.Statement, error) {
	c, ok := l.lookup(name)
	if !ok {
		return models.Statement{}, ErrCustomerNotFound
	}

	return c.Statement(), nil
}

// Len returns the number of registered customers.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.order)
}

// Customers returns customer names in registration order.
func (l *Ledger) Customers() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.order))
	for _, c := range l.order {
		names = append(names, c.name)
	}
	return names
}

func (l *Ledger) admissibleLocked(name string) error {
	if _, ok := l.customers[name]; ok {
		return ErrCustomerExists
	}
	if l.maxCustomers > 0 && len(l.order) >= l.maxCustomers {
		return ErrCustomerLimit
	}
	return nil
}

func (l *Ledger) lookup(name string) (*Customer, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.customers[name]
	return c, ok
}

func (l *Ledger) authenticate(name, password string) (*Customer, error) {
	c, ok := l.lookup(name)
	if !ok {
		// spend the same hashing time as a real comparison
		l.hasher.Compare(l.dummy(), password)
		return nil, ErrUnauthorized
	}
	if !c.Verify(password) {
		return nil, ErrUnauthorized
	}
	return c, nil
}

func (l *Ledger) dummy() []byte {
	l.dummyOnce.Do(func() {
		hash, err := l.hasher.Hash(uuid.NewString())
		if err != nil {
			l.log.Error("failed to build dummy hash", "error", err)
			return
		}
		l.dummyHash = hash
	})
	return l.dummyHash
}

func (l *Ledger) publish(ctx context.Context, event models.LedgerEvent) {
	if l.publisher == nil {
		return
	}

	event.ID = uuid.New()
	event.OccurredAt = time.Now()

	if err := l.publisher.Publish(ctx, event); err != nil {
		l.log.Warn("failed to publish ledger event",
			slog.String("kind", string(event.Kind)),
			slog.String("event_id", event.ID.String()),
			"error", err,
		)
	}
}

// IsClientError reports whether err is a rejection of the caller's input
// rather than an infrastructure failure.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount, ErrInsufficientFunds, ErrHistoryFull, ErrSameAccount,
		ErrInvalidCustomer, ErrCustomerExists, ErrCustomerLimit, ErrCustomerNotFound,
		ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
