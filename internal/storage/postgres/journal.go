package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"
	_ "github.com/lib/pq"
)

// Journal mirrors ledger events into the ledger_events table.
// It is write-only: ledger state is never rebuilt from it.
type Journal struct {
	db *sql.DB
}

func New(dbUrl string) (*Journal, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Stop() error {
	return j.db.Close()
}

func (j *Journal) Publish(ctx context.Context, event models.LedgerEvent) error {
	return j.SaveEvent(ctx, event)
}

func (j *Journal) SaveEvent(ctx context.Context, event models.LedgerEvent) error {
	const op = "storage.postgres.SaveEvent"

	const query = `INSERT INTO ledger_events
	(id, kind, customer, account_id, counterparty, counter_account_id, amount, occurred_at)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, 0), $7, $8)`

	_, err := j.db.ExecContext(ctx, query,
		event.ID,
		string(event.Kind),
		event.Customer,
		event.AccountID,
		event.Counterparty,
		event.CounterAccountID,
		event.Amount,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
