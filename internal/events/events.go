// Package events fans ledger events out to the configured sinks.
package events

import (
	"context"
	"errors"
	"sync"

	"github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"
)

type Publisher interface {
	Publish(ctx context.Context, event models.LedgerEvent) error
}

// Fanout forwards every event to all publishers and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event models.LedgerEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, models.LedgerEvent) error {
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []models.LedgerEvent
}

func NewRecorder() *Recorder {
	return &Recorder{events: make([]models.LedgerEvent, 0)}
}

func (r *Recorder) Publish(_ context.Context, event models.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []models.LedgerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]models.LedgerEvent, len(r.events))
	copy(copied, r.events)
	return copied
}

var (
	_ Publisher = Fanout(nil)
	_ Publisher = Nop{}
	_ Publisher = (*Recorder)(nil)
)
