package memory

import (
	"context"
	"sync"

	"storefront/domain/shared"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per operation and keeps
// the outbox event log they all feed, so tests can read back events from
// concurrent operations in one place.
type UnitOfWorkFactory struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewUnitOfWorkFactory() *UnitOfWorkFactory {
	return &UnitOfWorkFactory{}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return &UnitOfWork{sink: f}
}

func (f *UnitOfWorkFactory) record(events []shared.DomainEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
}

// Events returns every event recorded so far.
func (f *UnitOfWorkFactory) Events() []shared.DomainEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]shared.DomainEvent, len(f.events))
	copy(events, f.events)
	return events
}

// UnitOfWork executes business logic without real transactions. Events
// pulled from registered aggregates are logged and recorded on the
// factory's shared log. An instance carries one operation's registrations;
// obtain one per operation from UnitOfWorkFactory.
type UnitOfWork struct {
	mu         sync.Mutex
	sink       *UnitOfWorkFactory
	aggregates []shared.AggregateRoot
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}

	u.mu.Lock()
	var events []shared.DomainEvent
	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			events = append(events, event)
			logger.Info("Outbox event recorded",
				zap.String("event_type", event.EventName()),
				zap.String("aggregate_id", event.GetAggregateID()),
			)
		}
	}
	u.aggregates = u.aggregates[:0]
	u.mu.Unlock()

	u.sink.record(events)
	return nil
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
