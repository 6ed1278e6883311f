package shared

import "context"

// UnitOfWork manages the transaction boundary and collects domain events
// from the aggregates touched inside it.
type UnitOfWork interface {
	// Execute runs fn inside a transaction. Repositories called with the
	// context passed to fn share that transaction. If fn returns an error
	// nothing is committed, including outbox events.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory creates one UnitOfWork per operation. UnitOfWork
// instances hold per-transaction state and must not be shared across
// concurrent requests.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events for asynchronous publishing.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
