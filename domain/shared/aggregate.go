package shared

// AggregateRoot is the entry point of an aggregate. It owns the consistency
// boundary: every mutation goes through the root, and the root records the
// domain events those mutations produce.
type AggregateRoot interface {
	// ID returns the globally unique identity of the aggregate.
	ID() string

	// Version returns the current optimistic-lock version.
	Version() int

	// PullEvents returns and clears the events recorded since the aggregate
	// was created or loaded. The unit of work drains them into the outbox.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attribute values.
type Entity interface {
	ID() string
}
