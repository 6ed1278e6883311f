package order

import "context"

// ListFilter narrows an order listing. Status empty or "all" means no
// status filter; Search matches customer name, phone or email.
type ListFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// Repository persists Order aggregates. Orders are never deleted.
//
// Save must be version-guarded for non-new aggregates, failing with
// ErrConcurrentModification when the stored version no longer matches.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)
}
