package catalog

import "context"

// ListFilter narrows a catalog listing. Zero values mean "no filter";
// pointer fields distinguish unset from false/zero.
type ListFilter struct {
	Brand      string
	MinPrice   *int64
	MaxPrice   *int64
	InStock    *bool
	IsFeatured *bool
	Search     string // matches name or slug, case-insensitive substring
	Page       int
	PageSize   int
}

// Repository persists Product aggregates.
//
// Save must be version-guarded for non-new aggregates: an update whose
// stored version no longer matches fails with ErrConcurrentModification.
type Repository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	NameExists(ctx context.Context, name string, excludeID string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, int64, error)
	Remove(ctx context.Context, id string) error
}
