package product

import (
	"context"
)

// Filter narrows a catalog search. Zero values mean "no constraint";
// MaxPrice <= 0 is treated as unbounded.
type Filter struct {
	Keywords []string
	Tags     []string
	MinPrice float64
	MaxPrice float64
}

// Repository defines the catalog persistence operations
type Repository interface {
	// Create persists a new product
	Create(ctx context.Context, p *Product) error

	// FindByID fetches a product by its ID, ErrProductNotFound when absent
	FindByID(ctx context.Context, id string) (*Product, error)

	// List returns the newest products first, paginated
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Search returns up to limit products matching the filter, newest first.
	// An empty result is not an error.
	Search(ctx context.Context, filter Filter, limit int) ([]*Product, error)

	// Update replaces an existing product
	Update(ctx context.Context, p *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id string) error

	// Count returns the total number of products
	Count(ctx context.Context) (int, error)
}
