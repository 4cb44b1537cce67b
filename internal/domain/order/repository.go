package order

import (
	"context"
)

// Repository defines the order persistence operations
type Repository interface {
	// Create persists a new order
	Create(ctx context.Context, o *Order) error

	// FindByID fetches an order by its internal ID
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByCode fetches an order by its customer-facing code,
	// ErrOrderNotFound when no order carries the code
	FindByCode(ctx context.Context, code string) (*Order, error)

	// List returns orders newest first, paginated
	List(ctx context.Context, limit, offset int) ([]*Order, error)

	// UpdateStatus moves an order to a new fulfilment status
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Count returns the total number of orders
	Count(ctx context.Context) (int, error)
}
