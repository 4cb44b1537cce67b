package admin

import (
	"context"
)

// Repository defines the admin account persistence operations
type Repository interface {
	// Create persists a new admin account
	Create(ctx context.Context, a *Admin) error

	// FindByEmail fetches an admin by email, ErrAdminNotFound when absent
	FindByEmail(ctx context.Context, email string) (*Admin, error)
}
