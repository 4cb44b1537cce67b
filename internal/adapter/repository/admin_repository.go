package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rajgh7/surprisevista/internal/domain/admin"
)

var (
	ErrAdminNotFound       = errors.New("admin not found")
	ErrAdminDuplicateEmail = errors.New("admin with the same email already exists")
)

// AdminRepository implements admin.Repository on PostgreSQL
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository instance
func NewAdminRepository(db *pgxpool.Pool) admin.Repository {
	return &AdminRepository{db: db}
}

// Create implements admin.Repository.Create
func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admins (id, name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Name, strings.ToLower(a.Email), a.PasswordHash, a.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrAdminDuplicateEmail
		}
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}

// FindByEmail implements admin.Repository.FindByEmail
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	var a admin.Admin
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM admins WHERE email = $1`,
		strings.ToLower(email)).
		Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding admin: %w", err)
	}
	return &a, nil
}
