package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rajgh7/surprisevista/internal/domain/order"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository implements order.Repository on PostgreSQL. Order lines
// are stored as a JSONB column, matching their value-object nature.
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *pgxpool.Pool) order.Repository {
	return &OrderRepository{db: db}
}

const orderColumns = "id, order_code, customer_name, email, phone, address, payment_method, items, total, status, created_at, updated_at"

// Create implements order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encoding order items: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO orders (id, order_code, customer_name, email, phone, address, payment_method, items, total, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.OrderCode, o.CustomerName, o.Email, o.Phone, o.Address, o.PaymentMethod,
		items, o.Total, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	return nil
}

// FindByID implements order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return r.scanOrder(row)
}

// FindByCode implements order.Repository.FindByCode; the lookup is
// case-insensitive since customers type codes by hand.
func (r *OrderRepository) FindByCode(ctx context.Context, code string) (*order.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE UPPER(order_code) = $1`, strings.ToUpper(code))
	return r.scanOrder(row)
}

// List implements order.Repository.List
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading order rows: %w", err)
	}
	return orders, nil
}

// UpdateStatus implements order.Repository.UpdateStatus
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Count implements order.Repository.Count
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var items []byte
	err := row.Scan(&o.ID, &o.OrderCode, &o.CustomerName, &o.Email, &o.Phone, &o.Address,
		&o.PaymentMethod, &items, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decoding order items: %w", err)
	}
	return &o, nil
}
