package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rajgh7/surprisevista/internal/domain/product"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductDuplicateSlug = errors.New("product with the same slug already exists")
)

// ProductRepository implements product.Repository on PostgreSQL
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{db: db}
}

const productColumns = "id, name, slug, description, price, category, image, tags, inventory, created_at, updated_at"

// Create implements product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (id, name, slug, description, price, category, image, tags, inventory, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.Category, p.Image, p.Tags, p.Inventory, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProductDuplicateSlug
		}
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// FindByID implements product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding product: %w", err)
	}
	return p, nil
}

// List implements product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Search implements product.Repository.Search. The query intersects the
// price range with a text OR tag match; newest first, stable tie-break
// on id for a given catalog snapshot.
func (r *ProductRepository) Search(ctx context.Context, filter product.Filter, limit int) ([]*product.Product, error) {
	conditions := []string{"price >= $1"}
	args := []interface{}{filter.MinPrice}

	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}

	var match []string
	for _, kw := range filter.Keywords {
		args = append(args, "%"+kw+"%")
		match = append(match, fmt.Sprintf("name ILIKE $%d OR description ILIKE $%d", len(args), len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		match = append(match, fmt.Sprintf("tags && $%d", len(args)))
	}
	if len(match) > 0 {
		conditions = append(conditions, "("+strings.Join(match, " OR ")+")")
	}

	args = append(args, limit)
	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY created_at DESC, id LIMIT $%d`,
		productColumns, strings.Join(conditions, " AND "), len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Update implements product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now()
	tag, err := r.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, slug = $3, description = $4, price = $5, category = $6,
		     image = $7, tags = $8, inventory = $9, updated_at = $10
		 WHERE id = $1`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.Category, p.Image, p.Tags, p.Inventory, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete implements product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Count implements product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Category,
		&p.Image, &p.Tags, &p.Inventory, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*product.Product, error) {
	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("reading product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading product rows: %w", err)
	}
	return products, nil
}
