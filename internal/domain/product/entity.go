package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("product name cannot be empty")
	ErrInvalidPrice = errors.New("product price must be greater than zero")
)

// Product is a catalog item sold on the storefront
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Tags        []string  `json:"tags"`
	Inventory   int       `json:"inventory"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary is the read-only projection handed to the dialogue layer.
// The dialogue engine only ever references products through it.
type Summary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
}

// NewProduct creates a new product with a generated ID and slug
func NewProduct(name, description string, price float64, category, image string, tags []string, inventory int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	return &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
		Price:       price,
		Category:    category,
		Image:       image,
		Tags:        tags,
		Inventory:   inventory,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Summarize projects the product into its dialogue-facing summary
func (p *Product) Summarize() Summary {
	return Summary{
		ID:       p.ID,
		Title:    p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
	}
}

// Slugify derives a URL-safe slug from a product name
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
