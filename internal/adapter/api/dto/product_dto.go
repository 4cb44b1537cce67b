package dto

import (
	"github.com/rajgh7/surprisevista/internal/domain/product"
)

// ProductRequest creates or updates a catalog product
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Inventory   int      `json:"inventory"`
}

// ProductResponse is the product payload returned to clients
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Inventory   int      `json:"inventory"`
}

// ToProductResponse converts a domain product to its API shape
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Tags:        p.Tags,
		Inventory:   p.Inventory,
	}
}

// ToProductResponses converts a list of domain products
func ToProductResponses(products []*product.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
