package repository

import (
	"context"
	"errors"
	"math"

	"github.com/rajgh7/surprisevista/internal/domain/order"
	"github.com/rajgh7/surprisevista/internal/domain/product"
	"github.com/rajgh7/surprisevista/pkg/dialogue"
	"github.com/rajgh7/surprisevista/pkg/dialogue/intent"
)

// DialogueCatalog implements dialogue.Catalog over product.Repository,
// translating parsed intents into catalog filters and entities into
// read-only summaries.
type DialogueCatalog struct {
	products product.Repository
}

// NewDialogueCatalog creates the catalog adapter for the dialogue engine
func NewDialogueCatalog(products product.Repository) *DialogueCatalog {
	return &DialogueCatalog{products: products}
}

// Search implements dialogue.Catalog.Search
func (c *DialogueCatalog) Search(ctx context.Context, filter intent.Filter, limit int) ([]product.Summary, error) {
	pf := product.Filter{
		Keywords: filter.Keywords,
		Tags:     filter.Tags(),
		MinPrice: filter.MinPrice,
	}
	if !math.IsInf(filter.MaxPrice, 1) {
		pf.MaxPrice = filter.MaxPrice
	}

	items, err := c.products.Search(ctx, pf, limit)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// List implements dialogue.Catalog.List
func (c *DialogueCatalog) List(ctx context.Context, limit int) ([]product.Summary, error) {
	items, err := c.products.List(ctx, limit, 0)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// FindByID implements dialogue.Catalog.FindByID
func (c *DialogueCatalog) FindByID(ctx context.Context, id string) (*product.Summary, error) {
	p, err := c.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := p.Summarize()
	return &summary, nil
}

func summarize(items []*product.Product) []product.Summary {
	summaries := make([]product.Summary, 0, len(items))
	for _, p := range items {
		summaries = append(summaries, p.Summarize())
	}
	return summaries
}

// DialogueOrders implements dialogue.Orders over order.Repository,
// mapping the repository's not-found sentinel onto the engine's.
type DialogueOrders struct {
	orders order.Repository
}

// NewDialogueOrders creates the order adapter for the dialogue engine
func NewDialogueOrders(orders order.Repository) *DialogueOrders {
	return &DialogueOrders{orders: orders}
}

// Create implements dialogue.Orders.Create
func (a *DialogueOrders) Create(ctx context.Context, o *order.Order) error {
	return a.orders.Create(ctx, o)
}

// FindByCode implements dialogue.Orders.FindByCode
func (a *DialogueOrders) FindByCode(ctx context.Context, code string) (*order.Order, error) {
	o, err := a.orders.FindByCode(ctx, code)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, dialogue.ErrOrderNotFound
	}
	return o, err
}
