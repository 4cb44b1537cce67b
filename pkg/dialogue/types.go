// Package dialogue implements the conversational commerce engine: a
// per-session state machine that turns free-text turns into catalog
// search, ordinal product selection, cart mutation and a multi-step
// checkout. It is channel-agnostic; the HTTP chat endpoint and the
// messaging webhook both feed it the same normalized events.
package dialogue

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajgh7/surprisevista/internal/domain/order"
	"github.com/rajgh7/surprisevista/internal/domain/product"
	"github.com/rajgh7/surprisevista/pkg/dialogue/intent"
)

// Event is one normalized inbound message, whichever channel it came from
type Event struct {
	SessionID string
	UserID    string
	Text      string
}

// Reply is the engine's channel-neutral answer to one turn
type Reply struct {
	Text        string            `json:"reply"`
	SessionID   string            `json:"sessionId"`
	Products    []product.Summary `json:"products,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	CartCount   int               `json:"cartCount"`
	OrderCode   string            `json:"orderCode,omitempty"`
}

// Catalog is the product lookup collaborator consumed by the engine
type Catalog interface {
	// Search returns up to limit summaries matching the parsed intent,
	// newest first. Empty means "no results", never an error.
	Search(ctx context.Context, filter intent.Filter, limit int) ([]product.Summary, error)

	// List returns an unfiltered bounded catalog slice, newest first
	List(ctx context.Context, limit int) ([]product.Summary, error)

	// FindByID resolves a single product summary
	FindByID(ctx context.Context, id string) (*product.Summary, error)
}

// Orders is the order-store collaborator consumed by the engine
type Orders interface {
	Create(ctx context.Context, o *order.Order) error
	FindByCode(ctx context.Context, code string) (*order.Order, error)
}

// Completer is the opaque generative-text collaborator. Callers bound it
// with a context deadline.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Notifier receives best-effort order-placed notifications. Failures are
// logged, never propagated.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *order.Order) error
}

// ValidationError reports a missing checkout field at confirmation time
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing checkout field: %s", e.Field)
}

// withRetry runs fn, retrying exactly once on failure. A not-found
// result is definitive and returned without a second call.
func withRetry(fn func() error) error {
	err := fn()
	if err == nil || errors.Is(err, ErrOrderNotFound) {
		return err
	}
	return fn()
}
