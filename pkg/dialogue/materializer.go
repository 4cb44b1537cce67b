package dialogue

import (
	"context"
	"strings"
	"time"

	"github.com/rajgh7/surprisevista/internal/domain/order"
	"github.com/rajgh7/surprisevista/internal/domain/session"
	"github.com/rajgh7/surprisevista/pkg/logger"
)

// Materializer converts a session's cart and collected checkout fields
// into a persisted order. This is the one point where checkout fields
// are actually validated.
type Materializer struct {
	orders   Orders
	notifier Notifier
	logger   logger.Logger
}

// NewMaterializer creates a Materializer over the order collaborator
func NewMaterializer(orders Orders, notifier Notifier, log logger.Logger) *Materializer {
	return &Materializer{orders: orders, notifier: notifier, logger: log}
}

// Place validates the checkout draft, persists the order (one retry) and
// fires the order-placed notification. Notification failures are logged
// and never roll back order creation. Place does not mutate the session;
// the caller resets it only after success.
func (m *Materializer) Place(ctx context.Context, sess *session.Session) (*order.Order, error) {
	if strings.TrimSpace(sess.Draft.Address) == "" {
		return nil, &ValidationError{Field: "address"}
	}
	if strings.TrimSpace(sess.Draft.PaymentMethod) == "" {
		return nil, &ValidationError{Field: "payment_method"}
	}

	items := make([]order.Item, 0, len(sess.Cart))
	for _, it := range sess.Cart {
		items = append(items, order.Item{ProductID: it.ProductID, Title: it.Title, Price: it.Price, Qty: it.Qty})
	}

	o, err := order.NewOrder(items, strings.TrimSpace(sess.Draft.Address), strings.TrimSpace(sess.Draft.PaymentMethod))
	if err != nil {
		return nil, err
	}
	o.Phone = sess.UserID

	if err := withRetry(func() error { return m.orders.Create(ctx, o) }); err != nil {
		return nil, err
	}

	m.logger.Info("order placed", "order_code", o.OrderCode, "total", o.Total, "items", len(o.Items))

	// Fire-and-forget: the order stands whether or not anyone is told
	go func(placed order.Order) {
		nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := m.notifier.OrderPlaced(nctx, &placed); err != nil {
			m.logger.Warn("order notification failed", "order_code", placed.OrderCode, "error", err)
		}
	}(*o)

	return o, nil
}
