// Package notifier delivers best-effort order-placed notifications to
// the store operator. Delivery failure never affects the order itself.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/rajgh7/surprisevista/internal/domain/order"
	"github.com/rajgh7/surprisevista/pkg/logger"
	"github.com/rajgh7/surprisevista/pkg/whatsapp"
)

// Notifier announces a newly placed order
type Notifier interface {
	OrderPlaced(ctx context.Context, o *order.Order) error
}

// WhatsAppNotifier pings the store's admin phone over WhatsApp
type WhatsAppNotifier struct {
	client     *whatsapp.Client
	adminPhone string
}

// NewWhatsAppNotifier creates a notifier targeting the admin phone
func NewWhatsAppNotifier(client *whatsapp.Client, adminPhone string) *WhatsAppNotifier {
	return &WhatsAppNotifier{client: client, adminPhone: adminPhone}
}

// OrderPlaced sends the order summary to the admin phone
func (n *WhatsAppNotifier) OrderPlaced(ctx context.Context, o *order.Order) error {
	if n.adminPhone == "" {
		return fmt.Errorf("admin phone not configured")
	}

	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items, "- %s x%d\n", it.Title, it.Qty)
	}

	msg := fmt.Sprintf("New order %s\nTotal: ₹%.0f\nPayment: %s\nAddress: %s\n\n%s",
		o.OrderCode, o.Total, o.PaymentMethod, o.Address, items.String())
	return n.client.SendText(ctx, n.adminPhone, msg)
}

// LogNotifier only records the order in the service log; used when no
// admin phone is configured
type LogNotifier struct {
	logger logger.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// OrderPlaced logs the placed order
func (n *LogNotifier) OrderPlaced(_ context.Context, o *order.Order) error {
	n.logger.Info("order placed notification", "order_code", o.OrderCode, "total", o.Total)
	return nil
}
