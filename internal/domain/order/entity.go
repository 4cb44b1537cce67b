package order

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyItems         = errors.New("order must contain at least one item")
	ErrEmptyAddress       = errors.New("shipping address cannot be empty")
	ErrEmptyPaymentMethod = errors.New("payment method cannot be empty")
)

// Status tracks an order through fulfilment
type Status string

const (
	StatusPlaced         Status = "Placed"
	StatusProcessing     Status = "Processing"
	StatusShipped        Status = "Shipped"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
)

// Item is a single order line
type Item struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Order is a placed customer order
type Order struct {
	ID            string    `json:"id"`
	OrderCode     string    `json:"order_code"`
	CustomerName  string    `json:"customer_name,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address"`
	PaymentMethod string    `json:"payment_method"`
	Items         []Item    `json:"items"`
	Total         float64   `json:"total"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewOrder assembles an order from validated checkout data
func NewOrder(items []Item, address, paymentMethod string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	if address == "" {
		return nil, ErrEmptyAddress
	}
	if paymentMethod == "" {
		return nil, ErrEmptyPaymentMethod
	}

	now := time.Now()
	return &Order{
		ID:            uuid.New().String(),
		OrderCode:     GenerateOrderCode(now),
		Address:       address,
		PaymentMethod: paymentMethod,
		Items:         items,
		Total:         Total(items),
		Status:        StatusPlaced,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Total sums price*qty over the order lines
func Total(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return total
}

// GenerateOrderCode builds a customer-facing code like SV-20250101-12345
func GenerateOrderCode(at time.Time) string {
	return fmt.Sprintf("SV-%s-%05d", at.Format("20060102"), rand.Intn(100000))
}

// ETA returns the delivery hint shown alongside a tracked order
func (o *Order) ETA() string {
	switch o.Status {
	case StatusProcessing:
		return "Your order is being packed."
	case StatusShipped:
		return "Expected delivery: 1-3 days."
	case StatusOutForDelivery:
		return "Out for delivery today."
	case StatusDelivered:
		return "Delivered."
	default:
		return "We will update you soon."
	}
}
