package dto

import (
	"github.com/rajgh7/surprisevista/internal/domain/order"
)

// OrderItemRequest is one line of a storefront order
type OrderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Qty       int     `json:"qty" binding:"required,min=1"`
}

// OrderCreateRequest is the storefront checkout payload
type OrderCreateRequest struct {
	CustomerName  string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address" binding:"required"`
	PaymentMethod string             `json:"paymentMethod" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,dive"`
}

// OrderStatusRequest moves an order to a new fulfilment status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is the order payload returned to clients
type OrderResponse struct {
	ID            string       `json:"id"`
	OrderCode     string       `json:"orderCode"`
	CustomerName  string       `json:"name,omitempty"`
	Email         string       `json:"email,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Address       string       `json:"address"`
	PaymentMethod string       `json:"paymentMethod"`
	Items         []order.Item `json:"items"`
	Total         float64      `json:"total"`
	Status        string       `json:"status"`
	ETA           string       `json:"eta"`
	CreatedAt     string       `json:"createdAt"`
}

// ToOrderResponse converts a domain order to its API shape
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		OrderCode:     o.OrderCode,
		CustomerName:  o.CustomerName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		Items:         o.Items,
		Total:         o.Total,
		Status:        string(o.Status),
		ETA:           o.ETA(),
		CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToOrderResponses converts a list of domain orders
func ToOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
