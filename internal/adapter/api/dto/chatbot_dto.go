package dto

import (
	"github.com/rajgh7/surprisevista/internal/domain/product"
)

// ChatAskRequest is one inbound web-chat turn
type ChatAskRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Message   string `json:"message" binding:"required"`
}

// ChatAskResponse is the widget-facing reply shape
type ChatAskResponse struct {
	Reply       string            `json:"reply"`
	SessionID   string            `json:"sessionId"`
	Products    []product.Summary `json:"products,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	CartCount   int               `json:"cartCount"`
	OrderCode   string            `json:"orderCode,omitempty"`
}
