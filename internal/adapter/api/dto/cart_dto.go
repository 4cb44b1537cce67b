package dto

// CartAddRequest adds a product to a session cart from the widget's
// side-channel (the product-card "Add" button)
type CartAddRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty"`
}

// CartAddedItem echoes what was added
type CartAddedItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// CartAddResponse is the add-to-cart result
type CartAddResponse struct {
	OK    bool          `json:"ok"`
	Added CartAddedItem `json:"added"`
	Count int           `json:"count"`
	Total float64       `json:"total"`
}

// CartGetResponse summarizes a session cart
type CartGetResponse struct {
	SessionID string      `json:"sessionId"`
	Items     interface{} `json:"items"`
	Count     int         `json:"count"`
	Total     float64     `json:"total"`
}
