package session

import (
	"time"

	"github.com/rajgh7/surprisevista/internal/domain/product"
)

// CheckoutStage is the conversational checkout step the session sits in
type CheckoutStage string

const (
	StageNone                 CheckoutStage = "NONE"
	StageAwaitingAddress      CheckoutStage = "AWAITING_ADDRESS"
	StageAwaitingPayment      CheckoutStage = "AWAITING_PAYMENT"
	StageAwaitingConfirmation CheckoutStage = "AWAITING_CONFIRMATION"
)

// Message is one turn in the conversation history. History is audit-only,
// it is never replayed into dialogue logic.
type Message struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItem is one cart line. Qty is always >= 1; a quantity that would
// drop to zero removes the line instead.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// CheckoutDraft accumulates free-text checkout fields across turns
type CheckoutDraft struct {
	Address       string `json:"address,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// Session is the per-conversation state record. One exists per session ID;
// it is created lazily on the first inbound event and never deleted, only
// its mutable fields are reset after an order is placed.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Messages  []Message `json:"messages"`

	// LastShown is the only referent for ordinal selection. It is
	// overwritten, never merged, every time a new list is shown.
	LastShown []product.Summary `json:"last_shown"`

	// Selected is the implicit subject of "add to cart". It always comes
	// from the current LastShown list.
	Selected *product.Summary `json:"selected,omitempty"`

	// PendingSelection holds a multi-select ("1 and 3") awaiting an
	// explicit bulk command.
	PendingSelection []product.Summary `json:"pending_selection,omitempty"`

	Cart  []CartItem    `json:"cart"`
	Stage CheckoutStage `json:"stage"`
	Draft CheckoutDraft `json:"draft"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a fresh session for the given identity
func New(sessionID, userID string) *Session {
	now := time.Now()
	return &Session{
		SessionID: sessionID,
		UserID:    userID,
		Stage:     StageNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendMessage records a conversation turn in the audit history
func (s *Session) AppendMessage(role, text string) {
	s.Messages = append(s.Messages, Message{Role: role, Text: text, Timestamp: time.Now()})
}

// ShowProducts replaces the shown list and drops any stale selection,
// keeping Selected always drawn from the current list.
func (s *Session) ShowProducts(items []product.Summary) {
	s.LastShown = items
	s.Selected = nil
	s.PendingSelection = nil
}

// Select marks a single shown product as the current subject
func (s *Session) Select(index int) bool {
	if index < 0 || index >= len(s.LastShown) {
		return false
	}
	picked := s.LastShown[index]
	s.Selected = &picked
	s.PendingSelection = nil
	return true
}

// SelectMany stages a multi-selection; it deliberately does not set
// Selected, a bulk action needs an explicit follow-up command.
func (s *Session) SelectMany(indices []int) []product.Summary {
	var picked []product.Summary
	for _, i := range indices {
		if i >= 0 && i < len(s.LastShown) {
			picked = append(picked, s.LastShown[i])
		}
	}
	s.Selected = nil
	s.PendingSelection = picked
	return picked
}

// AddToCart merges a product into the cart; repeated adds of the same
// product increment quantity rather than creating a second line.
func (s *Session) AddToCart(p product.Summary, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range s.Cart {
		if s.Cart[i].ProductID == p.ID {
			s.Cart[i].Qty += qty
			return
		}
	}
	s.Cart = append(s.Cart, CartItem{ProductID: p.ID, Title: p.Title, Price: p.Price, Qty: qty})
}

// UpdateCartQty sets a line's quantity; zero or less removes the line
func (s *Session) UpdateCartQty(productID string, qty int) {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID {
			if qty <= 0 {
				s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			} else {
				s.Cart[i].Qty = qty
			}
			return
		}
	}
}

// CartTotal sums price*qty over the cart lines
func (s *Session) CartTotal() float64 {
	var total float64
	for _, it := range s.Cart {
		total += it.Price * float64(it.Qty)
	}
	return total
}

// CartCount sums the quantities across cart lines
func (s *Session) CartCount() int {
	var n int
	for _, it := range s.Cart {
		n += it.Qty
	}
	return n
}

// BeginCheckout enters the address stage; refused on an empty cart so the
// stage invariant (NONE whenever the cart is empty) holds.
func (s *Session) BeginCheckout() bool {
	if len(s.Cart) == 0 {
		return false
	}
	s.Stage = StageAwaitingAddress
	return true
}

// AbandonCheckout leaves the checkout flow keeping the cart intact
func (s *Session) AbandonCheckout() {
	s.Stage = StageNone
	s.Draft = CheckoutDraft{}
}

// ResetAfterOrder clears the transactional fields once an order is placed
func (s *Session) ResetAfterOrder() {
	s.Cart = nil
	s.Draft = CheckoutDraft{}
	s.Stage = StageNone
	s.Selected = nil
	s.PendingSelection = nil
}
