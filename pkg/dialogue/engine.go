package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rajgh7/surprisevista/internal/domain/order"
	"github.com/rajgh7/surprisevista/internal/domain/product"
	"github.com/rajgh7/surprisevista/internal/domain/session"
	"github.com/rajgh7/surprisevista/pkg/dialogue/intent"
	"github.com/rajgh7/surprisevista/pkg/logger"
)

const (
	defaultListLimit   = 8
	defaultSearchLimit = 6
	defaultCompletion  = 10 * time.Second
)

// ErrOrderNotFound is returned by Orders.FindByCode when no order
// carries the requested code
var ErrOrderNotFound = errors.New("order not found")

// Config tunes the engine's bounded calls
type Config struct {
	// ListLimit bounds an unfiltered catalog listing
	ListLimit int
	// SearchLimit bounds a recommendation search
	SearchLimit int
	// CompletionTimeout bounds every generative-text call
	CompletionTimeout time.Duration
}

// Engine is the per-session dialogue state machine. One inbound utterance
// produces exactly one session mutation and one reply; turns for the same
// session are serialized, turns across sessions run concurrently.
type Engine struct {
	store        session.Store
	catalog      Catalog
	orders       Orders
	completer    Completer
	materializer *Materializer
	logger       logger.Logger
	locks        *sessionLocks
	cfg          Config
}

// NewEngine wires the engine with its collaborators
func NewEngine(store session.Store, catalog Catalog, orders Orders, completer Completer, notifier Notifier, log logger.Logger, cfg Config) *Engine {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultListLimit
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = defaultCompletion
	}

	return &Engine{
		store:        store,
		catalog:      catalog,
		orders:       orders,
		completer:    completer,
		materializer: NewMaterializer(orders, notifier, log),
		logger:       log,
		locks:        newSessionLocks(),
		cfg:          cfg,
	}
}

// turn carries one rule's outcome back to HandleMessage. persist is false
// on collaborator failures so the session stays untouched and the user
// can safely retry the same utterance.
type turn struct {
	reply   *Reply
	persist bool
}

func say(format string, args ...interface{}) turn {
	return turn{reply: &Reply{Text: fmt.Sprintf(format, args...)}, persist: true}
}

func unavailable() turn {
	return turn{reply: &Reply{Text: unavailableReply}, persist: false}
}

// HandleMessage processes one inbound utterance and returns the reply.
// It never surfaces internal errors to the caller; every failure maps to
// a friendly channel-neutral message.
func (e *Engine) HandleMessage(ctx context.Context, ev Event) (*Reply, error) {
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return &Reply{Text: "I didn't catch that. Tell me what gift you are looking for, or type 'menu' to browse.", SessionID: ev.SessionID}, nil
	}

	unlock := e.locks.Acquire(ev.SessionID)
	defer unlock()

	sess, err := e.store.Get(ctx, ev.SessionID)
	if err != nil {
		e.logger.Error("session load failed", "session_id", ev.SessionID, "error", err)
		return &Reply{Text: unavailableReply, SessionID: ev.SessionID}, nil
	}
	if sess.UserID == "" && ev.UserID != "" {
		sess.UserID = ev.UserID
	}
	sess.AppendMessage("user", text)

	t := e.dispatch(ctx, sess, text)

	t.reply.SessionID = sess.SessionID
	t.reply.CartCount = sess.CartCount()

	if t.persist {
		sess.AppendMessage("bot", t.reply.Text)
		sess.UpdatedAt = time.Now()
		if err := e.store.Save(ctx, sess); err != nil {
			e.logger.Error("session save failed", "session_id", sess.SessionID, "error", err)
			return &Reply{Text: unavailableReply, SessionID: sess.SessionID}, nil
		}
	}

	return t.reply, nil
}

// dispatch walks the prioritized rule ladder; the first matching rule
// handles the turn and later rules are not considered.
func (e *Engine) dispatch(ctx context.Context, sess *session.Session, text string) turn {
	cls := intent.Classify(text, len(sess.LastShown))

	switch cls.Command {
	case intent.CommandTrack:
		return e.handleTrack(ctx, cls.OrderCode)
	case intent.CommandList:
		return e.handleList(ctx, sess)
	case intent.CommandSelect:
		return e.handleSelect(sess, cls.Indices)
	case intent.CommandAddToCart:
		return e.handleAddToCart(sess)
	case intent.CommandViewCart:
		return e.handleViewCart(sess)
	case intent.CommandCheckout:
		return e.handleCheckout(sess)
	case intent.CommandCancel:
		if sess.Stage != session.StageNone {
			sess.AbandonCheckout()
			return say("Checkout cancelled. Your cart is untouched - type 'checkout' whenever you are ready.")
		}
	}

	// Stage-driven capture: inside checkout the raw utterance is the
	// field value, no validation beyond non-emptiness
	switch sess.Stage {
	case session.StageAwaitingAddress:
		return e.captureAddress(sess, text)
	case session.StageAwaitingPayment:
		return e.capturePayment(sess, text)
	case session.StageAwaitingConfirmation:
		if cls.Command == intent.CommandConfirm {
			return e.handleConfirm(ctx, sess)
		}
		return say("%s\n\nReply 'confirm' to place the order or 'cancel' to keep shopping.", orderSummary(sess))
	}

	switch cls.Command {
	case intent.CommandRecommend:
		return e.handleRecommend(ctx, sess, text, cls.Filter)
	case intent.CommandConfirm:
		return say("There is nothing waiting for confirmation. Type 'checkout' once your cart is ready.")
	}

	return e.handleFallback(ctx, sess, text)
}

// handleTrack is stateless with respect to the checkout stage: a tracking
// request short-circuits everything else.
func (e *Engine) handleTrack(ctx context.Context, code string) turn {
	var o *order.Order
	err := withRetry(func() error {
		var err error
		o, err = e.orders.FindByCode(ctx, code)
		return err
	})
	if errors.Is(err, ErrOrderNotFound) {
		return say("Order %s was not found. Check the code and try again.", code)
	}
	if err != nil {
		e.logger.Error("order lookup failed", "order_code", code, "error", err)
		return unavailable()
	}

	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items, "- %s x%d - ₹%.0f\n", it.Title, it.Qty, it.Price*float64(it.Qty))
	}

	t := say("Order %s\nStatus: %s\nPlaced: %s\nTotal: ₹%.0f\nAddress: %s\n\nItems:\n%s\n%s",
		o.OrderCode, o.Status, o.CreatedAt.Format("02 Jan 2006 15:04"), o.Total, o.Address, items.String(), o.ETA())
	t.reply.OrderCode = o.OrderCode
	return t
}

func (e *Engine) handleList(ctx context.Context, sess *session.Session) turn {
	var items []product.Summary
	err := withRetry(func() error {
		var err error
		items, err = e.catalog.List(ctx, e.cfg.ListLimit)
		return err
	})
	if err != nil {
		e.logger.Error("catalog listing failed", "error", err)
		return unavailable()
	}
	if len(items) == 0 {
		return say("Our catalog is being restocked right now - please check back in a bit.")
	}

	sess.ShowProducts(items)
	t := say("Here is what we have:\n\n%s\nSay 'select 2' (or '1 and 3') to pick, or tell me who the gift is for.", renderNumbered(items))
	t.reply.Products = items
	t.reply.Suggestions = []string{"Select 1", "Gift under 500", "Track my order"}
	return t
}

func (e *Engine) handleSelect(sess *session.Session, indices []int) turn {
	if len(indices) == 0 {
		if len(sess.LastShown) == 0 {
			return say("I haven't shown you any products yet. Type 'menu' or ask for gift ideas first.")
		}
		return say("I couldn't match that to the list above - pick a number between 1 and %d, or type 'menu' to see it again.", len(sess.LastShown))
	}

	if len(indices) == 1 {
		sess.Select(indices[0])
		p := sess.Selected
		t := say("You picked %s (₹%.0f). Say 'add to cart' to take it, or 'compare' for a closer look.", p.Title, p.Price)
		t.reply.Products = []product.Summary{*p}
		t.reply.Suggestions = []string{"Add to cart", "Show gift ideas", "View cart"}
		return t
	}

	picked := sess.SelectMany(indices)
	var b strings.Builder
	for i, p := range picked {
		fmt.Fprintf(&b, "%d. %s - ₹%.0f\n", i+1, p.Title, p.Price)
	}
	t := say("You shortlisted %d items:\n\n%sSay 'add these to cart' to take them all, or 'compare'.", len(picked), b.String())
	t.reply.Products = picked
	t.reply.Suggestions = []string{"Add these to cart", "Compare"}
	return t
}

func (e *Engine) handleAddToCart(sess *session.Session) turn {
	// A pending multi-selection is added wholesale: "add to cart" after
	// "select 1 and 3" takes every shortlisted item, never a silent subset
	if len(sess.PendingSelection) > 0 {
		for _, p := range sess.PendingSelection {
			sess.AddToCart(p, 1)
		}
		n := len(sess.PendingSelection)
		sess.PendingSelection = nil
		t := say("Added %d items to your cart (total ₹%.0f). Type 'checkout' to place the order or keep browsing.", n, sess.CartTotal())
		t.reply.Suggestions = []string{"Checkout", "View cart", "Show gift ideas"}
		return t
	}

	if sess.Selected != nil {
		p := *sess.Selected
		sess.AddToCart(p, 1)
		sess.Selected = nil
		t := say("Added %s to your cart (total ₹%.0f). Type 'checkout' to place the order or keep browsing.", p.Title, sess.CartTotal())
		t.reply.Suggestions = []string{"Checkout", "View cart", "Show gift ideas"}
		return t
	}

	return say("Nothing is selected yet. Say 'select 1' against the list, or type 'menu' to browse.")
}

func (e *Engine) handleViewCart(sess *session.Session) turn {
	if len(sess.Cart) == 0 {
		return say("Your cart is empty. Type 'menu' to browse or ask me for gift ideas.")
	}

	var b strings.Builder
	for i, it := range sess.Cart {
		fmt.Fprintf(&b, "%d. %s x%d - ₹%.0f\n", i+1, it.Title, it.Qty, it.Price*float64(it.Qty))
	}
	t := say("Your cart:\n\n%s\nTotal: ₹%.0f\n\nType 'checkout' to place the order.", b.String(), sess.CartTotal())
	t.reply.Suggestions = []string{"Checkout", "Show gift ideas"}
	return t
}

func (e *Engine) handleCheckout(sess *session.Session) turn {
	if !sess.BeginCheckout() {
		return say("Your cart is empty, so there is nothing to check out yet. Type 'menu' to browse.")
	}
	return say("Great - please send your full shipping address.")
}

func (e *Engine) captureAddress(sess *session.Session, text string) turn {
	sess.Draft.Address = text
	sess.Stage = session.StageAwaitingPayment
	return say("Got it. How would you like to pay? (COD / UPI / Card)")
}

func (e *Engine) capturePayment(sess *session.Session, text string) turn {
	sess.Draft.PaymentMethod = text
	sess.Stage = session.StageAwaitingConfirmation
	return say("%s\n\nReply 'confirm' to place the order or 'cancel' to keep shopping.", orderSummary(sess))
}

func (e *Engine) handleConfirm(ctx context.Context, sess *session.Session) turn {
	o, err := e.materializer.Place(ctx, sess)

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		// Re-prompt for the one missing field without discarding the rest
		switch vErr.Field {
		case "address":
			sess.Stage = session.StageAwaitingAddress
			return say("I still need your shipping address - please send it now.")
		default:
			sess.Stage = session.StageAwaitingPayment
			return say("I still need your payment method - COD, UPI or Card?")
		}
	}
	if err != nil {
		// Cart and draft survive a placement failure so the user only
		// has to retry the confirmation
		e.logger.Error("order placement failed", "session_id", sess.SessionID, "error", err)
		return say("I couldn't place the order just now. Your cart is safe - please reply 'confirm' to try again.")
	}

	sess.ResetAfterOrder()
	t := say("Order %s placed! Total: ₹%.0f. You can track it anytime with 'track %s'.", o.OrderCode, o.Total, o.OrderCode)
	t.reply.OrderCode = o.OrderCode
	t.reply.Suggestions = []string{"Track " + o.OrderCode, "Show gift ideas"}
	return t
}

func (e *Engine) handleRecommend(ctx context.Context, sess *session.Session, text string, filter intent.Filter) turn {
	var items []product.Summary
	err := withRetry(func() error {
		var err error
		items, err = e.catalog.Search(ctx, filter, e.cfg.SearchLimit)
		return err
	})
	if err != nil {
		e.logger.Error("catalog search failed", "error", err)
		return unavailable()
	}
	if len(items) == 0 {
		// No results is user-visible, not a failure; the previous shown
		// list stays valid for ordinal references
		return say("I couldn't find anything matching that. Try a different budget or occasion, or type 'menu' to browse everything.")
	}

	sess.ShowProducts(items)

	blurb := "Here are some picks I think they'll love:"
	cctx, cancel := context.WithTimeout(ctx, e.cfg.CompletionTimeout)
	defer cancel()
	if generated, err := e.completer.Complete(cctx, buildBlurbPrompt(text, items)); err == nil && strings.TrimSpace(generated) != "" {
		blurb = strings.TrimSpace(generated)
	} else if err != nil {
		e.logger.Warn("blurb generation failed, using static intro", "error", err)
	}

	t := say("%s\n\n%s\nSay 'select 2' (or '1 and 3') to pick.", blurb, renderNumbered(items))
	t.reply.Products = items
	t.reply.Suggestions = dynamicSuggestions(filter)
	return t
}

// handleFallback forwards the raw utterance to the generative backend,
// grounded in the currently shown products.
func (e *Engine) handleFallback(ctx context.Context, sess *session.Session, text string) turn {
	cctx, cancel := context.WithTimeout(ctx, e.cfg.CompletionTimeout)
	defer cancel()

	generated, err := e.completer.Complete(cctx, buildFallbackPrompt(sess, text))
	if err != nil || strings.TrimSpace(generated) == "" {
		e.logger.Warn("completion failed", "session_id", sess.SessionID, "error", err)
		t := unavailable()
		t.reply.Suggestions = []string{"Show gift ideas", "Track my order", "View cart"}
		return t
	}

	t := say("%s", strings.TrimSpace(generated))
	t.reply.Suggestions = []string{"Show gift ideas", "Gift under 500 for kids", "Track my order"}
	return t
}

func renderNumbered(items []product.Summary) string {
	var b strings.Builder
	for i, p := range items {
		fmt.Fprintf(&b, "%d. %s - ₹%.0f\n", i+1, p.Title, p.Price)
	}
	return b.String()
}

func orderSummary(sess *session.Session) string {
	var b strings.Builder
	b.WriteString("Order summary:\n\n")
	for i, it := range sess.Cart {
		fmt.Fprintf(&b, "%d. %s x%d - ₹%.0f\n", i+1, it.Title, it.Qty, it.Price*float64(it.Qty))
	}
	fmt.Fprintf(&b, "\nTotal: ₹%.0f\nAddress: %s\nPayment: %s", sess.CartTotal(), sess.Draft.Address, sess.Draft.PaymentMethod)
	return b.String()
}

func dynamicSuggestions(filter intent.Filter) []string {
	suggestions := []string{"Select 1"}
	if filter.Occasion != "" {
		suggestions = append(suggestions, "More "+filter.Occasion+" gifts")
	}
	if !filter.Bounded() {
		suggestions = append(suggestions, "Gift under 1000")
	}
	return append(suggestions, "Personalized gift ideas")
}
