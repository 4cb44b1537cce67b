package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgh7/surprisevista/internal/domain/order"
	"github.com/rajgh7/surprisevista/internal/domain/product"
	"github.com/rajgh7/surprisevista/internal/domain/session"
	"github.com/rajgh7/surprisevista/pkg/dialogue/intent"
	"github.com/rajgh7/surprisevista/pkg/logger"
)

// fakeStore keeps sessions as serialized snapshots so a handler that
// fails mid-turn cannot leak partial mutations into the store
type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Get(_ context.Context, sessionID string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[sessionID]
	if !ok {
		return session.New(sessionID, ""), nil
	}
	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *fakeStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.data[sess.SessionID] = raw
	s.saves++
	return nil
}

func (s *fakeStore) stored(t *testing.T, sessionID string) *session.Session {
	t.Helper()
	sess, err := s.Get(context.Background(), sessionID)
	require.NoError(t, err)
	return sess
}

type fakeCatalog struct {
	items      []product.Summary
	searchErr  error
	listErr    error
	lastFilter intent.Filter
	searchHits int
}

func (c *fakeCatalog) Search(_ context.Context, filter intent.Filter, limit int) ([]product.Summary, error) {
	c.searchHits++
	c.lastFilter = filter
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	if limit < len(c.items) {
		return c.items[:limit], nil
	}
	return c.items, nil
}

func (c *fakeCatalog) List(_ context.Context, limit int) ([]product.Summary, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	if limit < len(c.items) {
		return c.items[:limit], nil
	}
	return c.items, nil
}

func (c *fakeCatalog) FindByID(_ context.Context, id string) (*product.Summary, error) {
	for _, p := range c.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.New("not found")
}

type fakeOrders struct {
	mu        sync.Mutex
	placed    []*order.Order
	createErr error
	byCode    map[string]*order.Order
	findHits  int
}

func (o *fakeOrders) Create(_ context.Context, ord *order.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.createErr != nil {
		return o.createErr
	}
	o.placed = append(o.placed, ord)
	return nil
}

func (o *fakeOrders) FindByCode(_ context.Context, code string) (*order.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.findHits++
	if ord, ok := o.byCode[code]; ok {
		return ord, nil
	}
	return nil, ErrOrderNotFound
}

type fakeCompleter struct {
	reply      string
	err        error
	lastPrompt string
}

func (c *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.lastPrompt = prompt
	return c.reply, c.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	codes []string
}

func (n *fakeNotifier) OrderPlaced(_ context.Context, o *order.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes = append(n.codes, o.OrderCode)
	return nil
}

func catalogItems() []product.Summary {
	return []product.Summary{
		{ID: "p1", Title: "Superhero Mug", Price: 349, Category: "mugs"},
		{ID: "p2", Title: "Chocolate Hamper", Price: 499, Category: "edible"},
		{ID: "p3", Title: "Photo Frame", Price: 275, Category: "decor"},
	}
}

type testRig struct {
	engine    *Engine
	store     *fakeStore
	catalog   *fakeCatalog
	orders    *fakeOrders
	completer *fakeCompleter
	notifier  *fakeNotifier
}

func newTestRig() *testRig {
	rig := &testRig{
		store:     newFakeStore(),
		catalog:   &fakeCatalog{items: catalogItems()},
		orders:    &fakeOrders{byCode: make(map[string]*order.Order)},
		completer: &fakeCompleter{reply: "Happy to help!"},
		notifier:  &fakeNotifier{},
	}
	rig.engine = NewEngine(rig.store, rig.catalog, rig.orders, rig.completer, rig.notifier, logger.NewLogger(), Config{})
	return rig
}

func (r *testRig) say(t *testing.T, sessionID, text string) *Reply {
	t.Helper()
	reply, err := r.engine.HandleMessage(context.Background(), Event{SessionID: sessionID, Text: text})
	require.NoError(t, err)
	require.NotNil(t, reply)
	return reply
}

func TestEngineFullPurchaseFlow(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_flow"

	// Browse
	reply := rig.say(t, sid, "show me gifts")
	assert.Contains(t, reply.Text, "1. Superhero Mug")
	assert.Len(t, reply.Products, 3)
	assert.Equal(t, 0, reply.CartCount)

	// Select by ordinal
	reply = rig.say(t, sid, "select 2")
	assert.Contains(t, reply.Text, "Chocolate Hamper")

	// Add to cart
	reply = rig.say(t, sid, "add to cart")
	assert.Contains(t, reply.Text, "Chocolate Hamper")
	assert.Equal(t, 1, reply.CartCount)

	// Checkout: address, payment, confirmation
	reply = rig.say(t, sid, "checkout")
	assert.Contains(t, reply.Text, "shipping address")

	reply = rig.say(t, sid, "12 MG Road, Bengaluru 560001")
	assert.Contains(t, reply.Text, "pay")

	reply = rig.say(t, sid, "UPI")
	assert.Contains(t, reply.Text, "Order summary")
	assert.Contains(t, reply.Text, "12 MG Road")

	reply = rig.say(t, sid, "confirm")
	assert.Contains(t, reply.Text, "placed")
	assert.NotEmpty(t, reply.OrderCode)
	assert.True(t, strings.HasPrefix(reply.OrderCode, "SV-"))
	assert.Equal(t, 0, reply.CartCount)

	// Order persisted with the captured fields
	require.Len(t, rig.orders.placed, 1)
	placed := rig.orders.placed[0]
	assert.Equal(t, "12 MG Road, Bengaluru 560001", placed.Address)
	assert.Equal(t, "UPI", placed.PaymentMethod)
	assert.Equal(t, 499.0, placed.Total)

	// Session reset for the next purchase
	sess := rig.store.stored(t, sid)
	assert.Empty(t, sess.Cart)
	assert.Equal(t, session.StageNone, sess.Stage)
	assert.Empty(t, sess.Draft.Address)
}

func TestEngineMultiSelectAddsAll(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_multi"

	rig.say(t, sid, "show me gifts")

	reply := rig.say(t, sid, "select 1 and 3")
	assert.Contains(t, reply.Text, "shortlisted 2 items")
	assert.Len(t, reply.Products, 2)

	reply = rig.say(t, sid, "add these to cart")
	assert.Contains(t, reply.Text, "Added 2 items")
	assert.Equal(t, 2, reply.CartCount)

	sess := rig.store.stored(t, sid)
	require.Len(t, sess.Cart, 2)
	assert.Equal(t, "p1", sess.Cart[0].ProductID)
	assert.Equal(t, "p3", sess.Cart[1].ProductID)
	assert.Empty(t, sess.PendingSelection)
}

func TestEngineRepeatedAddMergesQuantity(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_merge"

	rig.say(t, sid, "show me gifts")
	rig.say(t, sid, "select 1")
	rig.say(t, sid, "add to cart")
	rig.say(t, sid, "select 1")
	reply := rig.say(t, sid, "add to cart")

	assert.Equal(t, 2, reply.CartCount)
	sess := rig.store.stored(t, sid)
	require.Len(t, sess.Cart, 1)
	assert.Equal(t, 2, sess.Cart[0].Qty)
}

func TestEngineCheckoutEmptyCart(t *testing.T) {
	rig := newTestRig()

	reply := rig.say(t, "sess_empty", "checkout")
	assert.Contains(t, reply.Text, "empty")

	sess := rig.store.stored(t, "sess_empty")
	assert.Equal(t, session.StageNone, sess.Stage)
}

func TestEngineCancelDuringCheckoutKeepsCart(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_cancel"

	rig.say(t, sid, "show me gifts")
	rig.say(t, sid, "select 1")
	rig.say(t, sid, "add to cart")
	rig.say(t, sid, "checkout")
	rig.say(t, sid, "12 MG Road")

	reply := rig.say(t, sid, "cancel")
	assert.Contains(t, reply.Text, "cancelled")
	assert.Equal(t, 1, reply.CartCount)

	sess := rig.store.stored(t, sid)
	assert.Equal(t, session.StageNone, sess.Stage)
	assert.Len(t, sess.Cart, 1)
	assert.Empty(t, sess.Draft.Address)
}

func TestEngineAddressIsCapturedVerbatimInsideCheckout(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_addr"

	rig.say(t, sid, "show me gifts")
	rig.say(t, sid, "select 1")
	rig.say(t, sid, "add to cart")
	rig.say(t, sid, "checkout")

	// Inside checkout an utterance that looks like a command is still a
	// field value unless it is an explicit cancel or tracking request
	rig.say(t, sid, "2 Gift Street, near the cart market")

	sess := rig.store.stored(t, sid)
	assert.Equal(t, "2 Gift Street, near the cart market", sess.Draft.Address)
	assert.Equal(t, session.StageAwaitingPayment, sess.Stage)
}

func TestEngineTrackingShortCircuitsCheckout(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_track_mid"

	o, err := order.NewOrder([]order.Item{{ProductID: "p1", Title: "Superhero Mug", Price: 349, Qty: 1}}, "12 MG Road", "COD")
	require.NoError(t, err)
	rig.orders.byCode[o.OrderCode] = o

	rig.say(t, sid, "show me gifts")
	rig.say(t, sid, "select 1")
	rig.say(t, sid, "add to cart")
	rig.say(t, sid, "checkout")

	reply := rig.say(t, sid, "track "+o.OrderCode)
	assert.Contains(t, reply.Text, o.OrderCode)
	assert.Contains(t, reply.Text, "Placed")
	assert.Equal(t, o.OrderCode, reply.OrderCode)

	// The checkout stage survives the detour
	sess := rig.store.stored(t, sid)
	assert.Equal(t, session.StageAwaitingAddress, sess.Stage)
}

func TestEngineTrackUnknownCode(t *testing.T) {
	rig := newTestRig()

	reply := rig.say(t, "sess_track", "track SV-20250101-99999")
	assert.Contains(t, reply.Text, "not found")
	assert.Empty(t, reply.OrderCode)

	// A definitive miss is not worth a second lookup
	assert.Equal(t, 1, rig.orders.findHits)
}

func TestEngineListingTriggerWordsStayUnfiltered(t *testing.T) {
	rig := newTestRig()

	// "products" and friends are trigger vocabulary, never search terms
	for _, text := range []string{"show products", "list products", "browse gifts"} {
		reply := rig.say(t, "sess_listing", text)
		assert.Len(t, reply.Products, 3, "input %q", text)
		assert.Contains(t, reply.Text, "Here is what we have", "input %q", text)
	}
	assert.Zero(t, rig.catalog.searchHits)
}

func TestEngineConfirmOutsideCheckout(t *testing.T) {
	rig := newTestRig()

	reply := rig.say(t, "sess_conf", "confirm")
	assert.Contains(t, reply.Text, "nothing waiting for confirmation")
}

func TestEngineNonConfirmAtConfirmationRepeatsSummary(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_repeat"

	rig.say(t, sid, "show me gifts")
	rig.say(t, sid, "select 1")
	rig.say(t, sid, "add to cart")
	rig.say(t, sid, "checkout")
	rig.say(t, sid, "12 MG Road")
	rig.say(t, sid, "COD")

	reply := rig.say(t, sid, "what about shipping?")
	assert.Contains(t, reply.Text, "Order summary")
	assert.Contains(t, reply.Text, "confirm")

	sess := rig.store.stored(t, sid)
	assert.Equal(t, session.StageAwaitingConfirmation, sess.Stage)
}

func TestEnginePlacementFailurePreservesSession(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_fail"

	rig.say(t, sid, "show me gifts")
	rig.say(t, sid, "select 1")
	rig.say(t, sid, "add to cart")
	rig.say(t, sid, "checkout")
	rig.say(t, sid, "12 MG Road")
	rig.say(t, sid, "COD")

	rig.orders.createErr = errors.New("db down")
	reply := rig.say(t, sid, "confirm")
	assert.Contains(t, reply.Text, "couldn't place the order")
	assert.Empty(t, reply.OrderCode)

	// Cart, draft and stage all survive so a bare retry works
	sess := rig.store.stored(t, sid)
	assert.Len(t, sess.Cart, 1)
	assert.Equal(t, "12 MG Road", sess.Draft.Address)
	assert.Equal(t, session.StageAwaitingConfirmation, sess.Stage)

	rig.orders.createErr = nil
	reply = rig.say(t, sid, "confirm")
	assert.NotEmpty(t, reply.OrderCode)
}

func TestEngineRecommendUsesParsedFilter(t *testing.T) {
	rig := newTestRig()

	reply := rig.say(t, "sess_rec", "gift for a 7 year old boy under 500")
	assert.Len(t, reply.Products, 3)
	assert.Equal(t, 500.0, rig.catalog.lastFilter.MaxPrice)
	assert.Equal(t, 7, rig.catalog.lastFilter.Age)
	assert.Equal(t, "male", rig.catalog.lastFilter.Gender)

	// The generated blurb leads the reply
	assert.True(t, strings.HasPrefix(reply.Text, "Happy to help!"))
}

func TestEngineRecommendBlurbFailureFallsBackToStaticIntro(t *testing.T) {
	rig := newTestRig()
	rig.completer.reply = ""
	rig.completer.err = errors.New("backend down")

	reply := rig.say(t, "sess_blurb", "birthday gift ideas")
	assert.Contains(t, reply.Text, "Here are some picks")
	assert.Len(t, reply.Products, 3)
}

func TestEngineEmptyRecommendKeepsLastShown(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_keep"

	rig.say(t, sid, "show me gifts")

	rig.catalog.items = nil
	reply := rig.say(t, sid, "gift under 100")
	assert.Contains(t, reply.Text, "couldn't find anything")

	// The earlier list is still valid for ordinal selection
	sess := rig.store.stored(t, sid)
	require.Len(t, sess.LastShown, 3)

	rig.catalog.items = catalogItems()
	reply = rig.say(t, sid, "select 2")
	assert.Contains(t, reply.Text, "Chocolate Hamper")
}

func TestEngineSelectWithoutShownList(t *testing.T) {
	rig := newTestRig()

	reply := rig.say(t, "sess_noshow", "select 2")
	assert.Contains(t, reply.Text, "haven't shown you any products")
}

func TestEngineSelectOutOfRange(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_range"

	rig.say(t, sid, "show me gifts")
	reply := rig.say(t, sid, "select 9")
	assert.Contains(t, reply.Text, "between 1 and 3")
}

func TestEngineAddWithoutSelection(t *testing.T) {
	rig := newTestRig()

	reply := rig.say(t, "sess_noadd", "add to cart")
	assert.Contains(t, reply.Text, "Nothing is selected")
}

func TestEngineFallbackPromptIsGrounded(t *testing.T) {
	rig := newTestRig()
	const sid = "sess_ground"

	rig.say(t, sid, "show me gifts")
	rig.say(t, sid, "do you have anything waterproof?")

	assert.Contains(t, rig.completer.lastPrompt, "Superhero Mug")
	assert.Contains(t, rig.completer.lastPrompt, "never")
	assert.Contains(t, rig.completer.lastPrompt, "do you have anything waterproof?")
}

func TestEngineFallbackFailureDoesNotPersistTurn(t *testing.T) {
	rig := newTestRig()
	rig.completer.err = errors.New("backend down")
	rig.completer.reply = ""
	const sid = "sess_nopersist"

	before := rig.store.saves
	reply := rig.say(t, sid, "tell me a story")
	assert.Contains(t, reply.Text, "temporarily unavailable")
	assert.Equal(t, before, rig.store.saves)
}

func TestEngineCatalogRetriesOnce(t *testing.T) {
	rig := newTestRig()

	rig.catalog.searchErr = errors.New("flaky")
	// One turn makes exactly two attempts against a failing catalog
	reply := rig.say(t, "sess_retry", "gift under 500")
	assert.Equal(t, 2, rig.catalog.searchHits)
	assert.Contains(t, reply.Text, "temporarily unavailable")
}

func TestEngineEmptyUtterance(t *testing.T) {
	rig := newTestRig()

	reply := rig.say(t, "sess_blank", "   ")
	assert.Contains(t, reply.Text, "didn't catch that")
	assert.Zero(t, rig.store.saves)
}

func TestEngineSaveFailureReturnsApology(t *testing.T) {
	rig := newTestRig()
	rig.store.saveErr = errors.New("redis down")

	reply := rig.say(t, "sess_savefail", "show me gifts")
	assert.Contains(t, reply.Text, "temporarily unavailable")
}

func TestEngineConcurrentSessionsDoNotInterleave(t *testing.T) {
	rig := newTestRig()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sid := fmt.Sprintf("sess_par_%d", n)
			rig.say(t, sid, "show me gifts")
			rig.say(t, sid, "select 1")
			rig.say(t, sid, "add to cart")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		sess := rig.store.stored(t, fmt.Sprintf("sess_par_%d", i))
		require.Len(t, sess.Cart, 1)
		assert.Equal(t, "p1", sess.Cart[0].ProductID)
	}
}
