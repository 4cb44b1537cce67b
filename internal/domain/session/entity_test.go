package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgh7/surprisevista/internal/domain/product"
)

func shown() []product.Summary {
	return []product.Summary{
		{ID: "p1", Title: "Mug", Price: 349},
		{ID: "p2", Title: "Hamper", Price: 499},
		{ID: "p3", Title: "Frame", Price: 275},
	}
}

func TestShowProductsClearsSelections(t *testing.T) {
	s := New("s1", "")
	s.ShowProducts(shown())
	require.True(t, s.Select(1))
	require.NotNil(t, s.Selected)

	s.ShowProducts(shown()[:1])
	assert.Nil(t, s.Selected)
	assert.Empty(t, s.PendingSelection)
	assert.Len(t, s.LastShown, 1)
}

func TestSelectBounds(t *testing.T) {
	s := New("s1", "")
	s.ShowProducts(shown())

	assert.False(t, s.Select(-1))
	assert.False(t, s.Select(3))
	assert.True(t, s.Select(2))
	assert.Equal(t, "p3", s.Selected.ID)
}

func TestSelectManyDropsInvalidIndices(t *testing.T) {
	s := New("s1", "")
	s.ShowProducts(shown())

	picked := s.SelectMany([]int{0, 5, 2})
	require.Len(t, picked, 2)
	assert.Equal(t, "p1", picked[0].ID)
	assert.Equal(t, "p3", picked[1].ID)
	assert.Nil(t, s.Selected)
}

func TestAddToCartMergesLines(t *testing.T) {
	s := New("s1", "")
	p := shown()[0]

	s.AddToCart(p, 1)
	s.AddToCart(p, 2)

	require.Len(t, s.Cart, 1)
	assert.Equal(t, 3, s.Cart[0].Qty)
	assert.Equal(t, 3, s.CartCount())
	assert.Equal(t, 3*349.0, s.CartTotal())
}

func TestAddToCartClampsQty(t *testing.T) {
	s := New("s1", "")
	s.AddToCart(shown()[0], 0)

	require.Len(t, s.Cart, 1)
	assert.Equal(t, 1, s.Cart[0].Qty)
}

func TestUpdateCartQty(t *testing.T) {
	s := New("s1", "")
	s.AddToCart(shown()[0], 2)
	s.AddToCart(shown()[1], 1)

	s.UpdateCartQty("p1", 5)
	assert.Equal(t, 5, s.Cart[0].Qty)

	// Zero removes the line
	s.UpdateCartQty("p1", 0)
	require.Len(t, s.Cart, 1)
	assert.Equal(t, "p2", s.Cart[0].ProductID)
}

func TestBeginCheckoutRequiresItems(t *testing.T) {
	s := New("s1", "")
	assert.False(t, s.BeginCheckout())
	assert.Equal(t, StageNone, s.Stage)

	s.AddToCart(shown()[0], 1)
	assert.True(t, s.BeginCheckout())
	assert.Equal(t, StageAwaitingAddress, s.Stage)
}

func TestAbandonCheckoutKeepsCart(t *testing.T) {
	s := New("s1", "")
	s.AddToCart(shown()[0], 1)
	s.BeginCheckout()
	s.Draft.Address = "12 MG Road"

	s.AbandonCheckout()

	assert.Equal(t, StageNone, s.Stage)
	assert.Empty(t, s.Draft.Address)
	assert.Len(t, s.Cart, 1)
}

func TestResetAfterOrder(t *testing.T) {
	s := New("s1", "")
	s.ShowProducts(shown())
	s.Select(0)
	s.AddToCart(shown()[0], 1)
	s.BeginCheckout()
	s.Draft = CheckoutDraft{Address: "12 MG Road", PaymentMethod: "COD"}

	s.ResetAfterOrder()

	assert.Empty(t, s.Cart)
	assert.Equal(t, StageNone, s.Stage)
	assert.Equal(t, CheckoutDraft{}, s.Draft)
	assert.Nil(t, s.Selected)
	assert.Empty(t, s.PendingSelection)
}
