package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderValidation(t *testing.T) {
	items := []Item{{ProductID: "p1", Title: "Mug", Price: 349, Qty: 2}}

	_, err := NewOrder(nil, "12 MG Road", "COD")
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = NewOrder(items, "", "COD")
	assert.ErrorIs(t, err, ErrEmptyAddress)

	_, err = NewOrder(items, "12 MG Road", "")
	assert.ErrorIs(t, err, ErrEmptyPaymentMethod)

	o, err := NewOrder(items, "12 MG Road", "COD")
	require.NoError(t, err)
	assert.Equal(t, StatusPlaced, o.Status)
	assert.Equal(t, 698.0, o.Total)
	assert.NotEmpty(t, o.ID)
}

func TestGenerateOrderCodeFormat(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	code := GenerateOrderCode(at)

	assert.Regexp(t, `^SV-20250115-\d{5}$`, code)
}

func TestETAByStatus(t *testing.T) {
	o := &Order{Status: StatusShipped}
	assert.Contains(t, o.ETA(), "1-3 days")

	o.Status = StatusDelivered
	assert.Equal(t, "Delivered.", o.ETA())

	o.Status = StatusPlaced
	assert.Contains(t, o.ETA(), "update you soon")
}
