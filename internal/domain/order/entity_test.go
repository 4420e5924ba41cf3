//go:build unit

package order_test

import (
	"testing"
	"time"

	"shopcore/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validAddress() order.Address {
	return order.Address{
		FullName:   "Jamie Doe",
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}
}

func validItems() []order.Item {
	return []order.Item{
		{ProductID: uuid.New(), Name: "Widget", UnitPriceCents: 5000, Quantity: 2},
		{ProductID: uuid.New(), Name: "Gadget", UnitPriceCents: 3000, Quantity: 1},
	}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	customerID := uuid.New()
	totals := order.ComputeTotals(13000, 0, 0, 8, 0, 10)
	o, err := order.NewOrder(
		uuid.New(), "ORD-000001", &customerID, nil, "jamie@example.com",
		validItems(), validAddress(), totals, nil, nil, testNow,
	)
	require.NoError(t, err)
	return o
}

func advance(t *testing.T, o *order.Order, statuses ...order.Status) {
	t.Helper()
	for _, s := range statuses {
		_, err := o.Transition(s, "", nil, testNow)
		require.NoError(t, err)
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("full checkout breakdown", func(t *testing.T) {
		// $130 subtotal, 10% discount, 8% tax, 50 points at $0.10
		totals := order.ComputeTotals(13000, 1300, 0, 8, 50, 10)

		assert.Equal(t, int64(13000), totals.SubtotalCents)
		assert.Equal(t, int64(1300), totals.DiscountCents)
		assert.Equal(t, int64(936), totals.TaxCents)
		assert.Equal(t, int64(500), totals.LoyaltyValueCents)
		assert.Equal(t, int64(12136), totals.FinalTotalCents)
		assert.NoError(t, totals.Verify())
	})

	t.Run("discount clamps to subtotal", func(t *testing.T) {
		totals := order.ComputeTotals(1000, 5000, 0, 8, 0, 10)
		assert.Equal(t, int64(1000), totals.DiscountCents)
		assert.Equal(t, int64(0), totals.FinalTotalCents)
		assert.NoError(t, totals.Verify())
	})

	t.Run("points value clamps to provisional total", func(t *testing.T) {
		// $10 order, spending 1000 points ($100 value) cannot go negative
		totals := order.ComputeTotals(1000, 0, 0, 0, 1000, 10)
		assert.Equal(t, int64(1000), totals.LoyaltyValueCents)
		assert.Equal(t, int64(0), totals.FinalTotalCents)
		assert.NoError(t, totals.Verify())
	})

	t.Run("shipping fee included", func(t *testing.T) {
		totals := order.ComputeTotals(10000, 0, 599, 8, 0, 10)
		assert.Equal(t, int64(10000+800+599), totals.FinalTotalCents)
	})
}

func TestTotalsVerify(t *testing.T) {
	totals := order.ComputeTotals(13000, 1300, 0, 8, 50, 10)
	totals.FinalTotalCents += 1
	assert.ErrorIs(t, totals.Verify(), order.ErrTotalsMismatch)
}

func TestNewOrder(t *testing.T) {
	totals := order.ComputeTotals(13000, 0, 0, 8, 0, 10)

	t.Run("starts at pending_payment with one history row", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Equal(t, order.StatusPendingPayment, o.Status())
		require.Len(t, o.StatusHistory(), 1)
		assert.Equal(t, order.StatusPendingPayment, o.StatusHistory()[0].Status)
	})

	t.Run("owner must be exactly one of customer or guest", func(t *testing.T) {
		customerID := uuid.New()
		session := "sess-1"

		_, err := order.NewOrder(uuid.New(), "ORD-000002", &customerID, &session, "a@b.com",
			validItems(), validAddress(), totals, nil, nil, testNow)
		assert.ErrorIs(t, err, order.ErrOwnerAmbiguous)

		_, err = order.NewOrder(uuid.New(), "ORD-000003", nil, nil, "a@b.com",
			validItems(), validAddress(), totals, nil, nil, testNow)
		assert.ErrorIs(t, err, order.ErrOwnerRequired)
	})

	t.Run("requires items and contact email", func(t *testing.T) {
		customerID := uuid.New()

		_, err := order.NewOrder(uuid.New(), "ORD-000004", &customerID, nil, "a@b.com",
			nil, validAddress(), totals, nil, nil, testNow)
		assert.ErrorIs(t, err, order.ErrEmptyItems)

		_, err = order.NewOrder(uuid.New(), "ORD-000005", &customerID, nil, "  ",
			validItems(), validAddress(), totals, nil, nil, testNow)
		assert.ErrorIs(t, err, order.ErrContactEmailRequired)
	})

	t.Run("rejects incomplete address", func(t *testing.T) {
		customerID := uuid.New()
		addr := validAddress()
		addr.PostalCode = ""

		_, err := order.NewOrder(uuid.New(), "ORD-000006", &customerID, nil, "a@b.com",
			validItems(), addr, totals, nil, nil, testNow)
		assert.Error(t, err)
	})
}

func TestTransition(t *testing.T) {
	t.Run("happy path to delivered", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.StatusProcessing, order.StatusConfirmed, order.StatusShipped)

		result, err := o.Transition(order.StatusDelivered, "left at door", nil, testNow)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.True(t, result.EnteredCompleted)
		assert.False(t, result.EnteredCancelled)
		assert.Len(t, o.StatusHistory(), 5)
	})

	t.Run("same status is a silent no-op", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.StatusProcessing)

		result, err := o.Transition(order.StatusProcessing, "", nil, testNow)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.False(t, result.EnteredCompleted)
		assert.Len(t, o.StatusHistory(), 2)
	})

	t.Run("delivered can still be cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.StatusProcessing, order.StatusConfirmed, order.StatusShipped, order.StatusDelivered)

		result, err := o.Transition(order.StatusCancelled, "customer dispute", nil, testNow)
		require.NoError(t, err)
		assert.True(t, result.EnteredCancelled)
	})

	t.Run("illegal jumps are rejected", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.StatusDelivered, "", nil, testNow)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("terminal states are dead ends", func(t *testing.T) {
		o := newTestOrder(t)
		result, err := o.Transition(order.StatusPaymentFailed, "card declined", nil, testNow)
		require.NoError(t, err)
		assert.True(t, result.Changed)

		_, err = o.Transition(order.StatusProcessing, "", nil, testNow)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("cancelled to refunded is not a transition", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.StatusProcessing, order.StatusCancelled)

		_, err := o.Transition(order.StatusRefunded, "", nil, testNow)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("refund after cancel-category does not re-trigger reversal", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.StatusProcessing, order.StatusConfirmed)

		result, err := o.Transition(order.StatusRefunded, "", nil, testNow)
		require.NoError(t, err)
		assert.True(t, result.EnteredCancelled)
	})
}

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, order.CategoryActive, order.StatusPendingPayment.Category())
	assert.Equal(t, order.CategoryActive, order.StatusShipped.Category())
	assert.Equal(t, order.CategoryCompleted, order.StatusDelivered.Category())
	assert.Equal(t, order.CategoryCancelled, order.StatusCancelled.Category())
	assert.Equal(t, order.CategoryCancelled, order.StatusRefunded.Category())
	assert.Equal(t, order.CategoryFailed, order.StatusPaymentFailed.Category())
}

func TestNewStatus(t *testing.T) {
	_, err := order.NewStatus("shipped")
	assert.NoError(t, err)

	_, err = order.NewStatus("lost_in_transit")
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}
