//go:build unit

package discount_test

import (
	"testing"
	"time"

	"shopcore/internal/domain/discount"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func mustValue(t *testing.T, discountType discount.Type, amount float64) discount.Value {
	t.Helper()
	v, err := discount.NewValue(discountType, amount)
	require.NoError(t, err)
	return v
}

func restore(t *testing.T, value discount.Value, mutate func(*restoreArgs)) *discount.Discount {
	t.Helper()
	args := &restoreArgs{active: true}
	if mutate != nil {
		mutate(args)
	}
	code, err := discount.NewCode("SAVE10")
	require.NoError(t, err)
	return discount.Restore(
		uuid.New(), code, value,
		args.minPurchaseCents, args.maxUsage, args.usedCount, args.active,
		args.validFrom, args.validTo, testNow, testNow,
	)
}

type restoreArgs struct {
	minPurchaseCents *int64
	maxUsage         *int32
	usedCount        int32
	active           bool
	validFrom        *time.Time
	validTo          *time.Time
}

func TestNewCode(t *testing.T) {
	t.Run("normalizes to upper case", func(t *testing.T) {
		code, err := discount.NewCode("  save10 ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", code.String())
	})

	t.Run("rejects bad formats", func(t *testing.T) {
		for _, raw := range []string{"", "AB", "HAS SPACE", "lower-dash", "WAYTOOLONGFORADISCOUNTCODE"} {
			_, err := discount.NewCode(raw)
			assert.ErrorIs(t, err, discount.ErrInvalidCode, "code %q", raw)
		}
	})
}

func TestNewValue(t *testing.T) {
	t.Run("percentage bounds", func(t *testing.T) {
		_, err := discount.NewValue(discount.TypePercentage, -1)
		assert.ErrorIs(t, err, discount.ErrInvalidPercent)

		_, err = discount.NewValue(discount.TypePercentage, 101)
		assert.ErrorIs(t, err, discount.ErrInvalidPercent)

		_, err = discount.NewValue(discount.TypePercentage, 100)
		assert.NoError(t, err)
	})

	t.Run("fixed amount bounds", func(t *testing.T) {
		_, err := discount.NewValue(discount.TypeFixedAmount, -1)
		assert.ErrorIs(t, err, discount.ErrInvalidAmount)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := discount.NewValue(discount.Type("bogo"), 10)
		assert.ErrorIs(t, err, discount.ErrInvalidType)
	})
}

func TestValueAmountCents(t *testing.T) {
	t.Run("percentage of subtotal", func(t *testing.T) {
		v := mustValue(t, discount.TypePercentage, 10)
		assert.Equal(t, int64(1300), v.AmountCents(13000))
	})

	t.Run("percentage rounds to whole cents", func(t *testing.T) {
		v := mustValue(t, discount.TypePercentage, 7.5)
		// 999 * 7.5% = 74.925, rounds to 75
		assert.Equal(t, int64(75), v.AmountCents(999))
	})

	t.Run("fixed amount clamps to subtotal", func(t *testing.T) {
		v := mustValue(t, discount.TypeFixedAmount, 5000)
		assert.Equal(t, int64(3000), v.AmountCents(3000))
		assert.Equal(t, int64(5000), v.AmountCents(9000))
	})
}

func TestDiscountUsableAt(t *testing.T) {
	percent := mustValue(t, discount.TypePercentage, 10)

	t.Run("usable discount", func(t *testing.T) {
		d := restore(t, percent, nil)
		assert.NoError(t, d.UsableAt(testNow, 5000))
	})

	t.Run("inactive", func(t *testing.T) {
		d := restore(t, percent, func(a *restoreArgs) { a.active = false })
		assert.ErrorIs(t, d.UsableAt(testNow, 5000), discount.ErrInactive)
	})

	t.Run("not yet valid", func(t *testing.T) {
		future := testNow.Add(time.Hour)
		d := restore(t, percent, func(a *restoreArgs) { a.validFrom = &future })
		assert.ErrorIs(t, d.UsableAt(testNow, 5000), discount.ErrNotYetValid)
	})

	t.Run("expired", func(t *testing.T) {
		past := testNow.Add(-time.Hour)
		d := restore(t, percent, func(a *restoreArgs) { a.validTo = &past })
		assert.ErrorIs(t, d.UsableAt(testNow, 5000), discount.ErrExpired)
	})

	t.Run("usage exhausted", func(t *testing.T) {
		maxUsage := int32(3)
		d := restore(t, percent, func(a *restoreArgs) {
			a.maxUsage = &maxUsage
			a.usedCount = 3
		})
		assert.ErrorIs(t, d.UsableAt(testNow, 5000), discount.ErrUsageExhausted)
	})

	t.Run("unlimited usage when max is nil", func(t *testing.T) {
		d := restore(t, percent, func(a *restoreArgs) { a.usedCount = 1000000 })
		assert.NoError(t, d.UsableAt(testNow, 5000))
	})

	t.Run("minimum purchase not met", func(t *testing.T) {
		minPurchase := int64(10000)
		d := restore(t, percent, func(a *restoreArgs) { a.minPurchaseCents = &minPurchase })

		assert.ErrorIs(t, d.UsableAt(testNow, 9999), discount.ErrMinPurchaseNotMet)
		assert.NoError(t, d.UsableAt(testNow, 10000))
	})
}

func TestNewDiscount(t *testing.T) {
	t.Run("valid percentage discount", func(t *testing.T) {
		d, err := discount.NewDiscount(uuid.New(), "welcome10", "percentage", 10, nil, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", d.Code().String())
		assert.True(t, d.Active())
		assert.Equal(t, int32(0), d.UsedCount())
	})

	t.Run("negative minimum purchase is rejected", func(t *testing.T) {
		minPurchase := int64(-1)
		_, err := discount.NewDiscount(uuid.New(), "SAVE10", "percentage", 10, &minPurchase, nil, nil, nil)
		assert.ErrorIs(t, err, discount.ErrInvalidAmount)
	})
}
