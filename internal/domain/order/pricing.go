package order

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrTotalsMismatch = errors.New("order totals do not reconcile")

// Totals is the financial breakdown snapshotted onto an order.
type Totals struct {
	SubtotalCents       int64
	DiscountCents       int64
	TaxCents            int64
	ShippingFeeCents    int64
	LoyaltyPointsSpent  int64
	LoyaltyValueCents   int64
	LoyaltyPointsEarned int64
	FinalTotalCents     int64
}

// TaxCents computes tax on the discounted subtotal, rounded to whole cents.
func TaxCents(taxableCents int64, ratePercent float64) int64 {
	return decimal.NewFromInt(taxableCents).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// ComputeTotals builds the breakdown from its inputs. Points value is
// clamped so the final total never goes negative.
func ComputeTotals(
	subtotalCents, discountCents, shippingFeeCents int64,
	taxRatePercent float64,
	pointsSpent int64,
	pointValueCents int64,
) Totals {
	if discountCents > subtotalCents {
		discountCents = subtotalCents
	}
	taxCents := TaxCents(subtotalCents-discountCents, taxRatePercent)
	provisional := subtotalCents - discountCents + taxCents + shippingFeeCents

	pointsValue := pointsSpent * pointValueCents
	if pointsValue > provisional {
		pointsValue = provisional
	}

	final := provisional - pointsValue
	if final < 0 {
		final = 0
	}

	return Totals{
		SubtotalCents:      subtotalCents,
		DiscountCents:      discountCents,
		TaxCents:           taxCents,
		ShippingFeeCents:   shippingFeeCents,
		LoyaltyPointsSpent: pointsSpent,
		LoyaltyValueCents:  pointsValue,
		FinalTotalCents:    final,
	}
}

// Verify checks the reconciliation invariant:
// finalTotal = subtotal - discount + tax + shipping - pointsValue, >= 0.
func (t Totals) Verify() error {
	expected := t.SubtotalCents - t.DiscountCents + t.TaxCents + t.ShippingFeeCents - t.LoyaltyValueCents
	if expected < 0 {
		expected = 0
	}
	if t.FinalTotalCents != expected || t.FinalTotalCents < 0 {
		return ErrTotalsMismatch
	}
	return nil
}
