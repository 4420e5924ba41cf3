package discount

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInactive          = errors.New("discount is inactive")
	ErrNotYetValid       = errors.New("discount is not yet valid")
	ErrExpired           = errors.New("discount has expired")
	ErrUsageExhausted    = errors.New("discount usage limit reached")
	ErrMinPurchaseNotMet = errors.New("order subtotal below the discount minimum")
)

type Discount struct {
	id               uuid.UUID
	code             Code
	value            Value
	minPurchaseCents *int64
	maxUsage         *int32
	usedCount        int32
	active           bool
	validFrom        *time.Time
	validTo          *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewDiscount(
	id uuid.UUID,
	code string,
	discountType string,
	amount float64,
	minPurchaseCents *int64,
	maxUsage *int32,
	validFrom, validTo *time.Time,
) (*Discount, error) {
	discountCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	parsedType, err := NewType(discountType)
	if err != nil {
		return nil, err
	}

	value, err := NewValue(parsedType, amount)
	if err != nil {
		return nil, err
	}

	if minPurchaseCents != nil && *minPurchaseCents < 0 {
		return nil, ErrInvalidAmount
	}

	return &Discount{
		id:               id,
		code:             discountCode,
		value:            value,
		minPurchaseCents: minPurchaseCents,
		maxUsage:         maxUsage,
		active:           true,
		validFrom:        validFrom,
		validTo:          validTo,
	}, nil
}

// Restore rebuilds a discount from persisted state without re-running
// creation validation.
func Restore(
	id uuid.UUID,
	code Code,
	value Value,
	minPurchaseCents *int64,
	maxUsage *int32,
	usedCount int32,
	active bool,
	validFrom, validTo *time.Time,
	createdAt, updatedAt time.Time,
) *Discount {
	return &Discount{
		id:               id,
		code:             code,
		value:            value,
		minPurchaseCents: minPurchaseCents,
		maxUsage:         maxUsage,
		usedCount:        usedCount,
		active:           active,
		validFrom:        validFrom,
		validTo:          validTo,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// UsableAt reports whether the discount can be applied to an order with
// the given subtotal at the given moment. The returned error names the
// first failed condition.
func (d *Discount) UsableAt(t time.Time, subtotalCents int64) error {
	if !d.active {
		return ErrInactive
	}
	if d.validFrom != nil && t.Before(*d.validFrom) {
		return ErrNotYetValid
	}
	if d.validTo != nil && t.After(*d.validTo) {
		return ErrExpired
	}
	if d.maxUsage != nil && d.usedCount >= *d.maxUsage {
		return ErrUsageExhausted
	}
	if d.minPurchaseCents != nil && subtotalCents < *d.minPurchaseCents {
		return ErrMinPurchaseNotMet
	}
	return nil
}

func (d *Discount) AmountCents(subtotalCents int64) int64 {
	return d.value.AmountCents(subtotalCents)
}

func (d *Discount) ID() uuid.UUID            { return d.id }
func (d *Discount) Code() Code               { return d.code }
func (d *Discount) Value() Value             { return d.value }
func (d *Discount) MinPurchaseCents() *int64 { return d.minPurchaseCents }
func (d *Discount) MaxUsage() *int32         { return d.maxUsage }
func (d *Discount) UsedCount() int32         { return d.usedCount }
func (d *Discount) Active() bool             { return d.active }
func (d *Discount) ValidFrom() *time.Time    { return d.validFrom }
func (d *Discount) ValidTo() *time.Time      { return d.validTo }
func (d *Discount) CreatedAt() time.Time     { return d.createdAt }
func (d *Discount) UpdatedAt() time.Time     { return d.updatedAt }
