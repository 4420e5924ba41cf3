package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOwnerRequired        = errors.New("order requires a customer ID or a guest session ID")
	ErrOwnerAmbiguous       = errors.New("order cannot have both a customer ID and a guest session ID")
	ErrEmptyItems           = errors.New("order requires at least one item")
	ErrContactEmailRequired = errors.New("order requires a contact email")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// Item is an immutable snapshot of a purchased line. Prices are the
// gateway-validated values at checkout time, never repriced later.
type Item struct {
	ProductID      uuid.UUID
	VariantID      *string
	Name           string
	UnitPriceCents int64
	Quantity       int
}

func (i Item) TotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Address is a point-in-time snapshot, not a reference to a live record.
type Address struct {
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

func (a Address) Validate() error {
	if strings.TrimSpace(a.FullName) == "" ||
		strings.TrimSpace(a.Line1) == "" ||
		strings.TrimSpace(a.City) == "" ||
		strings.TrimSpace(a.PostalCode) == "" ||
		strings.TrimSpace(a.Country) == "" {
		return fmt.Errorf("address requires full name, line1, city, postal code and country")
	}
	return nil
}

type StatusChange struct {
	Status    Status
	Notes     string
	ActorID   *uuid.UUID
	Timestamp time.Time
}

// TransitionResult tells the caller which side effects the transition
// triggers, based on category boundaries rather than exact states.
type TransitionResult struct {
	Changed          bool
	EnteredCompleted bool
	EnteredCancelled bool
}

type Order struct {
	id               uuid.UUID
	orderNumber      string
	customerID       *uuid.UUID
	guestSessionID   *string
	contactEmail     string
	items            []Item
	address          Address
	totals           Totals
	status           Status
	statusHistory    []StatusChange
	discountID       *uuid.UUID
	discountCode     *string
	stockDecremented bool
	createdAt        time.Time
	updatedAt        time.Time
}

func NewOrder(
	id uuid.UUID,
	orderNumber string,
	customerID *uuid.UUID,
	guestSessionID *string,
	contactEmail string,
	items []Item,
	address Address,
	totals Totals,
	discountID *uuid.UUID,
	discountCode *string,
	now time.Time,
) (*Order, error) {
	if customerID != nil && guestSessionID != nil {
		return nil, ErrOwnerAmbiguous
	}
	if customerID == nil && guestSessionID == nil {
		return nil, ErrOwnerRequired
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	if strings.TrimSpace(contactEmail) == "" {
		return nil, ErrContactEmailRequired
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if err := totals.Verify(); err != nil {
		return nil, err
	}

	return &Order{
		id:             id,
		orderNumber:    orderNumber,
		customerID:     customerID,
		guestSessionID: guestSessionID,
		contactEmail:   contactEmail,
		items:          items,
		address:        address,
		totals:         totals,
		status:         StatusPendingPayment,
		statusHistory: []StatusChange{
			{Status: StatusPendingPayment, Notes: "order created", Timestamp: now},
		},
		discountID:   discountID,
		discountCode: discountCode,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// RestoreOrder rebuilds an order from persisted state.
func RestoreOrder(
	id uuid.UUID,
	orderNumber string,
	customerID *uuid.UUID,
	guestSessionID *string,
	contactEmail string,
	items []Item,
	address Address,
	totals Totals,
	status Status,
	statusHistory []StatusChange,
	discountID *uuid.UUID,
	discountCode *string,
	stockDecremented bool,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:               id,
		orderNumber:      orderNumber,
		customerID:       customerID,
		guestSessionID:   guestSessionID,
		contactEmail:     contactEmail,
		items:            items,
		address:          address,
		totals:           totals,
		status:           status,
		statusHistory:    statusHistory,
		discountID:       discountID,
		discountCode:     discountCode,
		stockDecremented: stockDecremented,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Transition moves the order to a new status. Same-status calls are a
// no-op, not an error, which keeps retried admin requests idempotent.
func (o *Order) Transition(target Status, notes string, actorID *uuid.UUID, now time.Time) (TransitionResult, error) {
	if target == o.status {
		return TransitionResult{}, nil
	}
	if !o.status.CanTransitionTo(target) {
		return TransitionResult{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, target)
	}

	fromCategory := o.status.Category()
	toCategory := target.Category()

	o.status = target
	o.statusHistory = append(o.statusHistory, StatusChange{
		Status:    target,
		Notes:     notes,
		ActorID:   actorID,
		Timestamp: now,
	})
	o.updatedAt = now

	return TransitionResult{
		Changed:          true,
		EnteredCompleted: toCategory == CategoryCompleted && fromCategory != CategoryCompleted,
		EnteredCancelled: toCategory == CategoryCancelled && fromCategory != CategoryCancelled,
	}, nil
}

func (o *Order) RecordPointsEarned(points int64, now time.Time) {
	o.totals.LoyaltyPointsEarned = points
	o.updatedAt = now
}

func (o *Order) MarkStockDecremented(now time.Time) {
	o.stockDecremented = true
	o.updatedAt = now
}

func (o *Order) ID() uuid.UUID                 { return o.id }
func (o *Order) OrderNumber() string           { return o.orderNumber }
func (o *Order) CustomerID() *uuid.UUID        { return o.customerID }
func (o *Order) GuestSessionID() *string       { return o.guestSessionID }
func (o *Order) ContactEmail() string          { return o.contactEmail }
func (o *Order) Items() []Item                 { return o.items }
func (o *Order) Address() Address              { return o.address }
func (o *Order) Totals() Totals                { return o.totals }
func (o *Order) Status() Status                { return o.status }
func (o *Order) StatusHistory() []StatusChange { return o.statusHistory }
func (o *Order) DiscountID() *uuid.UUID        { return o.discountID }
func (o *Order) DiscountCode() *string         { return o.discountCode }
func (o *Order) StockDecremented() bool        { return o.stockDecremented }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) UpdatedAt() time.Time          { return o.updatedAt }
