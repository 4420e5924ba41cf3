package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type OrderItemView struct {
	ProductID      uuid.UUID `json:"product_id"`
	VariantID      *string   `json:"variant_id,omitempty"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
}

type AddressView struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type StatusChangeView struct {
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

type OrderView struct {
	ID                  uuid.UUID          `json:"id"`
	OrderNumber         string             `json:"order_number"`
	CustomerID          *uuid.UUID         `json:"customer_id,omitempty"`
	GuestSessionID      *string            `json:"guest_session_id,omitempty"`
	ContactEmail        string             `json:"contact_email"`
	Status              string             `json:"status"`
	Items               []OrderItemView    `json:"items"`
	Address             AddressView        `json:"address"`
	SubtotalCents       int64              `json:"subtotal_cents"`
	DiscountCents       int64              `json:"discount_cents"`
	TaxCents            int64              `json:"tax_cents"`
	ShippingFeeCents    int64              `json:"shipping_fee_cents"`
	LoyaltyPointsSpent  int64              `json:"loyalty_points_spent"`
	LoyaltyValueCents   int64              `json:"loyalty_value_cents"`
	LoyaltyPointsEarned int64              `json:"loyalty_points_earned"`
	FinalTotalCents     int64              `json:"final_total_cents"`
	DiscountCode        *string            `json:"discount_code,omitempty"`
	StatusHistory       []StatusChangeView `json:"status_history"`
	StockDecremented    bool               `json:"stock_decremented"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

type OrderListItem struct {
	ID              uuid.UUID `json:"id"`
	OrderNumber     string    `json:"order_number"`
	Status          string    `json:"status"`
	FinalTotalCents int64     `json:"final_total_cents"`
	ItemCount       int       `json:"item_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type LoyaltyAccountView struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Balance    int64     `json:"balance"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LoyaltyTransactionView struct {
	ID                    uuid.UUID  `json:"id"`
	Type                  string     `json:"type"`
	PointsChange          int64      `json:"points_change"`
	PointValueCents       int64      `json:"point_value_cents"`
	OrderID               *uuid.UUID `json:"order_id,omitempty"`
	ReversesTransactionID *uuid.UUID `json:"reverses_transaction_id,omitempty"`
	Description           string     `json:"description,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type DiscountView struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	Type             string     `json:"type"`
	Value            float64    `json:"value"`
	MinPurchaseCents *int64     `json:"min_purchase_cents,omitempty"`
	MaxUsage         *int32     `json:"max_usage,omitempty"`
	UsedCount        int32      `json:"used_count"`
	Active           bool       `json:"active"`
	ValidFrom        *time.Time `json:"valid_from,omitempty"`
	ValidTo          *time.Time `json:"valid_to,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
