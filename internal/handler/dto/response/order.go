package response

import (
	"time"

	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	VariantID      *string   `json:"variantId,omitempty"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
}

type AddressResponse struct {
	FullName   string `json:"fullName"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type StatusChangeResponse struct {
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	ActorID   *uuid.UUID `json:"actorId,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

type OrderResponse struct {
	ID                  uuid.UUID              `json:"id"`
	OrderNumber         string                 `json:"orderNumber"`
	CustomerID          *uuid.UUID             `json:"customerId,omitempty"`
	ContactEmail        string                 `json:"contactEmail"`
	Status              string                 `json:"status"`
	Items               []OrderItemResponse    `json:"items"`
	Address             AddressResponse        `json:"address"`
	SubtotalCents       int64                  `json:"subtotalCents"`
	DiscountCents       int64                  `json:"discountCents"`
	TaxCents            int64                  `json:"taxCents"`
	ShippingFeeCents    int64                  `json:"shippingFeeCents"`
	LoyaltyPointsSpent  int64                  `json:"loyaltyPointsSpent"`
	LoyaltyValueCents   int64                  `json:"loyaltyValueCents"`
	LoyaltyPointsEarned int64                  `json:"loyaltyPointsEarned"`
	FinalTotalCents     int64                  `json:"finalTotalCents"`
	DiscountCode        *string                `json:"discountCode,omitempty"`
	StatusHistory       []StatusChangeResponse `json:"statusHistory"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

type OrderListItemResponse struct {
	ID              uuid.UUID `json:"id"`
	OrderNumber     string    `json:"orderNumber"`
	Status          string    `json:"status"`
	FinalTotalCents int64     `json:"finalTotalCents"`
	ItemCount       int       `json:"itemCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type OrderListResponse struct {
	Orders     []OrderListItemResponse `json:"orders"`
	NextCursor *string                 `json:"nextCursor,omitempty"`
}

// FromOrderView maps by field name; the view and response structs are
// kept shape-compatible so copier covers the nested slices too.
func FromOrderView(rm *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromOrderList(rows []*queries.OrderListItem, next *queries.Cursor) *OrderListResponse {
	orders := make([]OrderListItemResponse, 0, len(rows))
	_ = copier.Copy(&orders, rows)

	resp := &OrderListResponse{Orders: orders}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}

type SetOrderStatusResponse struct {
	OrderID        uuid.UUID `json:"orderId"`
	OrderNumber    string    `json:"orderNumber"`
	Status         string    `json:"status"`
	Changed        bool      `json:"changed"`
	PointsAwarded  int64     `json:"pointsAwarded"`
	PointsReversed int64     `json:"pointsReversed"`
}
