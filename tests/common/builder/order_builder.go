//go:build unit || e2e

package builder

import (
	"time"

	"shopcore/internal/domain/order"
	reqdto "shopcore/internal/handler/dto/request"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	OrderID         uuid.UUID
	OrderNumber     string
	CustomerID      uuid.UUID
	ContactEmail    string
	Status          string
	SubtotalCents   int64
	FinalTotalCents int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Now()
	return &OrderBuilder{
		OrderID:         uuid.New(),
		OrderNumber:     "ORD-000042",
		CustomerID:      uuid.New(),
		ContactEmail:    "customer@example.com",
		Status:          order.StatusProcessing.String(),
		SubtotalCents:   13000,
		FinalTotalCents: 14040,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		Address: reqdto.AddressRequest{
			FullName:   "Ada Lovelace",
			Line1:      "1 Analytical Way",
			City:       "London",
			PostalCode: "EC1A 1AA",
			Country:    "GB",
		},
	}
}

func (b *OrderBuilder) BuildCheckoutResult() *commands.CheckoutResult {
	return &commands.CheckoutResult{
		OrderID:     b.OrderID,
		OrderNumber: b.OrderNumber,
		Status:      order.StatusProcessing,
		Totals: order.Totals{
			SubtotalCents:   b.SubtotalCents,
			TaxCents:        1040,
			FinalTotalCents: b.FinalTotalCents,
		},
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	return &queries.OrderView{
		ID:           b.OrderID,
		OrderNumber:  b.OrderNumber,
		CustomerID:   &b.CustomerID,
		ContactEmail: b.ContactEmail,
		Status:       b.Status,
		Items: []queries.OrderItemView{
			{ProductID: uuid.New(), Name: "Widget", UnitPriceCents: 6500, Quantity: 2},
		},
		Address: queries.AddressView{
			FullName:   "Ada Lovelace",
			Line1:      "1 Analytical Way",
			City:       "London",
			PostalCode: "EC1A 1AA",
			Country:    "GB",
		},
		SubtotalCents:   b.SubtotalCents,
		TaxCents:        1040,
		FinalTotalCents: b.FinalTotalCents,
		StatusHistory: []queries.StatusChangeView{
			{Status: order.StatusPendingPayment.String(), Timestamp: b.CreatedAt},
			{Status: b.Status, Timestamp: b.UpdatedAt},
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *OrderBuilder) BuildListItem() *queries.OrderListItem {
	return &queries.OrderListItem{
		ID:              uuid.New(),
		OrderNumber:     b.OrderNumber,
		Status:          b.Status,
		FinalTotalCents: b.FinalTotalCents,
		ItemCount:       2,
		CreatedAt:       b.CreatedAt,
	}
}

func (b *OrderBuilder) BuildSetStatusResult(status order.Status, changed bool) *commands.SetStatusResult {
	return &commands.SetStatusResult{
		OrderID:     b.OrderID,
		OrderNumber: b.OrderNumber,
		Status:      status,
		Changed:     changed,
	}
}
