package response

import (
	"shopcore/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	OrderID            uuid.UUID `json:"orderId"`
	OrderNumber        string    `json:"orderNumber"`
	Status             string    `json:"status"`
	SubtotalCents      int64     `json:"subtotalCents"`
	DiscountCents      int64     `json:"discountCents"`
	TaxCents           int64     `json:"taxCents"`
	ShippingFeeCents   int64     `json:"shippingFeeCents"`
	LoyaltyPointsSpent int64     `json:"loyaltyPointsSpent"`
	LoyaltyValueCents  int64     `json:"loyaltyValueCents"`
	FinalTotalCents    int64     `json:"finalTotalCents"`
}

func FromCheckoutResult(result *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		OrderID:            result.OrderID,
		OrderNumber:        result.OrderNumber,
		Status:             result.Status.String(),
		SubtotalCents:      result.Totals.SubtotalCents,
		DiscountCents:      result.Totals.DiscountCents,
		TaxCents:           result.Totals.TaxCents,
		ShippingFeeCents:   result.Totals.ShippingFeeCents,
		LoyaltyPointsSpent: result.Totals.LoyaltyPointsSpent,
		LoyaltyValueCents:  result.Totals.LoyaltyValueCents,
		FinalTotalCents:    result.Totals.FinalTotalCents,
	}
}
