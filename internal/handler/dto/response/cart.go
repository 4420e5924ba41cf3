package response

import (
	"time"

	"shopcore/internal/domain/cart"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	VariantID      *string   `json:"variantId,omitempty"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	TotalCents     int64     `json:"totalCents"`
}

type CartResponse struct {
	Lines         []CartLineResponse `json:"lines"`
	SubtotalCents int64              `json:"subtotalCents"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func FromCart(c *cart.Cart) *CartResponse {
	lines := make([]CartLineResponse, 0, len(c.Lines()))
	for _, line := range c.Lines() {
		lines = append(lines, CartLineResponse{
			ProductID:      line.ProductID(),
			VariantID:      line.VariantID(),
			Name:           line.Name(),
			UnitPriceCents: line.UnitPriceCents(),
			Quantity:       line.Quantity(),
			TotalCents:     line.TotalCents(),
		})
	}
	return &CartResponse{
		Lines:         lines,
		SubtotalCents: c.SubtotalCents(),
		UpdatedAt:     c.UpdatedAt(),
	}
}
