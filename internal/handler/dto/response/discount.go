package response

import (
	"time"

	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
)

type DiscountResponse struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	Type             string     `json:"type"`
	Value            float64    `json:"value"`
	MinPurchaseCents *int64     `json:"minPurchaseCents,omitempty"`
	MaxUsage         *int32     `json:"maxUsage,omitempty"`
	UsedCount        int32      `json:"usedCount"`
	Active           bool       `json:"active"`
	ValidFrom        *time.Time `json:"validFrom,omitempty"`
	ValidTo          *time.Time `json:"validTo,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func FromDiscountView(rm *queries.DiscountView) *DiscountResponse {
	return &DiscountResponse{
		ID:               rm.ID,
		Code:             rm.Code,
		Type:             rm.Type,
		Value:            rm.Value,
		MinPurchaseCents: rm.MinPurchaseCents,
		MaxUsage:         rm.MaxUsage,
		UsedCount:        rm.UsedCount,
		Active:           rm.Active,
		ValidFrom:        rm.ValidFrom,
		ValidTo:          rm.ValidTo,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}
