package request

import (
	"time"
)

type CreateDiscountRequest struct {
	Code             string     `json:"code" binding:"required"`
	Type             string     `json:"type" binding:"required"`
	Value            float64    `json:"value" binding:"required,gt=0"`
	MinPurchaseCents *int64     `json:"min_purchase_cents,omitempty"`
	MaxUsage         *int32     `json:"max_usage,omitempty"`
	ValidFrom        *time.Time `json:"valid_from,omitempty"`
	ValidTo          *time.Time `json:"valid_to,omitempty"`
}
