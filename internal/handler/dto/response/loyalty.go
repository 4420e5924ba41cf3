package response

import (
	"time"

	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoyaltyAccountResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	Balance    int64     `json:"balance"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type LoyaltyTransactionResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Type                  string     `json:"type"`
	PointsChange          int64      `json:"pointsChange"`
	PointValueCents       int64      `json:"pointValueCents"`
	OrderID               *uuid.UUID `json:"orderId,omitempty"`
	ReversesTransactionID *uuid.UUID `json:"reversesTransactionId,omitempty"`
	Description           string     `json:"description,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

type AdjustPointsResponse struct {
	AccountID  uuid.UUID `json:"accountId"`
	NewBalance int64     `json:"newBalance"`
}

func FromLoyaltyAccountView(rm *queries.LoyaltyAccountView) *LoyaltyAccountResponse {
	return &LoyaltyAccountResponse{
		ID:         rm.ID,
		CustomerID: rm.CustomerID,
		Balance:    rm.Balance,
		UpdatedAt:  rm.UpdatedAt,
	}
}

func FromLoyaltyTransactionView(rm *queries.LoyaltyTransactionView) *LoyaltyTransactionResponse {
	return &LoyaltyTransactionResponse{
		ID:                    rm.ID,
		Type:                  rm.Type,
		PointsChange:          rm.PointsChange,
		PointValueCents:       rm.PointValueCents,
		OrderID:               rm.OrderID,
		ReversesTransactionID: rm.ReversesTransactionID,
		Description:           rm.Description,
		CreatedAt:             rm.CreatedAt,
	}
}
