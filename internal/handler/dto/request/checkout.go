package request

import (
	"strings"

	"shopcore/internal/domain/order"
)

type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone,omitempty"`
}

func (r AddressRequest) ToDomain() order.Address {
	return order.Address{
		FullName:   strings.TrimSpace(r.FullName),
		Line1:      strings.TrimSpace(r.Line1),
		Line2:      strings.TrimSpace(r.Line2),
		City:       strings.TrimSpace(r.City),
		State:      strings.TrimSpace(r.State),
		PostalCode: strings.TrimSpace(r.PostalCode),
		Country:    strings.TrimSpace(r.Country),
		Phone:      strings.TrimSpace(r.Phone),
	}
}

type CheckoutRequest struct {
	Address              AddressRequest `json:"address" binding:"required"`
	GuestEmail           *string        `json:"guest_email,omitempty"`
	DiscountCode         *string        `json:"discount_code,omitempty"`
	LoyaltyPointsToSpend int64          `json:"loyalty_points_to_spend"`
}

func (r CheckoutRequest) GetDiscountCode() *string {
	if r.DiscountCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.DiscountCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CheckoutRequest) GetGuestEmail() *string {
	if r.GuestEmail == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.GuestEmail)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
