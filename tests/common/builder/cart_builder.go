//go:build unit || e2e

package builder

import (
	"time"

	"shopcore/internal/domain/cart"
	reqdto "shopcore/internal/handler/dto/request"

	"github.com/google/uuid"
)

type CartBuilder struct {
	CustomerID     uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	UnitPriceCents int64
	Quantity       int
	UpdatedAt      time.Time
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{
		CustomerID:     uuid.New(),
		ProductID:      uuid.New(),
		ProductName:    "Widget",
		UnitPriceCents: 6500,
		Quantity:       2,
		UpdatedAt:      time.Now(),
	}
}

func (b *CartBuilder) With(mutate func(*CartBuilder)) *CartBuilder {
	mutate(b)
	return b
}

func (b *CartBuilder) BuildDomain() *cart.Cart {
	line, _ := cart.NewLine(b.ProductID, nil, b.ProductName, b.UnitPriceCents, b.Quantity)
	return cart.RestoreCart(cart.NewCustomerIdentity(b.CustomerID), []cart.Line{line}, b.UpdatedAt)
}

func (b *CartBuilder) BuildEmptyDomain() *cart.Cart {
	return cart.NewCart(cart.NewCustomerIdentity(b.CustomerID))
}

func (b *CartBuilder) BuildAddItemRequestDTO() reqdto.AddCartItemRequest {
	return reqdto.AddCartItemRequest{
		ProductID: b.ProductID,
		Quantity:  b.Quantity,
	}
}
