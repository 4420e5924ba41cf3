package commands

import (
	"context"

	"shopcore/internal/domain/cart"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

// ValidatedItem is a cart line re-priced and stock-checked by the
// catalog service. Its price, not the stale cart price, is snapshotted
// onto the order.
type ValidatedItem struct {
	ProductID      uuid.UUID
	VariantID      *string
	Name           string
	UnitPriceCents int64
	Quantity       int
	InStock        bool
	Available      int
}

// Product is the catalog view of a sellable item, priced at read time.
type Product struct {
	ProductID  uuid.UUID
	VariantID  *string
	Name       string
	PriceCents int64
	Available  int
}

// CatalogGateway is the stock and pricing authority. A gateway timeout
// during validation fails the checkout (fail-closed).
type CatalogGateway interface {
	GetProduct(ctx context.Context, productID uuid.UUID, variantID *string) (*Product, error)
	ValidateItems(ctx context.Context, lines []cart.Line) ([]ValidatedItem, error)
	DecrementStock(ctx context.Context, items []StockDecrement) error
}

type StockDecrement struct {
	ProductID uuid.UUID
	VariantID *string
	Quantity  int
}

type CustomerProfile struct {
	ID    uuid.UUID
	Email string
	Name  string
}

type IdentityGateway interface {
	GetProfile(ctx context.Context, customerID uuid.UUID) (*CustomerProfile, error)
	// FindOrCreateGuest registers a guest contact with the identity
	// service and returns the bookkeeping customer id. Guest orders
	// stay keyed by session, so callers treat this as best-effort.
	FindOrCreateGuest(ctx context.Context, email, fullName string) (uuid.UUID, error)
}

type CartStore interface {
	Get(ctx context.Context, identity cart.Identity) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, identity cart.Identity) error
}

type EventPublisher interface {
	Publish(ctx context.Context, envelope shared.Envelope) error
}
