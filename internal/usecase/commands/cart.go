package commands

import (
	"context"
	"errors"
	"log/slog"

	"shopcore/internal/domain/cart"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCartLineNotFound   = errs.New("cart line not found")
	ErrProductNotFound    = errs.New("product not found")
	ErrProductUnavailable = errs.New("product unavailable in requested quantity")
)

type CartIdentityInput struct {
	CustomerID *uuid.UUID
	SessionID  *string
}

func (i CartIdentityInput) resolve() (cart.Identity, error) {
	identity, err := cart.NewIdentity(i.CustomerID, i.SessionID)
	if err != nil {
		return cart.Identity{}, errs.Mark(err, ErrDomainValidation)
	}
	return identity, nil
}

type AddItemInput struct {
	ProductID uuid.UUID
	VariantID *string
	Quantity  int
}

type CartCommands interface {
	GetCart(ctx context.Context, identity CartIdentityInput) (*cart.Cart, error)
	AddItem(ctx context.Context, identity CartIdentityInput, input AddItemInput) (*cart.Cart, error)
	UpdateItem(ctx context.Context, identity CartIdentityInput, key cart.LineKey, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, identity CartIdentityInput, key cart.LineKey) (*cart.Cart, error)
	ClearCart(ctx context.Context, identity CartIdentityInput) error
	// MergeGuestCart folds a guest session's cart into the customer's on
	// login and discards the guest copy.
	MergeGuestCart(ctx context.Context, customerID uuid.UUID, sessionID string) (*cart.Cart, error)
}

type cartUseCaseImpl struct {
	carts   CartStore
	catalog CatalogGateway
	clock   clock.Clock
}

func NewCartUseCase(carts CartStore, catalog CatalogGateway, clock clock.Clock) CartCommands {
	return &cartUseCaseImpl{
		carts:   carts,
		catalog: catalog,
		clock:   clock,
	}
}

func (c *cartUseCaseImpl) GetCart(ctx context.Context, identityInput CartIdentityInput) (*cart.Cart, error) {
	identity, err := identityInput.resolve()
	if err != nil {
		return nil, err
	}
	return c.load(ctx, identity)
}

func (c *cartUseCaseImpl) AddItem(ctx context.Context, identityInput CartIdentityInput, input AddItemInput) (*cart.Cart, error) {
	identity, err := identityInput.resolve()
	if err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, errs.Mark(cart.ErrInvalidQuantity, ErrDomainValidation)
	}

	product, err := c.catalog.GetProduct(ctx, input.ProductID, input.VariantID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}
	if product.Available < input.Quantity {
		return nil, ErrProductUnavailable
	}

	loaded, err := c.load(ctx, identity)
	if err != nil {
		return nil, err
	}

	line, err := cart.NewLine(product.ProductID, product.VariantID, product.Name, product.PriceCents, input.Quantity)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	loaded.AddLine(line, c.clock.Now())

	if err := c.carts.Save(ctx, loaded); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return loaded, nil
}

func (c *cartUseCaseImpl) UpdateItem(ctx context.Context, identityInput CartIdentityInput, key cart.LineKey, quantity int) (*cart.Cart, error) {
	identity, err := identityInput.resolve()
	if err != nil {
		return nil, err
	}

	loaded, err := c.load(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := loaded.UpdateQuantity(key, quantity, c.clock.Now()); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			return nil, ErrCartLineNotFound
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.carts.Save(ctx, loaded); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return loaded, nil
}

func (c *cartUseCaseImpl) RemoveItem(ctx context.Context, identityInput CartIdentityInput, key cart.LineKey) (*cart.Cart, error) {
	identity, err := identityInput.resolve()
	if err != nil {
		return nil, err
	}

	loaded, err := c.load(ctx, identity)
	if err != nil {
		return nil, err
	}

	loaded.RemoveLine(key, c.clock.Now())

	if err := c.carts.Save(ctx, loaded); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return loaded, nil
}

func (c *cartUseCaseImpl) ClearCart(ctx context.Context, identityInput CartIdentityInput) error {
	identity, err := identityInput.resolve()
	if err != nil {
		return err
	}
	if err := c.carts.Delete(ctx, identity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *cartUseCaseImpl) MergeGuestCart(ctx context.Context, customerID uuid.UUID, sessionID string) (*cart.Cart, error) {
	guestIdentity, err := cart.NewGuestIdentity(sessionID)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	customerIdentity := cart.NewCustomerIdentity(customerID)

	guestCart, err := c.carts.Get(ctx, guestIdentity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	customerCart, err := c.load(ctx, customerIdentity)
	if err != nil {
		return nil, err
	}

	if guestCart == nil || guestCart.IsEmpty() {
		return customerCart, nil
	}

	customerCart.MergeFrom(guestCart, c.clock.Now())
	if err := c.carts.Save(ctx, customerCart); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Guest copy is disposable once merged.
	if err := c.carts.Delete(ctx, guestIdentity); err != nil {
		slog.Warn("failed to delete guest cart after merge",
			"customer_id", customerID, "error", err)
	}
	return customerCart, nil
}

func (c *cartUseCaseImpl) load(ctx context.Context, identity cart.Identity) (*cart.Cart, error) {
	loaded, err := c.carts.Get(ctx, identity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if loaded == nil {
		return cart.NewCart(identity), nil
	}
	return loaded, nil
}
