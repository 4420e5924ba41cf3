package commands

import (
	"context"
	"errors"
	"log/slog"

	"shopcore/internal/domain/cart"
	"shopcore/internal/domain/discount"
	"shopcore/internal/domain/loyalty"
	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/pkg/metrics"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart                  = errs.New("cart is empty")
	ErrAddressInvalid             = errs.New("shipping address invalid")
	ErrGuestContactRequired       = errs.New("guest checkout requires a contact email")
	ErrInsufficientStock          = errs.New("insufficient stock")
	ErrDiscountNotFound           = errs.New("discount not found")
	ErrDiscountNotUsable          = errs.New("discount not usable")
	ErrDiscountExhausted          = errs.New("discount usage exhausted")
	ErrInsufficientLoyaltyBalance = errs.New("insufficient loyalty balance")
	ErrGuestLoyaltyNotAllowed     = errs.New("guests cannot spend loyalty points")
	ErrDomainValidation           = errs.New("domain validation error")
	ErrGatewayUnavailable         = errs.New("stock validation unavailable")
	ErrDatabaseOperationFailed    = errs.New("database operation failed")
)

type CheckoutInput struct {
	CustomerID           *uuid.UUID
	GuestSessionID       *string
	GuestEmail           *string
	Address              order.Address
	DiscountCode         *string
	LoyaltyPointsToSpend int64
}

type CheckoutResult struct {
	OrderID     uuid.UUID
	OrderNumber string
	Status      order.Status
	Totals      order.Totals
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow       shared.UnitOfWork
	catalog   CatalogGateway
	identity  IdentityGateway
	carts     CartStore
	publisher EventPublisher
	pricing   config.PricingConfig
	metrics   *metrics.Metrics
	clock     clock.Clock
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	catalog CatalogGateway,
	identity IdentityGateway,
	carts CartStore,
	publisher EventPublisher,
	pricing config.PricingConfig,
	metrics *metrics.Metrics,
	clock clock.Clock,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:       uow,
		catalog:   catalog,
		identity:  identity,
		carts:     carts,
		publisher: publisher,
		pricing:   pricing,
		metrics:   metrics,
		clock:     clock,
	}
}

func (c *checkoutUseCaseImpl) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	result, err := c.checkout(ctx, input)
	if err != nil {
		c.metrics.Checkouts.WithLabelValues("failure").Inc()
		return nil, err
	}
	c.metrics.Checkouts.WithLabelValues("success").Inc()
	return result, nil
}

func (c *checkoutUseCaseImpl) checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	identity, contactEmail, err := c.resolveIdentity(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := input.Address.Validate(); err != nil {
		return nil, errs.Mark(err, ErrAddressInvalid)
	}

	loadedCart, err := c.carts.Get(ctx, identity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if loadedCart == nil || loadedCart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items, subtotalCents, err := c.validateStock(ctx, loadedCart)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	orderID := uuid.New()
	var (
		orderNumber string
		totals      order.Totals
	)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appliedDiscount, discountCents, err := c.applyDiscount(ctx, tx, input.DiscountCode, subtotalCents)
		if err != nil {
			return err
		}

		pointsToSpend, err := c.resolvePointsToSpend(ctx, tx, identity, input.LoyaltyPointsToSpend, subtotalCents, discountCents)
		if err != nil {
			return err
		}

		totals = order.ComputeTotals(
			subtotalCents, discountCents, c.pricing.ShippingFeeCents,
			c.pricing.TaxRatePercent, pointsToSpend, loyalty.PointValueCents,
		)

		var discountID *uuid.UUID
		var discountCode *string
		if appliedDiscount != nil {
			id := appliedDiscount.ID()
			code := appliedDiscount.Code().String()
			discountID = &id
			discountCode = &code
		}

		orderEntity, err := order.NewOrder(
			orderID, "", identity.CustomerID(), identity.SessionID(), contactEmail,
			items, input.Address, totals, discountID, discountCode, now,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		// Payment is settled synchronously for in-scope flows, so the
		// order enters processing within the same transaction.
		if _, err := orderEntity.Transition(order.StatusProcessing, "payment settled", nil, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		orderNumber, err = tx.Orders().Create(ctx, tx.DB(), orderEntity)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if appliedDiscount != nil {
			if err := tx.Discounts().Reserve(ctx, tx.DB(), appliedDiscount.ID()); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return ErrDiscountExhausted
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if pointsToSpend > 0 {
			if err := spendPointsForOrder(ctx, tx, *identity.CustomerID(), orderID, pointsToSpend); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.runPostCommitEffects(ctx, identity, orderID, orderNumber, contactEmail, items, totals)

	return &CheckoutResult{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Status:      order.StatusProcessing,
		Totals:      totals,
	}, nil
}

func (c *checkoutUseCaseImpl) resolveIdentity(ctx context.Context, input CheckoutInput) (cart.Identity, string, error) {
	identity, err := cart.NewIdentity(input.CustomerID, input.GuestSessionID)
	if err != nil {
		return cart.Identity{}, "", errs.Mark(err, ErrDomainValidation)
	}

	if identity.IsCustomer() {
		profile, err := c.identity.GetProfile(ctx, *identity.CustomerID())
		if err != nil {
			return cart.Identity{}, "", errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return identity, profile.Email, nil
	}

	if input.GuestEmail == nil || *input.GuestEmail == "" {
		return cart.Identity{}, "", ErrGuestContactRequired
	}

	// Register the guest contact so the order can be claimed later.
	// The order is keyed by session, so a failure never blocks checkout.
	if _, err := c.identity.FindOrCreateGuest(ctx, *input.GuestEmail, input.Address.FullName); err != nil {
		slog.Warn("guest contact registration failed",
			"session_id", *identity.SessionID(), "error", err)
	}
	return identity, *input.GuestEmail, nil
}

// validateStock re-prices every line against the catalog service and
// fails closed on any unavailable quantity.
func (c *checkoutUseCaseImpl) validateStock(ctx context.Context, loadedCart *cart.Cart) ([]order.Item, int64, error) {
	validated, err := c.catalog.ValidateItems(ctx, loadedCart.Lines())
	if err != nil {
		return nil, 0, errs.Mark(err, ErrGatewayUnavailable)
	}

	items := make([]order.Item, 0, len(validated))
	var subtotalCents int64
	for _, v := range validated {
		if !v.InStock {
			return nil, 0, errs.Mark(
				errs.New("insufficient stock for "+v.Name),
				ErrInsufficientStock,
			)
		}
		item := order.Item{
			ProductID:      v.ProductID,
			VariantID:      v.VariantID,
			Name:           v.Name,
			UnitPriceCents: v.UnitPriceCents,
			Quantity:       v.Quantity,
		}
		items = append(items, item)
		subtotalCents += item.TotalCents()
	}
	return items, subtotalCents, nil
}

func (c *checkoutUseCaseImpl) applyDiscount(
	ctx context.Context,
	tx shared.Tx,
	code *string,
	subtotalCents int64,
) (*discount.Discount, int64, error) {
	if code == nil || *code == "" {
		return nil, 0, nil
	}

	normalized, err := discount.NewCode(*code)
	if err != nil {
		return nil, 0, errs.Mark(err, ErrDiscountNotFound)
	}

	d, err := tx.Reads().DiscountByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, 0, ErrDiscountNotFound
		}
		return nil, 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := d.UsableAt(c.clock.Now(), subtotalCents); err != nil {
		if errors.Is(err, discount.ErrUsageExhausted) {
			return nil, 0, errs.Mark(err, ErrDiscountExhausted)
		}
		return nil, 0, errs.Mark(err, ErrDiscountNotUsable)
	}

	return d, d.AmountCents(subtotalCents), nil
}

// resolvePointsToSpend validates the requested spend and caps it so the
// point value never exceeds the provisional total.
func (c *checkoutUseCaseImpl) resolvePointsToSpend(
	ctx context.Context,
	tx shared.Tx,
	identity cart.Identity,
	requested int64,
	subtotalCents, discountCents int64,
) (int64, error) {
	if requested <= 0 {
		return 0, nil
	}
	if !identity.IsCustomer() {
		return 0, ErrGuestLoyaltyNotAllowed
	}

	account, err := tx.Loyalty().GetOrCreateAccount(ctx, tx.DB(), *identity.CustomerID())
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := account.CanSpend(requested); err != nil {
		return 0, errs.Mark(err, ErrInsufficientLoyaltyBalance)
	}

	taxCents := order.TaxCents(subtotalCents-discountCents, c.pricing.TaxRatePercent)
	provisional := subtotalCents - discountCents + taxCents + c.pricing.ShippingFeeCents
	maxPoints := provisional / loyalty.PointValueCents
	if requested > maxPoints {
		return maxPoints, nil
	}
	return requested, nil
}

// runPostCommitEffects performs the best-effort work after the order is
// durable. Failures here never surface to the caller.
func (c *checkoutUseCaseImpl) runPostCommitEffects(
	ctx context.Context,
	identity cart.Identity,
	orderID uuid.UUID,
	orderNumber string,
	contactEmail string,
	items []order.Item,
	totals order.Totals,
) {
	if err := c.carts.Delete(ctx, identity); err != nil {
		slog.Warn("failed to clear cart after checkout",
			"order_id", orderID, "error", err)
	}

	c.decrementStock(ctx, orderID, items)

	envelope := shared.Envelope{
		EventType:      shared.EventOrderConfirmation,
		RecipientEmail: contactEmail,
		Data: map[string]any{
			"orderId":         orderID.String(),
			"orderNumber":     orderNumber,
			"finalTotalCents": totals.FinalTotalCents,
		},
		PublishedAt: c.clock.Now(),
	}
	if err := c.publisher.Publish(ctx, envelope); err != nil {
		c.metrics.PublishedEvents.WithLabelValues(shared.EventOrderConfirmation, "failure").Inc()
		slog.Error("failed to publish order confirmation",
			"order_id", orderID, "order_number", orderNumber, "error", err)
		return
	}
	c.metrics.PublishedEvents.WithLabelValues(shared.EventOrderConfirmation, "success").Inc()
}

// decrementStock is a known compensating-action gap: a failure after the
// committed order can oversell until reconciliation.
func (c *checkoutUseCaseImpl) decrementStock(ctx context.Context, orderID uuid.UUID, items []order.Item) {
	decrements := make([]StockDecrement, 0, len(items))
	for _, item := range items {
		decrements = append(decrements, StockDecrement{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	if err := c.catalog.DecrementStock(ctx, decrements); err != nil {
		c.metrics.StockDecrementFailures.Inc()
		slog.Error("stock decrement failed after committed order",
			"order_id", orderID, "error", err)
		return
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().MarkStockDecremented(ctx, tx.DB(), orderID)
	})
	if err != nil {
		slog.Warn("failed to flag stock decrement on order",
			"order_id", orderID, "error", err)
	}
}
