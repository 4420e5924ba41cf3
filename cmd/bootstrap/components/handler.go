package components

import (
	"shopcore/internal/handler"
	"shopcore/internal/handler/api"
	"shopcore/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		api.NewLoyaltyHandler,
		api.NewDiscountHandler,
		api.NewAdminOrderHandler,
		api.NewAdminDiscountHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
	loyalty *api.LoyaltyHandler,
	discount *api.DiscountHandler,
	adminOrder *api.AdminOrderHandler,
	adminDiscount *api.AdminDiscountHandler,
) handler.Handlers {
	return handler.Handlers{
		Cart:          cart,
		Checkout:      checkout,
		Order:         order,
		Loyalty:       loyalty,
		Discount:      discount,
		AdminOrder:    adminOrder,
		AdminDiscount: adminDiscount,
	}
}
