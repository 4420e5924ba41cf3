package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopcore/internal/handler/api"
	"shopcore/internal/handler/middleware"
	"shopcore/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Cart          *api.CartHandler
	Checkout      *api.CheckoutHandler
	Order         *api.OrderHandler
	Loyalty       *api.LoyaltyHandler
	Discount      *api.DiscountHandler
	AdminOrder    *api.AdminOrderHandler
	AdminDiscount *api.AdminDiscountHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, registry *prometheus.Registry) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, registry)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, handlers Handlers, authMiddleware *middleware.AuthMiddleware, registry *prometheus.Registry) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		cartGroup := apiGroup.Group("/cart")
		cartGroup.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(cartGroup, []route{
				{Method: http.MethodGet, Path: "", Handler: handlers.Cart.GetCart},
				{Method: http.MethodDelete, Path: "", Handler: handlers.Cart.ClearCart},
				{Method: http.MethodPost, Path: "/items", Handler: handlers.Cart.AddItem},
				{Method: http.MethodPut, Path: "/items/:productId", Handler: handlers.Cart.UpdateItem},
				{Method: http.MethodDelete, Path: "/items/:productId", Handler: handlers.Cart.RemoveItem},
			})

			authRequired := cartGroup.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/merge", Handler: handlers.Cart.MergeGuestCart},
			})
		}

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Checkout.Checkout},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: handlers.Order.ListOrders},
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Order.GetOrder},
			})
		}

		loyalty := apiGroup.Group("/loyalty")
		loyalty.Use(authMiddleware.RequireAuth())
		{
			addRoutes(loyalty, []route{
				{Method: http.MethodGet, Path: "/account", Handler: handlers.Loyalty.GetAccount},
				{Method: http.MethodGet, Path: "/transactions", Handler: handlers.Loyalty.ListTransactions},
			})
		}

		addRoutes(apiGroup.Group("/discounts"), []route{
			{Method: http.MethodGet, Path: "/:code", Handler: handlers.Discount.GetByCode},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/orders", Handler: handlers.AdminOrder.ListOrders},
				{Method: http.MethodGet, Path: "/orders/:id", Handler: handlers.AdminOrder.GetOrder},
				{Method: http.MethodPut, Path: "/orders/:id/status", Handler: handlers.AdminOrder.SetStatus},
				{Method: http.MethodPost, Path: "/discounts", Handler: handlers.AdminDiscount.CreateDiscount},
				{Method: http.MethodGet, Path: "/discounts", Handler: handlers.AdminDiscount.ListDiscounts},
				{Method: http.MethodPost, Path: "/loyalty/:customerId/adjust", Handler: handlers.AdminDiscount.AdjustPoints},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
