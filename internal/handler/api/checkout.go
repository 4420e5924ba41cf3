package api

import (
	"errors"
	"net/http"

	reqdto "shopcore/internal/handler/dto/request"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/handler/middleware"
	"shopcore/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutUseCase commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutUseCase commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// @Summary Checkout
// @Description Place an order from the current cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session ID"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input := commands.CheckoutInput{
		Address:              req.Address.ToDomain(),
		DiscountCode:         req.GetDiscountCode(),
		LoyaltyPointsToSpend: req.LoyaltyPointsToSpend,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		input.CustomerID = &userID
	} else if sessionID := middleware.GetSessionID(c); sessionID != "" {
		input.GuestSessionID = &sessionID
		input.GuestEmail = req.GetGuestEmail()
	}

	result, err := h.checkoutUseCase.Checkout(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, commands.ErrAddressInvalid):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Shipping address is incomplete",
			})
		case errors.Is(err, commands.ErrGuestContactRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Guest checkout requires a contact email",
			})
		case errors.Is(err, commands.ErrGuestLoyaltyNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Guests cannot spend loyalty points",
			})
		case errors.Is(err, commands.ErrDiscountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Discount code not found",
			})
		case errors.Is(err, commands.ErrDiscountExhausted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Discount code is no longer available",
			})
		case errors.Is(err, commands.ErrDiscountNotUsable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Discount code cannot be applied to this order",
			})
		case errors.Is(err, commands.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "One or more items are out of stock",
			})
		case errors.Is(err, commands.ErrInsufficientLoyaltyBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Insufficient loyalty point balance",
			})
		case errors.Is(err, commands.ErrGatewayUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Stock validation unavailable, try again later",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Checkout request failed validation",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
