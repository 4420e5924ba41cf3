package api

import (
	"errors"
	"net/http"

	"shopcore/internal/domain/cart"
	reqdto "shopcore/internal/handler/dto/request"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/handler/middleware"
	"shopcore/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartUseCase commands.CartCommands
}

func NewCartHandler(cartUseCase commands.CartCommands) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

// cartIdentity resolves the caller to either an authenticated customer
// or a guest session. An empty input fails domain validation downstream.
func cartIdentity(c *gin.Context) commands.CartIdentityInput {
	if userID, ok := middleware.GetUserID(c); ok {
		return commands.CartIdentityInput{CustomerID: &userID}
	}
	if sessionID := middleware.GetSessionID(c); sessionID != "" {
		return commands.CartIdentityInput{SessionID: &sessionID}
	}
	return commands.CartIdentityInput{}
}

func lineKeyFromRequest(c *gin.Context) (cart.LineKey, error) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return cart.LineKey{}, err
	}

	key := cart.LineKey{ProductID: productID}
	if variant := c.Query("variant"); variant != "" {
		key.VariantID = &variant
	}
	return key, nil
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Customer token or X-Session-ID header required",
		})
	case errors.Is(err, commands.ErrCartLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart item not found",
		})
	case errors.Is(err, commands.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, commands.ErrProductUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Product unavailable in requested quantity",
		})
	case errors.Is(err, commands.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Catalog service unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Get cart
// @Description Get the current customer or guest cart
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Guest session ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	loaded, err := h.cartUseCase.GetCart(c.Request.Context(), cartIdentity(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(loaded))
}

// @Summary Add cart item
// @Description Add a product to the cart, merging quantity on duplicates
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session ID"
// @Param request body reqdto.AddCartItemRequest true "Item to add"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req reqdto.AddCartItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	loaded, err := h.cartUseCase.AddItem(c.Request.Context(), cartIdentity(c), commands.AddItemInput{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(loaded))
}

// @Summary Update cart item
// @Description Set the quantity of a cart line; zero removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session ID"
// @Param productId path string true "Product ID"
// @Param variant query string false "Variant ID"
// @Param request body reqdto.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	key, err := lineKeyFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID format",
		})
		return
	}

	var req reqdto.UpdateCartItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	loaded, err := h.cartUseCase.UpdateItem(c.Request.Context(), cartIdentity(c), key, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(loaded))
}

// @Summary Remove cart item
// @Description Remove a line from the cart
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Guest session ID"
// @Param productId path string true "Product ID"
// @Param variant query string false "Variant ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	key, err := lineKeyFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID format",
		})
		return
	}

	loaded, err := h.cartUseCase.RemoveItem(c.Request.Context(), cartIdentity(c), key)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(loaded))
}

// @Summary Clear cart
// @Description Remove every line from the cart
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Guest session ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartUseCase.ClearCart(c.Request.Context(), cartIdentity(c)); err != nil {
		respondCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Merge guest cart
// @Description Fold a guest session cart into the authenticated customer's cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MergeCartRequest true "Guest session to merge"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cart/merge [post]
func (h *CartHandler) MergeGuestCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.MergeCartRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	loaded, err := h.cartUseCase.MergeGuestCart(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(loaded))
}
