package api

import (
	"net/http"
	"strconv"

	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/handler/middleware"
	"shopcore/internal/infra"
	"shopcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct {
	loyaltyQueries queries.LoyaltyQueries
}

func NewLoyaltyHandler(loyaltyQueries queries.LoyaltyQueries) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyQueries: loyaltyQueries,
	}
}

// @Summary Get loyalty account
// @Description Get the customer's loyalty account balance
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LoyaltyAccountResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /loyalty/account [get]
func (h *LoyaltyHandler) GetAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	account, err := h.loyaltyQueries.GetAccount(c.Request.Context(), userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No loyalty account yet",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoyaltyAccountView(account))
}

// @Summary List loyalty transactions
// @Description List the customer's loyalty ledger, newest first
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.LoyaltyTransactionResponse
// @Failure 401 {object} map[string]string
// @Router /loyalty/transactions [get]
func (h *LoyaltyHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	transactions, err := h.loyaltyQueries.ListTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.LoyaltyTransactionResponse, len(transactions))
	for i, rm := range transactions {
		response[i] = resdto.FromLoyaltyTransactionView(rm)
	}
	c.JSON(http.StatusOK, response)
}
