package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "shopcore/internal/handler/dto/request"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/handler/middleware"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminDiscountHandler struct {
	discountUseCase commands.DiscountCommands
	loyaltyUseCase  commands.LoyaltyCommands
	discountQueries queries.DiscountQueries
}

func NewAdminDiscountHandler(
	discountUseCase commands.DiscountCommands,
	loyaltyUseCase commands.LoyaltyCommands,
	discountQueries queries.DiscountQueries,
) *AdminDiscountHandler {
	return &AdminDiscountHandler{
		discountUseCase: discountUseCase,
		loyaltyUseCase:  loyaltyUseCase,
		discountQueries: discountQueries,
	}
}

// @Summary Create discount
// @Description Create a new discount code
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDiscountRequest true "Discount definition"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/discounts [post]
func (h *AdminDiscountHandler) CreateDiscount(c *gin.Context) {
	var req reqdto.CreateDiscountRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.discountUseCase.CreateDiscount(c.Request.Context(), commands.CreateDiscountInput{
		Code:             req.Code,
		Type:             req.Type,
		Value:            req.Value,
		MinPurchaseCents: req.MinPurchaseCents,
		MaxUsage:         req.MaxUsage,
		ValidFrom:        req.ValidFrom,
		ValidTo:          req.ValidTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDiscountCodeTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Discount code already exists",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Discount definition failed validation",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary List discounts
// @Description List all discount codes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.DiscountResponse
// @Router /admin/discounts [get]
func (h *AdminDiscountHandler) ListDiscounts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	discounts, err := h.discountQueries.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.DiscountResponse, len(discounts))
	for i, rm := range discounts {
		response[i] = resdto.FromDiscountView(rm)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Adjust loyalty points
// @Description Manually credit or debit a customer's loyalty balance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customerId path string true "Customer ID"
// @Param request body reqdto.AdjustPointsRequest true "Adjustment"
// @Success 200 {object} resdto.AdjustPointsResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/loyalty/{customerId}/adjust [post]
func (h *AdminDiscountHandler) AdjustPoints(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID format",
		})
		return
	}

	var req reqdto.AdjustPointsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.loyaltyUseCase.AdjustPoints(c.Request.Context(), adminID, customerID, req.Delta, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrZeroAdjustment), errors.Is(err, commands.ErrAdjustmentNoReason):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Adjustment requires a non-zero delta and a reason",
			})
		case errors.Is(err, commands.ErrNegativeBalance):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Adjustment would make the balance negative",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AdjustPointsResponse{
		AccountID:  result.AccountID,
		NewBalance: result.NewBalance,
	})
}
