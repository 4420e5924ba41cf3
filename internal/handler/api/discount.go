package api

import (
	"net/http"

	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/infra"
	"shopcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	discountQueries queries.DiscountQueries
}

func NewDiscountHandler(discountQueries queries.DiscountQueries) *DiscountHandler {
	return &DiscountHandler{
		discountQueries: discountQueries,
	}
}

// @Summary Check discount code
// @Description Look up a discount code before checkout. The authoritative
// @Description validation still happens when the order is placed.
// @Tags discounts
// @Produce json
// @Param code path string true "Discount code"
// @Success 200 {object} resdto.DiscountResponse
// @Failure 404 {object} map[string]string
// @Router /discounts/{code} [get]
func (h *DiscountHandler) GetByCode(c *gin.Context) {
	discountView, err := h.discountQueries.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Discount code not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDiscountView(discountView))
}
