package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "shopcore/internal/handler/dto/request"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/handler/middleware"
	"shopcore/internal/infra"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminOrderHandler struct {
	statusUseCase commands.OrderStatusCommands
	orderQueries  queries.OrderQueries
}

func NewAdminOrderHandler(statusUseCase commands.OrderStatusCommands, orderQueries queries.OrderQueries) *AdminOrderHandler {
	return &AdminOrderHandler{
		statusUseCase: statusUseCase,
		orderQueries:  orderQueries,
	}
}

// @Summary Set order status
// @Description Transition an order through its lifecycle
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.SetOrderStatusRequest true "Target status"
// @Success 200 {object} resdto.SetOrderStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/orders/{id}/status [put]
func (h *AdminOrderHandler) SetStatus(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	var req reqdto.SetOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.statusUseCase.SetStatus(c.Request.Context(), id, req.Status, req.Notes, adminID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown order status",
			})
		case errors.Is(err, commands.ErrInvalidStatusTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Status transition not allowed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.SetOrderStatusResponse{
		OrderID:        result.OrderID,
		OrderNumber:    result.OrderNumber,
		Status:         result.Status.String(),
		Changed:        result.Changed,
		PointsAwarded:  result.PointsAwarded,
		PointsReversed: result.PointsReversed,
	})
}

// @Summary Get any order
// @Description Get an order regardless of owner
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id} [get]
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	orderView, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(orderView))
}

// @Summary List all orders
// @Description List orders across all customers with optional filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param created_from query string false "Filter by creation time (RFC3339)"
// @Param created_to query string false "Filter by creation time (RFC3339)"
// @Param cursor query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} map[string]string
// @Router /admin/orders [get]
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	filter, err := parseOrderFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	after, limit := parseListParams(c)
	rows, next, err := h.orderQueries.ListAll(c.Request.Context(), filter, after, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination cursor",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderList(rows, next))
}

func parseOrderFilter(c *gin.Context) (queries.OrderFilter, error) {
	var filter queries.OrderFilter

	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if raw := c.Query("created_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.OrderFilter{}, errors.New("created_from must be RFC3339")
		}
		filter.CreatedFrom = &from
	}
	if raw := c.Query("created_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.OrderFilter{}, errors.New("created_to must be RFC3339")
		}
		filter.CreatedTo = &to
	}
	return filter, nil
}
