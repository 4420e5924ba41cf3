//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"shopcore/internal/domain/order"
	"shopcore/internal/handler/api"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"
	"shopcore/tests/common/builder"
	"shopcore/tests/common/httptest"
	commandsmock "shopcore/tests/mock/commands"
	queriesmock "shopcore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminOrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderStatusCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.AdminOrderHandler
	adminID      uuid.UUID
}

func (s *AdminOrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderStatusCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewAdminOrderHandler(s.mockCommands, s.mockQueries)
	s.adminID = uuid.New()

	adminAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.adminID)
		c.Set("user_role", "admin")
		c.Next()
	}

	s.router.GET("/admin/orders", adminAuth, s.handler.ListOrders)
	s.router.GET("/admin/orders/:id", adminAuth, s.handler.GetOrder)
	s.router.PUT("/admin/orders/:id/status", adminAuth, s.handler.SetStatus)
}

func (s *AdminOrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminOrderHandlerTestSuite))
}

func (s *AdminOrderHandlerTestSuite) TestSetStatus() {
	orderBuilder := builder.NewOrderBuilder()
	orderID := orderBuilder.OrderID
	url := "/admin/orders/" + orderID.String() + "/status"

	reqBody := map[string]any{"status": "shipped", "notes": "carrier picked up"}

	s.Run("success: returns 200 OK with transition result", func() {
		expected := orderBuilder.BuildSetStatusResult(order.StatusShipped, true)
		s.mockCommands.EXPECT().SetStatus(gomock.Any(), orderID, "shipped", "carrier picked up", s.adminID).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var response resdto.SetOrderStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.OrderID)
		s.Equal("shipped", response.Status)
		s.True(response.Changed)
	})

	s.Run("success: same-status request reports no change", func() {
		expected := orderBuilder.BuildSetStatusResult(order.StatusShipped, false)
		s.mockCommands.EXPECT().SetStatus(gomock.Any(), orderID, "shipped", "carrier picked up", s.adminID).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var response resdto.SetOrderStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Changed)
	})

	s.Run("error: 400 Bad Request for invalid order UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/orders/not-a-uuid/status", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID")
	})

	s.Run("error: 400 Bad Request on missing status field", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"notes": "x"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  commands.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "unknown status",
				commandsError:  commands.ErrUnknownStatus,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Unknown order status",
			},
			{
				name:           "invalid transition",
				commandsError:  commands.ErrInvalidStatusTransition,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not allowed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().SetStatus(gomock.Any(), orderID, "shipped", "carrier picked up", s.adminID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AdminOrderHandlerTestSuite) TestGetOrder() {
	orderBuilder := builder.NewOrderBuilder()
	orderID := orderBuilder.OrderID
	url := "/admin/orders/" + orderID.String()

	returnView := orderBuilder.BuildView()

	s.Run("success: returns 200 OK with OrderResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.ID)
		s.Equal(returnView.OrderNumber, response.OrderNumber)
		s.Len(response.StatusHistory, 2)
	})

	s.Run("error: 400 Bad Request for invalid order UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/orders/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID")
	})
}

func (s *AdminOrderHandlerTestSuite) TestListOrders() {
	baseURL := "/admin/orders"

	items := []*queries.OrderListItem{
		builder.NewOrderBuilder().BuildListItem(),
		builder.NewOrderBuilder().BuildListItem(),
	}

	s.Run("success: returns order list", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), queries.OrderFilter{}, (*queries.Cursor)(nil), 0).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Orders, 2)
		s.Nil(response.NextCursor)
	})

	s.Run("success: status filter and pagination pass through", func() {
		url := baseURL + "?status=shipped&limit=10&cursor=abc123"
		status := "shipped"
		expectedFilter := queries.OrderFilter{Status: &status}
		expectedCursor := &queries.Cursor{After: "abc123"}
		nextCursor := &queries.Cursor{After: "def456"}

		s.mockQueries.EXPECT().ListAll(gomock.Any(), expectedFilter, expectedCursor, 10).
			Return(items[:1], nextCursor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Orders, 1)
		s.Require().NotNil(response.NextCursor)
		s.Equal("def456", *response.NextCursor)
	})

	s.Run("error: 400 Bad Request for malformed created_from", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?created_from=yesterday", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "RFC3339")
	})

	s.Run("error: 400 Bad Request for invalid cursor", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), queries.OrderFilter{}, &queries.Cursor{After: "garbage"}, 0).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?cursor=garbage", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination cursor")
	})
}
