//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"shopcore/internal/handler/api"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/infra"
	"shopcore/internal/usecase/queries"
	"shopcore/tests/common/builder"
	"shopcore/tests/common/httptest"
	queriesmock "shopcore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func notFoundRepoErr() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockOrderQueries
	handler     *api.OrderHandler
	customerID  uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockQueries)
	s.customerID = uuid.New()

	requireAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.customerID)
		c.Set("user_role", "customer")
		c.Next()
	}

	s.router.GET("/orders", requireAuth, s.handler.ListOrders)
	s.router.GET("/orders/:id", requireAuth, s.handler.GetOrder)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestGetOrder() {
	orderBuilder := builder.NewOrderBuilder()
	orderID := orderBuilder.OrderID
	url := "/orders/" + orderID.String()

	returnView := orderBuilder.BuildView()

	s.Run("success: returns 200 OK with the customer's order", func() {
		s.mockQueries.EXPECT().GetByIDForCustomer(gomock.Any(), s.customerID, orderID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.ID)
		s.Equal(returnView.OrderNumber, response.OrderNumber)
		s.Equal(returnView.FinalTotalCents, response.FinalTotalCents)
	})

	s.Run("error: 404 Not Found hides other customers' orders", func() {
		s.mockQueries.EXPECT().GetByIDForCustomer(gomock.Any(), s.customerID, orderID).
			Return(nil, notFoundRepoErr()).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 400 Bad Request for invalid order UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *OrderHandlerTestSuite) TestListOrders() {
	items := []*queries.OrderListItem{
		builder.NewOrderBuilder().BuildListItem(),
	}

	s.Run("success: returns the customer's orders", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.customerID, (*queries.Cursor)(nil), 0).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Orders, 1)
		s.Nil(response.NextCursor)
	})

	s.Run("success: cursor and limit pass through", func() {
		nextCursor := &queries.Cursor{After: "def456"}
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.customerID, &queries.Cursor{After: "abc123"}, 5).
			Return(items, nextCursor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?cursor=abc123&limit=5", nil, "bearer-token")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.NextCursor)
		s.Equal("def456", *response.NextCursor)
	})

	s.Run("error: 400 Bad Request for invalid cursor", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.customerID, &queries.Cursor{After: "garbage"}, 0).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?cursor=garbage", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination cursor")
	})
}
