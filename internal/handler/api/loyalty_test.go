//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"shopcore/internal/handler/api"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/usecase/queries"
	"shopcore/tests/common/httptest"
	queriesmock "shopcore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LoyaltyHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockLoyaltyQueries
	handler     *api.LoyaltyHandler
	customerID  uuid.UUID
}

func (s *LoyaltyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockLoyaltyQueries(s.mockCtrl)
	s.handler = api.NewLoyaltyHandler(s.mockQueries)
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

	s.router.GET("/loyalty/account", requireAuth, s.handler.GetAccount)
	s.router.GET("/loyalty/transactions", requireAuth, s.handler.ListTransactions)
}

func (s *LoyaltyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLoyaltyHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyHandlerTestSuite))
}

func (s *LoyaltyHandlerTestSuite) TestGetAccount() {
	url := "/loyalty/account"

	s.Run("success: returns 200 OK with the balance", func() {
		accountView := &queries.LoyaltyAccountView{
			ID:         uuid.New(),
			CustomerID: s.customerID,
			Balance:    150,
			UpdatedAt:  time.Now().UTC(),
		}
		s.mockQueries.EXPECT().GetAccount(gomock.Any(), s.customerID).
			Return(accountView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.LoyaltyAccountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(accountView.ID, response.ID)
		s.Equal(int64(150), response.Balance)
	})

	s.Run("error: 404 Not Found before the first transaction", func() {
		s.mockQueries.EXPECT().GetAccount(gomock.Any(), s.customerID).
			Return(nil, notFoundRepoErr()).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "No loyalty account yet")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *LoyaltyHandlerTestSuite) TestListTransactions() {
	url := "/loyalty/transactions"

	orderID := uuid.New()
	transactions := []*queries.LoyaltyTransactionView{
		{
			ID:              uuid.New(),
			Type:            "spent",
			PointsChange:    -50,
			PointValueCents: 10,
			OrderID:         &orderID,
			Description:     "points applied at checkout",
			CreatedAt:       time.Now().UTC(),
		},
		{
			ID:              uuid.New(),
			Type:            "earned",
			PointsChange:    14,
			PointValueCents: 10,
			OrderID:         &orderID,
			CreatedAt:       time.Now().UTC(),
		},
	}

	s.Run("success: returns the ledger rows", func() {
		s.mockQueries.EXPECT().ListTransactions(gomock.Any(), s.customerID, 0).
			Return(transactions, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.LoyaltyTransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal("spent", response[0].Type)
		s.Equal(int64(-50), response[0].PointsChange)
	})

	s.Run("success: limit passes through", func() {
		s.mockQueries.EXPECT().ListTransactions(gomock.Any(), s.customerID, 5).
			Return(transactions[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=5", nil, "bearer-token")

		var response []resdto.LoyaltyTransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 500 Internal Server Error on read failure", func() {
		s.mockQueries.EXPECT().ListTransactions(gomock.Any(), s.customerID, 0).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
