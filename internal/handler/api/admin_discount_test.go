//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"shopcore/internal/handler/api"
	resdto "shopcore/internal/handler/dto/response"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"
	"shopcore/tests/common/httptest"
	"shopcore/tests/common/testutil"
	commandsmock "shopcore/tests/mock/commands"
	queriesmock "shopcore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminDiscountHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockDiscounts *commandsmock.MockDiscountCommands
	mockLoyalty   *commandsmock.MockLoyaltyCommands
	mockQueries   *queriesmock.MockDiscountQueries
	handler       *api.AdminDiscountHandler
	adminID       uuid.UUID
}

func (s *AdminDiscountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockDiscounts = commandsmock.NewMockDiscountCommands(s.mockCtrl)
	s.mockLoyalty = commandsmock.NewMockLoyaltyCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDiscountQueries(s.mockCtrl)
	s.handler = api.NewAdminDiscountHandler(s.mockDiscounts, s.mockLoyalty, s.mockQueries)
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

	s.router.POST("/admin/discounts", adminAuth, s.handler.CreateDiscount)
	s.router.GET("/admin/discounts", adminAuth, s.handler.ListDiscounts)
	s.router.POST("/admin/loyalty/:customerId/adjust", adminAuth, s.handler.AdjustPoints)
}

func (s *AdminDiscountHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminDiscountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminDiscountHandlerTestSuite))
}

func (s *AdminDiscountHandlerTestSuite) TestCreateDiscount() {
	url := "/admin/discounts"

	minPurchase := int64(5000)
	reqBody := map[string]any{
		"code":               "SAVE10",
		"type":               "percentage",
		"value":              10,
		"min_purchase_cents": minPurchase,
	}

	s.Run("success: returns 201 Created with the new ID", func() {
		createdID := uuid.New()
		s.mockDiscounts.EXPECT().CreateDiscount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, input commands.CreateDiscountInput) (uuid.UUID, error) {
				s.Equal("SAVE10", input.Code)
				s.Equal("percentage", input.Type)
				s.Equal(float64(10), input.Value)
				s.Require().NotNil(input.MinPurchaseCents)
				s.Equal(minPurchase, *input.MinPurchaseCents)
				return createdID, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(createdID.String(), response["id"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing code", mutate: testutil.Field("code", nil)},
			{name: "missing type", mutate: testutil.Field("type", nil)},
			{name: "zero value", mutate: testutil.Field("value", 0)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "code already exists",
				commandsError:  commands.ErrDiscountCodeTaken,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already exists",
			},
			{
				name:           "invalid definition",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "failed validation",
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
				s.mockDiscounts.EXPECT().CreateDiscount(gomock.Any(), gomock.Any()).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AdminDiscountHandlerTestSuite) TestListDiscounts() {
	url := "/admin/discounts"

	views := []*queries.DiscountView{
		{ID: uuid.New(), Code: "SAVE10", Type: "percentage", Value: 10, Active: true, CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Code: "FLAT5", Type: "fixed_amount", Value: 500, Active: false, CreatedAt: time.Now().UTC()},
	}

	s.Run("success: returns all discounts", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), 0).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.DiscountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal("SAVE10", response[0].Code)
		s.False(response[1].Active)
	})

	s.Run("success: limit passes through", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), 1).
			Return(views[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=1", nil, "bearer-token")

		var response []resdto.DiscountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}

func (s *AdminDiscountHandlerTestSuite) TestAdjustPoints() {
	customerID := uuid.New()
	url := "/admin/loyalty/" + customerID.String() + "/adjust"

	reqBody := map[string]any{"delta": 100, "reason": "goodwill credit"}

	s.Run("success: returns 200 OK with the new balance", func() {
		expected := &commands.AdjustPointsResult{AccountID: uuid.New(), NewBalance: 250}
		s.mockLoyalty.EXPECT().AdjustPoints(gomock.Any(), s.adminID, customerID, int64(100), "goodwill credit").
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.AdjustPointsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(expected.AccountID, response.AccountID)
		s.Equal(int64(250), response.NewBalance)
	})

	s.Run("error: 400 Bad Request for invalid customer UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/loyalty/not-a-uuid/adjust", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid customer ID")
	})

	s.Run("error: 400 Bad Request on missing reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"delta": 100}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "zero delta",
				commandsError:  commands.ErrZeroAdjustment,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "non-zero delta",
			},
			{
				name:           "would go negative",
				commandsError:  commands.ErrNegativeBalance,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "negative",
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
				s.mockLoyalty.EXPECT().AdjustPoints(gomock.Any(), s.adminID, customerID, int64(100), "goodwill credit").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
