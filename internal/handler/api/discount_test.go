//go:build unit

package api_test

import (
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

type DiscountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockDiscountQueries
	handler     *api.DiscountHandler
}

func (s *DiscountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockDiscountQueries(s.mockCtrl)
	s.handler = api.NewDiscountHandler(s.mockQueries)

	s.router.GET("/discounts/:code", s.handler.GetByCode)
}

func (s *DiscountHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDiscountHandlerSuite(t *testing.T) {
	suite.Run(t, new(DiscountHandlerTestSuite))
}

func (s *DiscountHandlerTestSuite) TestGetByCode() {
	s.Run("success: returns 200 OK with the discount", func() {
		maxUsage := int32(100)
		view := &queries.DiscountView{
			ID:        uuid.New(),
			Code:      "SAVE10",
			Type:      "percentage",
			Value:     10,
			MaxUsage:  &maxUsage,
			UsedCount: 42,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), "SAVE10").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/discounts/SAVE10", nil, "")

		var response resdto.DiscountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("SAVE10", response.Code)
		s.Equal(int32(42), response.UsedCount)
		s.True(response.Active)
	})

	s.Run("error: 404 Not Found for unknown code", func() {
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), "NOPE").
			Return(nil, notFoundRepoErr()).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/discounts/NOPE", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Discount code not found")
	})
}
