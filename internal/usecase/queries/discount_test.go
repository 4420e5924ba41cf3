//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shopcore/internal/usecase/queries"
	queriesmock "shopcore/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DiscountQueriesTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	repo     *queriesmock.MockDiscountViewRepo
	queries  queries.DiscountQueries
}

func (s *DiscountQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.repo = queriesmock.NewMockDiscountViewRepo(s.mockCtrl)
	s.queries = queries.NewDiscountQueries(s.repo)
}

func (s *DiscountQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDiscountQueriesSuite(t *testing.T) {
	suite.Run(t, new(DiscountQueriesTestSuite))
}

func (s *DiscountQueriesTestSuite) TestGetByCode() {
	view := &queries.DiscountView{
		ID:        uuid.New(),
		Code:      "SAVE10",
		Type:      "percentage",
		Value:     10,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	s.Run("normalizes the code before lookup", func() {
		s.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").
			Return(view, nil).Times(1)

		found, err := s.queries.GetByCode(context.Background(), "  save10 ")
		s.Require().NoError(err)
		s.Equal("SAVE10", found.Code)
	})
}

func (s *DiscountQueriesTestSuite) TestList() {
	s.Run("defaults the limit when not positive", func() {
		s.repo.EXPECT().FindAll(gomock.Any(), int32(50)).
			Return(nil, nil).Times(1)

		_, err := s.queries.List(context.Background(), -1)
		s.Require().NoError(err)
	})

	s.Run("caps the limit at the maximum", func() {
		s.repo.EXPECT().FindAll(gomock.Any(), int32(queries.MaxListLimit)).
			Return(nil, nil).Times(1)

		_, err := s.queries.List(context.Background(), 500)
		s.Require().NoError(err)
	})
}
