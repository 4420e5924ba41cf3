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

type OrderQueriesTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	repo       *queriesmock.MockOrderViewRepo
	queries    queries.OrderQueries
	customerID uuid.UUID
}

func (s *OrderQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.repo = queriesmock.NewMockOrderViewRepo(s.mockCtrl)
	s.queries = queries.NewOrderQueries(s.repo)
	s.customerID = uuid.New()
}

func (s *OrderQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderQueriesSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}

func listItems(n int) []*queries.OrderListItem {
	items := make([]*queries.OrderListItem, 0, n)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		items = append(items, &queries.OrderListItem{
			ID:              uuid.New(),
			OrderNumber:     "ORD-00000" + string(rune('1'+i)),
			Status:          "processing",
			FinalTotalCents: 14040,
			ItemCount:       1,
			CreatedAt:       base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return items
}

func (s *OrderQueriesTestSuite) TestGetByIDForCustomer() {
	orderID := uuid.New()
	view := &queries.OrderView{ID: orderID, OrderNumber: "ORD-000042"}

	s.repo.EXPECT().FindByIDForCustomer(gomock.Any(), s.customerID, orderID).
		Return(view, nil).Times(1)

	found, err := s.queries.GetByIDForCustomer(context.Background(), s.customerID, orderID)
	s.Require().NoError(err)
	s.Equal(view, found)
}

func (s *OrderQueriesTestSuite) TestListByCustomer() {
	s.Run("defaults the page size when limit is not positive", func() {
		s.repo.EXPECT().FindByCustomerPaginated(gomock.Any(), s.customerID, nil, nil, int32(50)).
			Return(listItems(1), nil).Times(1)

		rows, next, err := s.queries.ListByCustomer(context.Background(), s.customerID, nil, 0)
		s.Require().NoError(err)
		s.Len(rows, 1)
		s.Nil(next)
	})

	s.Run("caps the page size at the maximum", func() {
		s.repo.EXPECT().FindByCustomerPaginated(gomock.Any(), s.customerID, nil, nil, int32(queries.MaxListLimit)).
			Return(listItems(1), nil).Times(1)

		_, _, err := s.queries.ListByCustomer(context.Background(), s.customerID, nil, 10000)
		s.Require().NoError(err)
	})

	s.Run("a full page yields a cursor pointing at the last row", func() {
		rows := listItems(2)
		s.repo.EXPECT().FindByCustomerPaginated(gomock.Any(), s.customerID, nil, nil, int32(2)).
			Return(rows, nil).Times(1)

		_, next, err := s.queries.ListByCustomer(context.Background(), s.customerID, nil, 2)
		s.Require().NoError(err)
		s.Require().NotNil(next)

		createdAt, id, err := queries.DecodeAfterCursor(next.After)
		s.Require().NoError(err)
		s.Equal(rows[1].ID, id)
		s.True(createdAt.Equal(rows[1].CreatedAt))
	})

	s.Run("a decoded cursor is passed to the repository", func() {
		afterTime := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)
		afterID := uuid.New()
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(afterTime, afterID)}

		s.repo.EXPECT().FindByCustomerPaginated(gomock.Any(), s.customerID, gomock.Any(), gomock.Any(), int32(50)).
			DoAndReturn(func(_ any, _ uuid.UUID, gotTime *time.Time, gotID *uuid.UUID, _ int32) ([]*queries.OrderListItem, error) {
				s.Require().NotNil(gotTime)
				s.Require().NotNil(gotID)
				s.True(gotTime.Equal(afterTime))
				s.Equal(afterID, *gotID)
				return nil, nil
			}).Times(1)

		_, next, err := s.queries.ListByCustomer(context.Background(), s.customerID, cursor, 0)
		s.Require().NoError(err)
		s.Nil(next)
	})

	s.Run("a malformed cursor is rejected before hitting the repository", func() {
		_, _, err := s.queries.ListByCustomer(context.Background(), s.customerID, &queries.Cursor{After: "garbage"}, 0)
		s.ErrorIs(err, queries.ErrInvalidCursor)
	})
}

func (s *OrderQueriesTestSuite) TestListAll() {
	status := "shipped"
	filter := queries.OrderFilter{Status: &status}

	s.repo.EXPECT().FindAllPaginated(gomock.Any(), filter, nil, nil, int32(10)).
		Return(listItems(1), nil).Times(1)

	rows, next, err := s.queries.ListAll(context.Background(), filter, nil, 10)
	s.Require().NoError(err)
	s.Len(rows, 1)
	s.Nil(next)
}
