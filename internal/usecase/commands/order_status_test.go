//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shopcore/internal/domain/loyalty"
	"shopcore/internal/domain/order"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/metrics"
	"shopcore/internal/usecase/commands"
	commandsmock "shopcore/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderStatusUseCaseTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	publisher  *commandsmock.MockEventPublisher
	uow        *fakeUnitOfWork
	clock      *clock.MockClock
	useCase    commands.OrderStatusCommands
	customerID uuid.UUID
	adminID    uuid.UUID
	orderID    uuid.UUID
}

func (s *OrderStatusUseCaseTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.publisher = commandsmock.NewMockEventPublisher(s.mockCtrl)
	s.uow = newFakeUnitOfWork()
	s.clock = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.customerID = uuid.New()
	s.adminID = uuid.New()
	s.orderID = uuid.New()

	s.useCase = commands.NewOrderStatusUseCase(s.uow, s.publisher, metrics.NewNop(), s.clock)
}

func (s *OrderStatusUseCaseTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderStatusUseCaseSuite(t *testing.T) {
	suite.Run(t, new(OrderStatusUseCaseTestSuite))
}

// storedOrder restores a 14040-cent order owned by the suite's customer.
func (s *OrderStatusUseCaseTestSuite) storedOrder(status order.Status) *order.Order {
	totals := order.Totals{
		SubtotalCents:   13000,
		TaxCents:        1040,
		FinalTotalCents: 14040,
	}
	items := []order.Item{
		{ProductID: uuid.New(), Name: "Widget", UnitPriceCents: 6500, Quantity: 2},
	}
	history := []order.StatusChange{
		{Status: order.StatusPendingPayment, Notes: "order created", Timestamp: s.clock.Now()},
	}
	return order.RestoreOrder(
		s.orderID, "ORD-000042", &s.customerID, nil, "customer@example.com",
		items, order.Address{FullName: "Ada Lovelace", Line1: "1 Analytical Way", City: "London", PostalCode: "EC1A 1AA", Country: "GB"},
		totals, status, history, nil, nil, true, s.clock.Now(), s.clock.Now(),
	)
}

func (s *OrderStatusUseCaseTestSuite) guestOrder(status order.Status) *order.Order {
	o := s.storedOrder(status)
	sessionID := "sess-42"
	return order.RestoreOrder(
		o.ID(), o.OrderNumber(), nil, &sessionID, "guest@example.com",
		o.Items(), o.Address(), o.Totals(), status, o.StatusHistory(),
		nil, nil, true, o.CreatedAt(), o.UpdatedAt(),
	)
}

func (s *OrderStatusUseCaseTestSuite) TestSetStatus() {
	s.Run("success: delivery awards points from the final total", func() {
		s.SetupTest()
		s.uow.tx.orders.findForUpdate = s.storedOrder(order.StatusShipped)
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		result, err := s.useCase.SetStatus(context.Background(), s.orderID, "delivered", "left at door", s.adminID)

		s.Require().NoError(err)
		s.True(result.Changed)
		s.Equal(order.StatusDelivered, result.Status)
		// 14040 cents earns 14 points at one point per 1000 cents.
		s.Equal(int64(14), result.PointsAwarded)
		s.Equal(int64(0), result.PointsReversed)

		s.True(s.uow.tx.orders.statusSaved)
		s.True(s.uow.tx.orders.pointsSaved)
		s.Equal([]int64{14}, s.uow.tx.loyalty.changes)
		s.Require().Len(s.uow.tx.loyalty.transactions, 1)
		s.Equal(loyalty.TypeEarned, s.uow.tx.loyalty.transactions[0].Type())
	})

	s.Run("success: guest delivery awards nothing", func() {
		s.SetupTest()
		s.uow.tx.orders.findForUpdate = s.guestOrder(order.StatusShipped)
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		result, err := s.useCase.SetStatus(context.Background(), s.orderID, "delivered", "", s.adminID)

		s.Require().NoError(err)
		s.True(result.Changed)
		s.Equal(int64(0), result.PointsAwarded)
		s.Empty(s.uow.tx.loyalty.changes)
	})

	s.Run("success: cancellation restores unreversed spent points", func() {
		s.SetupTest()
		stored := s.storedOrder(order.StatusProcessing)
		s.uow.tx.orders.findForUpdate = stored

		accountID := uuid.New()
		spent := loyalty.RestoreTransaction(
			uuid.New(), accountID, loyalty.TypeSpent, -50, loyalty.PointValueCents,
			&s.orderID, nil, "points applied at checkout", s.clock.Now(),
		)
		s.uow.tx.loyalty.unreversed = []*loyalty.Transaction{spent}
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		result, err := s.useCase.SetStatus(context.Background(), s.orderID, "cancelled", "customer request", s.adminID)

		s.Require().NoError(err)
		s.True(result.Changed)
		s.Equal(order.StatusCancelled, result.Status)
		s.Equal(int64(50), result.PointsReversed)

		s.Equal([]int64{50}, s.uow.tx.loyalty.changes)
		s.Require().Len(s.uow.tx.loyalty.transactions, 1)
		reversal := s.uow.tx.loyalty.transactions[0]
		s.Equal(loyalty.TypeReversal, reversal.Type())
		s.Equal(int64(50), reversal.PointsChange())
		s.Require().NotNil(reversal.ReversesTransactionID())
		s.Equal(spent.ID(), *reversal.ReversesTransactionID())
	})

	s.Run("success: cancellation with no ledger rows reverses nothing", func() {
		s.SetupTest()
		s.uow.tx.orders.findForUpdate = s.storedOrder(order.StatusProcessing)
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		result, err := s.useCase.SetStatus(context.Background(), s.orderID, "cancelled", "", s.adminID)

		s.Require().NoError(err)
		s.Equal(int64(0), result.PointsReversed)
		s.Empty(s.uow.tx.loyalty.changes)
	})

	s.Run("success: same-status request is an idempotent no-op", func() {
		s.SetupTest()
		s.uow.tx.orders.findForUpdate = s.storedOrder(order.StatusShipped)

		result, err := s.useCase.SetStatus(context.Background(), s.orderID, "shipped", "retry", s.adminID)

		s.Require().NoError(err)
		s.False(result.Changed)
		s.Equal(order.StatusShipped, result.Status)
		s.False(s.uow.tx.orders.statusSaved)
	})

	s.Run("error: unknown status string", func() {
		s.SetupTest()

		_, err := s.useCase.SetStatus(context.Background(), s.orderID, "teleported", "", s.adminID)
		s.ErrorIs(err, commands.ErrUnknownStatus)
	})

	s.Run("error: order not found", func() {
		s.SetupTest()

		_, err := s.useCase.SetStatus(context.Background(), s.orderID, "shipped", "", s.adminID)
		s.ErrorIs(err, commands.ErrOrderNotFound)
	})

	s.Run("error: transition out of a terminal status", func() {
		s.SetupTest()
		s.uow.tx.orders.findForUpdate = s.storedOrder(order.StatusCancelled)

		_, err := s.useCase.SetStatus(context.Background(), s.orderID, "processing", "", s.adminID)
		s.ErrorIs(err, commands.ErrInvalidStatusTransition)
		s.False(s.uow.tx.orders.statusSaved)
	})

	s.Run("success: notification failure does not fail the transition", func() {
		s.SetupTest()
		s.uow.tx.orders.findForUpdate = s.storedOrder(order.StatusConfirmed)
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(conflictErr()).Times(1)

		result, err := s.useCase.SetStatus(context.Background(), s.orderID, "shipped", "", s.adminID)

		s.Require().NoError(err)
		s.True(result.Changed)
		s.True(s.uow.tx.orders.statusSaved)
	})
}
