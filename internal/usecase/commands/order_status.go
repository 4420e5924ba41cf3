package commands

import (
	"context"
	"log/slog"
	"time"

	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/pkg/metrics"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound           = errs.New("order not found")
	ErrUnknownStatus           = errs.New("unknown order status")
	ErrInvalidStatusTransition = errs.New("invalid status transition")
)

type SetStatusResult struct {
	OrderID        uuid.UUID
	OrderNumber    string
	Status         order.Status
	Changed        bool
	PointsAwarded  int64
	PointsReversed int64
}

type OrderStatusCommands interface {
	SetStatus(ctx context.Context, orderID uuid.UUID, newStatus, notes string, actorID uuid.UUID) (*SetStatusResult, error)
}

type orderStatusUseCaseImpl struct {
	uow       shared.UnitOfWork
	publisher EventPublisher
	metrics   *metrics.Metrics
	clock     clock.Clock
}

func NewOrderStatusUseCase(
	uow shared.UnitOfWork,
	publisher EventPublisher,
	metrics *metrics.Metrics,
	clock clock.Clock,
) OrderStatusCommands {
	return &orderStatusUseCaseImpl{
		uow:       uow,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
	}
}

func (s *orderStatusUseCaseImpl) SetStatus(
	ctx context.Context,
	orderID uuid.UUID,
	newStatus, notes string,
	actorID uuid.UUID,
) (*SetStatusResult, error) {
	target, err := order.NewStatus(newStatus)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownStatus)
	}

	now := s.clock.Now()
	var (
		updated    *order.Order
		transition order.TransitionResult
	)

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByIDForUpdate(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		transition, err = o.Transition(target, notes, &actorID, now)
		if err != nil {
			return errs.Mark(err, ErrInvalidStatusTransition)
		}
		if !transition.Changed {
			updated = o
			return nil
		}

		if err := tx.Orders().SaveStatus(ctx, tx.DB(), o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SetStatusResult{
		OrderID:     orderID,
		OrderNumber: updated.OrderNumber(),
		Status:      updated.Status(),
		Changed:     transition.Changed,
	}
	if !transition.Changed {
		return result, nil
	}

	// Ledger repair runs after the committed transition: the transition
	// is the source of truth and must not be rolled back by point
	// bookkeeping failures.
	result.PointsAwarded, result.PointsReversed = s.reconcilePoints(ctx, updated, transition, notes, now)

	s.notifyStatusChange(ctx, updated, notes)
	if result.PointsAwarded != 0 || result.PointsReversed != 0 {
		s.notifyPointsChange(ctx, updated, result.PointsAwarded+result.PointsReversed)
	}

	return result, nil
}

func (s *orderStatusUseCaseImpl) reconcilePoints(
	ctx context.Context,
	o *order.Order,
	transition order.TransitionResult,
	notes string,
	now time.Time,
) (awarded int64, reversed int64) {
	if transition.EnteredCompleted {
		err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			points, err := awardPointsForOrder(ctx, tx, o, now)
			if err != nil {
				return err
			}
			awarded = points
			return nil
		})
		if err != nil {
			// Points are a bonus, not a blocker. The transition stands.
			slog.Warn("failed to award points for delivered order",
				"order_id", o.ID(), "order_number", o.OrderNumber(), "error", err)
		}
	}

	if transition.EnteredCancelled {
		reason := "order " + o.Status().String()
		if notes != "" {
			reason += ": " + notes
		}
		err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			netPoints, _, err := reversePointsForOrder(ctx, tx, o.ID(), reason)
			if err != nil {
				return err
			}
			// Net balance change: positive when a spend is restored,
			// negative when an award is clawed back.
			reversed = netPoints
			return nil
		})
		if err != nil {
			slog.Error("failed to reverse points for cancelled order",
				"order_id", o.ID(), "order_number", o.OrderNumber(), "error", err)
		}
	}

	return awarded, reversed
}

func (s *orderStatusUseCaseImpl) notifyStatusChange(ctx context.Context, o *order.Order, notes string) {
	envelope := shared.Envelope{
		EventType:      shared.EventOrderStatusUpdate,
		RecipientEmail: o.ContactEmail(),
		Data: map[string]any{
			"orderId":     o.ID().String(),
			"orderNumber": o.OrderNumber(),
			"status":      o.Status().String(),
			"notes":       notes,
		},
		PublishedAt: s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, envelope); err != nil {
		s.metrics.PublishedEvents.WithLabelValues(shared.EventOrderStatusUpdate, "failure").Inc()
		logPublishFailure(shared.EventOrderStatusUpdate, o.OrderNumber(), err)
		return
	}
	s.metrics.PublishedEvents.WithLabelValues(shared.EventOrderStatusUpdate, "success").Inc()
}

func (s *orderStatusUseCaseImpl) notifyPointsChange(ctx context.Context, o *order.Order, netChange int64) {
	envelope := shared.Envelope{
		EventType:      shared.EventLoyaltyPointsUpdate,
		RecipientEmail: o.ContactEmail(),
		Data: map[string]any{
			"orderId":      o.ID().String(),
			"orderNumber":  o.OrderNumber(),
			"pointsChange": netChange,
		},
		PublishedAt: s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, envelope); err != nil {
		s.metrics.PublishedEvents.WithLabelValues(shared.EventLoyaltyPointsUpdate, "failure").Inc()
		logPublishFailure(shared.EventLoyaltyPointsUpdate, o.OrderNumber(), err)
		return
	}
	s.metrics.PublishedEvents.WithLabelValues(shared.EventLoyaltyPointsUpdate, "success").Inc()
}
