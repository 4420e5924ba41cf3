package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"shopcore/internal/domain/loyalty"
	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNegativeBalance    = errs.New("loyalty balance would become negative")
	ErrZeroAdjustment     = errs.New("adjustment delta cannot be zero")
	ErrAdjustmentNoReason = errs.New("adjustment requires a reason")
)

func logPublishFailure(eventType, subject string, err error) {
	slog.Error("failed to publish notification",
		"event_type", eventType, "subject", subject, "error", err)
}

// spendPointsForOrder debits the account and appends the ledger row in
// the caller's transaction. The balance guard in ApplyChange is the
// serialization point for concurrent spends.
func spendPointsForOrder(
	ctx context.Context,
	tx shared.Tx,
	customerID uuid.UUID,
	orderID uuid.UUID,
	points int64,
) error {
	account, err := tx.Loyalty().GetOrCreateAccount(ctx, tx.DB(), customerID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Loyalty().ApplyChange(ctx, tx.DB(), account.ID(), -points); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrInsufficientLoyaltyBalance
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	transaction, err := loyalty.NewTransaction(
		uuid.New(), account.ID(), loyalty.TypeSpent, -points, &orderID, nil,
		"points applied at checkout",
	)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if err := tx.Loyalty().InsertTransaction(ctx, tx.DB(), transaction); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// awardPointsForOrder credits points for a delivered order and stamps
// the earned count onto the order row. Guest orders earn nothing.
func awardPointsForOrder(
	ctx context.Context,
	tx shared.Tx,
	o *order.Order,
	now time.Time,
) (int64, error) {
	if o.CustomerID() == nil {
		return 0, nil
	}

	points := loyalty.PointsEarned(o.Totals().FinalTotalCents)
	if points <= 0 {
		return 0, nil
	}

	account, err := tx.Loyalty().GetOrCreateAccount(ctx, tx.DB(), *o.CustomerID())
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Loyalty().ApplyChange(ctx, tx.DB(), account.ID(), points); err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	orderID := o.ID()
	transaction, err := loyalty.NewTransaction(
		uuid.New(), account.ID(), loyalty.TypeEarned, points, &orderID, nil,
		"reward for order "+o.OrderNumber(),
	)
	if err != nil {
		return 0, errs.Mark(err, ErrDomainValidation)
	}
	if err := tx.Loyalty().InsertTransaction(ctx, tx.DB(), transaction); err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	o.RecordPointsEarned(points, now)
	if err := tx.Orders().SavePointsEarned(ctx, tx.DB(), o); err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return points, nil
}

// reversePointsForOrder compensates every ledger row tied to the order
// that has not itself been reversed yet. Returns the net points and
// monetary value restored to the account.
func reversePointsForOrder(
	ctx context.Context,
	tx shared.Tx,
	orderID uuid.UUID,
	reason string,
) (int64, int64, error) {
	transactions, err := tx.Loyalty().FindUnreversedByOrder(ctx, tx.DB(), orderID)
	if err != nil {
		return 0, 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var netPoints, netValueCents int64
	for _, original := range transactions {
		reversal, err := original.Reversal(uuid.New(), reason)
		if err != nil {
			return 0, 0, errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Loyalty().ApplyChange(ctx, tx.DB(), reversal.AccountID(), reversal.PointsChange()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return 0, 0, ErrNegativeBalance
			}
			return 0, 0, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Loyalty().InsertTransaction(ctx, tx.DB(), reversal); err != nil {
			return 0, 0, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		netPoints += reversal.PointsChange()
		netValueCents += reversal.PointsChange() * original.PointValueCents()
	}
	return netPoints, netValueCents, nil
}

type AdjustPointsResult struct {
	AccountID  uuid.UUID
	NewBalance int64
}

type LoyaltyCommands interface {
	AdjustPoints(ctx context.Context, adminID, customerID uuid.UUID, delta int64, reason string) (*AdjustPointsResult, error)
}

type loyaltyUseCaseImpl struct {
	uow       shared.UnitOfWork
	identity  IdentityGateway
	publisher EventPublisher
	clock     clock.Clock
}

func NewLoyaltyUseCase(
	uow shared.UnitOfWork,
	identity IdentityGateway,
	publisher EventPublisher,
	clock clock.Clock,
) LoyaltyCommands {
	return &loyaltyUseCaseImpl{
		uow:       uow,
		identity:  identity,
		publisher: publisher,
		clock:     clock,
	}
}

func (l *loyaltyUseCaseImpl) AdjustPoints(
	ctx context.Context,
	adminID, customerID uuid.UUID,
	delta int64,
	reason string,
) (*AdjustPointsResult, error) {
	if delta == 0 {
		return nil, ErrZeroAdjustment
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrAdjustmentNoReason
	}

	var result AdjustPointsResult
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		account, err := tx.Loyalty().GetOrCreateAccount(ctx, tx.DB(), customerID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Loyalty().ApplyChange(ctx, tx.DB(), account.ID(), delta); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrNegativeBalance
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		transaction, err := loyalty.NewTransaction(
			uuid.New(), account.ID(), loyalty.TypeAdjusted, delta, nil, nil,
			"admin "+adminID.String()+": "+reason,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Loyalty().InsertTransaction(ctx, tx.DB(), transaction); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = AdjustPointsResult{
			AccountID:  account.ID(),
			NewBalance: account.Balance() + delta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.notifyPointsChange(ctx, customerID, delta, result.NewBalance, reason)
	return &result, nil
}

func (l *loyaltyUseCaseImpl) notifyPointsChange(
	ctx context.Context,
	customerID uuid.UUID,
	delta, newBalance int64,
	reason string,
) {
	profile, err := l.identity.GetProfile(ctx, customerID)
	if err != nil {
		logPublishFailure(shared.EventLoyaltyPointsUpdate, customerID.String(), err)
		return
	}

	envelope := shared.Envelope{
		EventType:      shared.EventLoyaltyPointsUpdate,
		RecipientEmail: profile.Email,
		Data: map[string]any{
			"customerId":   customerID.String(),
			"pointsChange": delta,
			"newBalance":   newBalance,
			"reason":       reason,
		},
		PublishedAt: l.clock.Now(),
	}
	if err := l.publisher.Publish(ctx, envelope); err != nil {
		logPublishFailure(shared.EventLoyaltyPointsUpdate, customerID.String(), err)
	}
}
