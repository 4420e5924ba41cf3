package commands

import (
	"context"
	"time"

	"shopcore/internal/domain/discount"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDiscountCodeTaken = errs.New("discount code already exists")

type CreateDiscountInput struct {
	Code             string
	Type             string
	Value            float64
	MinPurchaseCents *int64
	MaxUsage         *int32
	ValidFrom        *time.Time
	ValidTo          *time.Time
}

type DiscountCommands interface {
	CreateDiscount(ctx context.Context, input CreateDiscountInput) (uuid.UUID, error)
}

type discountUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewDiscountUseCase(uow shared.UnitOfWork) DiscountCommands {
	return &discountUseCaseImpl{uow: uow}
}

func (d *discountUseCaseImpl) CreateDiscount(ctx context.Context, input CreateDiscountInput) (uuid.UUID, error) {
	entity, err := discount.NewDiscount(
		uuid.New(), input.Code, input.Type, input.Value,
		input.MinPurchaseCents, input.MaxUsage, input.ValidFrom, input.ValidTo,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		createdID, err := tx.Discounts().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDiscountCodeTaken
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		id = createdID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
