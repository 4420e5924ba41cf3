package queries

import (
	"context"
	"strings"
)

type DiscountQueries interface {
	// GetByCode serves the pre-checkout "is this code good" check. The
	// authoritative validation still happens inside the checkout
	// transaction.
	GetByCode(ctx context.Context, code string) (*DiscountView, error)
	List(ctx context.Context, limit int) ([]*DiscountView, error)
}

type DiscountViewRepo interface {
	FindByCode(ctx context.Context, code string) (*DiscountView, error)
	FindAll(ctx context.Context, limit int32) ([]*DiscountView, error)
}

type discountQueriesImpl struct {
	repo DiscountViewRepo
}

func NewDiscountQueries(repo DiscountViewRepo) DiscountQueries {
	return &discountQueriesImpl{repo: repo}
}

func (q *discountQueriesImpl) GetByCode(ctx context.Context, code string) (*DiscountView, error) {
	// Codes are stored normalized.
	return q.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (q *discountQueriesImpl) List(ctx context.Context, limit int) ([]*DiscountView, error) {
	return q.repo.FindAll(ctx, int32(ClampLimit(limit)))
}
