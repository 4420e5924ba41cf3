package queries

import (
	"context"

	"github.com/google/uuid"
)

type LoyaltyQueries interface {
	GetAccount(ctx context.Context, customerID uuid.UUID) (*LoyaltyAccountView, error)
	ListTransactions(ctx context.Context, customerID uuid.UUID, limit int) ([]*LoyaltyTransactionView, error)
}

type LoyaltyViewRepo interface {
	FindAccountByCustomer(ctx context.Context, customerID uuid.UUID) (*LoyaltyAccountView, error)
	FindTransactionsByCustomer(ctx context.Context, customerID uuid.UUID, limit int32) ([]*LoyaltyTransactionView, error)
}

type loyaltyQueriesImpl struct {
	repo LoyaltyViewRepo
}

func NewLoyaltyQueries(repo LoyaltyViewRepo) LoyaltyQueries {
	return &loyaltyQueriesImpl{repo: repo}
}

func (q *loyaltyQueriesImpl) GetAccount(ctx context.Context, customerID uuid.UUID) (*LoyaltyAccountView, error) {
	return q.repo.FindAccountByCustomer(ctx, customerID)
}

func (q *loyaltyQueriesImpl) ListTransactions(ctx context.Context, customerID uuid.UUID, limit int) ([]*LoyaltyTransactionView, error) {
	return q.repo.FindTransactionsByCustomer(ctx, customerID, int32(ClampLimit(limit)))
}
