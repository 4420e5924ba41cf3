package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderFilter narrows admin order listings. Nil fields mean no filter.
type OrderFilter struct {
	Status      *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type OrderQueries interface {
	// GetByID is unrestricted; used by admin surfaces.
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	// GetByIDForCustomer only returns the order when it belongs to the customer.
	GetByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*OrderView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
	ListAll(ctx context.Context, filter OrderFilter, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
}

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*OrderView, error)
	FindByCustomerPaginated(ctx context.Context, customerID uuid.UUID, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindAllPaginated(ctx context.Context, filter OrderFilter, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *orderQueriesImpl) GetByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*OrderView, error) {
	return q.repo.FindByIDForCustomer(ctx, customerID, id)
}

func (q *orderQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	limit = ClampLimit(limit)
	afterCreatedAt, afterID, err := decodeCursor(after)
	if err != nil {
		return nil, nil, err
	}

	rows, err := q.repo.FindByCustomerPaginated(ctx, customerID, afterCreatedAt, afterID, int32(limit))
	if err != nil {
		return nil, nil, err
	}
	return rows, nextCursor(rows, limit), nil
}

func (q *orderQueriesImpl) ListAll(ctx context.Context, filter OrderFilter, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	limit = ClampLimit(limit)
	afterCreatedAt, afterID, err := decodeCursor(after)
	if err != nil {
		return nil, nil, err
	}

	rows, err := q.repo.FindAllPaginated(ctx, filter, afterCreatedAt, afterID, int32(limit))
	if err != nil {
		return nil, nil, err
	}
	return rows, nextCursor(rows, limit), nil
}

func decodeCursor(after *Cursor) (*time.Time, *uuid.UUID, error) {
	if after == nil || after.After == "" {
		return nil, nil, nil
	}
	createdAt, id, err := DecodeAfterCursor(after.After)
	if err != nil {
		return nil, nil, err
	}
	return &createdAt, &id, nil
}

func nextCursor(rows []*OrderListItem, limit int) *Cursor {
	if len(rows) < limit {
		return nil
	}
	last := rows[len(rows)-1]
	return &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
}
