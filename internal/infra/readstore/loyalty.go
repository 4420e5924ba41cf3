package readstore

import (
	"context"

	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/pkg/pgconv"
	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LoyaltyReadStore struct {
	db db.DBTX
}

func NewLoyaltyReadStore(dbtx db.DBTX) *LoyaltyReadStore {
	return &LoyaltyReadStore{db: dbtx}
}

const selectAccountViewSQL = `
SELECT id, customer_id, balance, updated_at
FROM loyalty_accounts
WHERE customer_id = $1`

func (s *LoyaltyReadStore) FindAccountByCustomer(ctx context.Context, customerID uuid.UUID) (*queries.LoyaltyAccountView, error) {
	view := &queries.LoyaltyAccountView{}
	var updatedAt pgtype.Timestamptz

	err := s.db.QueryRow(ctx, selectAccountViewSQL, customerID).Scan(
		&view.ID, &view.CustomerID, &view.Balance, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("loyalty account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find loyalty account view", err)
	}
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return view, nil
}

const selectTransactionsSQL = `
SELECT t.id, t.type, t.points_change, t.point_value_cents,
	t.order_id, t.reverses_transaction_id, t.description, t.created_at
FROM loyalty_transactions t
JOIN loyalty_accounts a ON a.id = t.account_id
WHERE a.customer_id = $1
ORDER BY t.created_at DESC, t.id DESC
LIMIT $2`

func (s *LoyaltyReadStore) FindTransactionsByCustomer(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.LoyaltyTransactionView, error) {
	rows, err := s.db.Query(ctx, selectTransactionsSQL, customerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loyalty transactions", err)
	}
	defer rows.Close()

	var views []*queries.LoyaltyTransactionView
	for rows.Next() {
		view := &queries.LoyaltyTransactionView{}
		var (
			orderID   pgtype.UUID
			reverses  pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&view.ID, &view.Type, &view.PointsChange, &view.PointValueCents,
			&orderID, &reverses, &view.Description, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan loyalty transaction row", err)
		}
		view.OrderID = pgconv.UUIDPtrFromPgtype(orderID)
		view.ReversesTransactionID = pgconv.UUIDPtrFromPgtype(reverses)
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate loyalty transactions", err)
	}
	return views, nil
}
