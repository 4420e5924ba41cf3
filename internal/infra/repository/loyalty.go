package repository

import (
	"context"

	"shopcore/internal/domain/loyalty"
	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LoyaltyRepository struct{}

func NewLoyaltyRepository() *LoyaltyRepository {
	return &LoyaltyRepository{}
}

const insertAccountSQL = `
INSERT INTO loyalty_accounts (id, customer_id, balance, created_at, updated_at)
VALUES ($1, $2, 0, now(), now())
ON CONFLICT (customer_id) DO NOTHING`

const selectAccountByCustomerSQL = `
SELECT id, customer_id, balance, created_at, updated_at
FROM loyalty_accounts
WHERE customer_id = $1`

// GetOrCreateAccount is idempotent. A fresh account gets a zero-delta
// initial_balance row so the ledger reconciles from day one.
func (r *LoyaltyRepository) GetOrCreateAccount(ctx context.Context, tx db.DBTX, customerID uuid.UUID) (*loyalty.Account, error) {
	newID := uuid.New()
	tag, err := tx.Exec(ctx, insertAccountSQL, newID, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create loyalty account", err)
	}

	if tag.RowsAffected() == 1 {
		opening, err := loyalty.NewTransaction(
			uuid.New(), newID, loyalty.TypeInitialBalance, 0, nil, nil, "account opened",
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to build opening transaction", err)
		}
		if err := r.InsertTransaction(ctx, tx, opening); err != nil {
			return nil, err
		}
	}

	return r.FindAccountByCustomer(ctx, tx, customerID)
}

func (r *LoyaltyRepository) FindAccountByCustomer(ctx context.Context, tx db.DBTX, customerID uuid.UUID) (*loyalty.Account, error) {
	var (
		id        uuid.UUID
		owner     uuid.UUID
		balance   int64
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, selectAccountByCustomerSQL, customerID).Scan(
		&id, &owner, &balance, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("loyalty account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find loyalty account", err)
	}

	return loyalty.RestoreAccount(
		id, owner, balance,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// ApplyChange is the serialization point for concurrent balance
// mutations: the non-negativity predicate decides the race, not
// application-level locks.
const applyChangeSQL = `
UPDATE loyalty_accounts
SET balance = balance + $2, updated_at = now()
WHERE id = $1 AND balance + $2 >= 0`

func (r *LoyaltyRepository) ApplyChange(ctx context.Context, tx db.DBTX, accountID uuid.UUID, pointsChange int64) error {
	tag, err := tx.Exec(ctx, applyChangeSQL, accountID, pointsChange)
	if err != nil {
		return infra.WrapRepoErr("failed to apply balance change", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("balance change rejected", nil, infra.KindConflict)
	}
	return nil
}

const insertTransactionSQL = `
INSERT INTO loyalty_transactions (
	id, account_id, type, points_change, point_value_cents,
	order_id, reverses_transaction_id, description, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`

func (r *LoyaltyRepository) InsertTransaction(ctx context.Context, tx db.DBTX, transaction *loyalty.Transaction) error {
	_, err := tx.Exec(ctx, insertTransactionSQL,
		transaction.ID(),
		transaction.AccountID(),
		transaction.Type().String(),
		transaction.PointsChange(),
		transaction.PointValueCents(),
		pgconv.UUIDPtrToPgtype(transaction.OrderID()),
		pgconv.UUIDPtrToPgtype(transaction.ReversesTransactionID()),
		transaction.Description(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert loyalty transaction", err)
	}
	return nil
}

// FindUnreversedByOrder returns the earn/spend rows for an order that no
// reversal row points at yet. Reversals are themselves immutable rows,
// so "already reversed" is a join, not a flag.
const selectUnreversedSQL = `
SELECT t.id, t.account_id, t.type, t.points_change, t.point_value_cents,
	t.order_id, t.reverses_transaction_id, t.description, t.created_at
FROM loyalty_transactions t
WHERE t.order_id = $1
	AND t.type IN ('earned', 'spent')
	AND NOT EXISTS (
		SELECT 1 FROM loyalty_transactions r
		WHERE r.reverses_transaction_id = t.id
	)
ORDER BY t.created_at, t.id`

func (r *LoyaltyRepository) FindUnreversedByOrder(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]*loyalty.Transaction, error) {
	rows, err := tx.Query(ctx, selectUnreversedSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order transactions", err)
	}
	defer rows.Close()

	var transactions []*loyalty.Transaction
	for rows.Next() {
		var (
			id              uuid.UUID
			accountID       uuid.UUID
			rawType         string
			pointsChange    int64
			pointValueCents int64
			linkedOrder     pgtype.UUID
			reverses        pgtype.UUID
			description     string
			createdAt       pgtype.Timestamptz
		)
		if err := rows.Scan(
			&id, &accountID, &rawType, &pointsChange, &pointValueCents,
			&linkedOrder, &reverses, &description, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan loyalty transaction", err)
		}

		parsedType, err := loyalty.NewTransactionType(rawType)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid persisted transaction type", err)
		}

		transactions = append(transactions, loyalty.RestoreTransaction(
			id, accountID, parsedType, pointsChange, pointValueCents,
			pgconv.UUIDPtrFromPgtype(linkedOrder),
			pgconv.UUIDPtrFromPgtype(reverses),
			description,
			pgconv.TimeFromPgtype(createdAt),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate loyalty transactions", err)
	}
	return transactions, nil
}
