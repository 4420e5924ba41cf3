package repository

import (
	"context"
	"errors"

	"shopcore/internal/domain/discount"
	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type DiscountRepository struct{}

func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{}
}

const createDiscountSQL = `
INSERT INTO discounts (
	id, code, type, value, min_purchase_cents, max_usage, used_count, active,
	valid_from, valid_to, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, now(), now())`

func (r *DiscountRepository) Create(ctx context.Context, tx db.DBTX, d *discount.Discount) (uuid.UUID, error) {
	var minPurchase pgtype.Int8
	if mp := d.MinPurchaseCents(); mp != nil {
		minPurchase = pgtype.Int8{Int64: *mp, Valid: true}
	}
	var maxUsage pgtype.Int4
	if mu := d.MaxUsage(); mu != nil {
		maxUsage = pgtype.Int4{Int32: *mu, Valid: true}
	}

	_, err := tx.Exec(ctx, createDiscountSQL,
		d.ID(),
		d.Code().String(),
		d.Value().Type().String(),
		d.Value().Amount(),
		minPurchase,
		maxUsage,
		d.Active(),
		pgconv.TimePtrToPgtype(d.ValidFrom()),
		pgconv.TimePtrToPgtype(d.ValidTo()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("discount code already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create discount", err)
	}
	return d.ID(), nil
}

// Reserve consumes one use only while the cap holds. Zero rows affected
// means a concurrent checkout took the last slot.
const reserveDiscountSQL = `
UPDATE discounts
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1
	AND active
	AND (max_usage IS NULL OR used_count < max_usage)`

func (r *DiscountRepository) Reserve(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, reserveDiscountSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve discount use", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("discount usage cap reached", nil, infra.KindConflict)
	}
	return nil
}

const selectDiscountByCodeSQL = `
SELECT id, code, type, value, min_purchase_cents, max_usage, used_count, active,
	valid_from, valid_to, created_at, updated_at
FROM discounts
WHERE code = $1`

func (r *DiscountRepository) FindByCode(ctx context.Context, tx db.DBTX, code string) (*discount.Discount, error) {
	var (
		id          uuid.UUID
		rawCode     string
		rawType     string
		value       float64
		minPurchase pgtype.Int8
		maxUsage    pgtype.Int4
		usedCount   int32
		active      bool
		validFrom   pgtype.Timestamptz
		validTo     pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx, selectDiscountByCodeSQL, code).Scan(
		&id, &rawCode, &rawType, &value, &minPurchase, &maxUsage, &usedCount, &active,
		&validFrom, &validTo, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find discount by code", err)
	}

	parsedType, err := discount.NewType(rawType)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid persisted discount type", err)
	}
	parsedValue, err := discount.NewValue(parsedType, value)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid persisted discount value", err)
	}

	var minPurchasePtr *int64
	if minPurchase.Valid {
		minPurchasePtr = &minPurchase.Int64
	}

	return discount.Restore(
		id,
		discount.Code(rawCode),
		parsedValue,
		minPurchasePtr,
		pgconv.Int32PtrFromPgtype(maxUsage),
		usedCount,
		active,
		pgconv.TimePtrFromPgtype(validFrom),
		pgconv.TimePtrFromPgtype(validTo),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
