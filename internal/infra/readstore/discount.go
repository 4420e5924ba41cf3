package readstore

import (
	"context"

	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/pkg/pgconv"
	"shopcore/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type DiscountReadStore struct {
	db db.DBTX
}

func NewDiscountReadStore(dbtx db.DBTX) *DiscountReadStore {
	return &DiscountReadStore{db: dbtx}
}

const selectDiscountViewSQL = `
SELECT id, code, type, value, min_purchase_cents, max_usage, used_count, active,
	valid_from, valid_to, created_at, updated_at
FROM discounts`

func (s *DiscountReadStore) FindByCode(ctx context.Context, code string) (*queries.DiscountView, error) {
	row := s.db.QueryRow(ctx, selectDiscountViewSQL+" WHERE code = $1", code)
	view, err := scanDiscountView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find discount view", err)
	}
	return view, nil
}

func (s *DiscountReadStore) FindAll(ctx context.Context, limit int32) ([]*queries.DiscountView, error) {
	rows, err := s.db.Query(ctx, selectDiscountViewSQL+" ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list discounts", err)
	}
	defer rows.Close()

	var views []*queries.DiscountView
	for rows.Next() {
		view, err := scanDiscountView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate discounts", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDiscountView(row rowScanner) (*queries.DiscountView, error) {
	view := &queries.DiscountView{}
	var (
		minPurchase pgtype.Int8
		maxUsage    pgtype.Int4
		validFrom   pgtype.Timestamptz
		validTo     pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.Code, &view.Type, &view.Value, &minPurchase, &maxUsage,
		&view.UsedCount, &view.Active, &validFrom, &validTo, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if minPurchase.Valid {
		view.MinPurchaseCents = &minPurchase.Int64
	}
	view.MaxUsage = pgconv.Int32PtrFromPgtype(maxUsage)
	view.ValidFrom = pgconv.TimePtrFromPgtype(validFrom)
	view.ValidTo = pgconv.TimePtrFromPgtype(validTo)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return view, nil
}
