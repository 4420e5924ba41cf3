package readstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/pkg/pgconv"
	"shopcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const selectOrderViewSQL = `
SELECT id, order_number, customer_id, guest_session_id, contact_email, status,
	items, address,
	subtotal_cents, discount_cents, tax_cents, shipping_fee_cents,
	loyalty_points_spent, loyalty_value_cents, loyalty_points_earned, final_total_cents,
	discount_code, stock_decremented, created_at, updated_at
FROM orders
WHERE id = $1`

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	return s.scanView(ctx, selectOrderViewSQL, id)
}

func (s *OrderReadStore) FindByIDForCustomer(ctx context.Context, customerID, id uuid.UUID) (*queries.OrderView, error) {
	return s.scanView(ctx, selectOrderViewSQL+" AND customer_id = $2", id, customerID)
}

func (s *OrderReadStore) scanView(ctx context.Context, sql string, args ...any) (*queries.OrderView, error) {
	view := &queries.OrderView{}
	var (
		customerID     pgtype.UUID
		guestSessionID pgtype.Text
		itemsJSON      []byte
		addressJSON    []byte
		discountCode   pgtype.Text
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, sql, args...).Scan(
		&view.ID, &view.OrderNumber, &customerID, &guestSessionID, &view.ContactEmail, &view.Status,
		&itemsJSON, &addressJSON,
		&view.SubtotalCents, &view.DiscountCents, &view.TaxCents, &view.ShippingFeeCents,
		&view.LoyaltyPointsSpent, &view.LoyaltyValueCents, &view.LoyaltyPointsEarned, &view.FinalTotalCents,
		&discountCode, &view.StockDecremented, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order view", err)
	}

	if err := json.Unmarshal(itemsJSON, &view.Items); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal order items", err)
	}
	if err := json.Unmarshal(addressJSON, &view.Address); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal order address", err)
	}

	view.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
	view.GuestSessionID = pgconv.StringPtrFromPgtype(guestSessionID)
	view.DiscountCode = pgconv.StringPtrFromPgtype(discountCode)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	history, err := s.loadHistory(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	view.StatusHistory = history
	return view, nil
}

const selectHistoryViewSQL = `
SELECT status, notes, actor_id, created_at
FROM order_status_history
WHERE order_id = $1
ORDER BY created_at, id`

func (s *OrderReadStore) loadHistory(ctx context.Context, orderID uuid.UUID) ([]queries.StatusChangeView, error) {
	rows, err := s.db.Query(ctx, selectHistoryViewSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load status history", err)
	}
	defer rows.Close()

	var history []queries.StatusChangeView
	for rows.Next() {
		var (
			entry     queries.StatusChangeView
			actorID   pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&entry.Status, &entry.Notes, &actorID, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status history row", err)
		}
		entry.ActorID = pgconv.UUIDPtrFromPgtype(actorID)
		entry.Timestamp = pgconv.TimeFromPgtype(createdAt)
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status history", err)
	}
	return history, nil
}

const listOrdersBaseSQL = `
SELECT id, order_number, status, final_total_cents, jsonb_array_length(items), created_at
FROM orders`

func (s *OrderReadStore) FindByCustomerPaginated(
	ctx context.Context,
	customerID uuid.UUID,
	afterCreatedAt *time.Time,
	afterID *uuid.UUID,
	limit int32,
) ([]*queries.OrderListItem, error) {
	conditions := []string{"customer_id = $1"}
	args := []any{customerID}
	conditions, args = appendKeyset(conditions, args, afterCreatedAt, afterID)

	return s.listOrders(ctx, conditions, args, limit)
}

func (s *OrderReadStore) FindAllPaginated(
	ctx context.Context,
	filter queries.OrderFilter,
	afterCreatedAt *time.Time,
	afterID *uuid.UUID,
	limit int32,
) ([]*queries.OrderListItem, error) {
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	conditions, args = appendKeyset(conditions, args, afterCreatedAt, afterID)

	return s.listOrders(ctx, conditions, args, limit)
}

// Keyset pagination on (created_at, id) descending: newest orders first.
func appendKeyset(conditions []string, args []any, afterCreatedAt *time.Time, afterID *uuid.UUID) ([]string, []any) {
	if afterCreatedAt == nil || afterID == nil {
		return conditions, args
	}
	args = append(args, *afterCreatedAt, *afterID)
	conditions = append(conditions, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	return conditions, args
}

func (s *OrderReadStore) listOrders(ctx context.Context, conditions []string, args []any, limit int32) ([]*queries.OrderListItem, error) {
	sql := listOrdersBaseSQL
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	sql += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		item := &queries.OrderListItem{}
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&item.ID, &item.OrderNumber, &item.Status, &item.FinalTotalCents, &item.ItemCount, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list row", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order list", err)
	}
	return items, nil
}
