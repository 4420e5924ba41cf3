package repository

import (
	"context"
	"encoding/json"
	"errors"

	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// orderItemDoc mirrors order.Item for the jsonb items column.
type orderItemDoc struct {
	ProductID      uuid.UUID `json:"product_id"`
	VariantID      *string   `json:"variant_id,omitempty"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
}

type addressDoc struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const createOrderSQL = `
INSERT INTO orders (
	id, order_number, customer_id, guest_session_id, contact_email, status,
	items, address,
	subtotal_cents, discount_cents, tax_cents, shipping_fee_cents,
	loyalty_points_spent, loyalty_value_cents, loyalty_points_earned, final_total_cents,
	discount_id, discount_code, stock_decremented, created_at, updated_at
) VALUES (
	$1, 'ORD-' || lpad(nextval('order_number_seq')::text, 6, '0'), $2, $3, $4, $5,
	$6, $7,
	$8, $9, $10, $11,
	$12, $13, $14, $15,
	$16, $17, FALSE, $18, $18
)
RETURNING order_number`

const insertStatusHistorySQL = `
INSERT INTO order_status_history (id, order_id, status, notes, actor_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (string, error) {
	itemsJSON, err := json.Marshal(itemDocsFromDomain(o.Items()))
	if err != nil {
		return "", infra.WrapRepoErr("failed to marshal order items", err)
	}
	addressJSON, err := json.Marshal(addressDocFromDomain(o.Address()))
	if err != nil {
		return "", infra.WrapRepoErr("failed to marshal order address", err)
	}

	totals := o.Totals()
	var orderNumber string
	err = tx.QueryRow(ctx, createOrderSQL,
		o.ID(),
		pgconv.UUIDPtrToPgtype(o.CustomerID()),
		pgconv.StringPtrToPgtype(o.GuestSessionID()),
		o.ContactEmail(),
		o.Status().String(),
		itemsJSON,
		addressJSON,
		totals.SubtotalCents,
		totals.DiscountCents,
		totals.TaxCents,
		totals.ShippingFeeCents,
		totals.LoyaltyPointsSpent,
		totals.LoyaltyValueCents,
		totals.LoyaltyPointsEarned,
		totals.FinalTotalCents,
		pgconv.UUIDPtrToPgtype(o.DiscountID()),
		pgconv.StringPtrToPgtype(o.DiscountCode()),
		pgconv.TimeToPgtype(o.CreatedAt()),
	).Scan(&orderNumber)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeUniqueViolation:
				return "", infra.WrapRepoErr("order already exists", err, infra.KindDuplicateKey)
			case pgErrCodeForeignKeyViolation:
				return "", infra.WrapRepoErr("order references missing row", err, infra.KindForeignKeyViolated)
			}
		}
		return "", infra.WrapRepoErr("failed to create order", err)
	}

	for _, change := range o.StatusHistory() {
		if err := r.insertStatusChange(ctx, tx, o.ID(), change); err != nil {
			return "", err
		}
	}
	return orderNumber, nil
}

func (r *OrderRepository) insertStatusChange(ctx context.Context, tx db.DBTX, orderID uuid.UUID, change order.StatusChange) error {
	_, err := tx.Exec(ctx, insertStatusHistorySQL,
		uuid.New(),
		orderID,
		change.Status.String(),
		change.Notes,
		pgconv.UUIDPtrToPgtype(change.ActorID),
		pgconv.TimeToPgtype(change.Timestamp),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append status history", err)
	}
	return nil
}

const selectOrderSQL = `
SELECT id, order_number, customer_id, guest_session_id, contact_email, status,
	items, address,
	subtotal_cents, discount_cents, tax_cents, shipping_fee_cents,
	loyalty_points_spent, loyalty_value_cents, loyalty_points_earned, final_total_cents,
	discount_id, discount_code, stock_decremented, created_at, updated_at
FROM orders
WHERE id = $1`

func (r *OrderRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	return r.scanOrder(ctx, tx, selectOrderSQL, id)
}

// FindByIDForUpdate locks the order row until the transaction ends, so
// concurrent status changes serialize instead of racing.
func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	return r.scanOrder(ctx, tx, selectOrderSQL+" FOR UPDATE", id)
}

func (r *OrderRepository) scanOrder(ctx context.Context, tx db.DBTX, sql string, id uuid.UUID) (*order.Order, error) {
	var (
		orderID          uuid.UUID
		orderNumber      string
		customerID       pgtype.UUID
		guestSessionID   pgtype.Text
		contactEmail     string
		status           string
		itemsJSON        []byte
		addressJSON      []byte
		totals           order.Totals
		discountID       pgtype.UUID
		discountCode     pgtype.Text
		stockDecremented bool
		createdAt        pgtype.Timestamptz
		updatedAt        pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx, sql, id).Scan(
		&orderID, &orderNumber, &customerID, &guestSessionID, &contactEmail, &status,
		&itemsJSON, &addressJSON,
		&totals.SubtotalCents, &totals.DiscountCents, &totals.TaxCents, &totals.ShippingFeeCents,
		&totals.LoyaltyPointsSpent, &totals.LoyaltyValueCents, &totals.LoyaltyPointsEarned, &totals.FinalTotalCents,
		&discountID, &discountCode, &stockDecremented, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	var itemDocs []orderItemDoc
	if err := json.Unmarshal(itemsJSON, &itemDocs); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal order items", err)
	}
	var addr addressDoc
	if err := json.Unmarshal(addressJSON, &addr); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal order address", err)
	}

	parsedStatus, err := order.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid persisted order status", err)
	}

	history, err := r.loadStatusHistory(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		orderID, orderNumber,
		pgconv.UUIDPtrFromPgtype(customerID),
		pgconv.StringPtrFromPgtype(guestSessionID),
		contactEmail,
		itemDocsToDomain(itemDocs),
		addressDocToDomain(addr),
		totals,
		parsedStatus,
		history,
		pgconv.UUIDPtrFromPgtype(discountID),
		pgconv.StringPtrFromPgtype(discountCode),
		stockDecremented,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const selectStatusHistorySQL = `
SELECT status, notes, actor_id, created_at
FROM order_status_history
WHERE order_id = $1
ORDER BY created_at, id`

func (r *OrderRepository) loadStatusHistory(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]order.StatusChange, error) {
	rows, err := tx.Query(ctx, selectStatusHistorySQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load status history", err)
	}
	defer rows.Close()

	var history []order.StatusChange
	for rows.Next() {
		var (
			status    string
			notes     string
			actorID   pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&status, &notes, &actorID, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status history row", err)
		}
		parsed, err := order.NewStatus(status)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid persisted status history row", err)
		}
		history = append(history, order.StatusChange{
			Status:    parsed,
			Notes:     notes,
			ActorID:   pgconv.UUIDPtrFromPgtype(actorID),
			Timestamp: pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status history", err)
	}
	return history, nil
}

const updateStatusSQL = `
UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`

// SaveStatus persists the current status and the latest history entry.
func (r *OrderRepository) SaveStatus(ctx context.Context, tx db.DBTX, o *order.Order) error {
	if _, err := tx.Exec(ctx, updateStatusSQL, o.ID(), o.Status().String(), pgconv.TimeToPgtype(o.UpdatedAt())); err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}

	history := o.StatusHistory()
	if len(history) == 0 {
		return nil
	}
	return r.insertStatusChange(ctx, tx, o.ID(), history[len(history)-1])
}

const updatePointsEarnedSQL = `
UPDATE orders SET loyalty_points_earned = $2, updated_at = $3 WHERE id = $1`

func (r *OrderRepository) SavePointsEarned(ctx context.Context, tx db.DBTX, o *order.Order) error {
	_, err := tx.Exec(ctx, updatePointsEarnedSQL,
		o.ID(), o.Totals().LoyaltyPointsEarned, pgconv.TimeToPgtype(o.UpdatedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to update earned points", err)
	}
	return nil
}

const markStockDecrementedSQL = `
UPDATE orders SET stock_decremented = TRUE, updated_at = now() WHERE id = $1`

func (r *OrderRepository) MarkStockDecremented(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx, markStockDecrementedSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to flag stock decrement", err)
	}
	return nil
}

func itemDocsFromDomain(items []order.Item) []orderItemDoc {
	docs := make([]orderItemDoc, 0, len(items))
	for _, item := range items {
		docs = append(docs, orderItemDoc{
			ProductID:      item.ProductID,
			VariantID:      item.VariantID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	return docs
}

func itemDocsToDomain(docs []orderItemDoc) []order.Item {
	items := make([]order.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, order.Item{
			ProductID:      doc.ProductID,
			VariantID:      doc.VariantID,
			Name:           doc.Name,
			UnitPriceCents: doc.UnitPriceCents,
			Quantity:       doc.Quantity,
		})
	}
	return items
}

func addressDocFromDomain(a order.Address) addressDoc {
	return addressDoc(a)
}

func addressDocToDomain(doc addressDoc) order.Address {
	return order.Address(doc)
}
