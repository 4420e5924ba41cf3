package shared

import (
	"context"

	"shopcore/internal/domain/discount"
	"shopcore/internal/domain/loyalty"
	"shopcore/internal/domain/order"
	"shopcore/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Discounts() DiscountRepository
	Loyalty() LoyaltyRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	DiscountByCode(ctx context.Context, code string) (*discount.Discount, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	AccountByCustomer(ctx context.Context, customerID uuid.UUID) (*loyalty.Account, error)
}

type OrderRepository interface {
	// Create persists the order and returns the assigned order number.
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (string, error)
	// FindByIDForUpdate locks the order row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
	SaveStatus(ctx context.Context, tx db.DBTX, o *order.Order) error
	SavePointsEarned(ctx context.Context, tx db.DBTX, o *order.Order) error
	MarkStockDecremented(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type DiscountRepository interface {
	Create(ctx context.Context, tx db.DBTX, d *discount.Discount) (uuid.UUID, error)
	// Reserve consumes one use with a conditional update. Zero rows
	// affected means the usage cap was hit by a concurrent checkout.
	Reserve(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type LoyaltyRepository interface {
	GetOrCreateAccount(ctx context.Context, tx db.DBTX, customerID uuid.UUID) (*loyalty.Account, error)
	// ApplyChange mutates the balance with a non-negativity guard. Zero
	// rows affected means the change would have driven the balance below
	// zero.
	ApplyChange(ctx context.Context, tx db.DBTX, accountID uuid.UUID, pointsChange int64) error
	InsertTransaction(ctx context.Context, tx db.DBTX, transaction *loyalty.Transaction) error
	FindUnreversedByOrder(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]*loyalty.Transaction, error)
}
