//go:build unit

package commands_test

import (
	"context"
	"time"

	"shopcore/internal/domain/discount"
	"shopcore/internal/domain/loyalty"
	"shopcore/internal/domain/order"
	"shopcore/internal/infra"
	"shopcore/internal/infra/db"
	"shopcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var zeroTime = time.Time{}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

func conflictErr() error {
	return infra.WrapRepoErr("conditional update affected no rows", nil, infra.KindConflict)
}

// fakeUnitOfWork runs the callback against an in-memory Tx. There is no
// real transaction, so partial effects stay visible on rollback paths;
// tests only assert what was attempted.
type fakeUnitOfWork struct {
	tx *fakeTx
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		tx: &fakeTx{
			orders:    &fakeOrderRepo{},
			discounts: &fakeDiscountRepo{},
			loyalty:   &fakeLoyaltyRepo{},
			reads:     &fakeCommandReads{},
		},
	}
}

func (f *fakeUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, f.tx)
}

func (f *fakeUnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (f *fakeUnitOfWork) CommandReads() shared.CommandReads {
	return f.tx.reads
}

type fakeTx struct {
	orders    *fakeOrderRepo
	discounts *fakeDiscountRepo
	loyalty   *fakeLoyaltyRepo
	reads     *fakeCommandReads
}

func (f *fakeTx) Orders() shared.OrderRepository       { return f.orders }
func (f *fakeTx) Discounts() shared.DiscountRepository { return f.discounts }
func (f *fakeTx) Loyalty() shared.LoyaltyRepository    { return f.loyalty }
func (f *fakeTx) Reads() shared.CommandReads           { return f.reads }
func (f *fakeTx) DB() db.DBTX                          { return nil }

type fakeOrderRepo struct {
	created          *order.Order
	createNumber     string
	createErr        error
	findForUpdate    *order.Order
	findForUpdateErr error
	statusSaved      bool
	pointsSaved      bool
	stockMarked      []uuid.UUID
}

func (f *fakeOrderRepo) Create(_ context.Context, _ db.DBTX, o *order.Order) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = o
	if f.createNumber == "" {
		return "ORD-000001", nil
	}
	return f.createNumber, nil
}

func (f *fakeOrderRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, _ uuid.UUID) (*order.Order, error) {
	if f.findForUpdateErr != nil {
		return nil, f.findForUpdateErr
	}
	if f.findForUpdate == nil {
		return nil, notFoundErr()
	}
	return f.findForUpdate, nil
}

func (f *fakeOrderRepo) SaveStatus(_ context.Context, _ db.DBTX, _ *order.Order) error {
	f.statusSaved = true
	return nil
}

func (f *fakeOrderRepo) SavePointsEarned(_ context.Context, _ db.DBTX, _ *order.Order) error {
	f.pointsSaved = true
	return nil
}

func (f *fakeOrderRepo) MarkStockDecremented(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	f.stockMarked = append(f.stockMarked, id)
	return nil
}

type fakeDiscountRepo struct {
	createdID  uuid.UUID
	createErr  error
	reserveErr error
	reserved   []uuid.UUID
}

func (f *fakeDiscountRepo) Create(_ context.Context, _ db.DBTX, d *discount.Discount) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.createdID = d.ID()
	return d.ID(), nil
}

func (f *fakeDiscountRepo) Reserve(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, id)
	return nil
}

type fakeLoyaltyRepo struct {
	account       *loyalty.Account
	accountErr    error
	applyErr      error
	changes       []int64
	transactions  []*loyalty.Transaction
	insertErr     error
	unreversed    []*loyalty.Transaction
	unreversedErr error
}

func (f *fakeLoyaltyRepo) GetOrCreateAccount(_ context.Context, _ db.DBTX, customerID uuid.UUID) (*loyalty.Account, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	if f.account == nil {
		f.account = loyalty.RestoreAccount(uuid.New(), customerID, 0, zeroTime, zeroTime)
	}
	return f.account, nil
}

func (f *fakeLoyaltyRepo) ApplyChange(_ context.Context, _ db.DBTX, _ uuid.UUID, pointsChange int64) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.changes = append(f.changes, pointsChange)
	return nil
}

func (f *fakeLoyaltyRepo) InsertTransaction(_ context.Context, _ db.DBTX, transaction *loyalty.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.transactions = append(f.transactions, transaction)
	return nil
}

func (f *fakeLoyaltyRepo) FindUnreversedByOrder(_ context.Context, _ db.DBTX, _ uuid.UUID) ([]*loyalty.Transaction, error) {
	if f.unreversedErr != nil {
		return nil, f.unreversedErr
	}
	return f.unreversed, nil
}

type fakeCommandReads struct {
	discount    *discount.Discount
	discountErr error
	order       *order.Order
	orderErr    error
	account     *loyalty.Account
	accountErr  error
}

func (f *fakeCommandReads) DiscountByCode(_ context.Context, _ string) (*discount.Discount, error) {
	if f.discountErr != nil {
		return nil, f.discountErr
	}
	if f.discount == nil {
		return nil, notFoundErr()
	}
	return f.discount, nil
}

func (f *fakeCommandReads) OrderByID(_ context.Context, _ uuid.UUID) (*order.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	if f.order == nil {
		return nil, notFoundErr()
	}
	return f.order, nil
}

func (f *fakeCommandReads) AccountByCustomer(_ context.Context, _ uuid.UUID) (*loyalty.Account, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	if f.account == nil {
		return nil, notFoundErr()
	}
	return f.account, nil
}
