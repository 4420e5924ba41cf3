package loyalty

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransactionType = errors.New("invalid loyalty transaction type")
	ErrZeroPointsChange       = errors.New("points change cannot be zero")
	ErrNegativeBalance        = errors.New("loyalty balance cannot go negative")
	ErrInsufficientBalance    = errors.New("insufficient loyalty balance")
)

// PointValueCents is the redemption value of one point.
const PointValueCents int64 = 10

// EarnRate awards one point per full ten dollars of the final order total.
// 1000 cents = $10 = 1 point, truncating partial points.
const earnDivisorCents int64 = 1000

func PointsEarned(finalTotalCents int64) int64 {
	if finalTotalCents <= 0 {
		return 0
	}
	return finalTotalCents / earnDivisorCents
}

func ValueOfPoints(points int64) int64 {
	return points * PointValueCents
}

type TransactionType string

const (
	TypeInitialBalance TransactionType = "initial_balance"
	TypeEarned         TransactionType = "earned"
	TypeSpent          TransactionType = "spent"
	TypeAdjusted       TransactionType = "adjusted"
	TypeReversal       TransactionType = "reversal"
)

func NewTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeInitialBalance, TypeEarned, TypeSpent, TypeAdjusted, TypeReversal:
		return TransactionType(s), nil
	default:
		return "", ErrInvalidTransactionType
	}
}

func (t TransactionType) String() string {
	return string(t)
}

type Account struct {
	id         uuid.UUID
	customerID uuid.UUID
	balance    int64
	createdAt  time.Time
	updatedAt  time.Time
}

func RestoreAccount(id, customerID uuid.UUID, balance int64, createdAt, updatedAt time.Time) *Account {
	return &Account{
		id:         id,
		customerID: customerID,
		balance:    balance,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (a *Account) ID() uuid.UUID         { return a.id }
func (a *Account) CustomerID() uuid.UUID { return a.customerID }
func (a *Account) Balance() int64        { return a.balance }
func (a *Account) CreatedAt() time.Time  { return a.createdAt }
func (a *Account) UpdatedAt() time.Time  { return a.updatedAt }

// CanSpend reports whether the account holds at least the given points.
func (a *Account) CanSpend(points int64) error {
	if points <= 0 {
		return ErrZeroPointsChange
	}
	if a.balance < points {
		return ErrInsufficientBalance
	}
	return nil
}

// Transaction is one immutable ledger row. The point value is captured
// at write time so later rate changes do not rewrite history.
type Transaction struct {
	id                    uuid.UUID
	accountID             uuid.UUID
	transactionType       TransactionType
	pointsChange          int64
	pointValueCents       int64
	orderID               *uuid.UUID
	reversesTransactionID *uuid.UUID
	description           string
	createdAt             time.Time
}

func NewTransaction(
	id uuid.UUID,
	accountID uuid.UUID,
	transactionType TransactionType,
	pointsChange int64,
	orderID *uuid.UUID,
	reversesTransactionID *uuid.UUID,
	description string,
) (*Transaction, error) {
	if pointsChange == 0 && transactionType != TypeInitialBalance {
		return nil, ErrZeroPointsChange
	}
	return &Transaction{
		id:                    id,
		accountID:             accountID,
		transactionType:       transactionType,
		pointsChange:          pointsChange,
		pointValueCents:       PointValueCents,
		orderID:               orderID,
		reversesTransactionID: reversesTransactionID,
		description:           description,
	}, nil
}

func RestoreTransaction(
	id uuid.UUID,
	accountID uuid.UUID,
	transactionType TransactionType,
	pointsChange int64,
	pointValueCents int64,
	orderID *uuid.UUID,
	reversesTransactionID *uuid.UUID,
	description string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:                    id,
		accountID:             accountID,
		transactionType:       transactionType,
		pointsChange:          pointsChange,
		pointValueCents:       pointValueCents,
		orderID:               orderID,
		reversesTransactionID: reversesTransactionID,
		description:           description,
		createdAt:             createdAt,
	}
}

// Reversal builds the compensating transaction for this one.
func (tx *Transaction) Reversal(id uuid.UUID, description string) (*Transaction, error) {
	reversedID := tx.id
	return NewTransaction(
		id,
		tx.accountID,
		TypeReversal,
		-tx.pointsChange,
		tx.orderID,
		&reversedID,
		description,
	)
}

func (tx *Transaction) ID() uuid.UUID                     { return tx.id }
func (tx *Transaction) AccountID() uuid.UUID              { return tx.accountID }
func (tx *Transaction) Type() TransactionType             { return tx.transactionType }
func (tx *Transaction) PointsChange() int64               { return tx.pointsChange }
func (tx *Transaction) PointValueCents() int64            { return tx.pointValueCents }
func (tx *Transaction) OrderID() *uuid.UUID               { return tx.orderID }
func (tx *Transaction) ReversesTransactionID() *uuid.UUID { return tx.reversesTransactionID }
func (tx *Transaction) Description() string               { return tx.description }
func (tx *Transaction) CreatedAt() time.Time              { return tx.createdAt }
