//go:build unit

package loyalty_test

import (
	"testing"
	"time"

	"shopcore/internal/domain/loyalty"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsEarned(t *testing.T) {
	cases := []struct {
		name            string
		finalTotalCents int64
		want            int64
	}{
		{"zero total", 0, 0},
		{"below one point", 999, 0},
		{"exactly one point", 1000, 1},
		{"partial points truncate", 12136, 12},
		{"large total", 250000, 250},
		{"negative total", -500, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, loyalty.PointsEarned(tc.finalTotalCents))
		})
	}
}

func TestValueOfPoints(t *testing.T) {
	assert.Equal(t, int64(500), loyalty.ValueOfPoints(50))
	assert.Equal(t, int64(0), loyalty.ValueOfPoints(0))
}

func TestAccountCanSpend(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	account := loyalty.RestoreAccount(uuid.New(), uuid.New(), 100, now, now)

	t.Run("sufficient balance", func(t *testing.T) {
		assert.NoError(t, account.CanSpend(100))
	})

	t.Run("insufficient balance", func(t *testing.T) {
		assert.ErrorIs(t, account.CanSpend(101), loyalty.ErrInsufficientBalance)
	})

	t.Run("non-positive spend", func(t *testing.T) {
		assert.ErrorIs(t, account.CanSpend(0), loyalty.ErrZeroPointsChange)
		assert.ErrorIs(t, account.CanSpend(-10), loyalty.ErrZeroPointsChange)
	})
}

func TestNewTransaction(t *testing.T) {
	accountID := uuid.New()
	orderID := uuid.New()

	t.Run("captures the current point value", func(t *testing.T) {
		tx, err := loyalty.NewTransaction(uuid.New(), accountID, loyalty.TypeEarned, 12, &orderID, nil, "order reward")
		require.NoError(t, err)
		assert.Equal(t, loyalty.PointValueCents, tx.PointValueCents())
		assert.Equal(t, int64(12), tx.PointsChange())
	})

	t.Run("zero change only allowed for initial balance", func(t *testing.T) {
		_, err := loyalty.NewTransaction(uuid.New(), accountID, loyalty.TypeEarned, 0, nil, nil, "")
		assert.ErrorIs(t, err, loyalty.ErrZeroPointsChange)

		_, err = loyalty.NewTransaction(uuid.New(), accountID, loyalty.TypeInitialBalance, 0, nil, nil, "")
		assert.NoError(t, err)
	})
}

func TestTransactionReversal(t *testing.T) {
	accountID := uuid.New()
	orderID := uuid.New()

	spend, err := loyalty.NewTransaction(uuid.New(), accountID, loyalty.TypeSpent, -50, &orderID, nil, "points applied")
	require.NoError(t, err)

	reversal, err := spend.Reversal(uuid.New(), "order cancelled")
	require.NoError(t, err)

	assert.Equal(t, loyalty.TypeReversal, reversal.Type())
	assert.Equal(t, int64(50), reversal.PointsChange())
	require.NotNil(t, reversal.ReversesTransactionID())
	assert.Equal(t, spend.ID(), *reversal.ReversesTransactionID())
	require.NotNil(t, reversal.OrderID())
	assert.Equal(t, orderID, *reversal.OrderID())
}

func TestNewTransactionType(t *testing.T) {
	for _, valid := range []string{"initial_balance", "earned", "spent", "adjusted", "reversal"} {
		_, err := loyalty.NewTransactionType(valid)
		assert.NoError(t, err, valid)
	}
	_, err := loyalty.NewTransactionType("bonus")
	assert.ErrorIs(t, err, loyalty.ErrInvalidTransactionType)
}
