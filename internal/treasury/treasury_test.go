package treasury

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "caresure/pkg/domain-errors"
)

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	require.NoError(t, ledger.Transfer(ctx, 1, 500, 1000))
	assert.Equal(t, int64(500), ledger.Balance(ctx, 1))

	require.NoError(t, ledger.Transfer(ctx, 1, 250, 250))
	assert.Equal(t, int64(750), ledger.Balance(ctx, 1))
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	err := ledger.Transfer(ctx, 1, 500, 499)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientFunds))
	assert.Zero(t, ledger.Balance(ctx, 1), "failed transfer must not mutate the balance")
}

func TestTransfer_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	err := ledger.Transfer(ctx, 1, 0, 1000)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	require.NoError(t, ledger.Transfer(ctx, 1, 500, 1000))

	require.NoError(t, ledger.Withdraw(ctx, 1, 200))
	assert.Equal(t, int64(300), ledger.Balance(ctx, 1))

	err := ledger.Withdraw(ctx, 1, 400)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientFunds))
}
