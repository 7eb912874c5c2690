package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

func TestMemoryTransactionStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTransactionStore()

	_, found, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	deposit := models.NewDeposit(1, 1, decimal.RequireFromString("2.5"))
	replaced, err := store.Set(ctx, deposit)
	require.NoError(t, err)
	assert.False(t, replaced)

	got, found, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.KindDeposit, got.Kind)
	assert.True(t, got.Amount.Decimal.Equal(decimal.RequireFromString("2.5")))

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestMemoryTransactionStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTransactionStore()

	_, err := store.Set(ctx, models.NewDeposit(1, 7, decimal.NewFromInt(1)))
	require.NoError(t, err)

	replaced, err := store.Set(ctx, models.NewWithdrawal(2, 7, decimal.NewFromInt(3)))
	require.NoError(t, err)
	assert.True(t, replaced)

	got, _, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, models.KindWithdrawal, got.Kind)
	assert.Equal(t, models.ClientID(2), got.ClientID)

	size, _ := store.Size(ctx)
	assert.Equal(t, 1, size)
}

func TestMemoryTransactionStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTransactionStore()
	_, _ = store.Set(ctx, models.NewDeposit(1, 1, decimal.NewFromInt(1)))
	_, _ = store.Set(ctx, models.NewDeposit(1, 2, decimal.NewFromInt(1)))

	store.Reset()

	size, _ := store.Size(ctx)
	assert.Zero(t, size)
}

func TestMemoryTransactionStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTransactionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _ = store.Set(ctx, models.NewDeposit(models.ClientID(id%3), models.TransactionID(id), decimal.NewFromInt(int64(id))))
			_, _, _ = store.Get(ctx, models.TransactionID(id))
		}(i)
	}
	wg.Wait()

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, size)
}
