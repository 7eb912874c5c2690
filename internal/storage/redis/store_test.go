package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

func newTestStore(t *testing.T) (*RedisTransactionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTransactionStore(client, "test-run", time.Minute), mr
}

func TestRedisTransactionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	replaced, err := store.Set(ctx, models.NewDeposit(4, 10, decimal.RequireFromString("12.3456")))
	require.NoError(t, err)
	assert.False(t, replaced)

	got, found, err := store.Get(ctx, 10)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.KindDeposit, got.Kind)
	assert.Equal(t, models.ClientID(4), got.ClientID)
	assert.Equal(t, models.TransactionID(10), got.ID)
	require.True(t, got.Amount.Valid)
	assert.Equal(t, "12.3456", got.Amount.Decimal.String())
}

func TestRedisTransactionStoreMissingAmountStaysMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.Set(ctx, models.Transaction{Kind: models.KindDeposit, ClientID: 1, ID: 2})
	require.NoError(t, err)

	got, found, err := store.Get(ctx, 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, got.Amount.Valid)
}

func TestRedisTransactionStoreUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	_, found, err := store.Get(context.Background(), 404)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisTransactionStoreOverwriteAndSize(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.Set(ctx, models.NewDeposit(1, 1, decimal.NewFromInt(1)))
	require.NoError(t, err)
	_, err = store.Set(ctx, models.NewDeposit(1, 2, decimal.NewFromInt(2)))
	require.NoError(t, err)
	replaced, err := store.Set(ctx, models.NewWithdrawal(1, 1, decimal.NewFromInt(5)))
	require.NoError(t, err)
	assert.True(t, replaced)

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	got, _, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.KindWithdrawal, got.Kind)
}

func TestRedisTransactionStoreExpiresAndDrops(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	_, err := store.Set(ctx, models.NewDeposit(1, 1, decimal.NewFromInt(1)))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(store.key))

	require.NoError(t, store.Drop(ctx))
	assert.False(t, mr.Exists(store.key))
}

func TestRedisTransactionStoreSurfacesConnectionErrors(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Set(context.Background(), models.NewDeposit(1, 1, decimal.NewFromInt(1)))
	require.Error(t, err)

	_, _, err = store.Get(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, models.IsRejection(err))
}
