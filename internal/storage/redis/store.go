package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// RedisTransactionStore keeps the transaction history of one run in a single
// Redis hash. The hash is namespaced by run id and expires after ttl, so
// nothing survives into later runs.
type RedisTransactionStore struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

type storedTransaction struct {
	Kind     models.TransactionKind `json:"kind"`
	ClientID models.ClientID        `json:"client_id"`
	Amount   decimal.NullDecimal    `json:"amount"`
}

// NewRedisTransactionStore creates a store for runID on top of client.
func NewRedisTransactionStore(client *goredis.Client, runID string, ttl time.Duration) *RedisTransactionStore {
	return &RedisTransactionStore{
		client: client,
		key:    "ledger:run:" + runID + ":transactions",
		ttl:    ttl,
	}
}

// Set writes tx into the run hash. HSET reports zero new fields when the id
// was already present.
func (r *RedisTransactionStore) Set(ctx context.Context, tx models.Transaction) (bool, error) {
	value, err := json.Marshal(storedTransaction{Kind: tx.Kind, ClientID: tx.ClientID, Amount: tx.Amount})
	if err != nil {
		return false, err
	}

	pipe := r.client.TxPipeline()
	added := pipe.HSet(ctx, r.key, field(tx.ID), value)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis hset: %w", err)
	}

	return added.Val() == 0, nil
}

func (r *RedisTransactionStore) Get(ctx context.Context, id models.TransactionID) (models.Transaction, bool, error) {
	raw, err := r.client.HGet(ctx, r.key, field(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return models.Transaction{}, false, nil
	}
	if err != nil {
		return models.Transaction{}, false, fmt.Errorf("redis hget: %w", err)
	}

	var stored storedTransaction
	if err := json.Unmarshal(raw, &stored); err != nil {
		return models.Transaction{}, false, fmt.Errorf("decode transaction %d: %w", id, err)
	}

	return models.Transaction{
		Kind:     stored.Kind,
		ClientID: stored.ClientID,
		ID:       id,
		Amount:   stored.Amount,
	}, true, nil
}

func (r *RedisTransactionStore) Size(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hlen: %w", err)
	}
	return int(n), nil
}

// Drop deletes the run hash. Called once the run has produced its snapshot.
func (r *RedisTransactionStore) Drop(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func field(id models.TransactionID) string {
	return strconv.FormatUint(uint64(id), 10)
}

var _ interfaces.TransactionStore = (*RedisTransactionStore)(nil)
