package storage

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/config"
	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/storage/memory"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/storage/redis"
)

// CloseFunc releases whatever a store holds once the run is over.
type CloseFunc func(ctx context.Context) error

// NewTransactionStore builds the store selected by cfg.StoreBackend for runID.
func NewTransactionStore(ctx context.Context, cfg config.Config, runID string) (interfaces.TransactionStore, CloseFunc, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		return memory.NewMemoryTransactionStore(), func(context.Context) error { return nil }, nil

	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Pass,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}

		store := redis.NewRedisTransactionStore(client, runID, cfg.Redis.TTL)
		closeFn := func(ctx context.Context) error {
			dropErr := store.Drop(ctx)
			if err := client.Close(); err != nil {
				return err
			}
			return dropErr
		}
		return store, closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
