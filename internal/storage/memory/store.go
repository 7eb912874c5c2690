package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// MemoryTransactionStore is an in-memory implementation of interfaces.TransactionStore.
// The map is guarded by a store-scoped mutex so several accounts may resolve
// disputes against it concurrently.
type MemoryTransactionStore struct {
	mu           sync.Mutex
	transactions map[models.TransactionID]models.Transaction
}

// NewMemoryTransactionStore creates an empty store
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		transactions: make(map[models.TransactionID]models.Transaction),
	}
}

// Set stores tx under its ID, silently replacing any previous entry.
func (m *MemoryTransactionStore) Set(ctx context.Context, tx models.Transaction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.transactions[tx.ID]
	m.transactions[tx.ID] = tx
	return exists, nil
}

func (m *MemoryTransactionStore) Get(ctx context.Context, id models.TransactionID) (models.Transaction, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.transactions[id]
	return tx, ok, nil
}

func (m *MemoryTransactionStore) Size(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.transactions), nil
}

// Reset drops every stored transaction. Only tests need this, a run never prunes.
func (m *MemoryTransactionStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.transactions)
}

// Compile-time check: ensure MemoryTransactionStore implements TransactionStore interface
var _ interfaces.TransactionStore = (*MemoryTransactionStore)(nil)
