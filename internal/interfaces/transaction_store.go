package interfaces

import (
	"context"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// TransactionStore keeps deposits and withdrawals so that later disputes,
// resolves and chargebacks can look up the amount they refer to.
type TransactionStore interface {
	// Set inserts or overwrites tx by its ID. replaced is true when an entry
	// with the same ID already existed.
	Set(ctx context.Context, tx models.Transaction) (replaced bool, err error)
	Get(ctx context.Context, id models.TransactionID) (models.Transaction, bool, error)
	Size(ctx context.Context) (int, error)
}
