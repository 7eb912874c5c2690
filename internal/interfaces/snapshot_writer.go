package interfaces

import (
	"context"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// SnapshotExporter stores the final account balances of a run.
type SnapshotExporter interface {
	ExportSnapshots(ctx context.Context, runID string, snapshots []models.AccountSnapshot) error
}
