package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id     uuid        NOT NULL,
	client_id  integer     NOT NULL,
	available  numeric     NOT NULL,
	held       numeric     NOT NULL,
	total      numeric     NOT NULL,
	locked     boolean     NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, client_id)
)`

// PostgresSnapshotStore exports the final balances of a run.
type PostgresSnapshotStore struct {
	db *sql.DB
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{
		db: db,
	}
}

// Open connects to dsn with the lib/pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the snapshot table when it does not exist yet.
func (p *PostgresSnapshotStore) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	return err
}

func (p *PostgresSnapshotStore) saveSnapshot(ctx context.Context, runID string, s models.AccountSnapshot, dbTx *sql.Tx) error {
	const query = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked)
	VALUES ($1,$2,$3,$4,$5,$6)`

	_, err := dbTx.ExecContext(ctx, query, runID, int(s.ClientID), s.Available, s.Held, s.Total, s.Locked)
	return err
}

// ExportSnapshots writes all snapshots of a run in one transaction.
func (p *PostgresSnapshotStore) ExportSnapshots(ctx context.Context, runID string, snapshots []models.AccountSnapshot) error {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	for _, s := range snapshots {
		err = p.saveSnapshot(ctx, runID, s, dbTx)
		if err != nil {
			return err
		}
	}

	err = dbTx.Commit()
	return err
}

// GetSnapshots reads back the snapshots of a run ordered by client id.
func (p *PostgresSnapshotStore) GetSnapshots(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	const query = `SELECT client_id, available, held, total, locked FROM account_snapshots
	WHERE run_id = $1 ORDER BY client_id`

	rows, err := p.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var snapshots []models.AccountSnapshot
	for rows.Next() {
		var (
			s      models.AccountSnapshot
			client int
		)
		if err := rows.Scan(&client, &s.Available, &s.Held, &s.Total, &s.Locked); err != nil {
			return nil, err
		}
		s.ClientID = models.ClientID(client)
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

var _ interfaces.SnapshotExporter = (*PostgresSnapshotStore)(nil)
