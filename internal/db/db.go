// Package db provides PostgreSQL persistence for recall records and ingest
// run tracking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recalltrack/cfia-pipeline/internal/types"
)

// recallColumns is the persisted column set for food_recalls, in insert
// order. Only fields named in the external-to-canonical mapping are stored;
// anything else from the source file is dropped.
var recallColumns = []string{
	"nid", "title", "url", "product", "issue",
	"main_issue", "secondary_issue", "bacteria_subtype",
	"category", "class", "last_updated", "is_archived",
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// FetchKnownIDs returns the set of recall ids already persisted, used by the
// merge engine to discard candidates that were loaded by a prior batch.
func (db *DB) FetchKnownIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := db.pool.Query(ctx, `SELECT nid FROM food_recalls`)
	if err != nil {
		return nil, &PersistenceError{Op: "fetch known ids", Cause: err}
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var nid string
		if err := rows.Scan(&nid); err != nil {
			return nil, &PersistenceError{Op: "fetch known ids", Cause: err}
		}
		ids[nid] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "fetch known ids", Cause: err}
	}
	return ids, nil
}

// AppendRecords inserts the given records into food_recalls inside a single
// transaction, so a failure leaves no partial rows visible. Returns the
// number of rows inserted.
func (db *DB) AppendRecords(ctx context.Context, records []types.RecallRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, &PersistenceError{Op: "begin append", Cause: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"food_recalls"},
		recallColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return recordRow(records[i]), nil
		}),
	)
	if err != nil {
		return 0, &PersistenceError{Op: "append records", Cause: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &PersistenceError{Op: "commit append", Cause: err}
	}
	return int(inserted), nil
}

// recordRow maps a record onto recallColumns order.
func recordRow(rec types.RecallRecord) []any {
	return []any{
		rec.NID, rec.Title, rec.URL, rec.Product, rec.Issue,
		rec.MainIssue, rec.SecondaryIssue, rec.BacteriaSubtype,
		rec.Category, rec.Class, rec.LastUpdated, rec.IsArchived,
	}
}

// Run represents one ingest run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	BatchDate    string     `json:"batch_date"`
	Status       string     `json:"status"`
	RowsInserted int        `json:"rows_inserted"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// StartRun creates a new ingest run record and returns its ID
func (db *DB) StartRun(ctx context.Context, batchDate string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ingest_runs (batch_date, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		batchDate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "start run", Cause: err}
	}
	return id, nil
}

// CompleteRun marks an ingest run as finished with its final status and
// inserted-row count
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, inserted int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE ingest_runs SET status = $1, rows_inserted = $2, completed_at = NOW() WHERE id = $3`,
		status, inserted, runID,
	)
	if err != nil {
		return &PersistenceError{Op: "complete run", Cause: err}
	}
	return nil
}

// ListRuns retrieves recent ingest runs
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, batch_date, status, rows_inserted, created_at, completed_at
		 FROM ingest_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "list runs", Cause: err}
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.BatchDate, &run.Status, &run.RowsInserted, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, &PersistenceError{Op: "list runs", Cause: err}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
