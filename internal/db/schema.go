package db

import "context"

// DDL for the two tables the pipeline owns. food_recalls is append-only;
// nid is not a primary key because a recall with a composite classification
// persists as one row per class.
const (
	createFoodRecalls = `
CREATE TABLE IF NOT EXISTS food_recalls (
    nid              TEXT NOT NULL,
    title            TEXT NOT NULL,
    url              TEXT,
    product          TEXT,
    issue            TEXT NOT NULL,
    main_issue       TEXT NOT NULL,
    secondary_issue  TEXT,
    bacteria_subtype TEXT,
    category         TEXT,
    class            TEXT NOT NULL,
    last_updated     TEXT,
    is_archived      BOOLEAN NOT NULL DEFAULT FALSE
)`

	createNIDIndex = `
CREATE INDEX IF NOT EXISTS food_recalls_nid_idx ON food_recalls (nid)`

	createIngestRuns = `
CREATE TABLE IF NOT EXISTS ingest_runs (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    batch_date    TEXT NOT NULL,
    status        TEXT NOT NULL,
    rows_inserted INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at  TIMESTAMPTZ
)`
)

// InitSchema creates the pipeline's tables if they do not exist.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, ddl := range []string{createFoodRecalls, createNIDIndex, createIngestRuns} {
		if _, err := db.pool.Exec(ctx, ddl); err != nil {
			return &PersistenceError{Op: "init schema", Cause: err}
		}
	}
	return nil
}
