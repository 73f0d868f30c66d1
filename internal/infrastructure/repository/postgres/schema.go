package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Advisory lock keys serializing bootstrap DDL across worker startups.
const (
	lockDocuments   = int64(2026082401)
	lockSamples     = int64(2026082402)
	lockValidations = int64(2026082403)
)

func ensureSchema(ctx context.Context, db *sql.DB, lockKey int64, ddl string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
