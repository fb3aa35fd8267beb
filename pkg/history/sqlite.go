// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the samples table on db if needed.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS step_samples (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  at_ms INTEGER NOT NULL,
  steps INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_step_samples_at ON step_samples(at_ms);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create step_samples table: %w", err)
	}
	return nil
}

// Record implements Store.
func (s *SQLiteStore) Record(ctx context.Context, sample Sample) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO step_samples (at_ms, steps) VALUES (?, ?)`,
		sample.At.UnixMilli(), sample.Steps)
	if err != nil {
		return fmt.Errorf("insert step sample: %w", err)
	}
	return nil
}

// Sum implements Store.
func (s *SQLiteStore) Sum(ctx context.Context, from, to time.Time) (Total, error) {
	var total Total
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(steps), 0), COUNT(*) FROM step_samples WHERE at_ms >= ? AND at_ms < ?`,
		from.UnixMilli(), to.UnixMilli()).Scan(&total.Steps, &total.Samples)
	if err != nil {
		return Total{}, fmt.Errorf("sum step samples: %w", err)
	}
	return total, nil
}

// Prune implements Store.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM step_samples WHERE at_ms < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune step samples: %w", err)
	}
	return res.RowsAffected()
}
