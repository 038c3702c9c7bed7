package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yooku98/sales-dashboard/internal/domain"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	snapshot_key TEXT    NOT NULL,
	position     INTEGER NOT NULL,
	date         TEXT    NOT NULL,
	product      TEXT    NOT NULL,
	sales        REAL    NOT NULL,
	PRIMARY KEY (snapshot_key, position)
);
`

// SQLiteSnapshotRepository implements SnapshotRepository on an embedded
// SQLite database. It is an alternative to the JSON file backend for
// deployments that prefer a single queryable store file.
type SQLiteSnapshotRepository struct {
	db  *sql.DB
	key string
}

// NewSQLiteSnapshotRepository opens (creating if needed) the database at
// dbPath and ensures the snapshot schema exists.
func NewSQLiteSnapshotRepository(dbPath, key string) (*SQLiteSnapshotRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &RepositoryError{
			Op:  "open_database",
			Err: fmt.Errorf("failed to open sqlite database: %w", err),
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, &RepositoryError{
			Op:  "create_schema",
			Err: fmt.Errorf("failed to create schema: %w", err),
		}
	}

	return &SQLiteSnapshotRepository{db: db, key: key}, nil
}

// Close releases the underlying database handle
func (r *SQLiteSnapshotRepository) Close() error {
	return r.db.Close()
}

// Replace swaps the entire record set for a new one in a single transaction
func (r *SQLiteSnapshotRepository) Replace(ctx context.Context, records []domain.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &RepositoryError{Op: "replace_snapshot", Err: err}
	}
	defer tx.Rollback()

	if err := r.touchSnapshot(ctx, tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE snapshot_key = ?`, r.key); err != nil {
		return &RepositoryError{Op: "replace_snapshot", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (snapshot_key, position, date, product, sales)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return &RepositoryError{Op: "replace_snapshot", Err: err}
	}
	defer stmt.Close()

	for i, record := range records {
		_, err := stmt.ExecContext(ctx, r.key, i+1, record.Date.String(), record.Product, record.Sales)
		if err != nil {
			return &RepositoryError{
				Op:  "replace_snapshot",
				Err: fmt.Errorf("failed to insert record %d: %w", i+1, err),
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return &RepositoryError{Op: "replace_snapshot", Err: err}
	}
	return nil
}

// Append adds a single record to the end of the set
func (r *SQLiteSnapshotRepository) Append(ctx context.Context, record domain.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &RepositoryError{Op: "append_record", Err: err}
	}
	defer tx.Rollback()

	if err := r.touchSnapshot(ctx, tx); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (snapshot_key, position, date, product, sales)
		SELECT ?, COALESCE(MAX(position), 0) + 1, ?, ?, ?
		FROM records WHERE snapshot_key = ?
	`, r.key, record.Date.String(), record.Product, record.Sales, r.key)
	if err != nil {
		return &RepositoryError{Op: "append_record", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &RepositoryError{Op: "append_record", Err: err}
	}
	return nil
}

// Clear empties the record set unconditionally
func (r *SQLiteSnapshotRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &RepositoryError{Op: "clear_snapshot", Err: err}
	}
	defer tx.Rollback()

	if err := r.touchSnapshot(ctx, tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE snapshot_key = ?`, r.key); err != nil {
		return &RepositoryError{Op: "clear_snapshot", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &RepositoryError{Op: "clear_snapshot", Err: err}
	}
	return nil
}

// Read returns the current record set in stored order
func (r *SQLiteSnapshotRepository) Read(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, product, sales
		FROM records
		WHERE snapshot_key = ?
		ORDER BY position
	`, r.key)
	if err != nil {
		return nil, &RepositoryError{Op: "read_snapshot", Err: err}
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var dateStr, product string
		var sales float64
		if err := rows.Scan(&dateStr, &product, &sales); err != nil {
			return nil, &RepositoryError{Op: "read_snapshot", Err: err}
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, &RepositoryError{
				Op:  "read_snapshot",
				Err: fmt.Errorf("corrupt date in stored record: %w", err),
			}
		}

		records = append(records, domain.Record{
			Date:    domain.NewDateOnly(date),
			Product: product,
			Sales:   sales,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &RepositoryError{Op: "read_snapshot", Err: err}
	}

	return records, nil
}

// Exists reports whether the snapshot row has ever been written
func (r *SQLiteSnapshotRepository) Exists(ctx context.Context) (bool, error) {
	var key string
	err := r.db.QueryRowContext(ctx, `SELECT key FROM snapshots WHERE key = ?`, r.key).Scan(&key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &RepositoryError{Op: "check_snapshot", Err: err}
	}
	return true, nil
}

// touchSnapshot marks the snapshot as written so Exists distinguishes a
// cleared store from a never-seeded one.
func (r *SQLiteSnapshotRepository) touchSnapshot(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (key, updated_at) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET updated_at = excluded.updated_at
	`, r.key, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &RepositoryError{Op: "touch_snapshot", Err: err}
	}
	return nil
}
