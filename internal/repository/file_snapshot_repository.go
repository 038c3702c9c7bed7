package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yooku98/sales-dashboard/internal/domain"
)

// FileSnapshotRepository implements SnapshotRepository using a single JSON
// document on the local filesystem, keyed by a fixed snapshot identifier.
type FileSnapshotRepository struct {
	path  string
	mutex sync.RWMutex
}

// NewFileSnapshotRepository creates a file-backed snapshot repository
// rooted at baseDir. The snapshot lives at {baseDir}/{key}.json.
func NewFileSnapshotRepository(baseDir, key string) (*FileSnapshotRepository, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, &RepositoryError{
			Op:  "create_repository",
			Err: fmt.Errorf("failed to create base directory: %w", err),
		}
	}

	return &FileSnapshotRepository{
		path: filepath.Join(baseDir, key+".json"),
	}, nil
}

// Replace swaps the entire record set for a new one
func (r *FileSnapshotRepository) Replace(ctx context.Context, records []domain.Record) error {
	if err := ctxErr(ctx, "replace_snapshot"); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.write(records)
}

// Append adds a single record to the end of the set
func (r *FileSnapshotRepository) Append(ctx context.Context, record domain.Record) error {
	if err := ctxErr(ctx, "append_record"); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	records, err := r.read()
	if err != nil {
		return err
	}

	return r.write(append(records, record))
}

// Clear empties the record set unconditionally
func (r *FileSnapshotRepository) Clear(ctx context.Context) error {
	if err := ctxErr(ctx, "clear_snapshot"); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.write([]domain.Record{})
}

// Read returns the current record set in stored order
func (r *FileSnapshotRepository) Read(ctx context.Context) ([]domain.Record, error) {
	if err := ctxErr(ctx, "read_snapshot"); err != nil {
		return nil, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.read()
}

// Exists reports whether a snapshot file has ever been written
func (r *FileSnapshotRepository) Exists(ctx context.Context) (bool, error) {
	if err := ctxErr(ctx, "check_snapshot"); err != nil {
		return false, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, err := os.Stat(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &RepositoryError{
			Op:  "check_snapshot",
			Err: fmt.Errorf("failed to stat snapshot file: %w", err),
		}
	}
	return true, nil
}

// read loads the snapshot document; a missing file is an empty set.
// Callers must hold the mutex.
func (r *FileSnapshotRepository) read() ([]domain.Record, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Record{}, nil
		}
		return nil, &RepositoryError{
			Op:  "read_snapshot",
			Err: fmt.Errorf("failed to read snapshot file: %w", err),
		}
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &RepositoryError{
			Op:  "read_snapshot",
			Err: fmt.Errorf("failed to deserialize snapshot: %w", err),
		}
	}

	return records, nil
}

// write persists the record set, replacing the file atomically so a crash
// mid-write never leaves a truncated snapshot. Callers must hold the mutex.
func (r *FileSnapshotRepository) write(records []domain.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &RepositoryError{
			Op:  "write_snapshot",
			Err: fmt.Errorf("failed to serialize snapshot: %w", err),
		}
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return &RepositoryError{
			Op:  "write_snapshot",
			Err: fmt.Errorf("failed to write snapshot file: %w", err),
		}
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return &RepositoryError{
			Op:  "write_snapshot",
			Err: fmt.Errorf("failed to replace snapshot file: %w", err),
		}
	}

	return nil
}

// ctxErr converts an already-cancelled context into a repository error
func ctxErr(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return &RepositoryError{Op: op, Err: ctx.Err()}
	default:
		return nil
	}
}
