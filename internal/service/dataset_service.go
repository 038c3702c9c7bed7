package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"

	"github.com/yooku98/sales-dashboard/internal/analytics"
	"github.com/yooku98/sales-dashboard/internal/domain"
	"github.com/yooku98/sales-dashboard/internal/normalizer"
	"github.com/yooku98/sales-dashboard/internal/repository"
	"github.com/yooku98/sales-dashboard/internal/seed"
	"github.com/yooku98/sales-dashboard/internal/tabular"
)

// DatasetServiceError represents an error in the dataset service
type DatasetServiceError struct {
	Op  string
	Err error
}

func (e *DatasetServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// DatasetService defines the business logic around the canonical record
// set. Rejected inputs are reported through the returned Outcome, never by
// mutating the store; the error return is reserved for infrastructure
// failures.
type DatasetService interface {
	// Mutation operations
	UploadDataset(ctx context.Context, fileData []byte, filename string) (domain.Outcome, error)
	AddEntry(ctx context.Context, input normalizer.EntryInput) (domain.Outcome, error)
	ClearDataset(ctx context.Context) error

	// Query operations
	Records(ctx context.Context) ([]domain.Record, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	LastOutcome() domain.Outcome

	// Derived view operations
	DailyTotals(ctx context.Context) ([]domain.DailyTotal, error)
	TopProducts(ctx context.Context) ([]domain.ProductTotal, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Summary(ctx context.Context) (domain.Summary, error)

	// Lifecycle
	SeedIfEmpty(ctx context.Context) error
}

// DatasetServiceImpl implements the DatasetService interface
type DatasetServiceImpl struct {
	repository      repository.SnapshotRepository
	dataDir         string
	topProductLimit int

	outcomeMu   sync.RWMutex
	lastOutcome domain.Outcome
}

// NewDatasetService creates a new DatasetService
func NewDatasetService(repo repository.SnapshotRepository, dataDir string, topProductLimit int) DatasetService {
	return &DatasetServiceImpl{
		repository:      repo,
		dataDir:         dataDir,
		topProductLimit: topProductLimit,
	}
}

// UploadDataset normalizes an uploaded spreadsheet and, on success,
// replaces the entire record set. On any failure the prior snapshot is
// retained untouched.
func (s *DatasetServiceImpl) UploadDataset(ctx context.Context, fileData []byte, filename string) (domain.Outcome, error) {
	if !tabular.SupportedExtension(filename) {
		return s.record(domain.ParseFailure(filename)), nil
	}

	table, err := tabular.Parse(fileData, filename)
	if err != nil {
		return s.record(domain.ParseFailure(filename)), nil
	}

	records, outcome := normalizer.NormalizeTable(table, filename)
	if !outcome.OK() {
		return s.record(outcome), nil
	}

	if err := s.repository.Replace(ctx, records); err != nil {
		return domain.Outcome{}, &DatasetServiceError{Op: "replace_records", Err: err}
	}

	return s.record(outcome), nil
}

// AddEntry validates a manual form submission and, on success, appends the
// single resulting record.
func (s *DatasetServiceImpl) AddEntry(ctx context.Context, input normalizer.EntryInput) (domain.Outcome, error) {
	record, outcome := normalizer.NormalizeEntry(input)
	if !outcome.OK() {
		return s.record(outcome), nil
	}

	if err := s.repository.Append(ctx, record); err != nil {
		return domain.Outcome{}, &DatasetServiceError{Op: "append_record", Err: err}
	}

	return s.record(outcome), nil
}

// ClearDataset empties the record set unconditionally
func (s *DatasetServiceImpl) ClearDataset(ctx context.Context) error {
	if err := s.repository.Clear(ctx); err != nil {
		return &DatasetServiceError{Op: "clear_records", Err: err}
	}
	return nil
}

// Records returns the current record set in stored order
func (s *DatasetServiceImpl) Records(ctx context.Context) ([]domain.Record, error) {
	records, err := s.repository.Read(ctx)
	if err != nil {
		return nil, &DatasetServiceError{Op: "read_records", Err: err}
	}
	return records, nil
}

// ExportCSV renders the canonical record set in the same three-column
// format the upload path accepts.
func (s *DatasetServiceImpl) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"date", "product", "sales"}); err != nil {
		return nil, &DatasetServiceError{Op: "export_csv", Err: err}
	}
	for _, record := range records {
		row := []string{
			record.Date.String(),
			record.Product,
			strconv.FormatFloat(record.Sales, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return nil, &DatasetServiceError{Op: "export_csv", Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, &DatasetServiceError{Op: "export_csv", Err: err}
	}
	return buf.Bytes(), nil
}

// LastOutcome returns the result of the most recent normalization attempt
func (s *DatasetServiceImpl) LastOutcome() domain.Outcome {
	s.outcomeMu.RLock()
	defer s.outcomeMu.RUnlock()
	return s.lastOutcome
}

// DailyTotals returns the daily sales series
func (s *DatasetServiceImpl) DailyTotals(ctx context.Context) ([]domain.DailyTotal, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.DailyTotals(records), nil
}

// TopProducts returns the product ranking, largest totals first
func (s *DatasetServiceImpl) TopProducts(ctx context.Context) ([]domain.ProductTotal, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopProducts(records, s.topProductLimit), nil
}

// Stats returns the summary statistics
func (s *DatasetServiceImpl) Stats(ctx context.Context) (domain.Stats, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return analytics.Stats(records), nil
}

// Summary returns all derived views computed from one snapshot
func (s *DatasetServiceImpl) Summary(ctx context.Context) (domain.Summary, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return analytics.Aggregate(records, s.topProductLimit), nil
}

// SeedIfEmpty populates the store on the very first run, when no persisted
// snapshot exists yet. A cleared store still counts as a snapshot and is
// never re-seeded.
func (s *DatasetServiceImpl) SeedIfEmpty(ctx context.Context) error {
	exists, err := s.repository.Exists(ctx)
	if err != nil {
		return &DatasetServiceError{Op: "check_snapshot", Err: err}
	}
	if exists {
		return nil
	}

	records, source := seed.Load(s.dataDir)
	if err := s.repository.Replace(ctx, records); err != nil {
		return &DatasetServiceError{Op: "seed_records", Err: err}
	}

	if len(records) > 0 {
		s.record(domain.Success(len(records), source))
	}
	return nil
}

// record stores the outcome for later status queries and returns it
func (s *DatasetServiceImpl) record(outcome domain.Outcome) domain.Outcome {
	s.outcomeMu.Lock()
	defer s.outcomeMu.Unlock()
	s.lastOutcome = outcome
	return outcome
}
