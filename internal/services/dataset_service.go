package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"datalens/internal/analysis"
	"datalens/internal/cleaning"
	"datalens/internal/config"
	"datalens/internal/dataset"
	apperrors "datalens/internal/errors"
	"datalens/internal/exporter"
	"datalens/internal/infrastructure"
	"datalens/internal/quality"
)

// AnalysisClient is the analytics engine surface the dataset service needs.
type AnalysisClient interface {
	AnalyzeDataset(ctx context.Context, ds *dataset.Dataset) (*analysis.Report, error)
}

// datasetEntry is one stored dataset. Cleaning replaces the working copy;
// the report of the last cleaning run is kept alongside it. Entries are
// only read or written under DatasetService.mu; readers take a value copy
// via snapshot. The *Dataset itself is never mutated in place after
// storage (Clean swaps in a fresh dataset), so a snapshotted pointer is
// safe to read after the lock is released.
type datasetEntry struct {
	id        string
	data      *dataset.Dataset
	cleaned   bool
	report    []string
	counts    cleaning.Counts
	createdAt time.Time
}

// DatasetSummary describes a stored dataset to API consumers. The
// cleaning fields are present once the dataset has been cleaned.
type DatasetSummary struct {
	ID             string           `json:"id"`
	Rows           int              `json:"rows"`
	Columns        []string         `json:"columns"`
	Cleaned        bool             `json:"cleaned"`
	CreatedAt      time.Time        `json:"created_at"`
	Quality        quality.Report   `json:"quality"`
	CleaningReport []string         `json:"cleaning_report,omitempty"`
	CleaningCounts *cleaning.Counts `json:"cleaning_counts,omitempty"`
}

// CleanOutcome is the result of a cleaning run on a stored dataset.
type CleanOutcome struct {
	ID      string          `json:"id"`
	Rows    int             `json:"rows"`
	Report  []string        `json:"report"`
	Counts  cleaning.Counts `json:"counts"`
	Quality quality.Report  `json:"quality"`
}

// Preview is a bounded, render-ready slice of a stored dataset.
type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total_rows"`
}

// DatasetService stores datasets in memory and coordinates quality
// assessment, cleaning, analysis and export.
type DatasetService struct {
	mu       sync.RWMutex
	store    map[string]*datasetEntry
	assessor *quality.Assessor
	cleaner  *cleaning.Cleaner
	exporter *exporter.Delimited
	client   AnalysisClient
	metrics  *infrastructure.Metrics
	logger   *slog.Logger
}

// NewDatasetService creates the dataset service with its collaborators.
func NewDatasetService(cfg *config.Config, client AnalysisClient, metrics *infrastructure.Metrics, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		store:    make(map[string]*datasetEntry),
		assessor: quality.NewAssessor(cfg.Quality),
		cleaner:  cleaning.NewCleaner(cfg.Cleaning),
		exporter: exporter.NewDelimited(cfg.Export),
		client:   client,
		metrics:  metrics,
		logger:   logger,
	}
}

// Ingest stores a parsed dataset and returns its summary, including the
// initial quality report. Empty datasets are accepted; they assess red and
// cannot be analyzed until replaced.
func (s *DatasetService) Ingest(ctx context.Context, ds *dataset.Dataset) (DatasetSummary, error) {
	entry := &datasetEntry{
		id:        uuid.New().String(),
		data:      ds,
		createdAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.store[entry.id] = entry
	snap := *entry
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DatasetsIngested.Inc()
		s.metrics.IngestedRows.Observe(float64(ds.Len()))
	}

	report := s.assessor.Assess(ds)
	s.logger.InfoContext(ctx, "dataset ingested",
		slog.String("dataset_id", entry.id),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.Columns)),
		slog.String("quality_status", string(report.Status)))

	return summarize(snap, report), nil
}

// Quality recomputes and returns the quality report for a stored dataset.
// The report always reflects the current working copy, so a cleaned
// dataset is assessed post-cleaning.
func (s *DatasetService) Quality(ctx context.Context, id string) (quality.Report, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return quality.Report{}, err
	}
	return s.assessor.Assess(snap.data), nil
}

// Get returns the summary of a stored dataset.
func (s *DatasetService) Get(ctx context.Context, id string) (DatasetSummary, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return DatasetSummary{}, err
	}
	return summarize(snap, s.assessor.Assess(snap.data)), nil
}

// Clean runs the cleaning pipeline on a stored dataset and replaces the
// working copy with the cleaned result. Cleaning an already cleaned
// dataset is safe and reports that nothing was necessary.
func (s *DatasetService) Clean(ctx context.Context, id string) (CleanOutcome, error) {
	s.mu.Lock()
	entry, ok := s.store[id]
	if !ok {
		s.mu.Unlock()
		return CleanOutcome{}, apperrors.DatasetNotFoundError(id)
	}
	result := s.cleaner.Clean(entry.data)
	entry.data = result.Data
	entry.cleaned = true
	entry.report = result.Report
	entry.counts = result.Counts
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.CleaningRuns.Inc()
	}

	s.logger.InfoContext(ctx, "dataset cleaned",
		slog.String("dataset_id", id),
		slog.Int("duplicates_removed", result.Counts.DuplicatesRemoved),
		slog.Int("values_imputed", result.Counts.ValuesImputed),
		slog.Int("values_normalized", result.Counts.ValuesNormalized))

	return CleanOutcome{
		ID:      id,
		Rows:    result.Data.Len(),
		Report:  result.Report,
		Counts:  result.Counts,
		Quality: s.assessor.Assess(result.Data),
	}, nil
}

// Preview returns up to n rows of the working copy rendered as strings.
// Missing values render as empty cells.
func (s *DatasetService) Preview(ctx context.Context, id string, n int) (Preview, error) {
	if n <= 0 {
		return Preview{}, apperrors.InvalidRequestWithError(ErrInvalidPreview)
	}
	snap, err := s.snapshot(id)
	if err != nil {
		return Preview{}, err
	}

	head := snap.data.Head(n)
	columns := snap.data.Columns
	total := snap.data.Len()

	rows := make([][]string, 0, len(head))
	for _, row := range head {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row.Value(col).String()
		}
		rows = append(rows, cells)
	}
	return Preview{Columns: columns, Rows: rows, Total: total}, nil
}

// Analyze forwards the working copy to the analytics engine. Datasets
// whose current quality status is red are refused before any network
// call is made.
func (s *DatasetService) Analyze(ctx context.Context, id string) (*analysis.Report, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return nil, err
	}
	data := snap.data

	report := s.assessor.Assess(data)
	if report.Status == quality.StatusRed {
		s.logger.WarnContext(ctx, "analysis refused by quality gate",
			slog.String("dataset_id", id),
			slog.Int("score", report.Score))
		if s.metrics != nil {
			s.metrics.AnalysisRequests.WithLabelValues("refused").Inc()
		}
		return nil, apperrors.QualityGateError(report.Score)
	}

	result, err := s.client.AnalyzeDataset(ctx, data)
	if err != nil {
		if s.metrics != nil {
			s.metrics.AnalysisRequests.WithLabelValues("error").Inc()
		}
		s.logger.ErrorContext(ctx, "analytics engine request failed",
			slog.String("dataset_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AnalysisRequests.WithLabelValues("success").Inc()
	}
	s.logger.InfoContext(ctx, "analysis completed", slog.String("dataset_id", id))
	return result, nil
}

// Export writes the working copy to w in the requested format and returns
// a suggested filename. Supported formats are "csv" and "xlsx".
func (s *DatasetService) Export(ctx context.Context, id, format string, w io.Writer) (string, error) {
	snap, err := s.snapshot(id)
	if err != nil {
		return "", err
	}
	data := snap.data

	switch format {
	case "csv", "":
		format = "csv"
		if err := s.exporter.Write(w, data); err != nil {
			return "", fmt.Errorf("writing csv export: %w", err)
		}
	case "xlsx":
		if err := exporter.WriteExcel(w, data); err != nil {
			return "", fmt.Errorf("writing xlsx export: %w", err)
		}
	default:
		return "", apperrors.InvalidRequestWithError(fmt.Errorf("%w: %q", ErrInvalidFormat, format))
	}

	if s.metrics != nil {
		s.metrics.ExportRuns.WithLabelValues(format).Inc()
	}
	return fmt.Sprintf("dataset-%s.%s", id, format), nil
}

// Delete removes a stored dataset.
func (s *DatasetService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.store[id]; !ok {
		return apperrors.DatasetNotFoundError(id)
	}
	delete(s.store, id)
	return nil
}

// snapshot returns a value copy of a stored entry taken under the read
// lock, so callers can assess and render without racing Clean.
func (s *DatasetService) snapshot(id string) (datasetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.store[id]
	if !ok {
		return datasetEntry{}, apperrors.DatasetNotFoundError(id)
	}
	return *entry, nil
}

func summarize(snap datasetEntry, report quality.Report) DatasetSummary {
	summary := DatasetSummary{
		ID:        snap.id,
		Rows:      snap.data.Len(),
		Columns:   snap.data.Columns,
		Cleaned:   snap.cleaned,
		CreatedAt: snap.createdAt,
		Quality:   report,
	}
	if snap.cleaned {
		summary.CleaningReport = snap.report
		counts := snap.counts
		summary.CleaningCounts = &counts
	}
	return summary
}
