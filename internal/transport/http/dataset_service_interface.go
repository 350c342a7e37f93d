package http

import (
	"context"
	"io"

	"datalens/internal/analysis"
	"datalens/internal/dataset"
	"datalens/internal/quality"
	"datalens/internal/services"
)

// DatasetServiceInterface defines the dataset operations the handlers need.
type DatasetServiceInterface interface {
	Ingest(ctx context.Context, ds *dataset.Dataset) (services.DatasetSummary, error)
	Get(ctx context.Context, id string) (services.DatasetSummary, error)
	Quality(ctx context.Context, id string) (quality.Report, error)
	Clean(ctx context.Context, id string) (services.CleanOutcome, error)
	Preview(ctx context.Context, id string, n int) (services.Preview, error)
	Analyze(ctx context.Context, id string) (*analysis.Report, error)
	Export(ctx context.Context, id, format string, w io.Writer) (string, error)
	Delete(ctx context.Context, id string) error
}

// TextAnalyzer defines the sentiment operation of the analytics engine.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (*analysis.TextSentiment, error)
}
