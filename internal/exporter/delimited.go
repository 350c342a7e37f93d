package exporter

import (
	"bufio"
	"fmt"
	"io"

	"datalens/internal/config"
	"datalens/internal/dataset"
)

// Delimited writes a dataset as separator-joined text lines.
type Delimited struct {
	sep string
}

// NewDelimited creates a delimited exporter with the configured separator.
func NewDelimited(cfg config.ExportConfig) *Delimited {
	sep := cfg.Separator
	if sep == "" {
		sep = ","
	}
	return &Delimited{sep: sep}
}

// Write streams the dataset to w: a header line of column names, then one
// line per row in dataset order. Missing values render as empty fields,
// numbers without trailing zeros. Values containing the separator are
// written as-is.
func (d *Delimited) Write(w io.Writer, ds *dataset.Dataset) error {
	bw := bufio.NewWriter(w)

	for i, col := range ds.Columns {
		if i > 0 {
			if _, err := bw.WriteString(d.sep); err != nil {
				return fmt.Errorf("write header: %w", err)
			}
		}
		if _, err := bw.WriteString(col); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			if i > 0 {
				if _, err := bw.WriteString(d.sep); err != nil {
					return fmt.Errorf("write row: %w", err)
				}
			}
			if _, err := bw.WriteString(row.Value(col).String()); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return bw.Flush()
}
