// Package exporter writes datasets out for download.
//
// This package contains two exporters:
//
// Delimited writes the plain text format: one header line of column names
// joined by the configured separator, then one line per row. Values are
// written verbatim with no quoting or escaping of separator characters,
// a known limitation of the format.
//
// WriteExcel produces an XLSX rendition of the same table via excelize,
// for users who want a spreadsheet instead of plain text.
//
// Example usage:
//
//	exp := exporter.NewDelimited(cfg.Export)
//	err := exp.Write(w, ds)
package exporter
