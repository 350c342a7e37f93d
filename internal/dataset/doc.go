// Package dataset defines the tabular data model shared by the quality,
// cleaning and analysis packages.
//
// A Dataset is an ordered sequence of rows under a single column schema.
// The schema (column names and their order) is fixed by the first row seen
// at ingestion time and every later row is interpreted against it. Row
// order is significant: deduplication keeps first occurrences, and preview
// and export reflect ingestion order.
//
// Field values are carried as an explicit tagged type with three variants:
//
//	Number  holds a float64
//	Text    holds a string
//	Missing marks absence of data
//
// Missing uniformly represents the three raw encodings found in input
// (absent key, JSON null, empty string), so downstream stages never have
// to reason about raw encodings.
//
// Ingestion from JSON records and from CSV lives here as well; both
// produce a Dataset and never fail on degenerate (empty) input.
package dataset
