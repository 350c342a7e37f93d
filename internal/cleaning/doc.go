// Package cleaning produces a cleaned copy of a dataset plus a
// human-readable account of what changed.
//
// Cleaning applies three passes in a fixed order:
//
//  1. Deduplication: exact-duplicate rows are dropped, first occurrence
//     kept, under a canonical row serialization in schema column order.
//  2. Imputation: missing values are filled with the column's inferred
//     type default (0 for number columns, a configured text fill for
//     everything else).
//  3. Normalization: text values lose leading and trailing whitespace.
//
// Each pass is a pure transformation; the input dataset is never mutated
// and cleaning an already-clean dataset removes no further duplicates and
// normalizes no further values. Column types are inferred once into a
// per-column lookup before the imputation pass: the type of a column is
// the type of the first row holding a present value for it, text when no
// row does.
package cleaning
