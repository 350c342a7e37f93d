package cleaning

import (
	"strings"

	"datalens/internal/config"
	"datalens/internal/dataset"
)

// Counts tallies the changes made by one cleaning run.
type Counts struct {
	DuplicatesRemoved int `json:"duplicates_removed"`
	ValuesImputed     int `json:"values_imputed"`
	ValuesNormalized  int `json:"values_normalized"`
}

// Result is a cleaned dataset paired with the ordered report of applied
// transformations.
type Result struct {
	Data   *dataset.Dataset `json:"cleaned_data"`
	Report []string         `json:"report"`
	Counts Counts           `json:"counts"`
}

// Cleaner applies the deduplicate, impute, normalize passes.
type Cleaner struct {
	textFill string
}

// NewCleaner creates a cleaner with the configured cleaning policy.
func NewCleaner(cfg config.CleaningConfig) *Cleaner {
	fill := cfg.TextFill
	if fill == "" {
		fill = "Unspecified"
	}
	return &Cleaner{textFill: fill}
}

// Clean returns a cleaned copy of the dataset and the report of changes.
// The input dataset is never modified; the result shares its column
// schema and preserves first-seen row order. An empty dataset is a soft
// case: an empty result with a single explanatory report line.
func (c *Cleaner) Clean(ds *dataset.Dataset) Result {
	if ds.IsEmpty() {
		return Result{
			Data:   ds.Clone(),
			Report: []string{"Dataset is empty; nothing to clean"},
		}
	}

	out := ds.Clone()
	var counts Counts

	counts.DuplicatesRemoved = deduplicate(out)
	counts.ValuesImputed = c.impute(out)
	counts.ValuesNormalized = normalize(out)

	return Result{
		Data:   out,
		Report: buildReport(counts),
		Counts: counts,
	}
}

// deduplicate drops rows whose canonical serialization has been seen
// before, keeping the first occurrence, and returns the number removed.
func deduplicate(ds *dataset.Dataset) int {
	seen := make(map[string]struct{}, len(ds.Rows))
	kept := ds.Rows[:0]
	removed := 0
	for _, row := range ds.Rows {
		key := row.Key(ds.Columns)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}
	ds.Rows = kept
	return removed
}

// impute fills every missing value with the default for the column's
// inferred type and returns the number of substitutions.
func (c *Cleaner) impute(ds *dataset.Dataset) int {
	types := InferTypes(ds)
	filled := 0
	for _, row := range ds.Rows {
		for _, col := range ds.Columns {
			if !row.Value(col).IsMissing() {
				continue
			}
			if types[col] == TypeNumber {
				row[col] = dataset.Number(0)
			} else {
				row[col] = dataset.Text(c.textFill)
			}
			filled++
		}
	}
	return filled
}

// normalize strips leading and trailing whitespace from text values and
// returns the number of values actually changed. Numbers and missing
// values pass through untouched.
func normalize(ds *dataset.Dataset) int {
	changed := 0
	for _, row := range ds.Rows {
		for _, col := range ds.Columns {
			v := row.Value(col)
			if v.Kind() != dataset.KindText {
				continue
			}
			trimmed := strings.TrimSpace(v.Text())
			if trimmed != v.Text() {
				row[col] = dataset.Text(trimmed)
				changed++
			}
		}
	}
	return changed
}
