package cleaning

import "fmt"

// buildReport turns change counts into the ordered, human-readable
// statements shown to a reviewer. Order is fixed: duplicates, imputed,
// normalized. Zero counts produce no statement; an all-zero run produces
// the single no-op statement.
func buildReport(counts Counts) []string {
	var report []string
	if counts.DuplicatesRemoved > 0 {
		report = append(report, fmt.Sprintf("Removed %d duplicate %s",
			counts.DuplicatesRemoved, plural(counts.DuplicatesRemoved, "row", "rows")))
	}
	if counts.ValuesImputed > 0 {
		report = append(report, fmt.Sprintf("Filled %d missing %s with column defaults",
			counts.ValuesImputed, plural(counts.ValuesImputed, "value", "values")))
	}
	if counts.ValuesNormalized > 0 {
		report = append(report, fmt.Sprintf("Normalized whitespace in %d %s",
			counts.ValuesNormalized, plural(counts.ValuesNormalized, "value", "values")))
	}
	if len(report) == 0 {
		report = append(report, "No cleaning was necessary")
	}
	return report
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
