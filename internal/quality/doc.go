// Package quality assesses whether a dataset is fit for downstream
// analysis.
//
// The assessor runs a fixed sequence of independent checks (completeness,
// row-count robustness, column diversity) and aggregates them into a
// single traffic-light report with a 0..100 score. Reports are derived,
// never stored: callers recompute them whenever the dataset changes, which
// keeps the report trivially consistent with the data it describes.
//
// All thresholds and score penalties come from config.QualityConfig.
package quality
