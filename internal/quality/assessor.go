package quality

import (
	"fmt"

	"datalens/internal/config"
	"datalens/internal/dataset"
)

// CheckStatus is the outcome of a single quality check.
type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusWarning CheckStatus = "warning"
	StatusFail    CheckStatus = "fail"
)

// ReportStatus is the aggregated traffic-light status of a report.
type ReportStatus string

const (
	StatusGreen  ReportStatus = "green"
	StatusYellow ReportStatus = "yellow"
	StatusRed    ReportStatus = "red"
)

// Check is the outcome of one independent quality check.
type Check struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
}

// Report aggregates all checks into a score and a traffic-light status.
// A red report is the signal for callers to withhold the expensive
// downstream analysis step; the assessor itself never blocks anything.
type Report struct {
	Score  int          `json:"score"`
	Status ReportStatus `json:"status"`
	Checks []Check      `json:"checks"`
}

// Assessor runs quality checks with configured thresholds.
type Assessor struct {
	cfg config.QualityConfig
}

// NewAssessor creates an assessor with the given thresholds.
func NewAssessor(cfg config.QualityConfig) *Assessor {
	return &Assessor{cfg: cfg}
}

// Assess computes the quality report for a dataset. An empty dataset
// always yields {score 0, red, no checks}; it is a soft condition, not an
// error. Checks run in a fixed order: completeness, robustness, diversity.
func (a *Assessor) Assess(ds *dataset.Dataset) Report {
	if ds.IsEmpty() {
		return Report{Score: 0, Status: StatusRed, Checks: []Check{}}
	}

	checks := []Check{
		a.checkCompleteness(ds),
		a.checkRobustness(ds),
		a.checkDiversity(ds),
	}

	failCount, warnCount := 0, 0
	for _, c := range checks {
		switch c.Status {
		case StatusFail:
			failCount++
		case StatusWarning:
			warnCount++
		}
	}

	status := StatusGreen
	switch {
	case failCount > 0:
		status = StatusRed
	case warnCount > 1:
		status = StatusYellow
	}

	score := 100 - failCount*a.cfg.FailPenalty - warnCount*a.cfg.WarningPenalty
	if score < 0 {
		score = 0
	}

	return Report{Score: score, Status: status, Checks: checks}
}

// checkCompleteness measures the share of missing values over the full
// rows x columns grid.
func (a *Assessor) checkCompleteness(ds *dataset.Dataset) Check {
	total := ds.Len() * len(ds.Columns)
	ratio := 0.0
	if total > 0 {
		ratio = float64(ds.MissingCount()) / float64(total)
	}

	status := StatusFail
	switch {
	case ratio < a.cfg.CompletenessWarnRatio:
		status = StatusPass
	case ratio < a.cfg.CompletenessFailRatio:
		status = StatusWarning
	}

	return Check{
		Name:    "completeness",
		Status:  status,
		Message: fmt.Sprintf("%.1f%% of values are missing", ratio*100),
	}
}

// checkRobustness warns on small row counts; it never fails outright.
func (a *Assessor) checkRobustness(ds *dataset.Dataset) Check {
	rows := ds.Len()
	if rows > a.cfg.MinRobustRows {
		return Check{
			Name:    "robustness",
			Status:  StatusPass,
			Message: fmt.Sprintf("dataset has %d rows", rows),
		}
	}
	return Check{
		Name:    "robustness",
		Status:  StatusWarning,
		Message: fmt.Sprintf("dataset has only %d rows; results may not generalize", rows),
	}
}

// checkDiversity warns on narrow column sets; it never fails outright.
func (a *Assessor) checkDiversity(ds *dataset.Dataset) Check {
	cols := len(ds.Columns)
	if cols > a.cfg.MinDiverseColumns {
		return Check{
			Name:    "feature_diversity",
			Status:  StatusPass,
			Message: fmt.Sprintf("dataset has %d columns", cols),
		}
	}
	return Check{
		Name:    "feature_diversity",
		Status:  StatusWarning,
		Message: fmt.Sprintf("dataset has only %d columns; analysis depth is limited", cols),
	}
}
