package domain

import (
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// PassRate is the fraction of mutants, across all reports, whose relation
// held (adapter rejections included). An empty set of reports passes fully.
func PassRate(reports []m.Report) float64 {
	total := 0
	violated := 0

	for _, report := range reports {
		total += report.Mutants
		violated += report.Violations
	}

	if total == 0 {
		return 1.0
	}

	return float64(total-violated) / float64(total)
}

// Failed returns the reports that recorded at least one violation.
func Failed(reports []m.Report) []m.Report {
	var failed []m.Report

	for _, report := range reports {
		if !report.Passed() {
			failed = append(failed, report)
		}
	}

	return failed
}
