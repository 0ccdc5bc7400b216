package controller

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

const (
	passLabel = "PASS"
	failLabel = "FAIL"
)

func statusLabel(report m.Report) string {
	if report.Passed() {
		return passLabel
	}

	return failLabel
}

func sortEstimates(estimates []m.Estimate) []m.Estimate {
	sorted := append([]m.Estimate(nil), estimates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Label != sorted[j].Label {
			return sorted[i].Label < sorted[j].Label
		}

		return sorted[i].Strategy < sorted[j].Strategy
	})

	return sorted
}

func renderEstimationTable(estimates []m.Estimate) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Primitive", "Strategy", "Units", "Mutants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
	})

	labels := make(map[string]struct{})
	total := 0

	for _, estimate := range sortEstimates(estimates) {
		table.Append([]string{
			estimate.Label,
			estimate.Strategy,
			fmt.Sprintf("%d", estimate.Units),
			fmt.Sprintf("%d", estimate.Mutants),
		})

		labels[estimate.Label] = struct{}{}
		total += estimate.Mutants
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Primitives %d", len(labels)),
		"",
		"",
		fmt.Sprintf("%d", total),
	})

	table.Render()

	return tableBuffer.String()
}

func renderReportLine(report m.Report) string {
	return fmt.Sprintf("%s %s %s: %d mutants over units %s, %d rejected, %d violations",
		statusLabel(report),
		report.Label,
		report.Strategy,
		report.Mutants,
		report.Units.String(),
		report.Rejected,
		report.Violations,
	)
}

func renderSummaryTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Primitive", "Strategy", "Mutants", "Rejected", "Violations", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER,
	})

	mutants, rejected, violations, failed := 0, 0, 0, 0

	for _, report := range reports {
		table.Append([]string{
			report.Label,
			report.Strategy,
			fmt.Sprintf("%d", report.Mutants),
			fmt.Sprintf("%d", report.Rejected),
			fmt.Sprintf("%d", report.Violations),
			statusLabel(report),
		})

		mutants += report.Mutants
		rejected += report.Rejected
		violations += report.Violations

		if !report.Passed() {
			failed++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Sweeps %d", len(reports)),
		fmt.Sprintf("%d failed", failed),
		fmt.Sprintf("%d", mutants),
		fmt.Sprintf("%d", rejected),
		fmt.Sprintf("%d", violations),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func renderPassRate(passRate float64) string {
	return fmt.Sprintf("Pass rate: %.2f%%", passRate*100)
}

// renderViolations prints every kept example of report with a unified diff
// between the hex dumps of the reference and the mutant output.
func renderViolations(report m.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s: %d violation(s), showing %d\n",
		report.Label, report.Strategy, report.Violations, len(report.Examples))

	for _, violation := range report.Examples {
		fmt.Fprintf(&b, "\n  unit %d, position %d, expected %s\n",
			violation.Unit, violation.Position, violation.Relation.String())

		if violation.Err != "" {
			fmt.Fprintf(&b, "  error: %s\n", violation.Err)
		}

		if len(violation.EqualFields) > 0 {
			fmt.Fprintf(&b, "  unchanged: %s\n", strings.Join(violation.EqualFields, ", "))
		}

		fmt.Fprintf(&b, "  mutant input: %d byte(s)\n", len(violation.Mutant))
		b.WriteString(renderOutputDiff(violation))
	}

	return b.String()
}

func renderOutputDiff(violation m.Violation) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(hex.Dump(violation.Reference)),
		B:        difflib.SplitLines(hex.Dump(violation.Output)),
		FromFile: "reference",
		ToFile:   "mutant",
		Context:  1,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("  diff error: %v\n", err)
	}

	if text == "" {
		return "  outputs are identical\n"
	}

	return text
}
