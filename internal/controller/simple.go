package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayEstimation prints the estimation results or error.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, estimates []m.Estimate, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(estimates))

	return nil
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, sweeps int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d sweep(s) with %d worker(s)\n", sweeps, threads)
}

// DisplayUnitStarted only logs; printing every unit would flood the output.
func (s *SimpleUI) DisplayUnitStarted(ctx context.Context, label string, strategy string, unit int) {
	if err := ctx.Err(); err != nil {
		return
	}

	slog.Debug("Unit started", "label", label, "strategy", strategy, "unit", unit)
}

// DisplayReport prints a one-line verdict for a finished sweep.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", renderReportLine(report))
}

// DisplayViolations prints the kept violation examples of report.
func (s *SimpleUI) DisplayViolations(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	if report.Passed() {
		return
	}

	s.printf("\n%s", renderViolations(report))
}

// DisplaySummary prints the summary table and the final pass rate.
func (s *SimpleUI) DisplaySummary(ctx context.Context, reports []m.Report, passRate float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s%s\n", renderSummaryTable(reports), renderPassRate(passRate))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
