package domain

import (
	"context"
	"fmt"
	"log/slog"

	"metamorph.dev/pkg/metamorph/internal/adapter"
	"metamorph.dev/pkg/metamorph/internal/controller"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// EstimateArgs contains the arguments for estimating sweeps.
type EstimateArgs struct {
	Targets []Target
}

// RunArgs contains the arguments for running sweeps.
type RunArgs struct {
	Targets     []Target
	Threads     int
	MaxExamples int
	// Reports is the directory the reports are saved to. Empty disables it.
	Reports m.Path
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the interface for the metamorphic testing workflow.
type Workflow interface {
	Estimate(ctx context.Context, args EstimateArgs) error
	Run(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(reportStore adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		ReportStore: reportStore,
		UI:          ui,
	}
}

func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if len(args.Targets) == 0 {
		return ErrNoTargets
	}

	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		return fmt.Errorf("start UI: %w", err)
	}

	var estimates []m.Estimate

	for _, target := range args.Targets {
		targetEstimates, err := target.Estimate(ctx)
		if err != nil {
			_ = w.DisplayEstimation(ctx, nil, err)

			w.Close(ctx)

			return fmt.Errorf("estimate %s: %w", target.Label(), err)
		}

		estimates = append(estimates, targetEstimates...)
	}

	if err := w.DisplayEstimation(ctx, estimates, nil); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display estimation: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// Run sweeps every target, displays and optionally saves the reports, and
// returns ErrViolations when any relation failed.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if len(args.Targets) == 0 {
		return ErrNoTargets
	}

	if err := w.Start(ctx, controller.WithTestMode()); err != nil {
		return fmt.Errorf("start UI: %w", err)
	}

	reports, err := w.sweep(ctx, args)

	w.Close(ctx)

	if err != nil {
		return err
	}

	if args.Reports != "" {
		if err := w.SaveReports(ctx, args.Reports, reports); err != nil {
			return fmt.Errorf("save reports: %w", err)
		}
	}

	if failed := Failed(reports); len(failed) > 0 {
		slog.Warn("Relations violated", "failed_sweeps", len(failed), "sweeps", len(reports))
		return fmt.Errorf("%w: %d of %d sweep(s) failed", ErrViolations, len(failed), len(reports))
	}

	return nil
}

func (w *workflow) sweep(ctx context.Context, args RunArgs) ([]m.Report, error) {
	sweeps := 0
	for _, target := range args.Targets {
		sweeps += len(target.Strategies())
	}

	w.DisplayConcurrencyInfo(ctx, args.Threads, sweeps)

	runner := NewRunner(
		WithThreads(args.Threads),
		WithMaxExamples(args.MaxExamples),
		WithProgress(func(label, strategy string, unit int) {
			w.DisplayUnitStarted(ctx, label, strategy, unit)
		}),
	)

	reports := make([]m.Report, 0, sweeps)

	for _, target := range args.Targets {
		targetReports, err := target.Sweep(ctx, runner)
		if err != nil {
			return nil, fmt.Errorf("sweep %s: %w", target.Label(), err)
		}

		for _, report := range targetReports {
			w.DisplayReport(ctx, report)
		}

		reports = append(reports, targetReports...)
	}

	for _, report := range Failed(reports) {
		w.DisplayViolations(ctx, report)
	}

	w.DisplaySummary(ctx, reports, PassRate(reports))

	return reports, nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return fmt.Errorf("start UI: %w", err)
	}

	for _, report := range reports {
		w.DisplayReport(ctx, report)
	}

	for _, report := range Failed(reports) {
		w.DisplayViolations(ctx, report)
	}

	w.DisplaySummary(ctx, reports, PassRate(reports))
	w.Wait(ctx)
	w.Close(ctx)

	return nil
}
