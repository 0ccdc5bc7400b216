package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"metamorph.dev/pkg/metamorph/internal/domain/mutations"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// DefaultMaxExamples is the number of violation examples kept per report.
const DefaultMaxExamples = 8

// ProgressFunc is told which unit a sweep is about to test. It may be called
// from several goroutines at once.
type ProgressFunc func(label, strategy string, unit int)

// Runner sweeps strategies over unit ranges, one goroutine per unit.
type Runner struct {
	threads     int
	maxExamples int
	progress    ProgressFunc
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithThreads bounds the number of units tested concurrently. Zero or less
// means unbounded.
func WithThreads(threads int) RunnerOption {
	return func(r *Runner) {
		r.threads = threads
	}
}

// WithMaxExamples bounds the violation examples kept per report.
func WithMaxExamples(n int) RunnerOption {
	return func(r *Runner) {
		r.maxExamples = max(n, 0)
	}
}

// WithProgress installs a progress side channel.
func WithProgress(progress ProgressFunc) RunnerOption {
	return func(r *Runner) {
		if progress != nil {
			r.progress = progress
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(options ...RunnerOption) *Runner {
	r := &Runner{
		threads:     1,
		maxExamples: DefaultMaxExamples,
		progress:    func(string, string, int) {},
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Sweep exhausts strategy against a fresh base input for every unit of
// units and aggregates the violations into one report. Units run in
// parallel; each unit's mutants are tested sequentially against a reference
// output computed once for that unit. A unit is never interrupted halfway:
// cancellation only prevents units that have not started yet.
func Sweep[S, I, O any](ctx context.Context, r *Runner, c Contract[S, I, O], strategy mutations.Strategy[S, I], units m.Range) (m.Report, error) {
	if err := units.Validate(); err != nil {
		return m.Report{}, fmt.Errorf("%w: %w", ErrEmptyRange, err)
	}

	label, name := c.Label(), strategy.Name()
	values := units.Values()
	results := make([]m.UnitResult, len(values))

	group, groupCtx := errgroup.WithContext(ctx)
	if r.threads > 0 {
		group.SetLimit(r.threads)
	}

	slog.Debug("Starting sweep", "label", label, "strategy", name, "units", units.String(), "threads", r.threads)

	for i, unit := range values {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			r.progress(label, name, unit)

			result, err := runUnit(c, strategy, unit, r.maxExamples)
			if err != nil {
				slog.Error("Unit failed", "label", label, "strategy", name, "unit", unit, "error", err)
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return m.Report{}, err
	}

	report := m.Report{Label: label, Strategy: name, Units: units}
	for _, result := range results {
		report.Merge(result, r.maxExamples)
	}

	slog.Info("Sweep completed",
		"label", label,
		"strategy", name,
		"mutants", report.Mutants,
		"rejected", report.Rejected,
		"violations", report.Violations,
	)

	return report, nil
}

func runUnit[S, I, O any](c Contract[S, I, O], strategy mutations.Strategy[S, I], unit int, maxExamples int) (m.UnitResult, error) {
	base, err := c.GenerateInput(unit)
	if err != nil {
		return m.UnitResult{}, fmt.Errorf("%s: generate input for unit %d: %w", c.Label(), unit, err)
	}

	reference, err := invoke(c, c.InitialState(), base)
	if err != nil {
		return m.UnitResult{}, fmt.Errorf("%s: reference invocation for unit %d: %w", c.Label(), unit, err)
	}

	result := m.UnitResult{Unit: unit}
	cursor := strategy.Bind(base)

	for {
		mutant, ok := cursor.Next()
		if !ok {
			break
		}

		result.Mutants++

		var output O

		err := mutant.Err
		if err == nil {
			output, err = invoke(c, mutant.State, mutant.Input)
		}

		switch judge[O](c, mutant.Relation, reference, output, err) {
		case verdictHeld:
		case verdictRejected:
			result.Rejected++
		case verdictViolated:
			result.Violations++

			slog.Debug("Relation violated",
				"label", c.Label(),
				"strategy", strategy.Name(),
				"unit", unit,
				"position", mutant.Position,
				"relation", mutant.Relation.String(),
			)

			if len(result.Examples) < maxExamples {
				result.Examples = append(result.Examples, newViolation(c, unit, mutant, reference, output, err))
			}
		}
	}

	return result, nil
}

func newViolation[S, I, O any](c Contract[S, I, O], unit int, mutant mutations.Mutant[S, I], reference, output O, err error) m.Violation {
	violation := m.Violation{
		Unit:      unit,
		Position:  mutant.Position,
		Relation:  mutant.Relation,
		Mutant:    c.SerializeInput(mutant.Input),
		Reference: c.SerializeOutput(reference),
		Output:    c.SerializeOutput(output),
	}

	if err != nil {
		violation.Err = err.Error()
	} else if mutant.Relation.Expect == m.ExpectAllDiffer {
		violation.EqualFields, _ = equalFields(reference, output, mutant.Relation.Fields)
	}

	return violation
}

// invoke calls the primitive, turning an adapter panic into an error.
func invoke[S, I, O any](c Contract[S, I, O], state S, input I) (output O, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrAdapterPanic, recovered)
		}
	}()

	return c.Invoke(state, input)
}
