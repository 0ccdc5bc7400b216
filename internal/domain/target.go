package domain

import (
	"context"
	"fmt"

	"metamorph.dev/pkg/metamorph/internal/domain/mutations"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// Target is a labelled primitive bound to the strategies applicable to it and
// to the range of units it is swept over.
type Target interface {
	Label() string
	Strategies() []string
	Estimate(ctx context.Context) ([]m.Estimate, error)
	Sweep(ctx context.Context, r *Runner) ([]m.Report, error)
}

type target[S, I, O any] struct {
	contract   Contract[S, I, O]
	units      m.Range
	strategies []mutations.Strategy[S, I]
}

// NewTarget binds a contract to its strategies.
func NewTarget[S, I, O any](c Contract[S, I, O], units m.Range, strategies ...mutations.Strategy[S, I]) Target {
	return &target[S, I, O]{
		contract:   c,
		units:      units,
		strategies: strategies,
	}
}

func (t *target[S, I, O]) Label() string {
	return t.contract.Label()
}

func (t *target[S, I, O]) Strategies() []string {
	names := make([]string, 0, len(t.strategies))
	for _, strategy := range t.strategies {
		names = append(names, strategy.Name())
	}

	return names
}

// Estimate counts the mutants of every strategy by binding it to one base
// input per unit, without invoking the primitive.
func (t *target[S, I, O]) Estimate(ctx context.Context) ([]m.Estimate, error) {
	if err := t.units.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyRange, err)
	}

	estimates := make([]m.Estimate, len(t.strategies))
	for i, strategy := range t.strategies {
		estimates[i] = m.Estimate{Label: t.Label(), Strategy: strategy.Name(), Units: t.units.Len()}
	}

	cursors := make([]mutations.Cursor[S, I], len(t.strategies))

	for _, unit := range t.units.Values() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		base, err := t.contract.GenerateInput(unit)
		if err != nil {
			return nil, fmt.Errorf("%s: generate input for unit %d: %w", t.Label(), unit, err)
		}

		for i, strategy := range t.strategies {
			if cursors[i] == nil {
				cursors[i] = strategy.Bind(base)
			} else {
				cursors[i].Rebind(base)
			}

			estimates[i].Mutants += cursors[i].Len()
		}
	}

	return estimates, nil
}

func (t *target[S, I, O]) Sweep(ctx context.Context, r *Runner) ([]m.Report, error) {
	reports := make([]m.Report, 0, len(t.strategies))

	for _, strategy := range t.strategies {
		report, err := Sweep[S, I, O](ctx, r, t.contract, strategy, t.units)
		if err != nil {
			return reports, fmt.Errorf("%s/%s: %w", t.Label(), strategy.Name(), err)
		}

		reports = append(reports, report)
	}

	return reports, nil
}
