package domain

import "errors"

var (
	// ErrViolations is returned by a run when at least one relation failed.
	ErrViolations = errors.New("metamorphic relations violated")
	// ErrEmptyRange is returned when a sweep range holds no unit.
	ErrEmptyRange = errors.New("empty sweep range")
	// ErrNoTargets is returned when no primitive was selected.
	ErrNoTargets = errors.New("no primitives selected")
	// ErrAdapterPanic wraps a panic raised by a primitive adapter.
	ErrAdapterPanic = errors.New("adapter panicked")
)
