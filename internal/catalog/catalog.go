// Package catalog is the labelled registry of the primitives the engine can
// sweep, each bound to the strategies that apply to it.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"metamorph.dev/pkg/metamorph/internal/domain"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// Kind is the family of a primitive.
type Kind string

// Available kinds.
const (
	KindHash Kind = "hash"
	KindKEM  Kind = "kem"
)

// Options selects primitives and sets the dimensions they are swept over.
type Options struct {
	// Sizes is the range of input sizes, in bytes, for hash primitives.
	Sizes m.Range
	// Trials is the number of independent keypairs per KEM strategy.
	Trials int
	// Seed derives the KEM trial inputs. Zero picks a random seed.
	Seed uint64
	// Include and Exclude are regular expressions matched against labels.
	Include []string
	Exclude []string
}

// ErrInvalidTrials is returned when KEMs are selected with no trial.
var ErrInvalidTrials = errors.New("trial count must be positive")

// Primitive is one labelled entry of the catalog.
type Primitive struct {
	Label string
	Kind  Kind
	build func(opts Options) (domain.Target, error)
}

// Target binds the primitive to its strategies for opts.
func (p Primitive) Target(opts Options) (domain.Target, error) {
	return p.build(opts)
}

// All lists every registered primitive, hashes first.
func All() []Primitive {
	return append(Hashes(), KEMs()...)
}

// Select returns the primitives whose label matches an include pattern (any
// label when there are none) and no exclude pattern.
func Select(primitives []Primitive, include, exclude []string) ([]Primitive, error) {
	includes, err := compile(include)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}

	excludes, err := compile(exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	var selected []Primitive

	for _, primitive := range primitives {
		if len(includes) > 0 && !matchAny(includes, primitive.Label) {
			continue
		}

		if matchAny(excludes, primitive.Label) {
			continue
		}

		selected = append(selected, primitive)
	}

	return selected, nil
}

// Targets builds the targets of every selected primitive.
func Targets(opts Options) ([]domain.Target, error) {
	primitives, err := Select(All(), opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	targets := make([]domain.Target, 0, len(primitives))

	for _, primitive := range primitives {
		target, err := primitive.Target(opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", primitive.Label, err)
		}

		targets = append(targets, target)
	}

	slog.Debug("Targets selected", "count", len(targets), "include", opts.Include, "exclude", opts.Exclude)

	return targets, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func matchAny(patterns []*regexp.Regexp, label string) bool {
	for _, re := range patterns {
		if re.MatchString(label) {
			return true
		}
	}

	return false
}
