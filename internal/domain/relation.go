package domain

import (
	"bytes"

	m "metamorph.dev/pkg/metamorph/internal/model"
)

type verdict int

const (
	verdictHeld verdict = iota
	// verdictRejected is a passing divergence where the adapter refused the
	// mutant outright.
	verdictRejected
	verdictViolated
)

type equivalence[O any] interface {
	Equivalent(a, b O) bool
}

// judge decides whether got satisfies relation against ref. A non-nil err
// means the adapter rejected the mutant; a rejection counts as divergence.
func judge[O any](eq equivalence[O], relation m.Relation, ref, got O, err error) verdict {
	switch relation.Expect {
	case m.ExpectEqual:
		if err != nil || !eq.Equivalent(ref, got) {
			return verdictViolated
		}

		return verdictHeld
	case m.ExpectDiffer:
		if err != nil {
			return verdictRejected
		}

		if eq.Equivalent(ref, got) {
			return verdictViolated
		}

		return verdictHeld
	case m.ExpectAllDiffer:
		if err != nil {
			return verdictRejected
		}

		if !allFieldsDiffer(ref, got, relation.Fields) {
			return verdictViolated
		}

		return verdictHeld
	}

	return verdictViolated
}

// allFieldsDiffer is false as soon as one named field is equal, or when the
// outputs do not expose fields at all.
func allFieldsDiffer(ref, got any, fields []string) bool {
	equal, ok := equalFields(ref, got, fields)

	return ok && len(equal) == 0 && len(fields) > 0
}

// equalFields lists the named fields on which ref and got agree. ok is false
// when the outputs do not expose fields.
func equalFields(ref, got any, fields []string) (equal []string, ok bool) {
	refFields, ok := ref.(m.Fielded)
	if !ok {
		return nil, false
	}

	gotFields, ok := got.(m.Fielded)
	if !ok {
		return nil, false
	}

	for _, field := range fields {
		if bytes.Equal(refFields.Field(field), gotFields.Field(field)) {
			equal = append(equal, field)
		}
	}

	return equal, true
}
