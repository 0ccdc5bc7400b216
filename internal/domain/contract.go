// Package domain contains the metamorphic testing engine: contracts, the
// parallel sweep runner and the run/list/view workflow.
package domain

import (
	"metamorph.dev/pkg/metamorph/internal/domain/mutations"
)

// Contract binds the invocation of one primitive to the canonical views its
// strategies and relation checks work on. Output equality is always judged by
// Equivalent, which implementations base on the serialized output bytes.
type Contract[S, I, O any] interface {
	mutations.Codec[S, I]
	Label() string
	GenerateInput(unit int) (I, error)
	Invoke(state S, input I) (O, error)
	SerializeOutput(output O) []byte
	Equivalent(a, b O) bool
}
