// Package mutations provides the mutation strategies: finite, restartable
// cursors that derive mutated inputs from a base input, each tagged with the
// relation its output must satisfy against the reference output.
package mutations

import (
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// Codec is the part of a contract that generic strategies need to build
// mutants out of the canonical byte view of an input.
type Codec[S, I any] interface {
	InitialState() S
	SerializeInput(input I) []byte
	RestoreInput(data []byte) I
}

// Mutant is one derived (state, input) pair.
type Mutant[S, I any] struct {
	State    S
	Input    I
	Relation m.Relation
	Position int
	// Err is set when the primitive already rejected the mutant while it was
	// being built (for instance a re-encapsulation under a corrupted key).
	Err error
}

// Cursor walks the mutants of one base input. Its length is known as soon as
// it is bound and never changes while iterating.
type Cursor[S, I any] interface {
	Len() int
	Next() (Mutant[S, I], bool)
	// Rebind resets the cursor onto a new base input.
	Rebind(base I)
}

// Strategy produces cursors. Strategies are immutable and safe to share
// between goroutines; cursors are not.
type Strategy[S, I any] interface {
	Name() string
	Bind(base I) Cursor[S, I]
}

type cursor[S, I any] struct {
	base   I
	pos    int
	length int
	size   func(base I) int
	step   func(base I, pos int) Mutant[S, I]
}

func newCursor[S, I any](base I, size func(I) int, step func(I, int) Mutant[S, I]) *cursor[S, I] {
	c := &cursor[S, I]{size: size, step: step}
	c.Rebind(base)

	return c
}

func (c *cursor[S, I]) Len() int {
	return c.length
}

func (c *cursor[S, I]) Next() (Mutant[S, I], bool) {
	if c.pos >= c.length {
		var zero Mutant[S, I]
		return zero, false
	}

	mutant := c.step(c.base, c.pos)
	mutant.Position = c.pos
	c.pos++

	return mutant, true
}

func (c *cursor[S, I]) Rebind(base I) {
	c.base = base
	c.pos = 0
	c.length = c.size(base)
}

// FlipBit returns a copy of data with bit index flipped. Bits are numbered
// least significant first within each byte.
func FlipBit(data []byte, index int) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	out[index>>3] ^= 1 << (index & 7)

	return out
}
