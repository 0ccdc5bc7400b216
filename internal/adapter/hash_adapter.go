// Package adapter binds concrete primitives and storage to the engine.
package adapter

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"hash"
	"io"
)

// HashFunc describes a hash algorithm through its constructor, update and
// finalize steps. S is the algorithm's running state.
type HashFunc[S any] struct {
	Label    string
	New      func() S
	Update   func(state S, chunk []byte) S
	Finalize func(state S) []byte
}

// FromHash builds a HashFunc over a hash.Hash constructor.
func FromHash(label string, newHash func() hash.Hash) HashFunc[hash.Hash] {
	return HashFunc[hash.Hash]{
		Label: label,
		New:   newHash,
		Update: func(state hash.Hash, chunk []byte) hash.Hash {
			// hash.Hash.Write never returns an error.
			_, _ = state.Write(chunk)
			return state
		},
		Finalize: func(state hash.Hash) []byte {
			return state.Sum(nil)
		},
	}
}

// HashContract is the metamorphic contract of a hash function: inputs are
// byte buffers, outputs are digests, and the state is the hash context.
type HashContract[S any] struct {
	fn     HashFunc[S]
	random io.Reader
}

// NewHashContract creates a contract for fn drawing inputs from crypto/rand.
func NewHashContract[S any](fn HashFunc[S]) *HashContract[S] {
	return &HashContract[S]{fn: fn, random: rand.Reader}
}

// Label returns the algorithm label.
func (h *HashContract[S]) Label() string {
	return h.fn.Label
}

// GenerateInput returns a pseudorandom buffer of size bytes.
func (h *HashContract[S]) GenerateInput(size int) ([]byte, error) {
	input := make([]byte, size)
	if _, err := io.ReadFull(h.random, input); err != nil {
		return nil, fmt.Errorf("read %d random bytes: %w", size, err)
	}

	return input, nil
}

// InitialState returns a fresh hash context.
func (h *HashContract[S]) InitialState() S {
	return h.fn.New()
}

// Update absorbs chunk into state.
func (h *HashContract[S]) Update(state S, chunk []byte) S {
	return h.fn.Update(state, chunk)
}

// Invoke absorbs input and returns the digest.
func (h *HashContract[S]) Invoke(state S, input []byte) ([]byte, error) {
	return h.fn.Finalize(h.fn.Update(state, input)), nil
}

// SerializeInput returns the input bytes.
func (h *HashContract[S]) SerializeInput(input []byte) []byte {
	return input
}

// RestoreInput returns data as an input.
func (h *HashContract[S]) RestoreInput(data []byte) []byte {
	return data
}

// SerializeOutput returns the digest bytes.
func (h *HashContract[S]) SerializeOutput(output []byte) []byte {
	return output
}

// Equivalent compares digests byte for byte.
func (h *HashContract[S]) Equivalent(a, b []byte) bool {
	return bytes.Equal(a, b)
}
