package domain_test

import (
	"crypto/sha256"
	"errors"
	"hash"
	"io"
	"sync"

	"metamorph.dev/pkg/metamorph/internal/adapter"
	"metamorph.dev/pkg/metamorph/internal/domain"
)

type hashContract = domain.Contract[hash.Hash, []byte, []byte]

func sha256Contract() *adapter.HashContract[hash.Hash] {
	return adapter.NewHashContract(adapter.FromHash("SHA-256", sha256.New))
}

// blindContract hashes everything but the last byte handed to Invoke.
type blindContract struct {
	*adapter.HashContract[hash.Hash]
}

func (b blindContract) Invoke(state hash.Hash, input []byte) ([]byte, error) {
	if len(input) > 0 {
		input = input[:len(input)-1]
	}

	return b.HashContract.Invoke(state, input)
}

// fragileContract works on zero inputs and panics when the lowest bit of
// the first byte is set.
type fragileContract struct {
	*adapter.HashContract[hash.Hash]
}

func (f fragileContract) GenerateInput(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (f fragileContract) Invoke(state hash.Hash, input []byte) ([]byte, error) {
	if len(input) > 0 && input[0]&1 == 1 {
		panic("lowest bit set")
	}

	return f.HashContract.Invoke(state, input)
}

var errGenerate = errors.New("no entropy")

type brokenContract struct {
	*adapter.HashContract[hash.Hash]
}

func (brokenContract) GenerateInput(int) ([]byte, error) {
	return nil, errGenerate
}

// fixedContract always hashes the same base input.
type fixedContract struct {
	*adapter.HashContract[hash.Hash]
	input []byte
}

func (f fixedContract) GenerateInput(int) ([]byte, error) {
	return append([]byte(nil), f.input...), nil
}

// pkBlindKEM encapsulates under the first public key it is given and ignores
// every later one.
type pkBlindKEM struct {
	adapter.KEM

	mu    sync.Mutex
	first []byte
}

func (k *pkBlindKEM) Encapsulate(publicKey []byte, random io.Reader) ([]byte, []byte, error) {
	k.mu.Lock()
	if k.first == nil {
		k.first = publicKey
	}
	publicKey = k.first
	k.mu.Unlock()

	return k.KEM.Encapsulate(publicKey, random)
}
