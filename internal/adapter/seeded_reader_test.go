package adapter

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readN(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()

	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)

	return buf
}

func TestSeededReader_Reproducible(t *testing.T) {
	a := readN(t, NewSeededReader(7), 100)
	b := readN(t, NewSeededReader(7), 100)
	c := readN(t, NewSeededReader(8), 100)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestTrialSeed(t *testing.T) {
	seen := map[uint64]bool{}

	for trial := 1; trial <= 100; trial++ {
		seed := TrialSeed(42, trial)
		assert.False(t, seen[seed], "trial %d collides", trial)
		seen[seed] = true
	}

	assert.Equal(t, TrialSeed(42, 3), TrialSeed(42, 3))
	assert.NotEqual(t, TrialSeed(42, 3), TrialSeed(43, 3))
}

func TestEncapsulationSeed(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, ^uint64(0)} {
		assert.NotEqual(t, seed, EncapsulationSeed(seed))
		assert.Equal(t, EncapsulationSeed(seed), EncapsulationSeed(seed))
	}

	assert.NotEqual(t, EncapsulationSeed(1), EncapsulationSeed(2))
}
