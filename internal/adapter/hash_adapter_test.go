package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashContract_Invoke(t *testing.T) {
	contract := NewHashContract(FromHash("SHA-256", sha256.New))
	assert.Equal(t, "SHA-256", contract.Label())

	digest, err := contract.Invoke(contract.InitialState(), []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(digest))
}

func TestHashContract_Deterministic(t *testing.T) {
	contract := NewHashContract(FromHash("SHA-256", sha256.New))

	input, err := contract.GenerateInput(64)
	require.NoError(t, err)

	first, err := contract.Invoke(contract.InitialState(), input)
	require.NoError(t, err)

	second, err := contract.Invoke(contract.InitialState(), input)
	require.NoError(t, err)

	assert.True(t, contract.Equivalent(first, second))
	assert.Equal(t, contract.SerializeOutput(first), contract.SerializeOutput(second))
}

func TestHashContract_UpdateThenInvoke(t *testing.T) {
	contract := NewHashContract(FromHash("SHA-256", sha256.New))
	input := []byte("streamed input")

	oneShot, err := contract.Invoke(contract.InitialState(), input)
	require.NoError(t, err)

	state := contract.Update(contract.InitialState(), input[:5])
	streamed, err := contract.Invoke(state, input[5:])
	require.NoError(t, err)

	assert.Equal(t, oneShot, streamed)
}

func TestHashContract_GenerateInput(t *testing.T) {
	contract := NewHashContract(FromHash("SHA-256", sha256.New))

	for _, size := range []int{0, 1, 37, 1024} {
		input, err := contract.GenerateInput(size)
		require.NoError(t, err)
		assert.Len(t, input, size)
		assert.Equal(t, input, contract.RestoreInput(contract.SerializeInput(input)))
	}
}
