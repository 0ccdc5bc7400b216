package adapter

import (
	"bytes"
	"testing"

	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyVecLayout_CoefficientCount(t *testing.T) {
	layout := MLKEMLayout(3)

	assert.Equal(t, 768, layout.CoefficientCount(make([]byte, 2400)))
	assert.Equal(t, 12, layout.CoefficientWidth())
	assert.Equal(t, 2, layout.CoefficientCount(make([]byte, 3)), "bounded by the available bytes")
	assert.Equal(t, 0, PolyVecLayout{Offset: 10, Polys: 1, Degree: 256, Width: 12}.CoefficientCount(make([]byte, 4)))
}

func TestPolyVecLayout_DecodesByteEncode12(t *testing.T) {
	// 0x123 and 0xabc packed least significant first.
	layout := PolyVecLayout{Polys: 1, Degree: 2, Width: 12}

	assert.Equal(t, []uint16{0x123, 0xabc}, layout.Coefficients([]byte{0x23, 0xc1, 0xab}))
}

func TestPolyVecLayout_FlipCoefficientBit(t *testing.T) {
	layout := PolyVecLayout{Polys: 1, Degree: 2, Width: 12}
	sk := []byte{0x23, 0xc1, 0xab, 0xff}

	for index := 0; index < layout.CoefficientCount(sk)*layout.CoefficientWidth(); index++ {
		mutated := layout.FlipCoefficientBit(sk, index)
		require.Len(t, mutated, len(sk))

		before := layout.Coefficients(sk)
		after := layout.Coefficients(mutated)

		target := index / 12
		assert.Equal(t, before[target]^(1<<(index%12)), after[target])
		assert.Equal(t, before[1-target], after[1-target])
		assert.Equal(t, byte(0xff), mutated[3], "trailing bytes untouched")
	}

	assert.Equal(t, []byte{0x23, 0xc1, 0xab, 0xff}, sk)
}

func TestPolyVecLayout_WithOffset(t *testing.T) {
	layout := PolyVecLayout{Offset: 1, Polys: 1, Degree: 1, Width: 4}
	sk := []byte{0xff, 0x05}

	assert.Equal(t, []uint16{0x5}, layout.Coefficients(sk))
	assert.Equal(t, []byte{0xff, 0x04}, layout.FlipCoefficientBit(sk, 0))
}

func TestPolyVecLayout_FlipCoefficientBitReduces(t *testing.T) {
	layout := PolyVecLayout{Polys: 1, Degree: 2, Width: 12, Modulus: 3329}
	// 2000 and 0; flipping bit 11 of 2000 gives 4048, reduced to 719.
	sk := []byte{0xd0, 0x07, 0x00}

	mutated := layout.FlipCoefficientBit(sk, 11)

	assert.Equal(t, []uint16{719, 0}, layout.Coefficients(mutated))
	assert.Equal(t, []byte{0xcf, 0x02, 0x00}, mutated)
	assert.NotEqual(t, []byte{0xd0, 0x0f, 0x00}, mutated, "differs from the raw bit flip")

	assert.Equal(t, []uint16{2000, 1}, layout.Coefficients(layout.FlipCoefficientBit(sk, 12)))
}

func TestMLKEMLayout_FlipsStayCanonical(t *testing.T) {
	contract, err := NewKEMContract(NewCirclKEM("ML-KEM-512", mlkem512.Scheme()), 7)
	require.NoError(t, err)

	input, err := contract.GenerateInput(1)
	require.NoError(t, err)

	layout := MLKEMLayout(2)
	sk := []byte(input.SecretKey)

	for _, c := range layout.Coefficients(sk) {
		require.Less(t, c, uint16(3329))
	}

	reduced := 0

	for index := 0; index < layout.CoefficientCount(sk)*layout.CoefficientWidth(); index++ {
		mutated := layout.FlipCoefficientBit(sk, index)
		i := index / 12

		after := layout.coefficient(mutated, i)
		require.Less(t, after, uint16(3329))
		require.NotEqual(t, layout.coefficient(sk, i), after)

		raw := make([]byte, len(sk))
		copy(raw, sk)
		raw[index>>3] ^= 1 << (index & 7)

		if !bytes.Equal(raw, mutated) {
			reduced++
		}
	}

	assert.Positive(t, reduced)
}
