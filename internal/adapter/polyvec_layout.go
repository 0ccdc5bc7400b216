package adapter

// mlkemQ is the coefficient modulus of ML-KEM and Kyber.
const mlkemQ = 3329

// PolyVecLayout locates a vector of polynomials packed at a fixed width
// inside a secret key. Coefficient bits are packed least significant first,
// which for Width 12 is the ByteEncode12 encoding of ML-KEM and Kyber.
type PolyVecLayout struct {
	Offset int // byte offset of the packed vector
	Polys  int
	Degree int
	Width  int
	// Modulus keeps flipped coefficients in [0, Modulus). Zero disables the
	// reduction.
	Modulus uint16
}

// MLKEMLayout is the layout of the secret vector at the head of an ML-KEM or
// Kyber decapsulation key with rank k.
func MLKEMLayout(k int) PolyVecLayout {
	return PolyVecLayout{Offset: 0, Polys: k, Degree: 256, Width: 12, Modulus: mlkemQ}
}

// CoefficientCount returns how many coefficients are present in secretKey.
func (l PolyVecLayout) CoefficientCount(secretKey []byte) int {
	available := (len(secretKey) - l.Offset) * 8 / l.Width
	if available < 0 {
		return 0
	}

	return min(l.Polys*l.Degree, available)
}

// CoefficientWidth returns the bit width of one coefficient.
func (l PolyVecLayout) CoefficientWidth() int {
	return l.Width
}

// Coefficients decodes every coefficient of secretKey.
func (l PolyVecLayout) Coefficients(secretKey []byte) []uint16 {
	coeffs := make([]uint16, l.CoefficientCount(secretKey))
	for i := range coeffs {
		coeffs[i] = l.coefficient(secretKey, i)
	}

	return coeffs
}

// FlipCoefficientBit returns a copy of secretKey where one bit of one
// decoded coefficient is flipped and the coefficient is re-encoded. A flipped
// value at or above Modulus is reduced, so the mutant stays a canonical
// encoding where a raw bit flip would not.
func (l PolyVecLayout) FlipCoefficientBit(secretKey []byte, index int) []byte {
	out := make([]byte, len(secretKey))
	copy(out, secretKey)

	i := index / l.Width

	c := l.coefficient(secretKey, i) ^ (1 << (index % l.Width))
	if l.Modulus > 0 {
		c %= l.Modulus
	}

	l.setCoefficient(out, i, c)

	return out
}

func (l PolyVecLayout) coefficient(data []byte, i int) uint16 {
	var c uint16

	base := l.Offset*8 + i*l.Width
	for b := 0; b < l.Width; b++ {
		bit := base + b
		if data[bit>>3]&(1<<(bit&7)) != 0 {
			c |= 1 << b
		}
	}

	return c
}

func (l PolyVecLayout) setCoefficient(data []byte, i int, c uint16) {
	base := l.Offset*8 + i*l.Width
	for b := 0; b < l.Width; b++ {
		bit := base + b
		if c&(1<<b) != 0 {
			data[bit>>3] |= 1 << (bit & 7)
		} else {
			data[bit>>3] &^= 1 << (bit & 7)
		}
	}
}
