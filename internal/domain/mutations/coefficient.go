package mutations

import (
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// CoefficientLayout gives structured access to the fixed-width polynomial
// coefficients encoded inside a secret key. It is the only place where a
// strategy looks beneath the byte encoding of an input.
type CoefficientLayout interface {
	CoefficientCount(secretKey []byte) int
	CoefficientWidth() int
	// FlipCoefficientBit returns a re-encoded copy of secretKey where bit
	// index%width of coefficient index/width is flipped.
	FlipCoefficientBit(secretKey []byte, index int) []byte
}

type coefficientFlip struct {
	layout CoefficientLayout
}

// CoefficientFlip flips every bit of every decoded secret-key coefficient,
// keeping the ciphertext fixed, and expects a differing shared secret.
func CoefficientFlip(layout CoefficientLayout) KEMStrategy {
	return &coefficientFlip{layout: layout}
}

func (c *coefficientFlip) Name() string {
	return CoefficientFlipName
}

func (c *coefficientFlip) Bind(base m.KEMInput) Cursor[struct{}, m.KEMInput] {
	return newCursor(base, c.size, c.step)
}

func (c *coefficientFlip) size(base m.KEMInput) int {
	return c.layout.CoefficientCount(base.SecretKey) * c.layout.CoefficientWidth()
}

func (c *coefficientFlip) step(base m.KEMInput, pos int) Mutant[struct{}, m.KEMInput] {
	input := base
	input.SecretKey = c.layout.FlipCoefficientBit(base.SecretKey, pos)

	return Mutant[struct{}, m.KEMInput]{Input: input, Relation: m.Differ()}
}
