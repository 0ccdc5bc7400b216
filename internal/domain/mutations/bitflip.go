package mutations

import (
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// BitFlipName is the name of the bit-flip strategy.
const BitFlipName = "bit-flip"

type bitFlip[S, I any] struct {
	codec Codec[S, I]
}

// BitFlip flips every bit of the serialized base input, one per mutant, and
// expects every mutant output to differ from the reference.
func BitFlip[S, I any](codec Codec[S, I]) Strategy[S, I] {
	return &bitFlip[S, I]{codec: codec}
}

func (b *bitFlip[S, I]) Name() string {
	return BitFlipName
}

func (b *bitFlip[S, I]) Bind(base I) Cursor[S, I] {
	return newCursor(base, b.size, b.step)
}

func (b *bitFlip[S, I]) size(base I) int {
	return len(b.codec.SerializeInput(base)) * 8
}

func (b *bitFlip[S, I]) step(base I, pos int) Mutant[S, I] {
	data := FlipBit(b.codec.SerializeInput(base), pos)

	return Mutant[S, I]{
		State:    b.codec.InitialState(),
		Input:    b.codec.RestoreInput(data),
		Relation: m.Differ(),
	}
}
