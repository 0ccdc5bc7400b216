package adapter

import (
	"io"
	"math/rand/v2"
)

const (
	pcgStreamTweak = 0xda3e39cb94b95bdb
	trialMix       = 0x9e3779b97f4a7c15
	encapsulateMix = 0xc2b2ae3d27d4eb4f
)

// seededReader is a reproducible, non-cryptographic byte source.
type seededReader struct {
	rng *rand.Rand
}

// NewSeededReader returns a deterministic reader: two readers built from the
// same seed yield the same byte stream.
func NewSeededReader(seed uint64) io.Reader {
	return &seededReader{rng: rand.New(rand.NewPCG(seed, seed^pcgStreamTweak))}
}

func (r *seededReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}

	return len(p), nil
}

// TrialSeed derives an independent seed for one trial of a run (splitmix64
// finalizer over the run seed and the trial index).
func TrialSeed(runSeed uint64, trial int) uint64 {
	z := runSeed + uint64(trial)*trialMix
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}

// EncapsulationSeed derives the seed of the encapsulation stream of an input
// generated from seed.
func EncapsulationSeed(seed uint64) uint64 {
	return TrialSeed(seed^encapsulateMix, 0)
}
