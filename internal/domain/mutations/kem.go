package mutations

import (
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// Strategy names of the key-encapsulation sweep.
const (
	CiphertextFlipName  = "ciphertext-bit-flip"
	SecretKeyFlipName   = "secret-key-bit-flip"
	PublicKeyFlipName   = "public-key-bit-flip"
	SeedReplayName      = "seed-replay"
	CoefficientFlipName = "secret-key-coefficient-flip"
)

// KEMStrategy is a strategy over stateless key-encapsulation inputs.
type KEMStrategy = Strategy[struct{}, m.KEMInput]

// Encapsulator re-encapsulates under a (possibly corrupted) public key with
// the encapsulation randomness of the input generated from seed, so that the
// unmodified key reproduces that input's ciphertext.
type Encapsulator interface {
	Reencapsulate(publicKey []byte, seed uint64) ([]byte, error)
}

// Generator regenerates a whole keypair and encapsulation from the
// deterministic source identified by seed.
type Generator interface {
	GenerateSeeded(seed uint64) (m.KEMInput, error)
}

type fieldFlip struct {
	name  string
	field string
}

// CiphertextFlip flips every ciphertext bit and expects a differing shared
// secret.
func CiphertextFlip() KEMStrategy {
	return &fieldFlip{name: CiphertextFlipName, field: m.FieldCiphertext}
}

// SecretKeyFlip flips every bit of the encoded secret key and expects a
// differing shared secret.
func SecretKeyFlip() KEMStrategy {
	return &fieldFlip{name: SecretKeyFlipName, field: m.FieldSecretKey}
}

func (f *fieldFlip) Name() string {
	return f.name
}

func (f *fieldFlip) Bind(base m.KEMInput) Cursor[struct{}, m.KEMInput] {
	return newCursor(base, f.size, f.step)
}

func (f *fieldFlip) size(base m.KEMInput) int {
	return len(base.Field(f.field)) * 8
}

func (f *fieldFlip) step(base m.KEMInput, pos int) Mutant[struct{}, m.KEMInput] {
	// The field name is one of the KEMInput constants, WithField cannot fail.
	input, _ := base.WithField(f.field, FlipBit(base.Field(f.field), pos))

	return Mutant[struct{}, m.KEMInput]{Input: input, Relation: m.Differ()}
}

type publicKeyFlip struct {
	enc Encapsulator
}

// PublicKeyFlip flips every public key bit, re-encapsulates under the mutated
// key, and expects both the decapsulated secret and the ciphertext to differ.
// A rejected re-encapsulation is reported through Mutant.Err.
func PublicKeyFlip(enc Encapsulator) KEMStrategy {
	return &publicKeyFlip{enc: enc}
}

func (p *publicKeyFlip) Name() string {
	return PublicKeyFlipName
}

func (p *publicKeyFlip) Bind(base m.KEMInput) Cursor[struct{}, m.KEMInput] {
	return newCursor(base, p.size, p.step)
}

func (p *publicKeyFlip) size(base m.KEMInput) int {
	return len(base.PublicKey) * 8
}

func (p *publicKeyFlip) step(base m.KEMInput, pos int) Mutant[struct{}, m.KEMInput] {
	input := base
	input.PublicKey = FlipBit(base.PublicKey, pos)

	ciphertext, err := p.enc.Reencapsulate(input.PublicKey, base.Seed)
	if err == nil {
		input.Ciphertext = ciphertext
	}

	return Mutant[struct{}, m.KEMInput]{
		Input:    input,
		Relation: m.AllDiffer(m.FieldSharedSecret, m.FieldCiphertext),
		Err:      err,
	}
}

// replaySeedTweak separates the replay seed from the base seed.
const replaySeedTweak = 0x9e3779b97f4a7c15

// ReplaySeed derives the second deterministic seed used by SeedReplay.
func ReplaySeed(seed uint64) uint64 {
	return seed ^ replaySeedTweak
}

type seedReplay struct {
	gen Generator
}

// SeedReplay regenerates the entire keypair and encapsulation from a
// different deterministic seed and expects secret key, public key,
// ciphertext and shared secret to all differ at once.
func SeedReplay(gen Generator) KEMStrategy {
	return &seedReplay{gen: gen}
}

func (r *seedReplay) Name() string {
	return SeedReplayName
}

func (r *seedReplay) Bind(base m.KEMInput) Cursor[struct{}, m.KEMInput] {
	return newCursor(base, func(m.KEMInput) int { return 1 }, r.step)
}

func (r *seedReplay) step(base m.KEMInput, _ int) Mutant[struct{}, m.KEMInput] {
	relation := m.AllDiffer(m.FieldSecretKey, m.FieldPublicKey, m.FieldCiphertext, m.FieldSharedSecret)

	input, err := r.gen.GenerateSeeded(ReplaySeed(base.Seed))
	if err != nil {
		return Mutant[struct{}, m.KEMInput]{Input: base, Relation: relation, Err: err}
	}

	return Mutant[struct{}, m.KEMInput]{Input: input, Relation: relation}
}
