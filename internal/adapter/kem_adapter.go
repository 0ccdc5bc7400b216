package adapter

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudflare/circl/kem"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// KEM is a key-encapsulation binding. Randomness is always drawn from the
// supplied reader so that generation can be replayed.
type KEM interface {
	Label() string
	GenerateKeyPair(random io.Reader) (secretKey, publicKey []byte, err error)
	Encapsulate(publicKey []byte, random io.Reader) (ciphertext, sharedSecret []byte, err error)
	Decapsulate(secretKey, ciphertext []byte) ([]byte, error)
	Sizes() m.KEMSizes
}

type circlKEM struct {
	label  string
	scheme kem.Scheme
}

// NewCirclKEM binds a circl KEM scheme.
func NewCirclKEM(label string, scheme kem.Scheme) KEM {
	return &circlKEM{label: label, scheme: scheme}
}

func (c *circlKEM) Label() string {
	return c.label
}

func (c *circlKEM) GenerateKeyPair(random io.Reader) ([]byte, []byte, error) {
	seed := make([]byte, c.scheme.SeedSize())
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, nil, fmt.Errorf("read key seed: %w", err)
	}

	pk, sk := c.scheme.DeriveKeyPair(seed)

	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("marshal secret key: %w", err)
	}

	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("marshal public key: %w", err)
	}

	return skBytes, pkBytes, nil
}

func (c *circlKEM) Encapsulate(publicKey []byte, random io.Reader) ([]byte, []byte, error) {
	pk, err := c.scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("unmarshal public key: %w", err)
	}

	seed := make([]byte, c.scheme.EncapsulationSeedSize())
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, nil, fmt.Errorf("read encapsulation seed: %w", err)
	}

	ct, ss, err := c.scheme.EncapsulateDeterministically(pk, seed)
	if err != nil {
		return nil, nil, fmt.Errorf("encapsulate: %w", err)
	}

	return ct, ss, nil
}

func (c *circlKEM) Decapsulate(secretKey, ciphertext []byte) ([]byte, error) {
	sk, err := c.scheme.UnmarshalBinaryPrivateKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("unmarshal secret key: %w", err)
	}

	ss, err := c.scheme.Decapsulate(sk, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decapsulate: %w", err)
	}

	return ss, nil
}

func (c *circlKEM) Sizes() m.KEMSizes {
	return m.KEMSizes{
		SecretKey:    c.scheme.PrivateKeySize(),
		PublicKey:    c.scheme.PublicKeySize(),
		Ciphertext:   c.scheme.CiphertextSize(),
		SharedSecret: c.scheme.SharedKeySize(),
	}
}

// KEMContract is the metamorphic contract of a KEM: the base input is a
// deterministic (secret key, public key, ciphertext) triple and the invoked
// operation is decapsulation.
type KEMContract struct {
	kem     KEM
	runSeed uint64
}

// NewKEMContract creates a contract for k. Trial inputs are derived from
// runSeed; a zero runSeed is replaced by a random one.
func NewKEMContract(k KEM, runSeed uint64) (*KEMContract, error) {
	if runSeed == 0 {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("draw run seed: %w", err)
		}

		runSeed = binary.LittleEndian.Uint64(buf[:])
	}

	slog.Debug("KEM contract seeded", "label", k.Label(), "seed", runSeed)

	return &KEMContract{kem: k, runSeed: runSeed}, nil
}

// Label returns the KEM label.
func (c *KEMContract) Label() string {
	return c.kem.Label()
}

// Sizes returns the artefact sizes of the KEM.
func (c *KEMContract) Sizes() m.KEMSizes {
	return c.kem.Sizes()
}

// GenerateInput builds the base input of one trial.
func (c *KEMContract) GenerateInput(trial int) (m.KEMInput, error) {
	return c.GenerateSeeded(TrialSeed(c.runSeed, trial))
}

// GenerateSeeded generates a keypair and encapsulates under it, drawing all
// randomness from the deterministic sources identified by seed. Key
// generation and encapsulation read separate streams so that Reencapsulate
// can replay the encapsulation alone.
func (c *KEMContract) GenerateSeeded(seed uint64) (m.KEMInput, error) {
	sk, pk, err := c.kem.GenerateKeyPair(NewSeededReader(seed))
	if err != nil {
		return m.KEMInput{}, fmt.Errorf("%s: generate keypair: %w", c.kem.Label(), err)
	}

	ct, _, err := c.kem.Encapsulate(pk, NewSeededReader(EncapsulationSeed(seed)))
	if err != nil {
		return m.KEMInput{}, fmt.Errorf("%s: encapsulate: %w", c.kem.Label(), err)
	}

	return m.KEMInput{SecretKey: sk, PublicKey: pk, Ciphertext: ct, Seed: seed}, nil
}

// Reencapsulate encapsulates under publicKey with the encapsulation
// randomness of the input generated from seed. Under the unmodified public
// key it reproduces that input's ciphertext.
func (c *KEMContract) Reencapsulate(publicKey []byte, seed uint64) ([]byte, error) {
	ct, _, err := c.kem.Encapsulate(publicKey, NewSeededReader(EncapsulationSeed(seed)))

	return ct, err
}

// InitialState returns the empty state of a stateless primitive.
func (c *KEMContract) InitialState() struct{} {
	return struct{}{}
}

// Invoke decapsulates the input ciphertext with the input secret key.
func (c *KEMContract) Invoke(_ struct{}, input m.KEMInput) (m.KEMOutput, error) {
	out := m.KEMOutput{
		Ciphertext: input.Ciphertext,
		PublicKey:  input.PublicKey,
		SecretKey:  input.SecretKey,
	}

	ss, err := c.kem.Decapsulate(input.SecretKey, input.Ciphertext)
	if err != nil {
		return out, err
	}

	out.SharedSecret = ss

	return out, nil
}

// SerializeInput concatenates secret key, public key and ciphertext.
func (c *KEMContract) SerializeInput(input m.KEMInput) []byte {
	out := make([]byte, 0, len(input.SecretKey)+len(input.PublicKey)+len(input.Ciphertext))
	out = append(out, input.SecretKey...)
	out = append(out, input.PublicKey...)

	return append(out, input.Ciphertext...)
}

// RestoreInput splits a serialized input back into its fields. data must have
// the length of a serialized input.
func (c *KEMContract) RestoreInput(data []byte) m.KEMInput {
	sizes := c.kem.Sizes()
	pkEnd := sizes.SecretKey + sizes.PublicKey

	return m.KEMInput{
		SecretKey:  data[:sizes.SecretKey],
		PublicKey:  data[sizes.SecretKey:pkEnd],
		Ciphertext: data[pkEnd:],
	}
}

// SerializeOutput returns the shared secret.
func (c *KEMContract) SerializeOutput(output m.KEMOutput) []byte {
	return output.SharedSecret
}

// Equivalent compares shared secrets.
func (c *KEMContract) Equivalent(a, b m.KEMOutput) bool {
	return bytes.Equal(a.SharedSecret, b.SharedSecret)
}
