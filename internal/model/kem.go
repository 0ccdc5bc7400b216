package model

import "fmt"

// Names of the fields of a key-encapsulation input/output.
const (
	FieldSecretKey    = "secret_key"
	FieldPublicKey    = "public_key"
	FieldCiphertext   = "ciphertext"
	FieldSharedSecret = "shared_secret"
)

// KEMInput is the base input of a key-encapsulation sweep: a keypair and a
// ciphertext encapsulated under its public key. Seed identifies the
// deterministic source the input was generated from.
type KEMInput struct {
	SecretKey  Bytes
	PublicKey  Bytes
	Ciphertext Bytes
	Seed       uint64
}

// Field returns the named byte field.
func (in KEMInput) Field(name string) []byte {
	switch name {
	case FieldSecretKey:
		return in.SecretKey
	case FieldPublicKey:
		return in.PublicKey
	case FieldCiphertext:
		return in.Ciphertext
	}

	return nil
}

// WithField returns a copy of the input with the named field replaced.
func (in KEMInput) WithField(name string, data []byte) (KEMInput, error) {
	out := in

	switch name {
	case FieldSecretKey:
		out.SecretKey = data
	case FieldPublicKey:
		out.PublicKey = data
	case FieldCiphertext:
		out.Ciphertext = data
	default:
		return in, fmt.Errorf("unknown KEM input field %q", name)
	}

	return out, nil
}

// KEMOutput is the observable result of decapsulating a KEMInput, together
// with the key material it was produced from.
type KEMOutput struct {
	SharedSecret Bytes
	Ciphertext   Bytes
	PublicKey    Bytes
	SecretKey    Bytes
}

// Field implements Fielded.
func (out KEMOutput) Field(name string) []byte {
	switch name {
	case FieldSharedSecret:
		return out.SharedSecret
	case FieldCiphertext:
		return out.Ciphertext
	case FieldPublicKey:
		return out.PublicKey
	case FieldSecretKey:
		return out.SecretKey
	}

	return nil
}

// KEMSizes are the fixed byte lengths of a KEM's artefacts.
type KEMSizes struct {
	SecretKey    int
	PublicKey    int
	Ciphertext   int
	SharedSecret int
}
