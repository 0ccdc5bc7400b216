package catalog

import (
	"crypto/md5"  //nolint:gosec // primitive under test
	"crypto/sha1" //nolint:gosec // primitive under test
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"       //nolint:staticcheck // primitive under test
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // primitive under test
	"golang.org/x/crypto/sha3"
	"metamorph.dev/pkg/metamorph/internal/adapter"
	"metamorph.dev/pkg/metamorph/internal/domain"
	"metamorph.dev/pkg/metamorph/internal/domain/mutations"
)

// Hashes lists the registered hash functions.
func Hashes() []Primitive {
	return []Primitive{
		stdHash("MD5", md5.New),
		stdHash("SHA-1", sha1.New),
		stdHash("SHA-224", sha256.New224),
		stdHash("SHA-256", sha256.New),
		stdHash("SHA-384", sha512.New384),
		stdHash("SHA-512", sha512.New),
		stdHash("SHA-512/224", sha512.New512_224),
		stdHash("SHA-512/256", sha512.New512_256),
		stdHash("SHA3-224", sha3.New224),
		stdHash("SHA3-256", sha3.New256),
		stdHash("SHA3-384", sha3.New384),
		stdHash("SHA3-512", sha3.New512),
		stdHash("Keccak-256", sha3.NewLegacyKeccak256),
		stdHash("Keccak-512", sha3.NewLegacyKeccak512),
		shake("SHAKE128", sha3.NewShake128, 32),
		shake("SHAKE256", sha3.NewShake256, 64),
		stdHash("BLAKE2b-256", unkeyed(blake2b.New256)),
		stdHash("BLAKE2b-384", unkeyed(blake2b.New384)),
		stdHash("BLAKE2b-512", unkeyed(blake2b.New512)),
		stdHash("BLAKE2s-256", unkeyed(blake2s.New256)),
		stdHash("BLAKE3", func() hash.Hash { return blake3.New() }),
		blake3XOF("BLAKE3-XOF-64", 64),
		stdHash("RIPEMD-160", ripemd160.New),
		stdHash("MD4", md4.New),
	}
}

func stdHash(label string, newHash func() hash.Hash) Primitive {
	return hashPrimitive(adapter.FromHash(label, newHash))
}

func hashPrimitive[S any](fn adapter.HashFunc[S]) Primitive {
	return Primitive{
		Label: fn.Label,
		Kind:  KindHash,
		build: func(opts Options) (domain.Target, error) {
			contract := adapter.NewHashContract(fn)

			return domain.NewTarget[S, []byte, []byte](contract, opts.Sizes,
				mutations.BitFlip[S, []byte](contract),
				mutations.StreamingSplit[S, []byte](contract),
			), nil
		},
	}
}

// unkeyed adapts a keyed constructor to an unkeyed hash. A nil key is always
// accepted.
func unkeyed(newKeyed func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := newKeyed(nil)
		if err != nil {
			panic(err)
		}

		return h
	}
}

func shake(label string, newShake func() sha3.ShakeHash, outputSize int) Primitive {
	return hashPrimitive(adapter.HashFunc[sha3.ShakeHash]{
		Label: label,
		New:   newShake,
		Update: func(state sha3.ShakeHash, chunk []byte) sha3.ShakeHash {
			_, _ = state.Write(chunk)
			return state
		},
		Finalize: func(state sha3.ShakeHash) []byte {
			out := make([]byte, outputSize)
			_, _ = state.Read(out)

			return out
		},
	})
}

func blake3XOF(label string, outputSize int) Primitive {
	return hashPrimitive(adapter.HashFunc[*blake3.Hasher]{
		Label: label,
		New:   blake3.New,
		Update: func(state *blake3.Hasher, chunk []byte) *blake3.Hasher {
			_, _ = state.Write(chunk)
			return state
		},
		Finalize: func(state *blake3.Hasher) []byte {
			out := make([]byte, outputSize)
			_, _ = state.Digest().Read(out)

			return out
		},
	})
}
