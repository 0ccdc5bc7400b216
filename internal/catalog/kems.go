package catalog

import (
	"fmt"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/cloudflare/circl/kem/kyber/kyber512"
	"github.com/cloudflare/circl/kem/kyber/kyber768"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"metamorph.dev/pkg/metamorph/internal/adapter"
	"metamorph.dev/pkg/metamorph/internal/domain"
	"metamorph.dev/pkg/metamorph/internal/domain/mutations"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// KEMs lists the registered key-encapsulation mechanisms. k is the module
// rank, which fixes the coefficient layout of the secret key.
func KEMs() []Primitive {
	return []Primitive{
		kemPrimitive("ML-KEM-512", mlkem512.Scheme(), 2),
		kemPrimitive("ML-KEM-768", mlkem768.Scheme(), 3),
		kemPrimitive("ML-KEM-1024", mlkem1024.Scheme(), 4),
		kemPrimitive("Kyber512", kyber512.Scheme(), 2),
		kemPrimitive("Kyber768", kyber768.Scheme(), 3),
		kemPrimitive("Kyber1024", kyber1024.Scheme(), 4),
	}
}

func kemPrimitive(label string, scheme kem.Scheme, k int) Primitive {
	return Primitive{
		Label: label,
		Kind:  KindKEM,
		build: func(opts Options) (domain.Target, error) {
			if opts.Trials <= 0 {
				return nil, fmt.Errorf("%w: %d", ErrInvalidTrials, opts.Trials)
			}

			contract, err := adapter.NewKEMContract(adapter.NewCirclKEM(label, scheme), opts.Seed)
			if err != nil {
				return nil, err
			}

			return domain.NewTarget[struct{}, m.KEMInput, m.KEMOutput](contract, m.Range{Min: 1, Max: opts.Trials},
				mutations.CiphertextFlip(),
				mutations.SecretKeyFlip(),
				mutations.PublicKeyFlip(contract),
				mutations.SeedReplay(contract),
				mutations.CoefficientFlip(adapter.MLKEMLayout(k)),
			), nil
		},
	}
}
