package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"metamorph.dev/pkg/metamorph/internal/catalog"
	"metamorph.dev/pkg/metamorph/internal/domain"
	"metamorph.dev/pkg/metamorph/internal/domain/mutations"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

func labels(primitives []catalog.Primitive) []string {
	out := make([]string, 0, len(primitives))
	for _, p := range primitives {
		out = append(out, p.Label)
	}

	return out
}

func TestAll_UniqueLabels(t *testing.T) {
	all := catalog.All()
	require.Len(t, all, len(catalog.Hashes())+len(catalog.KEMs()))

	seen := map[string]bool{}
	for _, p := range all {
		assert.False(t, seen[p.Label], "duplicate label %s", p.Label)
		seen[p.Label] = true
	}

	assert.Equal(t, catalog.KindHash, all[0].Kind)
	assert.Equal(t, catalog.KindKEM, all[len(all)-1].Kind)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "include family",
			include: []string{"^SHA3-"},
			want:    []string{"SHA3-224", "SHA3-256", "SHA3-384", "SHA3-512"},
		},
		{
			name:    "include and exclude",
			include: []string{"^SHA3-"},
			exclude: []string{"512$"},
			want:    []string{"SHA3-224", "SHA3-256", "SHA3-384"},
		},
		{
			name:    "several includes",
			include: []string{"^MD", "^ML-KEM-768$"},
			want:    []string{"MD5", "MD4", "ML-KEM-768"},
		},
		{
			name:    "exclude everything",
			exclude: []string{"."},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := catalog.Select(catalog.All(), tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, labels(selected))
		})
	}
}

func TestSelect_InvalidPattern(t *testing.T) {
	_, err := catalog.Select(catalog.All(), []string{"("}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include")

	_, err = catalog.Select(catalog.All(), nil, []string{"[z-a]"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude")
}

func TestHashes_SweepsPass(t *testing.T) {
	targets, err := catalog.Targets(catalog.Options{
		Sizes:   m.Range{Min: 0, Max: 3},
		Exclude: []string{"KEM", "^Kyber"},
	})
	require.NoError(t, err)
	require.Len(t, targets, len(catalog.Hashes()))

	runner := domain.NewRunner(domain.WithThreads(4))

	for _, target := range targets {
		t.Run(target.Label(), func(t *testing.T) {
			assert.Equal(t, []string{mutations.BitFlipName, mutations.StreamingSplitName}, target.Strategies())

			reports, err := target.Sweep(context.Background(), runner)
			require.NoError(t, err)
			require.Len(t, reports, 2)

			assert.Equal(t, 8*(0+1+2+3), reports[0].Mutants)
			assert.Equal(t, 1+2+3+4, reports[1].Mutants)
			assert.Empty(t, domain.Failed(reports))
		})
	}
}

func TestKEMs_RequireTrials(t *testing.T) {
	_, err := catalog.Targets(catalog.Options{Include: []string{"^ML-KEM-512$"}})
	require.ErrorIs(t, err, catalog.ErrInvalidTrials)
}

func TestKEMs_Estimate(t *testing.T) {
	for _, label := range []string{"ML-KEM-512", "Kyber512"} {
		t.Run(label, func(t *testing.T) {
			targets, err := catalog.Targets(catalog.Options{
				Include: []string{"^" + label + "$"},
				Trials:  2,
				Seed:    7,
			})
			require.NoError(t, err)
			require.Len(t, targets, 1)

			estimates, err := targets[0].Estimate(context.Background())
			require.NoError(t, err)

			mutants := map[string]int{}
			for _, estimate := range estimates {
				assert.Equal(t, 2, estimate.Units)
				mutants[estimate.Strategy] = estimate.Mutants
			}

			assert.Equal(t, map[string]int{
				mutations.CiphertextFlipName:  2 * 768 * 8,
				mutations.SecretKeyFlipName:   2 * 1632 * 8,
				mutations.PublicKeyFlipName:   2 * 800 * 8,
				mutations.SeedReplayName:      2,
				mutations.CoefficientFlipName: 2 * 2 * 256 * 12,
			}, mutants)
		})
	}
}
