package mcmc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsembleMatchesSequentialChains(t *testing.T) {
	target := FromEnergy(1, func(x State) float64 { return 0.5 * x[0] * x[0] })
	mh, err := NewMetropolis(target, nil, 2.0)
	require.NoError(t, err)

	chains, err := NewEnsemble(mh, 4, 100).Run(context.Background(), State{0}, 500)
	require.NoError(t, err)
	require.Len(t, chains, 4)

	for i, got := range chains {
		want, err := Run(context.Background(), mh, State{0}, 500, NewSource(100+int64(i)))
		require.NoError(t, err)
		require.Equal(t, want.Len(), got.Len())
		for j := range want.Samples {
			require.True(t, want.Samples[j].Equal(got.Samples[j]), "chain %d sample %d", i, j)
		}
	}
}

func TestEnsembleRejectsNoChains(t *testing.T) {
	chains, err := NewEnsemble(counter, 0, 1).Run(context.Background(), State{0}, 10)
	assert.Nil(t, chains)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnsemblePropagatesError(t *testing.T) {
	chains, err := NewEnsemble(counter, 3, 1).Run(context.Background(), State{0}, 0)
	assert.Nil(t, chains)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
