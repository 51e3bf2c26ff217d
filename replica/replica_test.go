package replica

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldspin/cmc/cmc"
)

type zeroOracle struct{}

func (zeroOracle) SiteEnergy(i int) (float64, error) { return 0, nil }
func (zeroOracle) DisableThermalNoise()              {}

type singleMaterial struct{}

func (singleMaterial) Len() int                         { return 1 }
func (singleMaterial) MomentJPerT(int) (float64, error) { return 9.27400915e-24, nil }

func TestNewSetOffsetsSeeds(t *testing.T) {
	build := func(i int) (*cmc.SpinField, cmc.EnergyOracle, error) {
		return cmc.NewSpinField([]int{0, 0, 0}), zeroOracle{}, nil
	}
	set, err := NewSet(3, cmc.Config{PhiDeg: 0, ThetaDeg: 0, Seed: 10, TemperatureK: 300}, build, singleMaterial{})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	seeds := map[int64]bool{}
	for i := 0; i < set.Len(); i++ {
		seeds[set.Driver(i).Config().Seed] = true
	}
	assert.Len(t, seeds, 3)
}

func TestRunAllRunsEveryReplica(t *testing.T) {
	build := func(i int) (*cmc.SpinField, cmc.EnergyOracle, error) {
		return cmc.NewSpinField([]int{0, 0, 0, 0}), zeroOracle{}, nil
	}
	set, err := NewSet(4, cmc.Config{Seed: 1, TemperatureK: 300}, build, singleMaterial{})
	require.NoError(t, err)

	deltas, err := set.RunAll(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, deltas, 4)
	for _, d := range deltas {
		assert.Equal(t, uint64(20), d.Total)
	}
}

func TestAggregateStatsSumsAcrossReplicas(t *testing.T) {
	build := func(i int) (*cmc.SpinField, cmc.EnergyOracle, error) {
		return cmc.NewSpinField([]int{0, 0}), zeroOracle{}, nil
	}
	set, err := NewSet(2, cmc.Config{Seed: 1, TemperatureK: 300}, build, singleMaterial{})
	require.NoError(t, err)

	_, err = set.RunAll(context.Background(), 3)
	require.NoError(t, err)

	agg := set.AggregateStats()
	var want uint64
	for i := 0; i < set.Len(); i++ {
		want += set.Driver(i).Stats().Total
	}
	assert.Equal(t, want, agg.Total)
}

func TestMeanMagnetizationAveragesReplicas(t *testing.T) {
	build := func(i int) (*cmc.SpinField, cmc.EnergyOracle, error) {
		return cmc.NewSpinField([]int{0, 0, 0}), zeroOracle{}, nil
	}
	set, err := NewSet(2, cmc.Config{PhiDeg: 0, ThetaDeg: 0, Seed: 1, TemperatureK: 300}, build, singleMaterial{})
	require.NoError(t, err)

	mx, my, mz := set.MeanMagnetization()
	assert.InDelta(t, 0, mx, 1e-9)
	assert.InDelta(t, 0, my, 1e-9)
	assert.InDelta(t, 3, mz, 1e-9)
}
