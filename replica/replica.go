// Package replica runs independent cmc.Driver replicas concurrently, each
// with its own SpinField, Frame, M, counters, and seeded RandomSource; no
// state is shared between replicas. This is additive parallelism across
// whole replicas; it never reaches inside one replica's sweep, which
// stays sequential.
package replica

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fieldspin/cmc/cmc"
)

// Factory builds one replica's collaborators (SpinField + EnergyOracle)
// for the given replica index, so each replica can own independent state
// (e.g. a distinct neighbour-list copy or a distinct RNG-derived seed).
type Factory func(replicaIndex int) (*cmc.SpinField, cmc.EnergyOracle, error)

// Set is a group of independent Driver replicas.
type Set struct {
	drivers []*cmc.Driver
}

// NewSet builds count replicas. baseCfg.Seed is offset by the replica
// index (baseCfg.Seed + i) so replicas draw independent, reproducible
// streams from a single top-level seed.
func NewSet(count int, baseCfg cmc.Config, build Factory, moments cmc.MaterialMoments) (*Set, error) {
	s := &Set{drivers: make([]*cmc.Driver, count)}
	for i := 0; i < count; i++ {
		field, oracle, err := build(i)
		if err != nil {
			return nil, err
		}
		cfg := baseCfg
		cfg.Seed = baseCfg.Seed + int64(i)
		d, err := cmc.NewDriver(cfg, field, oracle, moments)
		if err != nil {
			return nil, err
		}
		s.drivers[i] = d
	}
	return s, nil
}

// Len returns the replica count.
func (s *Set) Len() int {
	return len(s.drivers)
}

// Driver returns replica i's Driver, for tests or per-replica inspection.
func (s *Set) Driver(i int) *cmc.Driver {
	return s.drivers[i]
}

// RunAll runs sweeps sweeps on every replica concurrently and returns each
// replica's aggregate StepDelta over the run, in replica-index order. A
// cancelled context stops every replica cleanly; the first error any
// replica returns is propagated once all replicas have stopped.
func (s *Set) RunAll(ctx context.Context, sweeps int) ([]cmc.StepDelta, error) {
	deltas := make([]cmc.StepDelta, len(s.drivers))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range s.drivers {
		i, d := i, d
		g.Go(func() error {
			delta, err := d.Run(gctx, sweeps)
			deltas[i] = delta
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return deltas, err
	}
	return deltas, nil
}

// AggregateStats sums every replica's Stats into one Stats, recomputing
// the acceptance ratio over the combined totals.
func (s *Set) AggregateStats() cmc.Stats {
	var successes, energyRejects, sphereRejects, total uint64
	for _, d := range s.drivers {
		st := d.Stats()
		successes += st.Successes
		energyRejects += st.EnergyRejects
		sphereRejects += st.SphereRejects
		total += st.Total
	}
	var ratio float64
	if total > 0 {
		ratio = float64(successes) / float64(total)
	}
	return cmc.Stats{
		Successes:       successes,
		EnergyRejects:   energyRejects,
		SphereRejects:   sphereRejects,
		Total:           total,
		AcceptanceRatio: ratio,
	}
}

// MeanMagnetization returns the replica-averaged lab-frame total
// magnetization M (the mean of each replica's Magnetization, not divided
// by the site count).
func (s *Set) MeanMagnetization() (mx, my, mz float64) {
	var sx, sy, sz float64
	for _, d := range s.drivers {
		x, y, z := d.Magnetization()
		sx += x
		sy += y
		sz += z
	}
	n := float64(len(s.drivers))
	if n == 0 {
		return 0, 0, 0
	}
	return sx / n, sy / n, sz / n
}
