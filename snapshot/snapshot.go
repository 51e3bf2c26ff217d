// Package snapshot persists enough state to resume a run — SpinField,
// RandomSource state, and counters — via encoding/gob. gob is used
// deliberately rather than a third-party codec: the payload is
// fixed-layout numeric data with no schema evolution or cross-language
// requirement (see DESIGN.md for the full justification).
package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/fieldspin/cmc/cmc"
)

// Snapshot is the serializable form of a Driver: enough to reconstruct an
// identical one via Restore.
type Snapshot struct {
	PhiDeg, ThetaDeg           float64
	TemperatureK               float64
	ShortCircuitNegativeDeltaE bool

	Spins    []cmc.Spin
	Material []int

	RNG cmc.RandomState

	Counters cmc.Counters
	M        [3]float64
}

// Save writes a Snapshot of d to w.
func Save(w io.Writer, d *cmc.Driver) error {
	snap := Build(d)
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Build captures d's state into a Snapshot without writing it anywhere,
// useful for in-memory checkpoint comparisons in tests.
func Build(d *cmc.Driver) Snapshot {
	field := d.Field()
	n := field.Len()
	spins := make([]cmc.Spin, n)
	material := make([]int, n)
	for i := 0; i < n; i++ {
		spins[i] = field.Get(i)
		material[i] = field.Material(i)
	}
	cfg := d.Config()
	mx, my, mz := d.Magnetization()
	return Snapshot{
		PhiDeg:                     cfg.PhiDeg,
		ThetaDeg:                   cfg.ThetaDeg,
		TemperatureK:               cfg.TemperatureK,
		ShortCircuitNegativeDeltaE: cfg.ShortCircuitNegativeDeltaE,
		Spins:                      spins,
		Material:                   material,
		RNG:                        d.RandomState(),
		Counters:                   d.Counters(),
		M:                          [3]float64{mx, my, mz},
	}
}

// Load reads a Snapshot from r.
func Load(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	return snap, nil
}

// Restore rebuilds a *cmc.Driver from a Snapshot, oracle and moments
// collaborators supplied fresh by the caller. Neither is serialized: the
// core package never performs file I/O, so the oracle and moments table
// stay outside persisted state.
func Restore(snap Snapshot, oracle cmc.EnergyOracle, moments cmc.MaterialMoments) (*cmc.Driver, error) {
	field := cmc.NewSpinField(snap.Material)
	for i, s := range snap.Spins {
		field.Set(i, s)
	}
	cfg := cmc.Config{
		PhiDeg:                     snap.PhiDeg,
		ThetaDeg:                   snap.ThetaDeg,
		TemperatureK:               snap.TemperatureK,
		ShortCircuitNegativeDeltaE: snap.ShortCircuitNegativeDeltaE,
	}
	d, err := cmc.NewDriverFromSnapshot(cfg, field, oracle, moments, snap.RNG, snap.Counters, snap.M)
	if err != nil {
		return nil, fmt.Errorf("snapshot: restore: %w", err)
	}
	return d, nil
}
