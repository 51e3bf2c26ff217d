package cmc

import (
	"context"
	"fmt"
)

// Bohr magneton (J/T), its reciprocal, and the Boltzmann constant (J/K),
// used to convert a raw SiteEnergy difference into the ΔE the acceptance
// test consumes, and to build the inverse-temperature factor β. Values
// are the standard CODATA figures.
const (
	muB    = 9.27400915e-24
	invMuB = 1.07828231e23
	kB     = 1.3806503e-23
)

// Config is the full set of inputs to NewDriver.
type Config struct {
	// PhiDeg, ThetaDeg are the constraint angles in degrees (any real;
	// stored modulo 360° internally via Frame's trig, which is already
	// periodic).
	PhiDeg, ThetaDeg float64

	// Seed initializes the driver's RandomSource.
	Seed int64

	// TemperatureK is T in kelvin; must be > 0.
	TemperatureK float64

	// ShortCircuitNegativeDeltaE opts into an unconditional accept on
	// ΔE < 0, skipping the geometric-weight evaluation entirely. Default
	// false always runs the full acceptance test.
	ShortCircuitNegativeDeltaE bool

	// Debug, if non-nil, is called once per completed sweep.
	Debug DebugFunc
}

// Driver is the outer CMC loop: it performs N trial pair-moves per
// sweep and maintains the running magnetization and counters. One Driver
// exclusively owns one SpinField and one RandomSource; multiple Drivers
// may run concurrently as independent replicas.
type Driver struct {
	cfg     Config
	frame   Frame
	field   *SpinField
	oracle  EnergyOracle
	moments MaterialMoments
	rng     *RandomSource

	m          Spin
	counters   Counters
	sweepCount int
}

// NewDriver validates cfg and the field/materials pairing, builds the
// constraint Frame, initializes every spin along the constraint direction,
// and returns a ready-to-run Driver. An invalid config is a fatal
// construction error.
func NewDriver(cfg Config, field *SpinField, oracle EnergyOracle, moments MaterialMoments) (*Driver, error) {
	d, err := newValidatedDriver(cfg, field, oracle, moments)
	if err != nil {
		return nil, err
	}
	d.initialize()
	return d, nil
}

// newValidatedDriver runs config validation and builds a Driver without
// touching the SpinField or resetting M/counters, so both NewDriver
// (fresh run) and NewDriverFromSnapshot (resume) can share the
// validation path while only the former re-initializes state.
func newValidatedDriver(cfg Config, field *SpinField, oracle EnergyOracle, moments MaterialMoments) (*Driver, error) {
	if field == nil || field.Len() == 0 {
		return nil, fmt.Errorf("%w: spin field has zero sites", ErrInvalidConfig)
	}
	if oracle == nil {
		return nil, fmt.Errorf("%w: energy oracle is nil", ErrInvalidConfig)
	}
	if moments == nil {
		return nil, fmt.Errorf("%w: material moments is nil", ErrInvalidConfig)
	}
	if !isFinite(cfg.PhiDeg) || !isFinite(cfg.ThetaDeg) {
		return nil, fmt.Errorf("%w: phi/theta must be finite", ErrInvalidConfig)
	}
	if !(cfg.TemperatureK > 0) {
		return nil, fmt.Errorf("%w: temperature must be > 0, got %v", ErrInvalidConfig, cfg.TemperatureK)
	}
	for i := 0; i < field.Len(); i++ {
		mat := field.Material(i)
		if mat < 0 || mat >= moments.Len() {
			return nil, fmt.Errorf("%w: site %d has out-of-range material %d", ErrInvalidConfig, i, mat)
		}
		mu, err := moments.MomentJPerT(mat)
		if err != nil {
			return nil, fmt.Errorf("%w: material %d: %v", ErrInvalidConfig, mat, err)
		}
		if !(mu > 0) {
			return nil, fmt.Errorf("%w: material %d has non-positive moment %v", ErrInvalidConfig, mat, mu)
		}
	}

	return &Driver{
		cfg:     cfg,
		field:   field,
		oracle:  oracle,
		moments: moments,
		rng:     NewRandomSource(cfg.Seed),
		frame:   BuildFrame(cfg.PhiDeg, cfg.ThetaDeg),
	}, nil
}

// initialize builds the Frame, sets every spin to the constraint
// direction, computes M = N·d, zeroes counters, and disables any thermal
// noise the oracle may carry. Idempotent: calling it again replaces
// state wholesale.
func (d *Driver) initialize() {
	d.frame = BuildFrame(d.cfg.PhiDeg, d.cfg.ThetaDeg)
	n := d.field.Len()
	for i := 0; i < n; i++ {
		d.field.Set(i, d.frame.D)
	}
	d.m = d.frame.D.Scale(float64(n))
	d.counters = Counters{}
	d.sweepCount = 0
	if disabler, ok := d.oracle.(ThermalNoiseDisabler); ok {
		disabler.DisableThermalNoise()
	}
}

// Reset re-initializes the driver wholesale, also reseeding the
// RandomSource.
func (d *Driver) Reset(seed int64) {
	d.rng.Seed(seed)
	d.initialize()
}

// Sweep executes exactly N trial pair-moves. ErrCancelled is returned,
// without performing any trial, if ctx is already done; cancellation is
// only ever observed between sweeps, never mid-sweep.
func (d *Driver) Sweep(ctx context.Context) (StepDelta, error) {
	if err := ctx.Err(); err != nil {
		return StepDelta{}, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	before := d.counters
	n := d.field.Len()
	for k := 0; k < n; k++ {
		if err := d.step(); err != nil {
			return deltaSince(before, d.counters), err
		}
	}

	d.sweepCount++
	delta := deltaSince(before, d.counters)
	if d.cfg.Debug != nil {
		mx, my, mz := d.Magnetization()
		d.cfg.Debug(DebugEvent{
			Sweep:         d.sweepCount,
			Stats:         d.counters.stats(),
			Magnetization: [3]float64{mx, my, mz},
		})
	}
	return delta, nil
}

// Run executes sweeps sweeps, checking ctx between each one. It stops
// cleanly on cancellation, leaving the SpinField in a consistent accepted
// state, and returns the aggregate delta over the sweeps it completed
// along with ErrCancelled.
func (d *Driver) Run(ctx context.Context, sweeps int) (StepDelta, error) {
	before := d.counters
	for s := 0; s < sweeps; s++ {
		if _, err := d.Sweep(ctx); err != nil {
			return deltaSince(before, d.counters), err
		}
	}
	return deltaSince(before, d.counters), nil
}

// Stats returns the read-only aggregate counters and acceptance ratio.
func (d *Driver) Stats() Stats {
	return d.counters.stats()
}

// Magnetization returns the running M in lab-frame coordinates.
func (d *Driver) Magnetization() (mx, my, mz float64) {
	return d.m[0], d.m[1], d.m[2]
}

// Field exposes the underlying SpinField for read access (tests, metrics,
// snapshotting); callers must not mutate it outside the Driver.
func (d *Driver) Field() *SpinField {
	return d.field
}

// Frame exposes the immutable constraint frame.
func (d *Driver) Frame() Frame {
	return d.frame
}

// Config returns the Config the Driver was built or restored with.
func (d *Driver) Config() Config {
	return d.cfg
}

// Counters returns the raw accumulated counters, for snapshotting.
func (d *Driver) Counters() Counters {
	return d.counters
}

// RandomState returns the RandomSource's full internal state, for
// snapshotting.
func (d *Driver) RandomState() RandomState {
	return d.rng.State()
}

// NewDriverFromSnapshot rebuilds a Driver from previously captured
// RandomSource state, Counters, and running magnetization, skipping
// Initializer's reset-to-constraint-direction step — the caller's
// SpinField already carries the resumed spin configuration. It performs
// the same InvalidConfig validation NewDriver does.
func NewDriverFromSnapshot(cfg Config, field *SpinField, oracle EnergyOracle, moments MaterialMoments, rngState RandomState, counters Counters, m [3]float64) (*Driver, error) {
	d, err := newValidatedDriver(cfg, field, oracle, moments)
	if err != nil {
		return nil, err
	}
	d.rng.Restore(rngState)
	d.counters = counters
	d.m = Spin{m[0], m[1], m[2]}
	if disabler, ok := d.oracle.(ThermalNoiseDisabler); ok {
		disabler.DisableThermalNoise()
	}
	return d, nil
}

func deltaSince(before, after Counters) StepDelta {
	return StepDelta{
		Successes:     after.Successes - before.Successes,
		EnergyRejects: after.EnergyRejects - before.EnergyRejects,
		SphereRejects: after.SphereRejects - before.SphereRejects,
		Total:         after.Total - before.Total,
	}
}
