package cmc

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("%w: ...", kind, ...) to
// attach detail without losing errors.Is/As matchability.
var (
	// ErrInvalidConfig is returned from NewDriver when T ≤ 0, φ/θ are
	// non-finite, N = 0, a material index is out of range, or μ_s ≤ 0.
	ErrInvalidConfig = errors.New("cmc: invalid config")

	// ErrOracleContract is returned from Sweep/Run when an EnergyOracle
	// returns a non-finite energy or an unknown material's moment.
	ErrOracleContract = errors.New("cmc: energy oracle contract violated")

	// ErrCancelled is returned from Sweep/Run when cancellation was
	// observed between sweeps, leaving the SpinField in a consistent
	// accepted state.
	ErrCancelled = errors.New("cmc: cancelled")
)
