package hamiltonian

import (
	"fmt"

	"github.com/fieldspin/cmc/cmc"
)

// Reference is an EnergyOracle implementing a nearest-neighbour exchange
// plus uniaxial anisotropy plus Zeeman Hamiltonian. SiteEnergy(i) returns,
// in joules, site i's full contribution, so that changing sᵢ alone and
// re-evaluating captures ΔE with no double-counting.
type Reference struct {
	Field     *cmc.SpinField
	Neighbors Neighbors
	Moments   cmc.MaterialMoments

	// ExchangeJ is the isotropic nearest-neighbour exchange constant, in
	// joules: E_exch(i) = −J Σ_{j∈nn(i)} sᵢ·sⱼ.
	ExchangeJ float64

	// AnisotropyKu is the uniaxial anisotropy constant, in joules:
	// E_anis(i) = −k_u (sᵢ·ê)².
	AnisotropyKu float64

	// EasyAxis ê is normalized by NewReference.
	EasyAxis cmc.Spin

	// ZeemanField B_ext, in tesla: E_zee(i) = −μ_s(m(i))·sᵢ·B_ext.
	ZeemanField cmc.Spin

	// thermalDisabled tracks whether DisableThermalNoise has been
	// called; CMC always disables the (here nonexistent) thermal field,
	// so this only records the call. SiteEnergy does not consult it.
	thermalDisabled bool
}

// NewReference builds a Reference oracle over field, with the given
// neighbour list, material moments, exchange/anisotropy constants, easy
// axis, and external field. The easy axis is normalized if non-zero.
func NewReference(field *cmc.SpinField, nbrs Neighbors, moments cmc.MaterialMoments, exchangeJ, anisotropyKu float64, easyAxis, zeemanField cmc.Spin) *Reference {
	if n := easyAxis.Norm(); n > 0 {
		easyAxis = easyAxis.Scale(1 / n)
	}
	return &Reference{
		Field:        field,
		Neighbors:    nbrs,
		Moments:      moments,
		ExchangeJ:    exchangeJ,
		AnisotropyKu: anisotropyKu,
		EasyAxis:     easyAxis,
		ZeemanField:  zeemanField,
	}
}

// SiteEnergy implements cmc.EnergyOracle.
func (r *Reference) SiteEnergy(i int) (float64, error) {
	s := r.Field.Get(i)

	var exchange float64
	for _, j := range r.Neighbors.Of(i) {
		exchange += -r.ExchangeJ * s.Dot(r.Field.Get(j))
	}

	axisProj := s.Dot(r.EasyAxis)
	anisotropy := -r.AnisotropyKu * axisProj * axisProj

	mat := r.Field.Material(i)
	mu, err := r.Moments.MomentJPerT(mat)
	if err != nil {
		return 0, fmt.Errorf("hamiltonian: material %d: %w", mat, err)
	}
	zeeman := -mu * s.Dot(r.ZeemanField)

	return exchange + anisotropy + zeeman, nil
}

// DisableThermalNoise implements cmc.ThermalNoiseDisabler. Reference
// never carries a thermal field; this only records that the Driver
// called it during initialization.
func (r *Reference) DisableThermalNoise() {
	r.thermalDisabled = true
}

// ThermalNoiseDisabled reports whether DisableThermalNoise has run, for
// tests asserting the CMC contract was honored.
func (r *Reference) ThermalNoiseDisabled() bool {
	return r.thermalDisabled
}
