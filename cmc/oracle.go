package cmc

// EnergyOracle is the external collaborator contract: SiteEnergy returns,
// in joules, site i's contribution to the total Hamiltonian against the
// current SpinField, such that changing sᵢ alone and re-evaluating
// captures the full ΔE with no double-counting needed at the call site.
// Implementations may use any atomistic Hamiltonian (exchange,
// anisotropy, Zeeman, dipolar); CMC disables any thermal fluctuation
// field regardless.
type EnergyOracle interface {
	SiteEnergy(i int) (float64, error)
}

// ThermalNoiseDisabler is an optional capability an EnergyOracle may
// implement so the Driver can turn off thermal fluctuation fields for
// the duration of a CMC run.
type ThermalNoiseDisabler interface {
	DisableThermalNoise()
}

// MaterialMoments is the external collaborator exposing each material's
// magnetic moment. Len reports the number of materials in the table, for
// range validation at construction.
type MaterialMoments interface {
	Len() int
	MomentJPerT(material int) (float64, error)
}
