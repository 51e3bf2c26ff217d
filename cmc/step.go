package cmc

import (
	"fmt"
	"math"
)

// isFinite reports whether x is neither NaN nor ±Inf.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// step runs one constrained Monte Carlo trial: pick a pair of sites
// (i, j), propose a correlated move that conserves the two in-plane
// constraint-frame components of M, evaluate the modified Metropolis
// acceptance, and commit or revert. The total-trial counter is
// incremented on every path.
func (d *Driver) step() error {
	n := d.field.Len()
	r := d.rng

	// 1. Pick first site.
	i := r.Index(n)
	oldI := d.field.Snapshot(i)
	iCFOld := d.frame.ToConstraintFrame(oldI)

	// 2. Propose s_i'.
	g := Spin{r.Gaussian(), r.Gaussian(), r.Gaussian()}
	t := oldI.Add(g)
	norm := t.Norm()
	if norm == 0 {
		norm = 1
	}
	newI := t.Scale(1 / norm)
	iCFNew := d.frame.ToConstraintFrame(newI)

	// 3. Tentative accept of move 1.
	eOld, err := d.siteEnergy(i)
	if err != nil {
		return err
	}
	d.field.Set(i, newI)
	eNew, err := d.siteEnergy(i)
	if err != nil {
		d.field.Restore(i, oldI)
		return err
	}
	dE1, err := d.deltaEnergyJoules(eNew-eOld, d.field.Material(i))
	if err != nil {
		d.field.Restore(i, oldI)
		return err
	}

	// 4. Pick second site.
	j := r.Index(n)
	oldJ := d.field.Snapshot(j)
	jCFOld := d.frame.ToConstraintFrame(oldJ)

	// 5. Compensate move on site j in the constraint frame.
	jCFNew := Spin{
		iCFOld[0] + jCFOld[0] - iCFNew[0],
		iCFOld[1] + jCFOld[1] - iCFNew[1],
		0,
	}
	disc := jCFNew[0]*jCFNew[0] + jCFNew[1]*jCFNew[1]
	if disc >= 1 || j == i {
		d.field.Restore(i, oldI)
		d.counters.SphereRejects++
		d.counters.Total++
		return nil
	}
	jCFNew[2] = signOrPositive(jCFOld[2]) * math.Sqrt(1-disc)
	newJ := d.frame.ToLabFrame(jCFNew)

	// 6. Evaluate ΔE₂.
	eOldJ, err := d.siteEnergy(j)
	if err != nil {
		d.field.Restore(i, oldI)
		return err
	}
	d.field.Set(j, newJ)
	eNewJ, err := d.siteEnergy(j)
	if err != nil {
		d.field.Restore(i, oldI)
		d.field.Restore(j, oldJ)
		return err
	}
	dE2, err := d.deltaEnergyJoules(eNewJ-eOldJ, d.field.Material(j))
	if err != nil {
		d.field.Restore(i, oldI)
		d.field.Restore(j, oldJ)
		return err
	}

	// 7. Projected magnetization along the constraint.
	c := d.frame.C
	mzOld := d.m.Dot(c)
	mChange := newI.Add(newJ).Sub(oldI).Sub(oldJ)
	mzNew := d.m.Add(mChange).Dot(c)

	// Mz_old = 0 is treated as a reject rather than a division by zero.
	if mzOld == 0 {
		d.field.Restore(i, oldI)
		d.field.Restore(j, oldJ)
		d.counters.EnergyRejects++
		d.counters.Total++
		return nil
	}

	// 8. Acceptance.
	deltaE := dE1 + dE2
	accept := false
	if d.cfg.ShortCircuitNegativeDeltaE && deltaE < 0 {
		accept = true
	} else {
		beta := muB / (kB * d.cfg.TemperatureK)
		ratio := mzNew / mzOld
		weight := math.Abs(jCFOld[2] / jCFNew[2])
		p := math.Exp(-deltaE*beta) * ratio * ratio * weight
		accept = mzNew >= 0 && p >= r.Uniform()
	}

	// 9. Commit or revert.
	if accept {
		d.m = d.m.Add(mChange)
		d.counters.Successes++
	} else {
		d.field.Restore(i, oldI)
		d.field.Restore(j, oldJ)
		d.counters.EnergyRejects++
	}
	d.counters.Total++
	return nil
}

// siteEnergy wraps the EnergyOracle call with the oracle-contract check:
// a non-finite energy is a protocol error, not a physical outcome.
func (d *Driver) siteEnergy(i int) (float64, error) {
	e, err := d.oracle.SiteEnergy(i)
	if err != nil {
		return 0, fmt.Errorf("%w: site %d: %v", ErrOracleContract, i, err)
	}
	if !isFinite(e) {
		return 0, fmt.Errorf("%w: site %d returned non-finite energy %v", ErrOracleContract, i, e)
	}
	return e, nil
}

// deltaEnergyJoules converts a raw SiteEnergy difference into the scaled
// ΔE used in the acceptance test: (E_new − E_old)·μ_s/μ_B.
func (d *Driver) deltaEnergyJoules(rawDelta float64, material int) (float64, error) {
	mu, err := d.moments.MomentJPerT(material)
	if err != nil {
		return 0, fmt.Errorf("%w: material %d: %v", ErrOracleContract, material, err)
	}
	return rawDelta * mu * invMuB, nil
}
